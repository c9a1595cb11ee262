// Package session holds the storefront's single signed-in identity. One
// Store exists per storefront process; every feature reads it to gate
// actions and only the auth flow writes it.
package session

import "sync"

// Identity is the signed-in principal as the backend reports it.
type Identity struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Admin    bool   `json:"isAdmin"`
	SignedIn bool   `json:"loggedIn"`
}

// AdminUsername is the account the storefront treats as the administrator.
const AdminUsername = "admin"

// Absent is the sentinel for "no one is signed in". It is compared by
// pointer identity, so a real identity is never mistaken for it even when
// every field is zero.
var Absent = &Identity{}

// Store is the process-wide session state. The zero value is not usable;
// construct with NewStore. Reads and writes are safe from concurrent
// goroutines.
type Store struct {
	mu      sync.RWMutex
	current *Identity
	status  string
}

// NewStore returns a Store with no one signed in.
func NewStore() *Store {
	return &Store{current: Absent, status: "Not Logged In"}
}

// Current returns the signed-in identity, or Absent.
func (s *Store) Current() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set replaces the identity wholesale. A nil identity signs everyone out.
func (s *Store) Set(id *Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == nil {
		id = Absent
	}
	s.current = id
}

// Clear resets the identity to Absent.
func (s *Store) Clear() {
	s.Set(Absent)
}

// IsSignedIn reports whether a real identity is present.
func (s *Store) IsSignedIn() bool {
	return s.Current() != Absent
}

// IsAdmin reports whether the signed-in username is literally "admin".
// This is the authoritative check; the identity's Admin flag is exposed
// separately through HasAdminFlag because existing callers disagree on
// which to consult.
func (s *Store) IsAdmin() bool {
	return s.Current().Username == AdminUsername
}

// HasAdminFlag reports the raw Admin flag on the signed-in identity.
func (s *Store) HasAdminFlag() bool {
	return s.Current().Admin
}

// Status returns the human-readable session message shown to the user.
func (s *Store) Status() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// SetStatus replaces the session message.
func (s *Store) SetStatus(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = msg
}
