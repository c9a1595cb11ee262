package domain

import "strings"

// AdminUsername is the account name that grants administrator access.
// Authorization in this system is by literal username match; the Admin
// flag on User mirrors it for clients but is not authoritative.
const AdminUsername = "admin"

// User models a storefront account.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Admin        bool   `json:"isAdmin"`
	LoggedIn     bool   `json:"loggedIn"`
}

// IsAdmin reports whether the account is the administrator. The check is
// on the username, not the Admin flag.
func (u *User) IsAdmin() bool {
	return strings.EqualFold(u.Username, AdminUsername)
}
