// Package auth is the only writer of the session store. Remote failures
// never propagate past this flow; they become a status message and the
// identity is left as it was.
package auth

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/discgolf/storefront/internal/storefront/client"
	"github.com/discgolf/storefront/internal/storefront/session"
)

// UserAPI is the slice of the backend client the flow needs. Cart creation
// rides along because signing up provisions the new account's cart.
type UserAPI interface {
	Login(ctx context.Context, username, password string) (*session.Identity, error)
	SignUp(ctx context.Context, username, password string) (*session.Identity, error)
	Logout(ctx context.Context, username string) error
	CreateCart(ctx context.Context, username string) error
}

// Flow signs users in and out and keeps the session store and its status
// message current.
type Flow struct {
	api     UserAPI
	session *session.Store
	log     zerolog.Logger
}

func New(api UserAPI, s *session.Store, log zerolog.Logger) *Flow {
	return &Flow{api: api, session: s, log: log}
}

// Login attempts a sign-in. On failure the identity is unchanged and the
// status message says what went wrong.
func (f *Flow) Login(ctx context.Context, username, password string) {
	id, err := f.api.Login(ctx, username, password)
	if err != nil {
		switch {
		case errors.Is(err, client.ErrNotFound):
			f.session.SetStatus("This user does not exist in the system, try signing up instead!")
		case errors.Is(err, client.ErrUnauthorized):
			f.session.SetStatus("Invalid username or password. Please try again.")
		default:
			f.log.Error().Err(err).Msg("login failed")
		}
		return
	}

	f.session.Set(id)
	f.session.SetStatus("Logged in as: " + id.Username)
}

// SignUp registers a new account and provisions its cart. The user still
// has to sign in afterwards; the identity is not replaced here.
func (f *Flow) SignUp(ctx context.Context, username, password string) {
	id, err := f.api.SignUp(ctx, username, password)
	if err != nil {
		if errors.Is(err, client.ErrConflict) {
			f.session.SetStatus("This user already exists. Please sign in.")
		} else {
			f.log.Error().Err(err).Msg("sign up failed")
		}
		return
	}

	if err := f.api.CreateCart(ctx, id.Username); err != nil {
		f.log.Error().Err(err).Str("username", id.Username).Msg("create cart failed")
	}
	f.session.SetStatus("Successfully created new user: " + id.Username + ". Please sign in.")
}

// Logout signs the current user out. Attempting it while signed out gets
// a status message rather than an error.
func (f *Flow) Logout(ctx context.Context) {
	username := f.session.Current().Username
	if err := f.api.Logout(ctx, username); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			f.session.SetStatus("You need to be logged in to logout.")
		} else {
			f.log.Error().Err(err).Msg("logout failed")
		}
		return
	}

	f.session.Clear()
	f.session.SetStatus("Not Logged In")
}
