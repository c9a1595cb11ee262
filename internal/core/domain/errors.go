package domain

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotLoggedIn        = errors.New("user is not logged in")

	ErrDiscNotFound = errors.New("disc not found")
	ErrDiscExists   = errors.New("disc already exists")

	ErrCartNotFound  = errors.New("cart not found")
	ErrCartExists    = errors.New("cart already exists")
	ErrNotInCart     = errors.New("disc is not in the cart")
	ErrCartEmpty     = errors.New("cart is empty")

	ErrLessonNotFound = errors.New("lesson not found")
	ErrLessonTaken    = errors.New("lesson already has a subscriber")

	// ErrNothingPurchasable is returned by a purchase when none of the
	// requested discs still exist in the catalog.
	ErrNothingPurchasable = errors.New("no discs could be purchased")
)

// containsFold is a case-insensitive substring check shared by catalog
// and lesson matching.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
