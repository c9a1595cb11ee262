package ports

import (
	"context"

	"github.com/discgolf/storefront/internal/core/domain"
)

// AuthService implements account lifecycle and the login/logout state.
type AuthService interface {
	// SignUp registers a new account. Returns domain.ErrUserExists when
	// the username is taken. Cart creation is the caller's follow-up.
	SignUp(ctx context.Context, username, password string) (*domain.User, error)
	// Login verifies credentials and marks the account logged in.
	// Returns domain.ErrUserNotFound for unknown usernames and
	// domain.ErrInvalidCredentials for a bad password.
	Login(ctx context.Context, username, password string) (*domain.User, error)
	// Logout clears the logged-in mark. Returns domain.ErrNotLoggedIn
	// when the account was not logged in.
	Logout(ctx context.Context, username string) error

	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, username string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteUser(ctx context.Context, id int) error
}

// DiscService implements catalog operations.
type DiscService interface {
	List(ctx context.Context) ([]domain.Disc, error)
	Get(ctx context.Context, id int) (*domain.Disc, error)
	// SearchByType returns discs whose type contains term (case-insensitive).
	SearchByType(ctx context.Context, term string) ([]domain.Disc, error)
	// Filter matches term against the attribute selected by mode.
	Filter(ctx context.Context, term string, mode domain.FilterMode) ([]domain.Disc, error)
	Create(ctx context.Context, disc *domain.Disc) (*domain.Disc, error)
	Update(ctx context.Context, disc *domain.Disc) (*domain.Disc, error)
	Delete(ctx context.Context, id int) error
}

// CartService implements cart maintenance and the check/purchase protocol.
type CartService interface {
	Create(ctx context.Context, username string) (*domain.Cart, error)
	Get(ctx context.Context, id int) (*domain.Cart, error)
	List(ctx context.Context) ([]domain.Cart, error)
	FindByUsername(ctx context.Context, username string) ([]domain.Cart, error)
	Update(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
	Delete(ctx context.Context, id int) error

	// Contents resolves cart lines against the catalog, reporting each
	// disc with its requested quantity rather than stock.
	Contents(ctx context.Context, username string) ([]domain.Disc, error)
	Cost(ctx context.Context, username string) (float64, error)
	Count(ctx context.Context, username string) (int, error)

	AddDisc(ctx context.Context, username string, discID int) (*domain.Cart, error)
	RemoveDisc(ctx context.Context, username string, discID int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, username string, discID, quantity, mode int) (*domain.Cart, error)

	// CheckCart is the advisory pre-purchase check: it returns the discs
	// whose requested quantity exceeds current stock, each reported with
	// the available quantity. Empty slice means no conflict.
	CheckCart(ctx context.Context, username string) ([]domain.Disc, error)
	// PurchaseCart commits the cart: each line is fulfilled up to stock,
	// inventory is decremented (sold-out discs are deleted), and the cart
	// is emptied. Returns the fulfilled lines with purchased quantities.
	PurchaseCart(ctx context.Context, username string) ([]domain.Disc, error)
	// CheckOne is CheckCart scoped to a single disc; nil means no conflict.
	CheckOne(ctx context.Context, username string, discID int) (*domain.Disc, error)
	// PurchaseOne is PurchaseCart scoped to a single disc.
	PurchaseOne(ctx context.Context, username string, discID int) (*domain.Disc, error)
}

// LessonService implements lesson browsing and single-slot booking.
type LessonService interface {
	List(ctx context.Context) ([]domain.Lesson, error)
	Get(ctx context.Context, id int) (*domain.Lesson, error)
	// OnDate returns lessons meeting on the given MM/DD/YYYY date.
	OnDate(ctx context.Context, date string) ([]domain.Lesson, error)
	ByUser(ctx context.Context, username string) ([]domain.Lesson, error)
	Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error)
	// Update replaces the lesson; setting Username claims the single
	// subscriber slot. Returns domain.ErrLessonTaken when a different
	// subscriber already holds it.
	Update(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error)
	Delete(ctx context.Context, id int) error
}
