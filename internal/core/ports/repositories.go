package ports

import (
	"context"

	"github.com/discgolf/storefront/internal/core/domain"
)

// UserRepository defines persistence for storefront accounts.
type UserRepository interface {
	// Create persists the user with a freshly assigned id. Returns
	// domain.ErrUserExists when the username is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int) error
}

// DiscRepository defines persistence for the disc catalog.
type DiscRepository interface {
	Create(ctx context.Context, disc *domain.Disc) (*domain.Disc, error)
	Get(ctx context.Context, id int) (*domain.Disc, error)
	List(ctx context.Context) ([]domain.Disc, error)
	Update(ctx context.Context, disc *domain.Disc) (*domain.Disc, error)
	Delete(ctx context.Context, id int) error
}

// CartRepository defines persistence for shopping carts. A user owns at
// most one cart, keyed by username.
type CartRepository interface {
	// Create persists an empty cart for username. Returns
	// domain.ErrCartExists when the user already has one.
	Create(ctx context.Context, username string) (*domain.Cart, error)
	Get(ctx context.Context, id int) (*domain.Cart, error)
	FindByUsername(ctx context.Context, username string) (*domain.Cart, error)
	List(ctx context.Context) ([]domain.Cart, error)
	Update(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
	Delete(ctx context.Context, id int) error
}

// LessonRepository defines persistence for coaching lessons.
type LessonRepository interface {
	Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error)
	Get(ctx context.Context, id int) (*domain.Lesson, error)
	List(ctx context.Context) ([]domain.Lesson, error)
	Update(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error)
	Delete(ctx context.Context, id int) error
}
