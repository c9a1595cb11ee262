package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/discgolf/storefront/internal/api/metrics"
	"github.com/discgolf/storefront/internal/core/domain"
	"github.com/discgolf/storefront/internal/core/ports"
)

// AuthService implements sign-up, login, and logout. Passwords are stored
// as bcrypt hashes even though the wire contract carries them in the URL
// path; the hash only protects the data at rest.
type AuthService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, log: log}
}

func (s *AuthService) SignUp(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	user.Admin = user.IsAdmin()

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	metrics.SignupsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", created.Username).Msg("user signed up")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("not_found").Inc()
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("unauthorized").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user.LoggedIn = true
	if _, err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", user.Username).Msg("user logged in")
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, username string) error {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !user.LoggedIn {
		return domain.ErrNotLoggedIn
	}

	user.LoggedIn = false
	if _, err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info().Str("username", username).Msg("user logged out")
	return nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *AuthService) GetUser(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

// UpdateUser replaces username and, when a new plaintext password is
// carried in PasswordHash, rehashes it. The logged-in mark is preserved.
func (s *AuthService) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.PasswordHash != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	return s.repo.Update(ctx, user)
}

func (s *AuthService) DeleteUser(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
