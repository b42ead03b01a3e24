package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/perfumaria/catalog-api/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register stores a new user with a hashed password. The plaintext password
// never reaches the repository.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, emailTakenError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, name, email, string(hash))
	if err != nil {
		// The unique index can still fire between the existence check and
		// the insert, surface it the same way.
		if errors.Is(err, ErrEmailTaken) {
			return nil, emailTakenError()
		}
		return nil, err
	}
	return user, nil
}

// Authenticate validates email/password credentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// CurrentUser loads the user bound to a verified identity.
func (s *Service) CurrentUser(ctx context.Context, userID int64) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

func emailTakenError() error {
	return shared.NewValidationError(shared.FieldErrors{
		"email": "The email has already been taken.",
	})
}
