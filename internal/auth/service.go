package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mycontacts/mycontacts/internal/apperr"
	"github.com/mycontacts/mycontacts/internal/user"
	"github.com/mycontacts/mycontacts/internal/validation"
)

// Service registers users and exchanges credentials for session tokens.
type Service struct {
	users      user.Repository
	tokens     *TokenIssuer
	bcryptCost int
	validate   *validation.Validator
	now        func() time.Time
}

// NewService wires the credential store and token issuer. A zero bcryptCost
// selects bcrypt.DefaultCost.
func NewService(users user.Repository, tokens *TokenIssuer, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		validate:   validation.New(),
		now:        time.Now,
	}
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginInput carries the fields of a login request.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register stores a new user with a bcrypt hash of the password.
func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return user.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	u := user.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return user.User{}, err
	}
	return u, nil
}

// Login verifies the credentials and returns a signed session token.
func (s *Service) Login(ctx context.Context, in LoginInput) (string, error) {
	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return "", err
	}

	u, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(in.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", apperr.ErrInvalidCredentials
		}
		return "", fmt.Errorf("compare password: %w", err)
	}

	return s.tokens.Issue(Identity{UserID: u.ID, Username: u.Username})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
