// Package service contains the application's business logic.
package service

import (
	"context"

	"devhub/internal/auth"
	"devhub/internal/gravatar"
	"devhub/internal/models"
	"devhub/internal/repository"
	"devhub/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AuthService implements registration, login, and identity resolution.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

// RegisterInput is the input for creating a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput is the input for authenticating an existing account.
type LoginInput struct {
	Email    string
	Password string
}

// NewAuthService returns an AuthService using the given user store and token issuer.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Register validates the input, creates the user with a hashed password and a
// Gravatar-derived avatar, and returns a bearer token for the new identity.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	msgs := validation.CollectErrors(
		func() error { return validation.ValidateName(in.Name) },
		func() error { return validation.ValidateEmail(in.Email) },
		func() error { return validation.ValidatePassword(in.Password) },
	)
	if len(msgs) > 0 {
		return "", models.NewValidationErrors(msgs...)
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", models.NewValidationError("email already exist")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
		Avatar:   gravatar.URL(in.Email),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}

// Login verifies the credentials and returns a bearer token. Unknown email
// and wrong password are deliberately indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", models.NewValidationError("Invalid Credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return "", models.NewValidationError("Invalid Credentials")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}

// CurrentUser resolves the user for an authenticated identity.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
