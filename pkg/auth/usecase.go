package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, email, password, name string) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	CurrentUser(ctx context.Context, id int64) (User, error)
}

type AuthResult struct {
	User  User
	Token string
}

type authService struct {
	repo   UserRepository
	tokens TokenGenerator
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, tokens TokenGenerator) AuthUseCase {
	return &authService{repo: repo, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, email, password, name string) (AuthResult, error) {
	if email == "" || password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, err
	}

	// Duplicate emails are rejected by the repository itself, so two
	// concurrent registrations cannot both slip past a pre-check.
	user, err := s.repo.Create(ctx, User{
		Email:        email,
		PasswordHash: string(passwordHash),
		Name:         name,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return AuthResult{}, err
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	// Unknown email and wrong password collapse into the same error so
	// responses cannot be used to enumerate accounts.
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}

func (s *authService) CurrentUser(ctx context.Context, id int64) (User, error) {
	return s.repo.GetByID(ctx, id)
}
