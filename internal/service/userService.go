package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Noorain464/GoogleDrive/internal/domain"
	"github.com/Noorain464/GoogleDrive/internal/platform/crypto"
	"github.com/Noorain464/GoogleDrive/internal/store"

	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned on login with a wrong email or password.
// The two cases are deliberately not distinguished.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserService defines the interface for account business logic.
type UserService interface {
	Register(ctx context.Context, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

// userService is the concrete implementation of the UserService interface.
type userService struct {
	userStore store.UserStore
	tokenSvc  crypto.TokenGenerator
	passSvc   crypto.PasswordManager
}

// NewUserService creates a new instance of the user service.
func NewUserService(userStore store.UserStore, ts crypto.TokenGenerator, ps crypto.PasswordManager) UserService {
	return &userService{
		userStore: userStore,
		tokenSvc:  ts,
		passSvc:   ps,
	}
}

// Register handles the business logic for creating a new account.
func (s *userService) Register(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", validationError("email and password are required")
	}

	// Check if the user already exists.
	if _, err := s.userStore.FindByEmail(ctx, email); !errors.Is(err, store.ErrNotFound) {
		if err == nil {
			return nil, "", store.ErrConflict
		}
		return nil, "", err
	}

	hashedPassword, err := s.passSvc.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokenSvc.New(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create token: %w", err)
	}
	return user, token, nil
}

// Login handles the business logic for user authentication.
func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userStore.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := s.passSvc.Compare(user.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokenSvc.New(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create token: %w", err)
	}
	return user, token, nil
}
