package services

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/models"
	"marketplace/internal/repositories"
)

var (
	// ErrEmailRegistered is returned when registering an email that already
	// has an account.
	ErrEmailRegistered = errors.New("email already registered")

	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password, so a caller cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService handles registration and login.
type AuthService struct {
	userRepo repositories.UserRepository
	events   EventPublisher
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, events EventPublisher) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		events:   events,
	}
}

// Register creates a new active user with a hashed password. The email
// pre-check gives the common duplicate a friendly failure; the store's
// unique index is what actually closes the concurrent-register race, and a
// duplicate-key insert maps to the same ErrEmailRegistered.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if existing, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrEmailRegistered
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailRegistered
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	publishEvent(s.events, "user.registered", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return user, nil
}

// Login authenticates by email and password. The returned token is the
// user's identifier, acting as a trivial unsigned session token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !CheckPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return &models.LoginResponse{
		Token: user.ID,
		User:  user.Summary(),
	}, nil
}
