package services_test

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/internal/services"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishEvent(routingKey string, payload map[string]interface{}) error {
	args := m.Called(routingKey, payload)
	return args.Error(0)
}

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func notFoundErr(what string) error {
	return fmt.Errorf("%s: %w", what, repositories.ErrNotFound)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, nil)

	req := models.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password123",
	}

	// Successful registration
	mockRepo.On("GetByEmail", mock.Anything, req.Email).Return(nil, notFoundErr("user")).Once()
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		user := args.Get(1).(*models.User)
		user.ID = "user-123"
	}).Return(nil).Once()

	user, err := authService.Register(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", user.ID)
	assert.Equal(t, req.Email, user.Email)
	assert.True(t, user.IsActive)
	// The plaintext never lands in the stored document
	assert.NotEqual(t, req.Password, user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)))
	mockRepo.AssertExpectations(t)

	// Email already registered (pre-check)
	mockRepo.On("GetByEmail", mock.Anything, req.Email).Return(&models.User{ID: "existing"}, nil).Once()
	_, err = authService.Register(context.Background(), req)
	assert.ErrorIs(t, err, services.ErrEmailRegistered)
	mockRepo.AssertExpectations(t)

	// Lost the race: the pre-check sees nothing but the unique index
	// rejects the insert. Still surfaces as AlreadyExists.
	mockRepo.On("GetByEmail", mock.Anything, req.Email).Return(nil, notFoundErr("user")).Once()
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Return(fmt.Errorf("insert: %w", repositories.ErrDuplicateKey)).Once()
	_, err = authService.Register(context.Background(), req)
	assert.ErrorIs(t, err, services.ErrEmailRegistered)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterPublishesEvent(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockEvents := new(MockEventPublisher)
	authService := services.NewAuthService(mockRepo, mockEvents)

	req := models.RegisterRequest{Name: "Test User", Email: "events@example.com", Password: "password123"}

	mockRepo.On("GetByEmail", mock.Anything, req.Email).Return(nil, notFoundErr("user")).Once()
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil).Once()
	mockEvents.On("PublishEvent", "user.registered", mock.Anything).Return(nil).Once()

	_, err := authService.Register(context.Background(), req)
	assert.NoError(t, err)
	mockEvents.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, nil)

	hash, err := services.HashPassword("password123")
	assert.NoError(t, err)
	user := &models.User{
		ID:           "user-123",
		Name:         "Test User",
		Email:        "test@example.com",
		PasswordHash: hash,
		IsActive:     true,
	}

	// Successful login: the token is the user's identifier
	mockRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil).Once()
	resp, err := authService.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "password123"})
	assert.NoError(t, err)
	assert.Equal(t, user.ID, resp.Token)
	assert.Equal(t, models.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}, resp.User)
	mockRepo.AssertExpectations(t)

	// Wrong password
	mockRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil).Once()
	_, wrongPassErr := authService.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "wrongpassword"})
	assert.ErrorIs(t, wrongPassErr, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Unknown email yields the same error, so callers cannot tell the
	// two failure causes apart
	mockRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, notFoundErr("user")).Once()
	_, unknownErr := authService.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, unknownErr, services.ErrInvalidCredentials)
	assert.Equal(t, wrongPassErr, unknownErr)
	mockRepo.AssertExpectations(t)
}
