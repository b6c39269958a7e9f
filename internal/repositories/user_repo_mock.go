package repositories

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"marketplace/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
// It enforces the same email uniqueness the Mongo index provides.
type MockUserRepository struct {
	users   map[string]models.User
	byEmail map[string]string
	mu      sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:   make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

// Create adds a new user, assigning an ID when absent.
func (r *MockUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return fmt.Errorf("user with email %s already exists: %w", user.Email, ErrDuplicateKey)
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.users[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

// GetByEmail returns a user by their exact email.
func (r *MockUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
	}
	user := r.users[id]
	return &user, nil
}

// GetByID returns a user by their ID.
func (r *MockUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
	}
	return &user, nil
}
