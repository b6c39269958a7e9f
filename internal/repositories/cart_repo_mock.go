package repositories

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"marketplace/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository. The
// mutex makes AddOrIncrement atomic, mirroring the single-command upsert of
// the Mongo implementation.
type MockCartRepository struct {
	items map[string]*models.CartItem // keyed by userID + "\x00" + productID
	order []string
	mu    sync.Mutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		items: make(map[string]*models.CartItem),
	}
}

func cartKey(userID, productID string) string {
	return userID + "\x00" + productID
}

// AddOrIncrement upserts the cart line for (userID, productID), capping the
// accumulated quantity at models.MaxCartQuantity.
func (r *MockCartRepository) AddOrIncrement(_ context.Context, userID, productID string, quantity int) (*models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cartKey(userID, productID)
	if existing, ok := r.items[key]; ok {
		existing.Quantity = min(models.MaxCartQuantity, existing.Quantity+quantity)
		item := *existing
		return &item, nil
	}

	item := &models.CartItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  min(models.MaxCartQuantity, quantity),
	}
	r.items[key] = item
	r.order = append(r.order, key)
	out := *item
	return &out, nil
}

// GetByUser returns all cart lines for a user in insertion order.
func (r *MockCartRepository) GetByUser(_ context.Context, userID string) ([]models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := []models.CartItem{}
	for _, key := range r.order {
		if item := r.items[key]; item.UserID == userID {
			items = append(items, *item)
		}
	}
	return items, nil
}
