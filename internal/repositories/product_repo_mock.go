package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"marketplace/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// A slice keeps insertion order so unfiltered listings match the store-native
// order of the Mongo implementation.
type MockProductRepository struct {
	products []models.Product
	index    map[string]int
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		index: make(map[string]int),
	}
}

// Create adds a new product, assigning an ID when absent.
func (r *MockProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	r.index[product.ID] = len(r.products)
	r.products = append(r.products, *product)
	return nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	product := r.products[i]
	return &product, nil
}

// Search filters by case-insensitive title substring and flash-sale presence.
func (r *MockProductRepository) Search(_ context.Context, query string, flashOnly bool) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(query)
	matches := []models.Product{}
	for _, p := range r.products {
		if query != "" && !strings.Contains(strings.ToLower(p.Title), needle) {
			continue
		}
		if flashOnly && p.FlashSale == nil {
			continue
		}
		matches = append(matches, p)
	}
	return matches, nil
}

// ActiveFlashSales returns unexpired flash-sale products, soonest-ending first.
func (r *MockProductRepository) ActiveFlashSales(_ context.Context, now time.Time) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := []models.Product{}
	for _, p := range r.products {
		if p.FlashSale != nil && p.FlashSale.EndsAt.After(now) {
			matches = append(matches, p)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].FlashSale.EndsAt.Before(matches[j].FlashSale.EndsAt)
	})
	return matches, nil
}
