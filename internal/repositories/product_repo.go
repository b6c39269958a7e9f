package repositories

import (
	"context"
	"time"

	"marketplace/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// Create inserts the product and sets its store-assigned ID.
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// Search returns products whose title contains query case-insensitively
	// (literal substring). When flashOnly is set only products carrying a
	// flash sale are returned, regardless of expiry. An empty query matches
	// everything. Results come back in store-native order.
	Search(ctx context.Context, query string, flashOnly bool) ([]models.Product, error)
	// ActiveFlashSales returns products whose flash sale ends strictly after
	// now, sorted ascending by ends_at.
	ActiveFlashSales(ctx context.Context, now time.Time) ([]models.Product, error)
}
