package repositories

import (
	"context"

	"marketplace/internal/models"
)

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	// AddOrIncrement upserts the cart line for (userID, productID) as a
	// single atomic store operation: if a line exists its quantity grows by
	// quantity, capped at models.MaxCartQuantity; otherwise a new line is
	// inserted. Two concurrent calls for the same pair must never produce
	// two lines or lose an increment.
	AddOrIncrement(ctx context.Context, userID, productID string, quantity int) (*models.CartItem, error)
	GetByUser(ctx context.Context, userID string) ([]models.CartItem, error)
}
