package services

import (
	"context"
	"fmt"

	"marketplace/internal/models"
	"marketplace/internal/repositories"
)

// CartService handles business logic related to shopping carts.
type CartService struct {
	cartRepo repositories.CartRepository
	events   EventPublisher
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, events EventPublisher) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		events:   events,
	}
}

// AddItem adds quantity of a product to the user's cart. The repository
// performs the capped add-or-increment atomically, so this never reads then
// writes in separate round trips.
func (s *CartService) AddItem(ctx context.Context, req models.AddToCartRequest) (*models.CartItem, error) {
	item, err := s.cartRepo.AddOrIncrement(ctx, req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to add product %s to cart: %w", req.ProductID, err)
	}

	publishEvent(s.events, "cart.item_added", map[string]interface{}{
		"user_id":    item.UserID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})
	return item, nil
}

// GetCart retrieves all cart lines for a user.
func (s *CartService) GetCart(ctx context.Context, userID string) ([]models.CartItem, error) {
	return s.cartRepo.GetByUser(ctx, userID)
}
