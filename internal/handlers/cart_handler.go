package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"marketplace/internal/models"
	"marketplace/internal/services"
)

// CartHandler handles HTTP requests for shopping carts.
type CartHandler struct {
	cartService *services.CartService
	validate    *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/cart/add", h.HandleAddToCart)
	router.Get("/cart/:user_id", h.HandleGetCart)
}

// HandleAddToCart upserts a cart line: an existing (user, product) pair
// accumulates quantity up to the cap instead of creating a duplicate.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req models.AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "Validation failed", err)
	}

	item, err := h.cartService.AddItem(c.Context(), req)
	if err != nil {
		log.Printf("Error adding to cart: %v", err)
		return storeFailure(c, err)
	}
	return c.JSON(item.Out())
}

// HandleGetCart returns all cart lines for a user.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	items, err := h.cartService.GetCart(c.Context(), c.Params("user_id"))
	if err != nil {
		log.Printf("Error fetching cart: %v", err)
		return storeFailure(c, err)
	}

	out := make([]models.CartItemOut, 0, len(items))
	for i := range items {
		out = append(out, items[i].Out())
	}
	return c.JSON(out)
}
