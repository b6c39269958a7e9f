package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"marketplace/internal/models"
	"marketplace/internal/services"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	catalogService *services.CatalogService
	validate       *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(catalogService *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/products", h.HandleCreateProduct)
	router.Get("/products", h.HandleListProducts)
	router.Get("/flash", h.HandleFlashSales)
}

// HandleCreateProduct creates a product. The optional token query parameter
// is taken directly as the seller id; no identity is verified.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "Validation failed", err)
	}

	product, err := h.catalogService.CreateProduct(c.Context(), req, c.Query("token"))
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return storeFailure(c, err)
	}
	return c.JSON(product)
}

// HandleListProducts lists products, optionally filtered by a title query
// and a flash-only flag. No pagination: the full matching set comes back.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.catalogService.ListProducts(c.Context(), c.Query("q"), c.QueryBool("flash_only"))
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return storeFailure(c, err)
	}
	return c.JSON(products)
}

// HandleFlashSales lists products with an unexpired flash sale, ordered by
// ascending expiry.
func (h *ProductHandler) HandleFlashSales(c *fiber.Ctx) error {
	products, err := h.catalogService.FlashSales(c.Context())
	if err != nil {
		log.Printf("Error listing flash sales: %v", err)
		return storeFailure(c, err)
	}
	return c.JSON(products)
}
