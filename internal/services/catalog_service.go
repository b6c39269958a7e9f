package services

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/models"
	"marketplace/internal/repositories"
)

// CatalogService handles business logic related to the product catalog.
type CatalogService struct {
	productRepo repositories.ProductRepository
	events      EventPublisher
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(productRepo repositories.ProductRepository, events EventPublisher) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		events:      events,
	}
}

// CreateProduct inserts a product and re-fetches it by the assigned ID, so
// the response reflects exactly what the store holds. sellerID may be empty;
// it is the caller-supplied token taken at face value, not an authenticated
// identity.
func (s *CatalogService) CreateProduct(ctx context.Context, req models.CreateProductRequest, sellerID string) (*models.Product, error) {
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}
	images := req.Images
	if images == nil {
		images = []string{}
	}

	product := &models.Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Images:      images,
		FlashSale:   req.FlashSale,
		InStock:     inStock,
	}
	if sellerID != "" {
		product.SellerID = &sellerID
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	created, err := s.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created product %s: %w", product.ID, err)
	}

	publishEvent(s.events, "product.created", map[string]interface{}{
		"product_id": created.ID,
		"title":      created.Title,
		"price":      created.Price,
	})
	return created, nil
}

// ListProducts retrieves products matching an optional title query and an
// optional flash-only filter.
func (s *CatalogService) ListProducts(ctx context.Context, query string, flashOnly bool) ([]models.Product, error) {
	return s.productRepo.Search(ctx, query, flashOnly)
}

// FlashSales retrieves products with an unexpired flash sale, soonest-ending
// first.
func (s *CatalogService) FlashSales(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.ActiveFlashSales(ctx, time.Now().UTC())
}
