package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"marketplace/internal/models"
	"marketplace/internal/repositories"
)

func seedCatalog(t *testing.T, repo *repositories.MockProductRepository, now time.Time) {
	t.Helper()
	ctx := context.Background()

	products := []models.Product{
		{Title: "Smartphone X", Price: 499.99, Category: "electronics"},
		{Title: "Laptop", Price: 1200, Category: "electronics"},
		{Title: "phone case", Price: 9.99, Category: "accessories",
			FlashSale: &models.FlashSale{DiscountPercent: 20, EndsAt: now.Add(2 * time.Hour)}},
		{Title: "Headphones", Price: 59, Category: "accessories",
			FlashSale: &models.FlashSale{DiscountPercent: 50, EndsAt: now.Add(30 * time.Minute)}},
		{Title: "Old Deal", Price: 5, Category: "misc",
			FlashSale: &models.FlashSale{DiscountPercent: 10, EndsAt: now.Add(-time.Hour)}},
	}
	for i := range products {
		assert.NoError(t, repo.Create(ctx, &products[i]))
	}
}

func TestMockProductRepository_SearchByTitleSubstring(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	now := time.Now().UTC()
	seedCatalog(t, repo, now)

	// Case-insensitive substring: matches "Smartphone X", "phone case" and
	// "Headphones", never "Laptop"
	matches, err := repo.Search(context.Background(), "phone", false)
	assert.NoError(t, err)
	titles := make([]string, 0, len(matches))
	for _, p := range matches {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"Smartphone X", "phone case", "Headphones"}, titles)
}

func TestMockProductRepository_SearchFlashOnly(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	now := time.Now().UTC()
	seedCatalog(t, repo, now)

	// flash_only keeps any product carrying a flash sale, expired or not
	matches, err := repo.Search(context.Background(), "", true)
	assert.NoError(t, err)
	assert.Len(t, matches, 3)
	for _, p := range matches {
		assert.NotNil(t, p.FlashSale)
	}
}

func TestMockProductRepository_ActiveFlashSalesOrderingAndExpiry(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	now := time.Now().UTC()
	seedCatalog(t, repo, now)

	matches, err := repo.ActiveFlashSales(context.Background(), now)
	assert.NoError(t, err)
	// The expired deal is excluded; the rest come soonest-ending first
	assert.Len(t, matches, 2)
	assert.Equal(t, "Headphones", matches[0].Title)
	assert.Equal(t, "phone case", matches[1].Title)
}

func TestMockProductRepository_CreateAndGetRoundTrip(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	ctx := context.Background()

	desc := "latest model"
	product := models.Product{
		Title:       "Smartphone X",
		Description: &desc,
		Price:       499.99,
		Category:    "electronics",
		Images:      []string{"https://example.com/a.png"},
		InStock:     true,
	}
	assert.NoError(t, repo.Create(ctx, &product))
	assert.NotEmpty(t, product.ID)

	got, err := repo.GetByID(ctx, product.ID)
	assert.NoError(t, err)
	assert.Equal(t, product, *got)

	_, err = repo.GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}

func TestMockUserRepository_EmailUniqueness(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	ctx := context.Background()

	first := models.User{Name: "A", Email: "a@example.com", PasswordHash: "x", IsActive: true}
	assert.NoError(t, repo.Create(ctx, &first))
	assert.NotEmpty(t, first.ID)

	dup := models.User{Name: "B", Email: "a@example.com", PasswordHash: "y"}
	err := repo.Create(ctx, &dup)
	assert.True(t, errors.Is(err, repositories.ErrDuplicateKey))

	got, err := repo.GetByEmail(ctx, "a@example.com")
	assert.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}
