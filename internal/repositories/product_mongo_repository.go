package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"marketplace/internal/models"
)

type flashSaleDoc struct {
	DiscountPercent int       `bson:"discount_percent"`
	EndsAt          time.Time `bson:"ends_at"`
}

type productDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description *string            `bson:"description"`
	Price       float64            `bson:"price"`
	Category    string             `bson:"category"`
	Images      []string           `bson:"images"`
	SellerID    *string            `bson:"seller_id"`
	FlashSale   *flashSaleDoc      `bson:"flash_sale"`
	InStock     bool               `bson:"in_stock"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d *productDoc) toModel() *models.Product {
	p := &models.Product{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		Images:      d.Images,
		SellerID:    d.SellerID,
		InStock:     d.InStock,
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if d.FlashSale != nil {
		p.FlashSale = &models.FlashSale{
			DiscountPercent: d.FlashSale.DiscountPercent,
			EndsAt:          d.FlashSale.EndsAt,
		}
	}
	return p
}

// MongoProductRepository is a MongoDB implementation of ProductRepository.
type MongoProductRepository struct {
	coll *mongo.Collection
}

// NewMongoProductRepository creates a new instance of MongoProductRepository.
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{
		coll: db.Collection(CollectionFor("Product")),
	}
}

// Create inserts a new product and sets the store-assigned ID on the model.
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	doc := productDoc{
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Images:      product.Images,
		SellerID:    product.SellerID,
		InStock:     product.InStock,
		CreatedAt:   time.Now().UTC(),
	}
	if doc.Images == nil {
		doc.Images = []string{}
	}
	if product.FlashSale != nil {
		doc.FlashSale = &flashSaleDoc{
			DiscountPercent: product.FlashSale.DiscountPercent,
			EndsAt:          product.FlashSale.EndsAt.UTC(),
		}
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	product.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

// GetByID retrieves a single product by its ID.
func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	var doc productDoc
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return doc.toModel(), nil
}

// Search retrieves products matching an optional case-insensitive title
// substring and an optional flash-sale presence filter. Filtering is
// delegated entirely to the store.
func (r *MongoProductRepository) Search(ctx context.Context, query string, flashOnly bool) ([]models.Product, error) {
	filter := bson.M{}
	if query != "" {
		// QuoteMeta keeps the match a literal substring, not a user-supplied
		// regular expression.
		filter["title"] = bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}
	}
	if flashOnly {
		filter["flash_sale"] = bson.M{"$ne": nil}
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return decodeProducts(ctx, cursor)
}

// ActiveFlashSales retrieves products with a flash sale ending strictly
// after now, soonest-ending first. Both the filter and the sort run on the
// store's query engine.
func (r *MongoProductRepository) ActiveFlashSales(ctx context.Context, now time.Time) ([]models.Product, error) {
	filter := bson.M{"flash_sale.ends_at": bson.M{"$gt": now.UTC()}}
	opts := options.Find().SetSort(bson.D{{Key: "flash_sale.ends_at", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query flash sales: %w", err)
	}
	return decodeProducts(ctx, cursor)
}

func decodeProducts(ctx context.Context, cursor *mongo.Cursor) ([]models.Product, error) {
	defer cursor.Close(ctx)

	products := []models.Product{}
	for cursor.Next(ctx) {
		var doc productDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		products = append(products, *doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("product cursor failed: %w", err)
	}
	return products, nil
}
