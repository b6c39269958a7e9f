package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"marketplace/internal/models"
)

type cartItemDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	ProductID string             `bson:"product_id"`
	Quantity  int                `bson:"quantity"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *cartItemDoc) toModel() *models.CartItem {
	return &models.CartItem{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		ProductID: d.ProductID,
		Quantity:  d.Quantity,
	}
}

// MongoCartRepository is a MongoDB implementation of CartRepository.
type MongoCartRepository struct {
	coll *mongo.Collection
}

// NewMongoCartRepository creates a new instance of MongoCartRepository.
func NewMongoCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{
		coll: db.Collection(CollectionFor("CartItem")),
	}
}

// AddOrIncrement performs the capped add-or-increment as one server-side
// command. The update pipeline computes min(cap, existing+quantity) on the
// server, so concurrent adds for the same pair cannot race a read-then-write
// round trip; the unique (user_id, product_id) index rules out duplicate
// lines even for concurrent upsert inserts.
func (r *MongoCartRepository) AddOrIncrement(ctx context.Context, userID, productID string, quantity int) (*models.CartItem, error) {
	filter := bson.M{"user_id": userID, "product_id": productID}
	update := bson.A{
		bson.M{"$set": bson.M{
			"user_id":    userID,
			"product_id": productID,
			"quantity": bson.M{"$min": bson.A{
				models.MaxCartQuantity,
				bson.M{"$add": bson.A{
					bson.M{"$ifNull": bson.A{"$quantity", 0}},
					quantity,
				}},
			}},
			"created_at": bson.M{"$ifNull": bson.A{"$created_at", "$$NOW"}},
			"updated_at": "$$NOW",
		}},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc cartItemDoc
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		// A concurrent upsert for the same pair can lose the insert race
		// against the unique index; the retry lands on the update branch.
		if mongo.IsDuplicateKeyError(err) {
			return r.AddOrIncrement(ctx, userID, productID, quantity)
		}
		return nil, fmt.Errorf("failed to upsert cart item: %w", err)
	}
	return doc.toModel(), nil
}

// GetByUser retrieves all cart lines for a user in store-native order.
func (r *MongoCartRepository) GetByUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	items := []models.CartItem{}
	for cursor.Next(ctx) {
		var doc cartItemDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode cart item: %w", err)
		}
		items = append(items, *doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cart cursor failed: %w", err)
	}
	return items, nil
}
