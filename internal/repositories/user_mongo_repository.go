package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"marketplace/internal/models"
)

// userDoc is the stored shape of a user. The ObjectID stays internal to the
// store layer; callers only ever see its hex rendering.
type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	AvatarURL    *string            `bson:"avatar_url"`
	IsActive     bool               `bson:"is_active"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d *userDoc) toModel() *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		AvatarURL:    d.AvatarURL,
		IsActive:     d.IsActive,
	}
}

// MongoUserRepository is a MongoDB implementation of UserRepository.
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository creates a new instance of MongoUserRepository.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		coll: db.Collection(CollectionFor("User")),
	}
}

// Create inserts a new user and sets the store-assigned ID on the model.
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	doc := userDoc{
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		AvatarURL:    user.AvatarURL,
		IsActive:     user.IsActive,
		CreatedAt:    time.Now().UTC(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("user with email %s already exists: %w", user.Email, ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

// GetByEmail retrieves a user by their exact email.
func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc userDoc
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return doc.toModel(), nil
}

// GetByID retrieves a user by their ID.
func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
	}
	var doc userDoc
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return doc.toModel(), nil
}
