package handlers

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"marketplace/internal/repositories"
)

// MetaHandler serves the root banner, the schema listing and the store
// diagnostics endpoint.
type MetaHandler struct {
	// db may be nil when the store was unreachable at startup; the
	// diagnostics endpoint then reports a degraded status instead of
	// failing.
	db *mongo.Database
}

// NewMetaHandler creates a new MetaHandler.
func NewMetaHandler(db *mongo.Database) *MetaHandler {
	return &MetaHandler{db: db}
}

// RegisterRoutes registers the meta routes with the Fiber app.
func (h *MetaHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleRoot)
	router.Get("/schema", h.HandleSchema)
	router.Get("/test", h.HandleDiagnostics)
}

// HandleRoot reports that the API is up.
func (h *MetaHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Marketplace API ready"})
}

// HandleSchema lists the storage collection names.
func (h *MetaHandler) HandleSchema(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"schemas": repositories.CollectionNames()})
}

// HandleDiagnostics reports store reachability and configuration presence.
// Secret values never appear; only whether they are set.
func (h *MetaHandler) HandleDiagnostics(c *fiber.Ctx) error {
	response := fiber.Map{
		"backend":           "running",
		"database":          "not available",
		"database_url":      envPresence("DATABASE_URL"),
		"database_name":     envPresence("DATABASE_NAME"),
		"connection_status": "not connected",
		"collections":       []string{},
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Client().Ping(ctx, readpref.Primary()); err != nil {
			response["database"] = "error: " + err.Error()
		} else {
			response["database"] = "connected"
			response["connection_status"] = "connected"
			if names, err := h.db.ListCollectionNames(ctx, bson.M{}); err == nil {
				if len(names) > 10 {
					names = names[:10]
				}
				response["collections"] = names
			}
		}
	}

	return c.JSON(response)
}

func envPresence(key string) string {
	if os.Getenv(key) != "" {
		return "set"
	}
	return "not set"
}
