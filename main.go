package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"

	"marketplace/internal/handlers"
	"marketplace/internal/repositories"
	"marketplace/internal/services"
	"marketplace/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8000")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "marketplace")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseURL := viper.GetString("DATABASE_URL")
	databaseName := viper.GetString("DATABASE_NAME")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Document store ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := repositories.ConnectMongo(ctx, databaseURL, databaseName)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to document store: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Client().Disconnect(ctx); err != nil {
			log.Printf("Error disconnecting from document store: %v", err)
		}
	}()

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	err = repositories.EnsureIndexes(ctx, db)
	cancel()
	if err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// --- Event broker (optional) ---
	// The broker is not required for serving requests; services skip
	// publishing when no client is configured.
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	}

	// --- Repositories ---
	userRepo := repositories.NewMongoUserRepository(db)
	productRepo := repositories.NewMongoProductRepository(db)
	cartRepo := repositories.NewMongoCartRepository(db)

	// --- Services ---
	var events services.EventPublisher
	if mqClient != nil {
		events = mqClient
	}
	authService := services.NewAuthService(userRepo, events)
	catalogService := services.NewCatalogService(productRepo, events)
	cartService := services.NewCartService(cartRepo, events)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	metaHandler := handlers.NewMetaHandler(db)

	// --- Fiber app ---
	app := fiber.New()

	app.Use(logger.New())
	// All origins with credentials, as the original frontend expects. This
	// is a known hardening gap; Fiber refuses the wildcard+credentials
	// combination, hence the reflecting origin func.
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(string) bool { return true },
		AllowCredentials: true,
	}))

	authHandler.RegisterRoutes(app)
	productHandler.RegisterRoutes(app)
	cartHandler.RegisterRoutes(app)
	metaHandler.RegisterRoutes(app)

	// --- Event consumer ---
	if mqClient != nil {
		log.Println("Starting RabbitMQ consumer for marketplace events...")
		messageHandler := func(msg amqp.Delivery) error {
			log.Printf("Received %s event (Tag: %d): %s", msg.Type, msg.DeliveryTag, string(msg.Body))
			return nil
		}
		if consumerErr := mqClient.ConsumeEvents(messageHandler); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
