package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"marketplace/internal/models"
	"marketplace/internal/services"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "Validation failed", err)
	}

	user, err := h.authService.Register(c.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrEmailRegistered) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Email already registered",
			})
		}
		log.Printf("Error registering user: %v", err)
		return storeFailure(c, err)
	}

	return c.JSON(user.Summary())
}

// HandleLogin handles user login. Unknown email and wrong password produce
// byte-identical responses.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "Validation failed", err)
	}

	resp, err := h.authService.Login(c.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid credentials",
			})
		}
		log.Printf("Error during login: %v", err)
		return storeFailure(c, err)
	}

	return c.JSON(resp)
}
