package handler

import (
	"go-inventory-api/internal/model"
	"go-inventory-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req model.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.service.Register(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req model.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	token, err := h.service.Token(req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(token)
}

// Me returns the authenticated user; user_id is set by the auth middleware.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uuid.UUID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	}

	user, err := h.service.GetUser(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
