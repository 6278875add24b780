package handler

import (
	"go-inventory-api/internal/model"
	"go-inventory-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func (h *InventoryHandler) CreateInventoryItem(c *fiber.Ctx) error {
	var item model.InventoryItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	created, err := h.service.Create(&item)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(created)
}

func (h *InventoryHandler) GetInventoryItems(c *fiber.Ctx) error {
	skip, limit := pagination(c)
	items, err := h.service.GetAll(skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

func (h *InventoryHandler) GetInventoryItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid inventory item ID"})
	}

	item, err := h.service.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

func (h *InventoryHandler) UpdateInventoryItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid inventory item ID"})
	}

	var update model.InventoryUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.Update(id, &update)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

func (h *InventoryHandler) DeleteInventoryItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid inventory item ID"})
	}

	if err := h.service.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Inventory item deleted successfully"})
}
