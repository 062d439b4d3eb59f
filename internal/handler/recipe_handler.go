package handler

import (
	"errors"

	"go-pos-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RecipeHandler struct {
	service service.RecipeService
}

func NewRecipeHandler(s service.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: s}
}

// GetRecipe returns the component rows and computed HPP for a product
// GET /api/v1/recipes/:productId
func (h *RecipeHandler) GetRecipe(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	view, err := h.service.GetRecipe(productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(view)
}

// SetRecipe replaces the full component list for a product
// POST /api/v1/recipes
func (h *RecipeHandler) SetRecipe(c *fiber.Ctx) error {
	var req service.SetRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	view, err := h.service.SetRecipe(&req, getUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Recipe saved", "data": view})
}

// Build assembles finished goods from raw components
// POST /api/v1/recipes/build
func (h *RecipeHandler) Build(c *fiber.Ctx) error {
	var req service.BuildRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.Build(&req, getUserID(c), getUserName(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrInsufficientStock):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"message": "Build completed", "data": result})
}
