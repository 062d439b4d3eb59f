package handler

import (
	"errors"

	"go-pos-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PurchaseHandler struct {
	service service.PurchaseService
}

func NewPurchaseHandler(s service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: s}
}

// CreatePurchase records a direct purchase, adding stock and debiting the account
// POST /api/v1/purchases
func (h *PurchaseHandler) CreatePurchase(c *fiber.Ctx) error {
	var req service.CreatePurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	purchase, err := h.service.CreatePurchase(&req, getUserID(c), getUserName(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Purchase recorded", "data": purchase})
}

// GET /api/v1/purchases?start_date=&end_date=&page=&page_size=
func (h *PurchaseHandler) GetPurchases(c *fiber.Ctx) error {
	page, pageSize := parsePagination(c)

	purchases, total, err := h.service.GetPurchases(c.Query("start_date"), c.Query("end_date"), page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateFormat) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(paginated(purchases, total, page, pageSize))
}

// GET /api/v1/purchases/:id
func (h *PurchaseHandler) GetPurchase(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid purchase ID"})
	}

	purchase, err := h.service.GetPurchase(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Purchase not found"})
	}
	return c.JSON(purchase)
}

// DELETE /api/v1/purchases/:id
func (h *PurchaseHandler) DeletePurchase(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid purchase ID"})
	}

	if err := h.service.DeletePurchase(id, getUserID(c)); err != nil {
		if errors.Is(err, service.ErrPurchaseNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, service.ErrInsufficientStock) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Purchase deleted"})
}

// CreatePlan opens a draft purchase plan, no stock or account effects yet
// POST /api/v1/purchase-plans
func (h *PurchaseHandler) CreatePlan(c *fiber.Ctx) error {
	var req service.CreatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	plan, err := h.service.CreatePlan(&req, getUserID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Purchase plan created", "data": plan})
}

// GET /api/v1/purchase-plans?page=&page_size=
func (h *PurchaseHandler) GetPlans(c *fiber.Ctx) error {
	page, pageSize := parsePagination(c)

	plans, total, err := h.service.GetPlans(page, pageSize)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(paginated(plans, total, page, pageSize))
}

// GET /api/v1/purchase-plans/:id
func (h *PurchaseHandler) GetPlan(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid plan ID"})
	}

	plan, err := h.service.GetPlan(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Purchase plan not found"})
	}
	return c.JSON(plan)
}

// ReceivePlan books a partial or full delivery against a plan
// POST /api/v1/purchase-plans/:id/receive
func (h *PurchaseHandler) ReceivePlan(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid plan ID"})
	}

	var req service.ReceivePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	plan, err := h.service.ReceivePlan(id, &req, getUserID(c), getUserName(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrOverReceive), errors.Is(err, service.ErrPlanCompleted):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"message": "Delivery received", "data": plan})
}

// GET /api/v1/purchase-plans/:id/receipts
func (h *PurchaseHandler) GetPlanReceipts(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid plan ID"})
	}

	receipts, err := h.service.GetPlanReceipts(id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(receipts)
}
