package handler

import (
	"errors"

	"go-pos-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetRangeSummary returns sales, purchases, expenses, COGS, and profit
// totals for a date range
// GET /api/v1/reports/range?start_date=&end_date=
func (h *ReportHandler) GetRangeSummary(c *fiber.Ctx) error {
	summary, err := h.service.GetRangeSummary(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateFormat) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(summary)
}

// GET /api/v1/reports/customers-by-channel
func (h *ReportHandler) GetCustomersByChannel(c *fiber.Ctx) error {
	counts, err := h.service.GetCustomersByChannel()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(counts)
}

// GET /api/v1/dashboard/stats
func (h *ReportHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(stats)
}

// GET /api/v1/dashboard/top-products?limit=
func (h *ReportHandler) GetTopProducts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 5)

	top, err := h.service.GetTopProducts(limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(top)
}

// GetStockMovementChart returns daily inbound/outbound totals
// GET /api/v1/dashboard/stock-movement?days=
func (h *ReportHandler) GetStockMovementChart(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days < 1 {
		days = 7
	}
	if days > 90 {
		days = 90
	}

	points, err := h.service.GetStockMovementChart(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(points)
}

// GetReferenceData returns the cached product/customer/supplier lists
// used to populate form dropdowns
// GET /api/v1/reference-data
func (h *ReportHandler) GetReferenceData(c *fiber.Ctx) error {
	data, err := h.service.GetReferenceData()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(data)
}
