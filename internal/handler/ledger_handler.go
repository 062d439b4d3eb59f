package handler

import (
	"bytes"
	"errors"
	"time"

	"go-pos-backoffice/internal/ledger"
	"go-pos-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
)

type LedgerHandler struct {
	service service.LedgerService
}

func NewLedgerHandler(s service.LedgerService) *LedgerHandler {
	return &LedgerHandler{service: s}
}

// GetLedger returns one page of the reconciled cash ledger
// GET /api/v1/cash-ledger?start_date=&end_date=&page=&page_size=
func (h *LedgerHandler) GetLedger(c *fiber.Ctx) error {
	page, pageSize := parsePagination(c)

	result, err := h.service.GetLedger(c.Query("start_date"), c.Query("end_date"), page, pageSize)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidDate) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(result)
}

// ExportCSV streams the filtered ledger as a CSV download
// GET /api/v1/cash-ledger/export?start_date=&end_date=
func (h *LedgerHandler) ExportCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.service.ExportCSV(&buf, c.Query("start_date"), c.Query("end_date")); err != nil {
		if errors.Is(err, ledger.ErrInvalidDate) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	filename := "cash-ledger-" + time.Now().Format("20060102-150405") + ".csv"
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
