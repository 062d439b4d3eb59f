package handler

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"go-pos-backoffice/internal/model"
	"go-pos-backoffice/internal/repository"
	"go-pos-backoffice/pkg/format"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type StockMovementHandler struct {
	movementRepo repository.StockMovementRepository
}

func NewStockMovementHandler(movementRepo repository.StockMovementRepository) *StockMovementHandler {
	return &StockMovementHandler{movementRepo: movementRepo}
}

func (h *StockMovementHandler) parseFilters(c *fiber.Ctx) (*uuid.UUID, *time.Time, *time.Time, error) {
	var productID *uuid.UUID
	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, nil, nil, err
		}
		productID = &id
	}

	// Bounds are day boundaries in the business timezone, like every other
	// date filter in the API
	var startDate, endDate *time.Time
	if raw := c.Query("start_date"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, format.Jakarta)
		if err != nil {
			return nil, nil, nil, err
		}
		startDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, format.Jakarta)
		if err != nil {
			return nil, nil, nil, err
		}
		endDate = &t
	}

	return productID, startDate, endDate, nil
}

// GetMovements lists the stock audit log, newest first. With ?format=csv
// it returns the full filtered set as a CSV download instead.
// GET /api/v1/stock-movements?product_id=&start_date=&end_date=&page=&page_size=&format=
func (h *StockMovementHandler) GetMovements(c *fiber.Ctx) error {
	productID, startDate, endDate, err := h.parseFilters(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid filter: " + err.Error()})
	}

	if c.Query("format") == "csv" {
		movements, err := h.movementRepo.FindAllFiltered(productID, startDate, endDate)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
		}
		return h.sendCSV(c, movements)
	}

	page, pageSize := parsePagination(c)
	movements, total, err := h.movementRepo.FindFiltered(productID, startDate, endDate, page, pageSize)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(paginated(movements, total, page, pageSize))
}

func (h *StockMovementHandler) sendCSV(c *fiber.Ctx, movements []model.StockMovement) error {
	var buf bytes.Buffer
	buf.WriteString("Date,Product,Type,Qty,Reference,Note,Balance After\n")

	for _, m := range movements {
		productName := ""
		if m.Product != nil {
			productName = m.Product.Name
		}
		row := []string{
			csvQuote(format.DateTime(m.CreatedAt)),
			csvQuote(productName),
			string(m.MovementType),
			strconv.Itoa(m.Qty),
			string(m.RefType),
			csvQuote(m.Note),
			strconv.Itoa(m.BalanceAfter),
		}
		buf.WriteString(strings.Join(row, ","))
		buf.WriteByte('\n')
	}

	filename := "stock-movements-" + time.Now().Format("20060102-150405") + ".csv"
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// csvQuote wraps a string field in double quotes, doubling embedded quotes
func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
