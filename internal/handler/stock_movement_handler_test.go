package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"go-pos-backoffice/internal/model"
	"go-pos-backoffice/internal/repository"
	"go-pos-backoffice/pkg/format"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// captureMovementRepo records the filter bounds the handler hands down
type captureMovementRepo struct {
	start, end *time.Time
}

func (f *captureMovementRepo) Create(tx *gorm.DB, m *model.StockMovement) error { return nil }

func (f *captureMovementRepo) FindFiltered(productID *uuid.UUID, startDate, endDate *time.Time, page, pageSize int) ([]model.StockMovement, int64, error) {
	f.start, f.end = startDate, endDate
	return []model.StockMovement{}, 0, nil
}

func (f *captureMovementRepo) FindAllFiltered(productID *uuid.UUID, startDate, endDate *time.Time) ([]model.StockMovement, error) {
	f.start, f.end = startDate, endDate
	return []model.StockMovement{}, nil
}

func (f *captureMovementRepo) DailyTotals(startDate, endDate time.Time) ([]repository.DailyMovement, error) {
	return nil, nil
}

func newMovementTestApp(repo repository.StockMovementRepository) *fiber.App {
	app := fiber.New()
	app.Get("/stock-movements", NewStockMovementHandler(repo).GetMovements)
	return app
}

func TestGetMovements_BoundsInBusinessTimezone(t *testing.T) {
	repo := &captureMovementRepo{}
	app := newMovementTestApp(repo)

	req := httptest.NewRequest("GET", "/stock-movements?start_date=2024-01-02&end_date=2024-01-03", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	require.NotNil(t, repo.start)
	require.NotNil(t, repo.end)

	// Midnight in the business timezone, not midnight UTC
	wantStart := time.Date(2024, 1, 2, 0, 0, 0, 0, format.Jakarta)
	wantEnd := time.Date(2024, 1, 3, 0, 0, 0, 0, format.Jakarta)
	assert.True(t, repo.start.Equal(wantStart), "start bound %v, want %v", repo.start, wantStart)
	assert.True(t, repo.end.Equal(wantEnd), "end bound %v, want %v", repo.end, wantEnd)
}

func TestGetMovements_RejectsMalformedDate(t *testing.T) {
	app := newMovementTestApp(&captureMovementRepo{})

	req := httptest.NewRequest("GET", "/stock-movements?start_date=02-01-2024", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
