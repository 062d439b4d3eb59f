package repository

import (
	"time"

	"go-pos-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockMovementRepository interface {
	Create(tx *gorm.DB, movement *model.StockMovement) error
	FindFiltered(productID *uuid.UUID, startDate, endDate *time.Time, page, pageSize int) ([]model.StockMovement, int64, error)
	FindAllFiltered(productID *uuid.UUID, startDate, endDate *time.Time) ([]model.StockMovement, error)
	DailyTotals(startDate, endDate time.Time) ([]DailyMovement, error)
}

// DailyMovement is one point of the inbound/outbound chart
type DailyMovement struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

type stockMovementRepo struct {
	db *gorm.DB
}

func NewStockMovementRepo(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepo{db}
}

// Create writes the movement inside the caller's tx, alongside the stock
// mutation it documents
func (r *stockMovementRepo) Create(tx *gorm.DB, movement *model.StockMovement) error {
	return tx.Create(movement).Error
}

func (r *stockMovementRepo) filtered(productID *uuid.UUID, startDate, endDate *time.Time) *gorm.DB {
	query := r.db.Model(&model.StockMovement{})
	if productID != nil {
		query = query.Where("product_id = ?", *productID)
	}
	if startDate != nil {
		query = query.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("created_at < ?", endDate.AddDate(0, 0, 1))
	}
	return query
}

func (r *stockMovementRepo) FindFiltered(productID *uuid.UUID, startDate, endDate *time.Time, page, pageSize int) ([]model.StockMovement, int64, error) {
	var movements []model.StockMovement
	var total int64

	query := r.filtered(productID, startDate, endDate)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.
		Preload("Product").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&movements).Error
	return movements, total, err
}

// FindAllFiltered skips pagination, used by the CSV export
func (r *stockMovementRepo) FindAllFiltered(productID *uuid.UUID, startDate, endDate *time.Time) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.filtered(productID, startDate, endDate).
		Preload("Product").
		Order("created_at DESC").
		Find(&movements).Error
	return movements, err
}

func (r *stockMovementRepo) DailyTotals(startDate, endDate time.Time) ([]DailyMovement, error) {
	var results []DailyMovement

	rows, err := r.db.Model(&model.StockMovement{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN movement_type = 'IN' THEN qty ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN movement_type = 'OUT' THEN qty ELSE 0 END), 0) as outbound
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailyMovement
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}
