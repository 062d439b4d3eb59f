package repository

import (
	"time"

	"go-pos-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	FindAll(startDate, endDate *time.Time, page, pageSize int) ([]model.Sale, int64, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindForLedger() ([]model.Sale, error)
	FindRecent(limit int) ([]model.Sale, error)
	TotalBetween(startDate, endDate time.Time) (int64, error)
	COGSBetween(startDate, endDate time.Time) (int64, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) FindAll(startDate, endDate *time.Time, page, pageSize int) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	query := r.db.Model(&model.Sale{})
	if startDate != nil {
		query = query.Where("order_date >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("order_date < ?", endDate.AddDate(0, 0, 1))
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Items").Preload("Items.Product").
		Preload("Customer").Preload("SourceAccount").
		Order("order_date DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.
		Preload("Items").Preload("Items.Product").
		Preload("Customer").Preload("SourceAccount").
		First(&sale, "id = ?", id).Error
	return &sale, err
}

// FindForLedger loads every sale with just the account relation; items are
// not needed for reconciliation
func (r *saleRepo) FindForLedger() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("SourceAccount").Order("order_date ASC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindRecent(limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.
		Preload("Items").Preload("Items.Product").
		Order("order_date DESC").
		Limit(limit).
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) TotalBetween(startDate, endDate time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&model.Sale{}).
		Where("order_date >= ? AND order_date < ?", startDate, endDate.AddDate(0, 0, 1)).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}

// COGSBetween sums qty * snapshotted unit cost over sale items in range
func (r *saleRepo) COGSBetween(startDate, endDate time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&model.SaleItem{}).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.deleted_at IS NULL AND sales.order_date >= ? AND sales.order_date < ?",
			startDate, endDate.AddDate(0, 0, 1)).
		Select("COALESCE(SUM(sale_items.qty * sale_items.unit_cost), 0)").
		Scan(&total).Error
	return total, err
}
