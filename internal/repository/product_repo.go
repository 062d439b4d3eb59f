package repository

import (
	"go-pos-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	Search(q string, page, pageSize int) ([]model.Product, int64, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	FindLowStock() ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID, deletedBy string) error
	UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int, updatedBy string) error
	UpdateBaseCost(tx *gorm.DB, id uuid.UUID, baseCost int64, updatedBy string) error
	CountAll() (int64, error)
	CountLowStock() (int64, error)
	StockValuation() (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("name ASC").Find(&products).Error
	return products, err
}

// Search matches q case-insensitively against name and SKU, with
// offset/limit pagination. An empty q lists everything.
func (r *productRepo) Search(q string, page, pageSize int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := r.db.Model(&model.Product{})
	if q != "" {
		pattern := "%" + q + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ?", pattern, pattern)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("name ASC").Offset(offset).Limit(pageSize).Find(&products).Error
	return products, total, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	return &product, err
}

func (r *productRepo) FindLowStock() ([]model.Product, error) {
	var products []model.Product
	err := r.db.
		Where("is_active = ? AND product_type <> ? AND stock_qty <= min_stock", true, model.ProductService).
		Order("stock_qty ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID, deletedBy string) error {
	return r.db.Model(&model.Product{}).
		Where("id = ?", id).
		Update("updated_by", deletedBy).
		Delete(&model.Product{}, "id = ?", id).Error
}

// UpdateStock accepts the caller's tx so the stock write joins the
// surrounding transaction
func (r *productRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int, updatedBy string) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock_qty":  newStock,
			"updated_by": updatedBy,
		}).Error
}

func (r *productRepo) UpdateBaseCost(tx *gorm.DB, id uuid.UUID, baseCost int64, updatedBy string) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"base_cost":  baseCost,
			"updated_by": updatedBy,
		}).Error
}

func (r *productRepo) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepo) CountLowStock() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).
		Where("is_active = ? AND product_type <> ? AND stock_qty <= min_stock", true, model.ProductService).
		Count(&count).Error
	return count, err
}

func (r *productRepo) StockValuation() (int64, error) {
	var total int64
	err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(stock_qty * base_cost), 0)").
		Scan(&total).Error
	return total, err
}
