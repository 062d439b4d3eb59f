package repository

import (
	"time"

	"go-pos-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	FindAll(startDate, endDate *time.Time, page, pageSize int) ([]model.Purchase, int64, error)
	FindByID(id uuid.UUID) (*model.Purchase, error)
	FindForLedger() ([]model.Purchase, error)
	FindByPlan(planID uuid.UUID) ([]model.Purchase, error)
	TotalBetween(startDate, endDate time.Time) (int64, error)
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) FindAll(startDate, endDate *time.Time, page, pageSize int) ([]model.Purchase, int64, error) {
	var purchases []model.Purchase
	var total int64

	query := r.db.Model(&model.Purchase{})
	if startDate != nil {
		query = query.Where("purchase_date >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("purchase_date < ?", endDate.AddDate(0, 0, 1))
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Items").Preload("Items.Product").
		Preload("Supplier").Preload("SourceAccount").
		Order("purchase_date DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&purchases).Error
	return purchases, total, err
}

func (r *purchaseRepo) FindByID(id uuid.UUID) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.
		Preload("Items").Preload("Items.Product").
		Preload("Supplier").Preload("SourceAccount").
		First(&purchase, "id = ?", id).Error
	return &purchase, err
}

func (r *purchaseRepo) FindForLedger() ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Preload("SourceAccount").Order("purchase_date ASC").Find(&purchases).Error
	return purchases, err
}

// FindByPlan lists the receipts generated from a purchase plan
func (r *purchaseRepo) FindByPlan(planID uuid.UUID) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.
		Preload("Items").Preload("Items.Product").
		Where("plan_id = ?", planID).
		Order("purchase_date ASC").
		Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) TotalBetween(startDate, endDate time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&model.Purchase{}).
		Where("purchase_date >= ? AND purchase_date < ?", startDate, endDate.AddDate(0, 0, 1)).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}

type PurchasePlanRepository interface {
	Create(plan *model.PurchasePlan) error
	FindAll(page, pageSize int) ([]model.PurchasePlan, int64, error)
	FindByID(id uuid.UUID) (*model.PurchasePlan, error)
	Update(plan *model.PurchasePlan) error
	Delete(id uuid.UUID) error
}

type purchasePlanRepo struct {
	db *gorm.DB
}

func NewPurchasePlanRepo(db *gorm.DB) PurchasePlanRepository {
	return &purchasePlanRepo{db}
}

func (r *purchasePlanRepo) Create(plan *model.PurchasePlan) error {
	return r.db.Create(plan).Error
}

func (r *purchasePlanRepo) FindAll(page, pageSize int) ([]model.PurchasePlan, int64, error) {
	var plans []model.PurchasePlan
	var total int64

	if err := r.db.Model(&model.PurchasePlan{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.
		Preload("Items").Preload("Items.Product").Preload("Supplier").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&plans).Error
	return plans, total, err
}

func (r *purchasePlanRepo) FindByID(id uuid.UUID) (*model.PurchasePlan, error) {
	var plan model.PurchasePlan
	err := r.db.
		Preload("Items").Preload("Items.Product").Preload("Supplier").
		First(&plan, "id = ?", id).Error
	return &plan, err
}

func (r *purchasePlanRepo) Update(plan *model.PurchasePlan) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(plan).Error
}

func (r *purchasePlanRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.PurchasePlan{}, "id = ?", id).Error
}
