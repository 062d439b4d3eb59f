package repository

import (
	"time"

	"go-pos-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(expense *model.Expense) error
	FindAll(startDate, endDate *time.Time, page, pageSize int) ([]model.Expense, int64, error)
	FindByID(id uuid.UUID) (*model.Expense, error)
	FindForLedger() ([]model.Expense, error)
	Update(expense *model.Expense) error
	Delete(tx *gorm.DB, id uuid.UUID) error
	TotalBetween(startDate, endDate time.Time) (int64, error)
}

type expenseRepo struct {
	db *gorm.DB
}

func NewExpenseRepo(db *gorm.DB) ExpenseRepository {
	return &expenseRepo{db}
}

func (r *expenseRepo) Create(expense *model.Expense) error {
	return r.db.Create(expense).Error
}

func (r *expenseRepo) FindAll(startDate, endDate *time.Time, page, pageSize int) ([]model.Expense, int64, error) {
	var expenses []model.Expense
	var total int64

	query := r.db.Model(&model.Expense{})
	if startDate != nil {
		query = query.Where("expense_date >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("expense_date < ?", endDate.AddDate(0, 0, 1))
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("SourceAccount").
		Order("expense_date DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&expenses).Error
	return expenses, total, err
}

func (r *expenseRepo) FindByID(id uuid.UUID) (*model.Expense, error) {
	var expense model.Expense
	err := r.db.Preload("SourceAccount").First(&expense, "id = ?", id).Error
	return &expense, err
}

func (r *expenseRepo) FindForLedger() ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.Preload("SourceAccount").Order("expense_date ASC").Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) Update(expense *model.Expense) error {
	return r.db.Save(expense).Error
}

// Delete joins the caller's tx so the balance reversal and the delete
// commit together
func (r *expenseRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Expense{}, "id = ?", id).Error
}

func (r *expenseRepo) TotalBetween(startDate, endDate time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&model.Expense{}).
		Where("expense_date >= ? AND expense_date < ?", startDate, endDate.AddDate(0, 0, 1)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
