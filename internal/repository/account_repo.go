package repository

import (
	"go-pos-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(account *model.Account) error
	FindAll() ([]model.Account, error)
	FindActive() ([]model.Account, error)
	FindByID(id uuid.UUID) (*model.Account, error)
	Update(account *model.Account) error
	Delete(id uuid.UUID) error
	AdjustBalance(tx *gorm.DB, id uuid.UUID, delta int64, updatedBy string) error
}

type accountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) AccountRepository {
	return &accountRepo{db}
}

func (r *accountRepo) Create(account *model.Account) error {
	return r.db.Create(account).Error
}

func (r *accountRepo) FindAll() ([]model.Account, error) {
	var accounts []model.Account
	err := r.db.Order("name ASC").Find(&accounts).Error
	return accounts, err
}

func (r *accountRepo) FindActive() ([]model.Account, error) {
	var accounts []model.Account
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&accounts).Error
	return accounts, err
}

func (r *accountRepo) FindByID(id uuid.UUID) (*model.Account, error) {
	var account model.Account
	err := r.db.First(&account, "id = ?", id).Error
	return &account, err
}

func (r *accountRepo) Update(account *model.Account) error {
	return r.db.Save(account).Error
}

func (r *accountRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Account{}, "id = ?", id).Error
}

// AdjustBalance applies a signed delta atomically inside the caller's tx.
// Sales credit (+), purchases and expenses debit (-).
func (r *accountRepo) AdjustBalance(tx *gorm.DB, id uuid.UUID, delta int64, updatedBy string) error {
	return tx.Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_balance": gorm.Expr("current_balance + ?", delta),
			"updated_by":      updatedBy,
		}).Error
}
