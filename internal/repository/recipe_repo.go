package repository

import (
	"go-pos-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecipeRepository interface {
	FindByProduct(productID uuid.UUID) ([]model.Recipe, error)
	FindAll() ([]model.Recipe, error)
	ReplaceForProduct(productID uuid.UUID, rows []model.Recipe) error
	DeleteForProduct(productID uuid.UUID) error
}

type recipeRepo struct {
	db *gorm.DB
}

func NewRecipeRepo(db *gorm.DB) RecipeRepository {
	return &recipeRepo{db}
}

func (r *recipeRepo) FindByProduct(productID uuid.UUID) ([]model.Recipe, error) {
	var rows []model.Recipe
	err := r.db.
		Preload("Component").
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *recipeRepo) FindAll() ([]model.Recipe, error) {
	var rows []model.Recipe
	err := r.db.Preload("Product").Preload("Component").Find(&rows).Error
	return rows, err
}

// ReplaceForProduct swaps a product's full recipe in one transaction.
// The hard delete keeps replaced rows from lingering as soft-deleted
// duplicates under the (product_id, component_id) pair.
func (r *recipeRepo) ReplaceForProduct(productID uuid.UUID, rows []model.Recipe) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&model.Recipe{}, "product_id = ?", productID).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func (r *recipeRepo) DeleteForProduct(productID uuid.UUID) error {
	return r.db.Unscoped().Delete(&model.Recipe{}, "product_id = ?", productID).Error
}
