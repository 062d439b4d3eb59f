package service

import (
	"errors"
	"fmt"

	"go-pos-backoffice/internal/cache"
	"go-pos-backoffice/internal/model"
	"go-pos-backoffice/internal/repository"
	"go-pos-backoffice/internal/ws"
	"go-pos-backoffice/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSKUExists       = errors.New("SKU already exists")
	ErrProductNotFound = errors.New("product not found")
	ErrProductInUse    = errors.New("product has recipe rows referencing it")
)

type CatalogService interface {
	CreateProduct(req *model.Product, userID string) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID, userName string) (*model.Product, error)
	DeleteProduct(id uuid.UUID, userID string) error
	SearchProducts(q string, page, pageSize int) ([]model.Product, int64, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetLowStock() ([]model.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	recipeRepo  repository.RecipeRepository
	db          *gorm.DB
	refCache    *cache.Store
	wsHub       *ws.Hub
}

func NewCatalogService(productRepo repository.ProductRepository, recipeRepo repository.RecipeRepository, db *gorm.DB, refCache *cache.Store, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		recipeRepo:  recipeRepo,
		db:          db,
		refCache:    refCache,
		wsHub:       hub,
	}
}

func (s *catalogService) CreateProduct(req *model.Product, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	// Business validation: SKU must stay unique
	existing, _ := s.productRepo.FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrSKUExists
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	s.refCache.Invalidate(cache.KeyProducts)
	return nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product, userID, userName string) (*model.Product, error) {
	var updated *model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		// Lock the row: stock edits race with sales and builds
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&existing, "id = ?", id).Error; err != nil {
			return ErrProductNotFound
		}

		oldStock := existing.StockQty

		existing.SKU = req.SKU
		existing.Name = req.Name
		existing.Category = req.Category
		existing.Unit = req.Unit
		existing.ProductType = req.ProductType
		existing.BaseCost = req.BaseCost
		existing.SellPrice = req.SellPrice
		existing.StockQty = req.StockQty
		existing.MinStock = req.MinStock
		existing.IsActive = req.IsActive
		existing.UpdatedBy = userID

		if errs := validator.ValidateStruct(&existing); len(errs) > 0 {
			first := errs[0]
			return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
		}

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		// A manual stock edit is itself a stock movement
		if existing.StockQty != oldStock {
			delta := existing.StockQty - oldStock
			movement := &model.StockMovement{
				ProductID:    existing.ID,
				MovementType: model.MoveAdjust,
				Qty:          delta,
				RefType:      model.RefAdjustment,
				Note:         fmt.Sprintf("manual adjustment by %s", userName),
				BalanceAfter: existing.StockQty,
			}
			movement.CreatedBy = userID
			movement.UpdatedBy = userID
			if err := tx.Create(movement).Error; err != nil {
				return err
			}
		}

		updated = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.refCache.Invalidate(cache.KeyProducts)
	s.wsHub.Notify("stock_update", "product_updated", productEventPayload(updated), userName+" updated product '"+updated.Name+"'")

	return updated, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID, userID string) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return ErrProductNotFound
	}

	// A product consumed by another product's recipe cannot go away
	// quietly; a parent takes its own recipe rows with it
	rows, err := s.recipeRepo.FindAll()
	if err != nil {
		return err
	}
	ownsRecipe := false
	for _, row := range rows {
		if row.ComponentID == id {
			return ErrProductInUse
		}
		if row.ProductID == id {
			ownsRecipe = true
		}
	}
	if ownsRecipe {
		if err := s.recipeRepo.DeleteForProduct(id); err != nil {
			return err
		}
	}

	if err := s.productRepo.Delete(id, userID); err != nil {
		return err
	}
	s.refCache.Invalidate(cache.KeyProducts)
	return nil
}

func (s *catalogService) SearchProducts(q string, page, pageSize int) ([]model.Product, int64, error) {
	return s.productRepo.Search(q, page, pageSize)
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *catalogService) GetLowStock() ([]model.Product, error) {
	return s.productRepo.FindLowStock()
}

func productEventPayload(p *model.Product) map[string]interface{} {
	return map[string]interface{}{
		"id":        p.ID,
		"sku":       p.SKU,
		"name":      p.Name,
		"stock_qty": p.StockQty,
	}
}
