package service

import (
	"errors"
	"fmt"
	"math"

	"go-pos-backoffice/internal/model"
	"go-pos-backoffice/internal/repository"
	"go-pos-backoffice/internal/ws"
	"go-pos-backoffice/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRecipeEmpty        = errors.New("product has no recipe")
	ErrNotInternalProduct = errors.New("recipes can only be attached to INTERNAL products")
	ErrNotRawComponent    = errors.New("recipe components must be RAW products")
)

type RecipeRowRequest struct {
	ComponentID string  `json:"component_id" validate:"required,uuid4"`
	QtyPerUnit  float64 `json:"qty_per_unit" validate:"required,gt=0"`
}

type SetRecipeRequest struct {
	ProductID string             `json:"product_id" validate:"required,uuid4"`
	Rows      []RecipeRowRequest `json:"rows" validate:"required,dive"`
}

type BuildRequest struct {
	ProductID  string `json:"product_id" validate:"required,uuid4"`
	QtyToBuild int    `json:"qty_to_build" validate:"required,gt=0"`
}

// RecipeView is the read shape: rows plus the derived cost per unit
type RecipeView struct {
	Product *model.Product `json:"product"`
	Rows    []model.Recipe `json:"rows"`
	HPP     int64          `json:"hpp"`
}

// ComponentUsage reports per-component consumption of one build
type ComponentUsage struct {
	ComponentID   uuid.UUID `json:"component_id"`
	ComponentName string    `json:"component_name"`
	QtyUsed       int       `json:"qty_used"`
	StockAfter    int       `json:"stock_after"`
}

type BuildResult struct {
	ProductID   uuid.UUID        `json:"product_id"`
	ProductName string           `json:"product_name"`
	QtyBuilt    int              `json:"qty_built"`
	StockBefore int              `json:"stock_before"`
	StockAfter  int              `json:"stock_after"`
	HPP         int64            `json:"hpp"`
	Components  []ComponentUsage `json:"components"`
}

type RecipeService interface {
	GetRecipe(productID uuid.UUID) (*RecipeView, error)
	SetRecipe(req *SetRecipeRequest, userID string) (*RecipeView, error)
	Build(req *BuildRequest, userID, userName string) (*BuildResult, error)
}

type recipeService struct {
	recipeRepo   repository.RecipeRepository
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	db *gorm.DB,
	hub *ws.Hub,
) RecipeService {
	return &recipeService{
		recipeRepo:   recipeRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		db:           db,
		wsHub:        hub,
	}
}

func (s *recipeService) GetRecipe(productID uuid.UUID) (*RecipeView, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	rows, err := s.recipeRepo.FindByProduct(productID)
	if err != nil {
		return nil, err
	}

	return &RecipeView{
		Product: product,
		Rows:    rows,
		HPP:     model.HPP(rows),
	}, nil
}

// SetRecipe replaces the product's full bill of materials
func (s *recipeService) SetRecipe(req *SetRecipeRequest, userID string) (*RecipeView, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, errors.New("invalid product ID format")
	}
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if product.ProductType != model.ProductInternal {
		return nil, ErrNotInternalProduct
	}

	rows := make([]model.Recipe, 0, len(req.Rows))
	for _, rowReq := range req.Rows {
		componentID, parseErr := uuid.Parse(rowReq.ComponentID)
		if parseErr != nil {
			return nil, errors.New("invalid component ID format")
		}
		component, findErr := s.productRepo.FindByID(componentID)
		if findErr != nil {
			return nil, fmt.Errorf("component %s not found", rowReq.ComponentID)
		}
		if component.ProductType != model.ProductRaw {
			return nil, fmt.Errorf("%w: '%s' is %s", ErrNotRawComponent, component.Name, component.ProductType)
		}
		row := model.Recipe{
			ProductID:   productID,
			ComponentID: componentID,
			QtyPerUnit:  rowReq.QtyPerUnit,
		}
		row.CreatedBy = userID
		row.UpdatedBy = userID
		rows = append(rows, row)
	}

	if err := s.recipeRepo.ReplaceForProduct(productID, rows); err != nil {
		return nil, err
	}
	return s.GetRecipe(productID)
}

// Build consumes RAW components per the recipe and increments the finished
// product's stock, atomically. The finished product's base cost is set to
// the recipe's current HPP so later sales snapshot a correct unit cost.
func (s *recipeService) Build(req *BuildRequest, userID, userName string) (*BuildResult, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, errors.New("invalid product ID format")
	}

	rows, err := s.recipeRepo.FindByProduct(productID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrRecipeEmpty
	}

	hpp := model.HPP(rows)
	result := &BuildResult{
		ProductID: productID,
		QtyBuilt:  req.QtyToBuild,
		HPP:       hpp,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// 1. Consume components under row locks
		for _, row := range rows {
			var component model.Product
			if lockErr := tx.Set("gorm:query_option", "FOR UPDATE").First(&component, "id = ?", row.ComponentID).Error; lockErr != nil {
				return fmt.Errorf("component not found: %s", row.ComponentID)
			}

			required := int(math.Ceil(row.QtyPerUnit * float64(req.QtyToBuild)))
			if component.StockQty < required {
				return fmt.Errorf("%w for component '%s' (have %d, need %d)",
					ErrInsufficientStock, component.Name, component.StockQty, required)
			}

			newStock := component.StockQty - required
			if updErr := s.productRepo.UpdateStock(tx, component.ID, newStock, userID); updErr != nil {
				return updErr
			}

			movement := &model.StockMovement{
				ProductID:    component.ID,
				MovementType: model.MoveOut,
				Qty:          required,
				RefType:      model.RefBuild,
				RefID:        &productID,
				Note:         fmt.Sprintf("consumed building %d units", req.QtyToBuild),
				BalanceAfter: newStock,
			}
			movement.CreatedBy = userID
			movement.UpdatedBy = userID
			if mvErr := s.movementRepo.Create(tx, movement); mvErr != nil {
				return mvErr
			}

			result.Components = append(result.Components, ComponentUsage{
				ComponentID:   component.ID,
				ComponentName: component.Name,
				QtyUsed:       required,
				StockAfter:    newStock,
			})
		}

		// 2. Credit the finished product
		var product model.Product
		if lockErr := tx.Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", productID).Error; lockErr != nil {
			return ErrProductNotFound
		}
		if product.ProductType != model.ProductInternal {
			return ErrNotInternalProduct
		}

		result.ProductName = product.Name
		result.StockBefore = product.StockQty
		result.StockAfter = product.StockQty + req.QtyToBuild

		if updErr := s.productRepo.UpdateStock(tx, product.ID, result.StockAfter, userID); updErr != nil {
			return updErr
		}
		if costErr := s.productRepo.UpdateBaseCost(tx, product.ID, hpp, userID); costErr != nil {
			return costErr
		}

		movement := &model.StockMovement{
			ProductID:    product.ID,
			MovementType: model.MoveIn,
			Qty:          req.QtyToBuild,
			RefType:      model.RefBuild,
			RefID:        &productID,
			Note:         "built from recipe",
			BalanceAfter: result.StockAfter,
		}
		movement.CreatedBy = userID
		movement.UpdatedBy = userID
		return s.movementRepo.Create(tx, movement)
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Notify("stock_update", "build_completed",
		map[string]interface{}{
			"product_id":   result.ProductID,
			"qty_built":    result.QtyBuilt,
			"stock_before": result.StockBefore,
			"stock_after":  result.StockAfter,
		},
		fmt.Sprintf("%s built %d units of '%s'", userName, result.QtyBuilt, result.ProductName))

	return result, nil
}
