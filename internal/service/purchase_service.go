package service

import (
	"errors"
	"fmt"

	"go-pos-backoffice/internal/model"
	"go-pos-backoffice/internal/repository"
	"go-pos-backoffice/internal/ws"
	"go-pos-backoffice/pkg/format"
	"go-pos-backoffice/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPurchaseNotFound = errors.New("purchase not found")
	ErrPlanNotFound     = errors.New("purchase plan not found")
	ErrPlanItemNotFound = errors.New("purchase plan item not found")
	ErrOverReceive      = errors.New("received quantity exceeds planned quantity")
	ErrPlanCompleted    = errors.New("purchase plan is already completed")
)

type PurchaseItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Qty       int    `json:"qty" validate:"required,gt=0"`
	UnitCost  int64  `json:"unit_cost" validate:"gte=0"`
	Discount  int64  `json:"discount" validate:"gte=0"`
}

type CreatePurchaseRequest struct {
	SupplierID      *string               `json:"supplier_id" validate:"omitempty,uuid4"`
	PurchaseDate    string                `json:"purchase_date" validate:"required"`
	InvoiceNumber   string                `json:"invoice_number"`
	PaymentMethod   model.PaymentMethod   `json:"payment_method" validate:"required,oneof=CASH TRANSFER CREDIT"`
	SourceAccountID *string               `json:"source_account_id" validate:"omitempty,uuid4"`
	Items           []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

type CreatePlanRequest struct {
	SupplierID *string               `json:"supplier_id" validate:"omitempty,uuid4"`
	Notes      string                `json:"notes"`
	Items      []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

type ReceiveItemRequest struct {
	PlanItemID string `json:"plan_item_id" validate:"required,uuid4"`
	Qty        int    `json:"qty" validate:"required,gt=0"`
}

type ReceivePlanRequest struct {
	ReceiveDate     string               `json:"receive_date" validate:"required"`
	InvoiceNumber   string               `json:"invoice_number"`
	PaymentMethod   model.PaymentMethod  `json:"payment_method" validate:"required,oneof=CASH TRANSFER CREDIT"`
	SourceAccountID *string              `json:"source_account_id" validate:"omitempty,uuid4"`
	Items           []ReceiveItemRequest `json:"items" validate:"required,min=1,dive"`
}

type PurchaseService interface {
	CreatePurchase(req *CreatePurchaseRequest, userID, userName string) (*model.Purchase, error)
	DeletePurchase(id uuid.UUID, userID string) error
	GetPurchases(startDate, endDate string, page, pageSize int) ([]model.Purchase, int64, error)
	GetPurchase(id uuid.UUID) (*model.Purchase, error)
	CreatePlan(req *CreatePlanRequest, userID string) (*model.PurchasePlan, error)
	GetPlans(page, pageSize int) ([]model.PurchasePlan, int64, error)
	GetPlan(id uuid.UUID) (*model.PurchasePlan, error)
	ReceivePlan(planID uuid.UUID, req *ReceivePlanRequest, userID, userName string) (*model.PurchasePlan, error)
	GetPlanReceipts(planID uuid.UUID) ([]model.Purchase, error)
}

type purchaseService struct {
	purchaseRepo repository.PurchaseRepository
	planRepo     repository.PurchasePlanRepository
	productRepo  repository.ProductRepository
	accountRepo  repository.AccountRepository
	supplierRepo repository.SupplierRepository
	movementRepo repository.StockMovementRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	planRepo repository.PurchasePlanRepository,
	productRepo repository.ProductRepository,
	accountRepo repository.AccountRepository,
	supplierRepo repository.SupplierRepository,
	movementRepo repository.StockMovementRepository,
	db *gorm.DB,
	hub *ws.Hub,
) PurchaseService {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		planRepo:     planRepo,
		productRepo:  productRepo,
		accountRepo:  accountRepo,
		supplierRepo: supplierRepo,
		movementRepo: movementRepo,
		db:           db,
		wsHub:        hub,
	}
}

func (s *purchaseService) CreatePurchase(req *CreatePurchaseRequest, userID, userName string) (*model.Purchase, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	purchase, err := s.preparePurchase(req.SupplierID, req.PurchaseDate, req.InvoiceNumber, req.PaymentMethod, req.SourceAccountID, nil, userID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.applyPurchase(tx, purchase, req.Items, userID)
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Notify("purchase_update", "purchase_created",
		map[string]interface{}{"id": purchase.ID, "total_amount": purchase.TotalAmount},
		fmt.Sprintf("%s recorded a purchase of %s", userName, format.Currency(purchase.TotalAmount)))

	return s.purchaseRepo.FindByID(purchase.ID)
}

// preparePurchase builds the document header: supplier snapshot, date,
// and the resolved cash account
func (s *purchaseService) preparePurchase(supplierID *string, dateStr, invoiceNumber string, method model.PaymentMethod, accountID *string, planID *uuid.UUID, userID string) (*model.Purchase, error) {
	purchaseDate, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}

	resolvedAccount, err := s.resolveAccount(method, accountID)
	if err != nil {
		return nil, err
	}

	purchase := &model.Purchase{
		PurchaseDate:    purchaseDate,
		InvoiceNumber:   invoiceNumber,
		PaymentMethod:   method,
		SourceAccountID: resolvedAccount,
		PlanID:          planID,
	}
	purchase.CreatedBy = userID
	purchase.UpdatedBy = userID

	if supplierID != nil {
		parsed, parseErr := uuid.Parse(*supplierID)
		if parseErr != nil {
			return nil, errors.New("invalid supplier ID format")
		}
		supplier, findErr := s.supplierRepo.FindByID(parsed)
		if findErr != nil {
			return nil, errors.New("supplier not found")
		}
		purchase.SupplierID = &supplier.ID
		purchase.SupplierName = supplier.Name
	}

	return purchase, nil
}

// applyPurchase locks each product, moves stock in, records movements,
// persists the document, and debits the account. Runs inside the caller's tx.
func (s *purchaseService) applyPurchase(tx *gorm.DB, purchase *model.Purchase, items []PurchaseItemRequest, userID string) error {
	var total int64
	var movements []*model.StockMovement

	for _, item := range items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return errors.New("invalid product ID format")
		}

		var product model.Product
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", productID).Error; err != nil {
			return ErrProductNotFound
		}

		newStock := product.StockQty
		if product.TracksStock() {
			newStock = product.StockQty + item.Qty
			if err := s.productRepo.UpdateStock(tx, product.ID, newStock, userID); err != nil {
				return err
			}
		}

		subtotal := int64(item.Qty)*item.UnitCost - item.Discount
		purchaseItem := model.PurchaseItem{
			ProductID: product.ID,
			Qty:       item.Qty,
			UnitCost:  item.UnitCost,
			Discount:  item.Discount,
			Subtotal:  subtotal,
		}
		purchaseItem.CreatedBy = userID
		purchaseItem.UpdatedBy = userID
		purchase.Items = append(purchase.Items, purchaseItem)
		total += subtotal

		if product.TracksStock() {
			movement := &model.StockMovement{
				ProductID:    product.ID,
				MovementType: model.MoveIn,
				Qty:          item.Qty,
				RefType:      model.RefPurchase,
				Note:         "purchase from " + purchaseDisplayName(purchase),
				BalanceAfter: newStock,
			}
			movement.CreatedBy = userID
			movement.UpdatedBy = userID
			movements = append(movements, movement)
		}
	}

	purchase.TotalAmount = total
	if err := tx.Create(purchase).Error; err != nil {
		return err
	}

	for _, movement := range movements {
		movement.RefID = &purchase.ID
		if err := s.movementRepo.Create(tx, movement); err != nil {
			return err
		}
	}

	if purchase.PaymentMethod.AffectsCash() {
		return s.accountRepo.AdjustBalance(tx, *purchase.SourceAccountID, -total, userID)
	}
	return nil
}

// DeletePurchase voids the document, reversing stock and account effects.
// Reversal fails if the received stock has already been sold or consumed.
func (s *purchaseService) DeletePurchase(id uuid.UUID, userID string) error {
	purchase, err := s.purchaseRepo.FindByID(id)
	if err != nil {
		return ErrPurchaseNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range purchase.Items {
			var product model.Product
			if lockErr := tx.Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", item.ProductID).Error; lockErr != nil {
				continue
			}
			if !product.TracksStock() {
				continue
			}
			if product.StockQty < item.Qty {
				return fmt.Errorf("%w: cannot void purchase, '%s' stock already consumed", ErrInsufficientStock, product.Name)
			}
			newStock := product.StockQty - item.Qty
			if updErr := s.productRepo.UpdateStock(tx, product.ID, newStock, userID); updErr != nil {
				return updErr
			}
			movement := &model.StockMovement{
				ProductID:    product.ID,
				MovementType: model.MoveOut,
				Qty:          item.Qty,
				RefType:      model.RefPurchase,
				RefID:        &purchase.ID,
				Note:         "purchase voided",
				BalanceAfter: newStock,
			}
			movement.CreatedBy = userID
			movement.UpdatedBy = userID
			if mvErr := s.movementRepo.Create(tx, movement); mvErr != nil {
				return mvErr
			}
		}

		if purchase.PaymentMethod.AffectsCash() && purchase.SourceAccountID != nil {
			if balErr := s.accountRepo.AdjustBalance(tx, *purchase.SourceAccountID, purchase.TotalAmount, userID); balErr != nil {
				return balErr
			}
		}

		if delErr := tx.Delete(&model.PurchaseItem{}, "purchase_id = ?", purchase.ID).Error; delErr != nil {
			return delErr
		}
		return tx.Delete(&model.Purchase{}, "id = ?", purchase.ID).Error
	})
}

func (s *purchaseService) GetPurchases(startDate, endDate string, page, pageSize int) ([]model.Purchase, int64, error) {
	start, err := parseOptionalDate(startDate)
	if err != nil {
		return nil, 0, err
	}
	end, err := parseOptionalDate(endDate)
	if err != nil {
		return nil, 0, err
	}
	return s.purchaseRepo.FindAll(start, end, page, pageSize)
}

func (s *purchaseService) GetPurchase(id uuid.UUID) (*model.Purchase, error) {
	purchase, err := s.purchaseRepo.FindByID(id)
	if err != nil {
		return nil, ErrPurchaseNotFound
	}
	return purchase, nil
}

func (s *purchaseService) CreatePlan(req *CreatePlanRequest, userID string) (*model.PurchasePlan, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	plan := &model.PurchasePlan{Status: model.PlanOrdered, Notes: req.Notes}
	plan.CreatedBy = userID
	plan.UpdatedBy = userID

	if req.SupplierID != nil {
		parsed, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return nil, errors.New("invalid supplier ID format")
		}
		supplier, err := s.supplierRepo.FindByID(parsed)
		if err != nil {
			return nil, errors.New("supplier not found")
		}
		plan.SupplierID = &supplier.ID
	}

	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, errors.New("invalid product ID format")
		}
		if _, err := s.productRepo.FindByID(productID); err != nil {
			return nil, ErrProductNotFound
		}
		planItem := model.PurchasePlanItem{
			ProductID:  productID,
			PlannedQty: item.Qty,
			UnitCost:   item.UnitCost,
		}
		planItem.CreatedBy = userID
		planItem.UpdatedBy = userID
		plan.Items = append(plan.Items, planItem)
	}

	if err := s.planRepo.Create(plan); err != nil {
		return nil, err
	}
	return s.planRepo.FindByID(plan.ID)
}

func (s *purchaseService) GetPlans(page, pageSize int) ([]model.PurchasePlan, int64, error) {
	return s.planRepo.FindAll(page, pageSize)
}

func (s *purchaseService) GetPlan(id uuid.UUID) (*model.PurchasePlan, error) {
	plan, err := s.planRepo.FindByID(id)
	if err != nil {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

// ReceivePlan books a partial or full delivery against a plan: a real
// Purchase is created for the received quantities and the plan's fill
// levels and status are advanced, all in one transaction.
func (s *purchaseService) ReceivePlan(planID uuid.UUID, req *ReceivePlanRequest, userID, userName string) (*model.PurchasePlan, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	plan, err := s.planRepo.FindByID(planID)
	if err != nil {
		return nil, ErrPlanNotFound
	}
	if plan.Status == model.PlanCompleted {
		return nil, ErrPlanCompleted
	}

	var supplierID *string
	if plan.SupplierID != nil {
		raw := plan.SupplierID.String()
		supplierID = &raw
	}

	purchase, err := s.preparePurchase(supplierID, req.ReceiveDate, req.InvoiceNumber, req.PaymentMethod, req.SourceAccountID, &plan.ID, userID)
	if err != nil {
		return nil, err
	}

	// Map receive lines onto plan items, rejecting over-receives up front
	purchaseItems := make([]PurchaseItemRequest, 0, len(req.Items))
	for _, recv := range req.Items {
		itemID, parseErr := uuid.Parse(recv.PlanItemID)
		if parseErr != nil {
			return nil, errors.New("invalid plan item ID format")
		}
		var planItem *model.PurchasePlanItem
		for i := range plan.Items {
			if plan.Items[i].ID == itemID {
				planItem = &plan.Items[i]
				break
			}
		}
		if planItem == nil {
			return nil, ErrPlanItemNotFound
		}
		if planItem.ReceivedQty+recv.Qty > planItem.PlannedQty {
			return nil, fmt.Errorf("%w (planned %d, already received %d, receiving %d)",
				ErrOverReceive, planItem.PlannedQty, planItem.ReceivedQty, recv.Qty)
		}
		planItem.ReceivedQty += recv.Qty
		planItem.UpdatedBy = userID
		purchaseItems = append(purchaseItems, PurchaseItemRequest{
			ProductID: planItem.ProductID.String(),
			Qty:       recv.Qty,
			UnitCost:  planItem.UnitCost,
		})
	}

	plan.Status = plan.DeriveStatus()
	plan.UpdatedBy = userID

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if applyErr := s.applyPurchase(tx, purchase, purchaseItems, userID); applyErr != nil {
			return applyErr
		}
		for i := range plan.Items {
			if saveErr := tx.Save(&plan.Items[i]).Error; saveErr != nil {
				return saveErr
			}
		}
		return tx.Model(&model.PurchasePlan{}).
			Where("id = ?", plan.ID).
			Updates(map[string]interface{}{"status": plan.Status, "updated_by": userID}).Error
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Notify("purchase_update", "plan_received",
		map[string]interface{}{"plan_id": plan.ID, "purchase_id": purchase.ID, "status": plan.Status},
		fmt.Sprintf("%s received items against a purchase plan", userName))

	return s.planRepo.FindByID(plan.ID)
}

func (s *purchaseService) GetPlanReceipts(planID uuid.UUID) ([]model.Purchase, error) {
	if _, err := s.planRepo.FindByID(planID); err != nil {
		return nil, ErrPlanNotFound
	}
	return s.purchaseRepo.FindByPlan(planID)
}

func (s *purchaseService) resolveAccount(method model.PaymentMethod, rawID *string) (*uuid.UUID, error) {
	if !method.AffectsCash() {
		return nil, nil
	}
	if rawID == nil {
		return nil, ErrAccountRequired
	}
	accountID, err := uuid.Parse(*rawID)
	if err != nil {
		return nil, errors.New("invalid account ID format")
	}
	account, err := s.accountRepo.FindByID(accountID)
	if err != nil || !account.IsActive {
		return nil, ErrAccountNotFound
	}
	return &account.ID, nil
}

func purchaseDisplayName(p *model.Purchase) string {
	if p.SupplierName != "" {
		return p.SupplierName
	}
	return "supplier"
}
