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

var ErrSaleNotFound = errors.New("sale not found")

type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Qty       int    `json:"qty" validate:"required,gt=0"`
	UnitPrice int64  `json:"unit_price" validate:"gte=0"`
	Discount  int64  `json:"discount" validate:"gte=0"`
}

type CreateSaleRequest struct {
	CustomerID      *string             `json:"customer_id" validate:"omitempty,uuid4"`
	OrderDate       string              `json:"order_date" validate:"required"`
	PaymentMethod   model.PaymentMethod `json:"payment_method" validate:"required,oneof=CASH TRANSFER CREDIT"`
	SourceAccountID *string             `json:"source_account_id" validate:"omitempty,uuid4"`
	Items           []SaleItemRequest   `json:"items" validate:"required,min=1,dive"`
}

type SalesService interface {
	CreateSale(req *CreateSaleRequest, userID, userName string) (*model.Sale, error)
	DeleteSale(id uuid.UUID, userID string) error
	GetSales(startDate, endDate string, page, pageSize int) ([]model.Sale, int64, error)
	GetSale(id uuid.UUID) (*model.Sale, error)
}

type salesService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	accountRepo  repository.AccountRepository
	customerRepo repository.CustomerRepository
	movementRepo repository.StockMovementRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewSalesService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	accountRepo repository.AccountRepository,
	customerRepo repository.CustomerRepository,
	movementRepo repository.StockMovementRepository,
	db *gorm.DB,
	hub *ws.Hub,
) SalesService {
	return &salesService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
		movementRepo: movementRepo,
		db:           db,
		wsHub:        hub,
	}
}

func (s *salesService) CreateSale(req *CreateSaleRequest, userID, userName string) (*model.Sale, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	orderDate, err := parseDate(req.OrderDate)
	if err != nil {
		return nil, err
	}

	accountID, err := s.resolveAccount(req.PaymentMethod, req.SourceAccountID)
	if err != nil {
		return nil, err
	}

	sale := &model.Sale{
		OrderDate:       orderDate,
		PaymentMethod:   req.PaymentMethod,
		SourceAccountID: accountID,
		Status:          model.SalePaid,
	}
	// CREDIT sales are receivables until settled
	if req.PaymentMethod == model.PaymentCredit {
		sale.Status = model.SaleUnpaid
	}
	sale.CreatedBy = userID
	sale.UpdatedBy = userID

	if req.CustomerID != nil {
		customerID, parseErr := uuid.Parse(*req.CustomerID)
		if parseErr != nil {
			return nil, errors.New("invalid customer ID format")
		}
		customer, findErr := s.customerRepo.FindByID(customerID)
		if findErr != nil {
			return nil, errors.New("customer not found")
		}
		sale.CustomerID = &customer.ID
		sale.CustomerName = customer.Name
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var total int64
		var movements []*model.StockMovement

		for _, item := range req.Items {
			productID, parseErr := uuid.Parse(item.ProductID)
			if parseErr != nil {
				return errors.New("invalid product ID format")
			}

			var product model.Product
			if lockErr := tx.Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", productID).Error; lockErr != nil {
				return ErrProductNotFound
			}

			newStock := product.StockQty
			if product.TracksStock() {
				if product.StockQty < item.Qty {
					return fmt.Errorf("%w for '%s' (have %d, need %d)", ErrInsufficientStock, product.Name, product.StockQty, item.Qty)
				}
				newStock = product.StockQty - item.Qty
				if updErr := s.productRepo.UpdateStock(tx, product.ID, newStock, userID); updErr != nil {
					return updErr
				}
			}

			subtotal := int64(item.Qty)*item.UnitPrice - item.Discount
			saleItem := model.SaleItem{
				ProductID: product.ID,
				Qty:       item.Qty,
				UnitPrice: item.UnitPrice,
				Discount:  item.Discount,
				Subtotal:  subtotal,
				UnitCost:  product.BaseCost,
			}
			saleItem.CreatedBy = userID
			saleItem.UpdatedBy = userID
			sale.Items = append(sale.Items, saleItem)
			total += subtotal

			if product.TracksStock() {
				movement := &model.StockMovement{
					ProductID:    product.ID,
					MovementType: model.MoveOut,
					Qty:          item.Qty,
					RefType:      model.RefSale,
					Note:         "sale to " + saleDisplayName(sale),
					BalanceAfter: newStock,
				}
				movement.CreatedBy = userID
				movement.UpdatedBy = userID
				movements = append(movements, movement)
			}
		}

		sale.TotalAmount = total
		if createErr := tx.Create(sale).Error; createErr != nil {
			return createErr
		}

		// Movements carry the document id, so they go in after the sale row
		for _, movement := range movements {
			movement.RefID = &sale.ID
			if mvErr := s.movementRepo.Create(tx, movement); mvErr != nil {
				return mvErr
			}
		}

		if sale.PaymentMethod.AffectsCash() {
			return s.accountRepo.AdjustBalance(tx, *sale.SourceAccountID, total, userID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Notify("sale_update", "sale_created",
		map[string]interface{}{"id": sale.ID, "total_amount": sale.TotalAmount},
		fmt.Sprintf("%s recorded a sale of %s", userName, format.Currency(sale.TotalAmount)))

	return s.saleRepo.FindByID(sale.ID)
}

// DeleteSale voids the document: stock and account effects are reversed in
// the same transaction that removes it.
func (s *salesService) DeleteSale(id uuid.UUID, userID string) error {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		return ErrSaleNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range sale.Items {
			var product model.Product
			if lockErr := tx.Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", item.ProductID).Error; lockErr != nil {
				continue // product hard-deleted since; nothing to restore
			}
			if !product.TracksStock() {
				continue
			}
			newStock := product.StockQty + item.Qty
			if updErr := s.productRepo.UpdateStock(tx, product.ID, newStock, userID); updErr != nil {
				return updErr
			}
			movement := &model.StockMovement{
				ProductID:    product.ID,
				MovementType: model.MoveIn,
				Qty:          item.Qty,
				RefType:      model.RefSale,
				RefID:        &sale.ID,
				Note:         "sale voided",
				BalanceAfter: newStock,
			}
			movement.CreatedBy = userID
			movement.UpdatedBy = userID
			if mvErr := s.movementRepo.Create(tx, movement); mvErr != nil {
				return mvErr
			}
		}

		if sale.PaymentMethod.AffectsCash() && sale.SourceAccountID != nil {
			if balErr := s.accountRepo.AdjustBalance(tx, *sale.SourceAccountID, -sale.TotalAmount, userID); balErr != nil {
				return balErr
			}
		}

		if delErr := tx.Delete(&model.SaleItem{}, "sale_id = ?", sale.ID).Error; delErr != nil {
			return delErr
		}
		return tx.Delete(&model.Sale{}, "id = ?", sale.ID).Error
	})
}

func (s *salesService) GetSales(startDate, endDate string, page, pageSize int) ([]model.Sale, int64, error) {
	start, err := parseOptionalDate(startDate)
	if err != nil {
		return nil, 0, err
	}
	end, err := parseOptionalDate(endDate)
	if err != nil {
		return nil, 0, err
	}
	return s.saleRepo.FindAll(start, end, page, pageSize)
}

func (s *salesService) GetSale(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		return nil, ErrSaleNotFound
	}
	return sale, nil
}

func (s *salesService) resolveAccount(method model.PaymentMethod, rawID *string) (*uuid.UUID, error) {
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

func saleDisplayName(sale *model.Sale) string {
	if sale.CustomerName != "" {
		return sale.CustomerName
	}
	return "walk-in customer"
}
