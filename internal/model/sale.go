package model

import (
	"time"

	"github.com/google/uuid"
)

type SaleStatus string

const (
	SalePaid   SaleStatus = "PAID"
	SaleUnpaid SaleStatus = "UNPAID"
)

type Sale struct {
	BaseModel
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Customer   *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty" validate:"-"`
	// CustomerName is snapshotted so the document survives customer edits
	CustomerName    string        `gorm:"type:varchar(255)" json:"customer_name"`
	OrderDate       time.Time     `gorm:"not null;index" json:"order_date"`
	PaymentMethod   PaymentMethod `gorm:"type:varchar(10);not null" json:"payment_method" validate:"required,oneof=CASH TRANSFER CREDIT"`
	SourceAccountID *uuid.UUID    `gorm:"type:uuid" json:"source_account_id,omitempty"`
	SourceAccount   *Account      `gorm:"foreignKey:SourceAccountID" json:"source_account,omitempty" validate:"-"`
	Status          SaleStatus    `gorm:"type:varchar(10);not null;default:'PAID'" json:"status"`
	TotalAmount     int64         `gorm:"not null" json:"total_amount"`
	// EntryDate overrides OrderDate in the cash ledger when set
	EntryDate *time.Time `json:"entry_date,omitempty"`
	Items     []SaleItem `gorm:"foreignKey:SaleID" json:"items" validate:"-"`
}

type SaleItem struct {
	BaseModel
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Qty       int       `gorm:"not null" json:"qty" validate:"required,gt=0"`
	UnitPrice int64     `gorm:"not null" json:"unit_price" validate:"gte=0"`
	Discount  int64     `gorm:"default:0" json:"discount" validate:"gte=0"`
	// Subtotal = qty*unit_price - discount, snapshot at sale time
	Subtotal int64 `gorm:"not null" json:"subtotal"`
	// UnitCost snapshots the product base cost for COGS reporting
	UnitCost int64 `gorm:"default:0" json:"unit_cost"`
}

// LedgerDate returns the date the sale occupies in the cash ledger
func (s *Sale) LedgerDate() time.Time {
	if s.EntryDate != nil {
		return *s.EntryDate
	}
	return s.OrderDate
}
