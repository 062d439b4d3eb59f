package model

import (
	"time"

	"github.com/google/uuid"
)

type Purchase struct {
	BaseModel
	SupplierID *uuid.UUID `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Supplier   *Supplier  `gorm:"foreignKey:SupplierID" json:"supplier,omitempty" validate:"-"`
	// SupplierName is snapshotted at purchase time
	SupplierName    string        `gorm:"type:varchar(255)" json:"supplier_name"`
	PurchaseDate    time.Time     `gorm:"not null;index" json:"purchase_date"`
	InvoiceNumber   string        `gorm:"type:varchar(100)" json:"invoice_number"`
	PaymentMethod   PaymentMethod `gorm:"type:varchar(10);not null" json:"payment_method" validate:"required,oneof=CASH TRANSFER CREDIT"`
	SourceAccountID *uuid.UUID    `gorm:"type:uuid" json:"source_account_id,omitempty"`
	SourceAccount   *Account      `gorm:"foreignKey:SourceAccountID" json:"source_account,omitempty" validate:"-"`
	TotalAmount     int64         `gorm:"not null" json:"total_amount"`
	// EntryDate overrides PurchaseDate in the cash ledger when set
	EntryDate *time.Time `json:"entry_date,omitempty"`
	// PlanID links receipts generated from a purchase plan
	PlanID *uuid.UUID     `gorm:"type:uuid;index" json:"plan_id,omitempty"`
	Items  []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items" validate:"-"`
}

type PurchaseItem struct {
	BaseModel
	PurchaseID uuid.UUID `gorm:"type:uuid;not null;index" json:"purchase_id"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null" json:"product_id" validate:"uuid_required"`
	Product    *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Qty        int       `gorm:"not null" json:"qty" validate:"required,gt=0"`
	UnitCost   int64     `gorm:"not null" json:"unit_cost" validate:"gte=0"`
	Discount   int64     `gorm:"default:0" json:"discount" validate:"gte=0"`
	Subtotal   int64     `gorm:"not null" json:"subtotal"`
}

// LedgerDate returns the date the purchase occupies in the cash ledger
func (p *Purchase) LedgerDate() time.Time {
	if p.EntryDate != nil {
		return *p.EntryDate
	}
	return p.PurchaseDate
}

type PlanStatus string

const (
	PlanDraft     PlanStatus = "DRAFT"
	PlanOrdered   PlanStatus = "ORDERED"
	PlanPartial   PlanStatus = "PARTIAL"
	PlanCompleted PlanStatus = "COMPLETED"
)

// PurchasePlan is a staged purchase order tracking planned vs received
// quantities per product, completed via one or more partial receives.
type PurchasePlan struct {
	BaseModel
	SupplierID *uuid.UUID         `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Supplier   *Supplier          `gorm:"foreignKey:SupplierID" json:"supplier,omitempty" validate:"-"`
	Status     PlanStatus         `gorm:"type:varchar(10);not null;default:'ORDERED'" json:"status"`
	Notes      string             `gorm:"type:text" json:"notes"`
	Items      []PurchasePlanItem `gorm:"foreignKey:PlanID" json:"items" validate:"-"`
}

type PurchasePlanItem struct {
	BaseModel
	PlanID      uuid.UUID `gorm:"type:uuid;not null;index" json:"plan_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null" json:"product_id" validate:"uuid_required"`
	Product     *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	PlannedQty  int       `gorm:"not null" json:"planned_qty" validate:"required,gt=0"`
	ReceivedQty int       `gorm:"default:0" json:"received_qty"`
	UnitCost    int64     `gorm:"not null" json:"unit_cost" validate:"gte=0"`
}

// DeriveStatus recomputes the plan status from item fill levels
func (p *PurchasePlan) DeriveStatus() PlanStatus {
	received := 0
	full := true
	for _, item := range p.Items {
		if item.ReceivedQty > 0 {
			received++
		}
		if item.ReceivedQty < item.PlannedQty {
			full = false
		}
	}
	switch {
	case full && len(p.Items) > 0:
		return PlanCompleted
	case received > 0:
		return PlanPartial
	default:
		return PlanOrdered
	}
}
