package model

import "github.com/google/uuid"

type MovementType string

const (
	MoveIn     MovementType = "IN"
	MoveOut    MovementType = "OUT"
	MoveAdjust MovementType = "ADJUST"
)

type MovementRef string

const (
	RefSale       MovementRef = "SALE"
	RefPurchase   MovementRef = "PURCHASE"
	RefBuild      MovementRef = "BUILD"
	RefAdjustment MovementRef = "ADJUSTMENT"
)

// StockMovement is the immutable audit log of every stock change.
// BalanceAfter snapshots the product stock right after the mutation,
// inside the same DB transaction.
type StockMovement struct {
	BaseModel
	ProductID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"product_id"`
	Product      *Product     `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	MovementType MovementType `gorm:"type:varchar(10);not null" json:"movement_type"`
	Qty          int          `gorm:"not null" json:"qty"`
	RefType      MovementRef  `gorm:"type:varchar(15);not null" json:"ref_type"`
	RefID        *uuid.UUID   `gorm:"type:uuid;index" json:"ref_id,omitempty"`
	Note         string       `gorm:"type:varchar(255)" json:"note"`
	BalanceAfter int          `gorm:"not null" json:"balance_after"`
}
