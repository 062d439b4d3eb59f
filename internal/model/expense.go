package model

import (
	"time"

	"github.com/google/uuid"
)

type Expense struct {
	BaseModel
	Category        string        `gorm:"type:varchar(100);not null" json:"category" validate:"required"`
	Description     string        `gorm:"type:varchar(255);not null" json:"description" validate:"required"`
	Amount          int64         `gorm:"not null" json:"amount" validate:"required,gt=0"`
	PaymentMethod   PaymentMethod `gorm:"type:varchar(10);not null" json:"payment_method" validate:"required,oneof=CASH TRANSFER CREDIT"`
	SourceAccountID *uuid.UUID    `gorm:"type:uuid" json:"source_account_id,omitempty"`
	SourceAccount   *Account      `gorm:"foreignKey:SourceAccountID" json:"source_account,omitempty" validate:"-"`
	ExpenseDate     time.Time     `gorm:"not null;index" json:"expense_date"`
	Notes           string        `gorm:"type:text" json:"notes"`
	// EntryDate overrides ExpenseDate in the cash ledger when set
	EntryDate *time.Time `json:"entry_date,omitempty"`
}

// LedgerDate returns the date the expense occupies in the cash ledger
func (e *Expense) LedgerDate() time.Time {
	if e.EntryDate != nil {
		return *e.EntryDate
	}
	return e.ExpenseDate
}
