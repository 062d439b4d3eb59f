package model

type AccountType string

const (
	AccountCash    AccountType = "CASH"
	AccountBank    AccountType = "BANK"
	AccountEwallet AccountType = "EWALLET"
)

// Account is a cash/bank account. CurrentBalance is only mutated by the
// sale/purchase/expense flows, never edited directly through the API.
type Account struct {
	BaseModel
	Name           string      `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Type           AccountType `gorm:"type:varchar(10);not null;default:'CASH'" json:"type" validate:"required,oneof=CASH BANK EWALLET"`
	Number         string      `gorm:"type:varchar(50)" json:"number"`
	CurrentBalance int64       `gorm:"default:0" json:"current_balance"`
	IsActive       bool        `gorm:"default:true" json:"is_active"`
}
