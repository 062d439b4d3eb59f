package model

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentCredit   PaymentMethod = "CREDIT"
)

// AffectsCash reports whether the method moves money through an account.
// CREDIT documents never enter the cash ledger and never touch balances.
func (m PaymentMethod) AffectsCash() bool {
	return m == PaymentCash || m == PaymentTransfer
}
