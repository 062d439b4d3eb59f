package service

import (
	"testing"

	"go-pos-backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// The empty-items check runs before anything else, so these services
// never reach their repositories.
func TestCreateSale_EmptyItems(t *testing.T) {
	svc := NewSalesService(nil, nil, nil, nil, nil, nil, nil)

	_, err := svc.CreateSale(&CreateSaleRequest{
		OrderDate:     "2024-01-02",
		PaymentMethod: model.PaymentCash,
	}, "user", "User")
	assert.ErrorIs(t, err, ErrEmptyItems)
}

func TestPurchasePaths_EmptyItems(t *testing.T) {
	svc := NewPurchaseService(nil, nil, nil, nil, nil, nil, nil, nil)

	_, err := svc.CreatePurchase(&CreatePurchaseRequest{
		PurchaseDate:  "2024-01-02",
		PaymentMethod: model.PaymentCash,
	}, "user", "User")
	assert.ErrorIs(t, err, ErrEmptyItems)

	_, err = svc.CreatePlan(&CreatePlanRequest{Notes: "restock"}, "user")
	assert.ErrorIs(t, err, ErrEmptyItems)

	_, err = svc.ReceivePlan(uuid.New(), &ReceivePlanRequest{
		ReceiveDate:   "2024-01-02",
		PaymentMethod: model.PaymentCash,
	}, "user", "User")
	assert.ErrorIs(t, err, ErrEmptyItems)
}
