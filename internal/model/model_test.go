package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPaymentMethodAffectsCash(t *testing.T) {
	assert.True(t, PaymentCash.AffectsCash())
	assert.True(t, PaymentTransfer.AffectsCash())
	assert.False(t, PaymentCredit.AffectsCash())
}

func TestProductTracksStock(t *testing.T) {
	internal := Product{ProductType: ProductInternal}
	raw := Product{ProductType: ProductRaw}
	svc := Product{ProductType: ProductService}

	assert.True(t, internal.TracksStock())
	assert.True(t, raw.TracksStock())
	assert.False(t, svc.TracksStock())
}

func TestSaleLedgerDate(t *testing.T) {
	order := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	entry := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	sale := Sale{OrderDate: order}
	assert.Equal(t, order, sale.LedgerDate())

	sale.EntryDate = &entry
	assert.Equal(t, entry, sale.LedgerDate(), "entry_date overrides order_date")
}

func TestHPP(t *testing.T) {
	flour := &Product{BaseCost: 12000}
	sugar := &Product{BaseCost: 15000}

	rows := []Recipe{
		{QtyPerUnit: 0.1, Component: flour},
		{QtyPerUnit: 0.05, Component: sugar},
	}
	assert.Equal(t, int64(1950), HPP(rows))
}

func TestHPP_SkipsMissingComponent(t *testing.T) {
	rows := []Recipe{
		{QtyPerUnit: 2, Component: nil},
		{QtyPerUnit: 1, Component: &Product{BaseCost: 500}},
	}
	assert.Equal(t, int64(500), HPP(rows))
}

func TestPlanDeriveStatus(t *testing.T) {
	plan := &PurchasePlan{Items: []PurchasePlanItem{
		{PlannedQty: 10, ReceivedQty: 0},
		{PlannedQty: 5, ReceivedQty: 0},
	}}
	assert.Equal(t, PlanOrdered, plan.DeriveStatus())

	plan.Items[0].ReceivedQty = 4
	assert.Equal(t, PlanPartial, plan.DeriveStatus())

	plan.Items[0].ReceivedQty = 10
	plan.Items[1].ReceivedQty = 5
	assert.Equal(t, PlanCompleted, plan.DeriveStatus())
}

func TestPlanDeriveStatus_NoItems(t *testing.T) {
	plan := &PurchasePlan{}
	assert.Equal(t, PlanOrdered, plan.DeriveStatus())
}
