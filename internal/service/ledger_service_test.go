package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"go-pos-backoffice/internal/ledger"
	"go-pos-backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSaleRepo struct {
	sales []model.Sale
}

func (f *fakeSaleRepo) FindAll(startDate, endDate *time.Time, page, pageSize int) ([]model.Sale, int64, error) {
	return f.sales, int64(len(f.sales)), nil
}
func (f *fakeSaleRepo) FindByID(id uuid.UUID) (*model.Sale, error)     { return nil, gorm.ErrRecordNotFound }
func (f *fakeSaleRepo) FindForLedger() ([]model.Sale, error)           { return f.sales, nil }
func (f *fakeSaleRepo) FindRecent(limit int) ([]model.Sale, error)     { return f.sales, nil }
func (f *fakeSaleRepo) TotalBetween(s, e time.Time) (int64, error)     { return 0, nil }
func (f *fakeSaleRepo) COGSBetween(s, e time.Time) (int64, error)      { return 0, nil }

type fakePurchaseRepo struct {
	purchases []model.Purchase
}

func (f *fakePurchaseRepo) FindAll(startDate, endDate *time.Time, page, pageSize int) ([]model.Purchase, int64, error) {
	return f.purchases, int64(len(f.purchases)), nil
}
func (f *fakePurchaseRepo) FindByID(id uuid.UUID) (*model.Purchase, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakePurchaseRepo) FindForLedger() ([]model.Purchase, error) { return f.purchases, nil }
func (f *fakePurchaseRepo) FindByPlan(planID uuid.UUID) ([]model.Purchase, error) {
	return nil, nil
}
func (f *fakePurchaseRepo) TotalBetween(s, e time.Time) (int64, error) { return 0, nil }

type fakeExpenseRepo struct {
	expenses []model.Expense
}

func (f *fakeExpenseRepo) Create(expense *model.Expense) error { return nil }
func (f *fakeExpenseRepo) FindAll(startDate, endDate *time.Time, page, pageSize int) ([]model.Expense, int64, error) {
	return f.expenses, int64(len(f.expenses)), nil
}
func (f *fakeExpenseRepo) FindByID(id uuid.UUID) (*model.Expense, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeExpenseRepo) FindForLedger() ([]model.Expense, error)      { return f.expenses, nil }
func (f *fakeExpenseRepo) Update(expense *model.Expense) error          { return nil }
func (f *fakeExpenseRepo) Delete(tx *gorm.DB, id uuid.UUID) error       { return nil }
func (f *fakeExpenseRepo) TotalBetween(s, e time.Time) (int64, error)   { return 0, nil }

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func newTestLedgerService() LedgerService {
	sales := []model.Sale{
		{OrderDate: day(1), PaymentMethod: model.PaymentCash, Status: model.SalePaid, TotalAmount: 100000, CustomerName: "Budi"},
		{OrderDate: day(3), PaymentMethod: model.PaymentCredit, Status: model.SaleUnpaid, TotalAmount: 999999},
	}
	purchases := []model.Purchase{
		{PurchaseDate: day(2), PaymentMethod: model.PaymentTransfer, TotalAmount: 40000, SupplierName: "Toko Bahan"},
	}
	expenses := []model.Expense{
		{ExpenseDate: day(4), PaymentMethod: model.PaymentCash, Amount: 10000, Category: "Listrik", Description: "Token"},
	}
	return NewLedgerService(
		&fakeSaleRepo{sales: sales},
		&fakePurchaseRepo{purchases: purchases},
		&fakeExpenseRepo{expenses: expenses},
	)
}

func TestGetLedger_FullWindow(t *testing.T) {
	svc := newTestLedgerService()

	page, err := svc.GetLedger("", "", 1, 15)
	require.NoError(t, err)

	// CREDIT sale stays out of the ledger
	require.Len(t, page.Entries, 3)
	assert.Equal(t, int64(100000), page.TotalIn)
	assert.Equal(t, int64(50000), page.TotalOut)
	assert.Equal(t, int64(50000), page.FinalBalance)
	assert.Equal(t, int64(50000), page.Entries[2].Balance)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 3, page.TotalEntries)
}

func TestGetLedger_FilteredWindowKeepsBalances(t *testing.T) {
	svc := newTestLedgerService()

	page, err := svc.GetLedger("2024-01-02", "", 1, 15)
	require.NoError(t, err)

	// Totals describe the window, balances still describe full history
	require.Len(t, page.Entries, 2)
	assert.Equal(t, int64(0), page.TotalIn)
	assert.Equal(t, int64(50000), page.TotalOut)
	assert.Equal(t, int64(50000), page.FinalBalance)
	assert.Equal(t, int64(60000), page.Entries[0].Balance)
	assert.Equal(t, int64(50000), page.Entries[1].Balance)
}

func TestGetLedger_RejectsBadDate(t *testing.T) {
	svc := newTestLedgerService()

	_, err := svc.GetLedger("02-01-2024", "", 1, 15)
	assert.ErrorIs(t, err, ledger.ErrInvalidDate)
}

func TestExportCSV(t *testing.T) {
	svc := newTestLedgerService()

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(&buf, "", ""))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4, "header plus three entries")
	assert.Contains(t, lines[1], "Budi")
	assert.Contains(t, lines[2], "Toko Bahan")
	assert.Contains(t, lines[3], "Listrik")
}
