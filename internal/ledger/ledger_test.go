package ledger

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pos-backoffice/internal/model"
	"go-pos-backoffice/pkg/format"
)

// day stamps a date the way the document services do: midnight in the
// business timezone, not UTC
func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, format.Jakarta)
	if err != nil {
		panic(err)
	}
	return t
}

func sale(amount int64, method model.PaymentMethod, date string) model.Sale {
	return model.Sale{TotalAmount: amount, PaymentMethod: method, OrderDate: day(date)}
}

func purchase(amount int64, method model.PaymentMethod, date string) model.Purchase {
	return model.Purchase{TotalAmount: amount, PaymentMethod: method, PurchaseDate: day(date)}
}

func expense(amount int64, method model.PaymentMethod, date string) model.Expense {
	return model.Expense{Amount: amount, PaymentMethod: method, ExpenseDate: day(date)}
}

func TestReconcile_ExcludesCredit(t *testing.T) {
	entries := Reconcile(
		[]model.Sale{
			sale(100, model.PaymentCash, "2024-01-01"),
			sale(200, model.PaymentCredit, "2024-01-02"),
		},
		[]model.Purchase{
			purchase(50, model.PaymentCredit, "2024-01-03"),
			purchase(60, model.PaymentTransfer, "2024-01-04"),
		},
		[]model.Expense{
			expense(10, model.PaymentCredit, "2024-01-05"),
			expense(20, model.PaymentCash, "2024-01-06"),
		},
	)

	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.True(t, e.PaymentMethod.AffectsCash(), "entry %d has method %s", e.Seq, e.PaymentMethod)
	}
}

func TestReconcile_SortedWithStableTies(t *testing.T) {
	// Same-date documents must keep the sales, purchases, expenses
	// concatenation order.
	entries := Reconcile(
		[]model.Sale{sale(1, model.PaymentCash, "2024-03-10"), sale(2, model.PaymentCash, "2024-03-09")},
		[]model.Purchase{purchase(3, model.PaymentCash, "2024-03-10")},
		[]model.Expense{expense(4, model.PaymentCash, "2024-03-10")},
	)

	require.Len(t, entries, 4)
	assert.Equal(t, EntrySale, entries[0].Type) // 03-09
	assert.Equal(t, int64(2), entries[0].In)
	assert.Equal(t, EntrySale, entries[1].Type) // 03-10 ties in input order
	assert.Equal(t, EntryPurchase, entries[2].Type)
	assert.Equal(t, EntryExpense, entries[3].Type)

	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].Date.Before(entries[i-1].Date))
	}
}

func TestReconcile_ZeroDatesSortFirst(t *testing.T) {
	entries := Reconcile(
		[]model.Sale{{TotalAmount: 100, PaymentMethod: model.PaymentCash, OrderDate: day("2024-01-01")}},
		nil,
		[]model.Expense{{Amount: 5, PaymentMethod: model.PaymentCash}}, // zero date
	)

	require.Len(t, entries, 2)
	assert.Equal(t, EntryExpense, entries[0].Type)
	assert.Equal(t, 1, entries[0].Seq)
}

func TestReconcile_RunningBalanceIsPrefixSum(t *testing.T) {
	entries := Reconcile(
		[]model.Sale{sale(100, model.PaymentCash, "2024-01-02"), sale(70, model.PaymentTransfer, "2024-01-05")},
		[]model.Purchase{purchase(40, model.PaymentCash, "2024-01-01")},
		[]model.Expense{expense(10, model.PaymentCash, "2024-01-03")},
	)

	require.NotEmpty(t, entries)
	assert.Equal(t, entries[0].In-entries[0].Out, entries[0].Balance)
	for i := 1; i < len(entries); i++ {
		assert.Equal(t, entries[i-1].Balance+entries[i].In-entries[i].Out, entries[i].Balance)
		assert.Equal(t, i+1, entries[i].Seq)
	}
}

// The worked example: filtering recomputes the summary totals over the
// window but leaves the displayed running balances untouched.
func TestFilter_AsymmetricSemantics(t *testing.T) {
	entries := Reconcile(
		[]model.Sale{sale(100000, model.PaymentCash, "2024-01-02")},
		[]model.Purchase{purchase(40000, model.PaymentTransfer, "2024-01-01")},
		[]model.Expense{expense(10000, model.PaymentCash, "2024-01-03")},
	)

	require.Len(t, entries, 3)
	assert.Equal(t, int64(-40000), entries[0].Balance)
	assert.Equal(t, int64(60000), entries[1].Balance)
	assert.Equal(t, int64(50000), entries[2].Balance)

	filtered, err := Filter(entries, "2024-01-02", "")
	require.NoError(t, err)

	require.Len(t, filtered.Entries, 2)
	assert.Equal(t, int64(100000), filtered.TotalIn)
	assert.Equal(t, int64(10000), filtered.TotalOut)
	assert.Equal(t, int64(90000), filtered.FinalBalance)

	// Balance column stays the unfiltered running total
	assert.Equal(t, int64(60000), filtered.Entries[0].Balance)
	assert.Equal(t, int64(50000), filtered.Entries[1].Balance)
}

func TestFilter_InclusiveBounds(t *testing.T) {
	entries := Reconcile(
		[]model.Sale{
			sale(1, model.PaymentCash, "2024-01-01"),
			sale(2, model.PaymentCash, "2024-01-02"),
			sale(3, model.PaymentCash, "2024-01-03"),
		},
		nil, nil,
	)

	filtered, err := Filter(entries, "2024-01-02", "2024-01-02")
	require.NoError(t, err)
	require.Len(t, filtered.Entries, 1)
	assert.Equal(t, int64(2), filtered.TotalIn)

	// End of day is inclusive
	late := Reconcile([]model.Sale{{
		TotalAmount:   9,
		PaymentMethod: model.PaymentCash,
		OrderDate:     day("2024-01-02").Add(23*time.Hour + 59*time.Minute),
	}}, nil, nil)
	filtered, err = Filter(late, "2024-01-02", "2024-01-02")
	require.NoError(t, err)
	assert.Len(t, filtered.Entries, 1)
}

func TestFilter_BoundsMatchDocumentTimezone(t *testing.T) {
	// Documents are stamped at midnight WIB, seven hours before midnight
	// UTC. A window naming that day must still include them from its very
	// first instant, and the next day's midnight must stay out.
	wib := time.FixedZone("WIB", 7*60*60)
	entries := Reconcile(
		[]model.Sale{
			{TotalAmount: 5000, PaymentMethod: model.PaymentCash, OrderDate: time.Date(2024, 1, 2, 0, 0, 0, 0, wib)},
			{TotalAmount: 7000, PaymentMethod: model.PaymentCash, OrderDate: time.Date(2024, 1, 3, 0, 0, 0, 0, wib)},
		},
		nil, nil,
	)

	filtered, err := Filter(entries, "2024-01-02", "2024-01-02")
	require.NoError(t, err)
	require.Len(t, filtered.Entries, 1)
	assert.Equal(t, int64(5000), filtered.TotalIn)
	assert.Equal(t, int64(0), filtered.TotalOut)
}

func TestFilter_RejectsMalformedDates(t *testing.T) {
	_, err := Filter(nil, "02-01-2024", "")
	assert.Error(t, err)
	_, err = Filter(nil, "", "not-a-date")
	assert.Error(t, err)
}

func TestPaginate_Clamping(t *testing.T) {
	entries := Reconcile([]model.Sale{
		sale(1, model.PaymentCash, "2024-01-01"),
		sale(2, model.PaymentCash, "2024-01-02"),
		sale(3, model.PaymentCash, "2024-01-03"),
		sale(4, model.PaymentCash, "2024-01-04"),
		sale(5, model.PaymentCash, "2024-01-05"),
	}, nil, nil)

	page, current, total := Paginate(entries, 1, 2)
	assert.Len(t, page, 2)
	assert.Equal(t, 1, current)
	assert.Equal(t, 3, total)

	// Last page is short
	page, current, total = Paginate(entries, 3, 2)
	assert.Len(t, page, 1)
	assert.Equal(t, 3, current)

	// Out-of-range pages clamp
	_, current, _ = Paginate(entries, 99, 2)
	assert.Equal(t, 3, current)
	_, current, _ = Paginate(entries, -1, 2)
	assert.Equal(t, 1, current)

	// Empty ledger still has one page
	page, current, total = Paginate(nil, 5, 2)
	assert.Empty(t, page)
	assert.Equal(t, 1, current)
	assert.Equal(t, 1, total)
}

func TestWriteCSV(t *testing.T) {
	acct := &model.Account{Name: `Kas "Utama"`}
	sales := []model.Sale{{
		TotalAmount:   150000,
		PaymentMethod: model.PaymentCash,
		OrderDate:     day("2024-01-02"),
		CustomerName:  "Budi",
		SourceAccount: acct,
	}}
	entries := Reconcile(sales, nil, []model.Expense{
		expense(50000, model.PaymentCash, "2024-01-03"),
	})

	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, entries))
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")

	// Header + one row per entry, regardless of any page size
	require.Len(t, lines, 1+len(entries))

	assert.Contains(t, lines[1], `"Sale - Budi"`)
	// Embedded quotes are doubled
	assert.Contains(t, lines[1], `"Kas ""Utama"""`)
	// Numeric fields are bare
	assert.True(t, strings.HasSuffix(lines[1], ",150000,0,150000"), lines[1])
	assert.True(t, strings.HasSuffix(lines[2], ",0,50000,100000"), lines[2])
	// Dates are DD/MM/YYYY
	assert.True(t, strings.HasPrefix(lines[1], `"02/01/2024`), lines[1])
}
