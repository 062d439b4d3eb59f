// Package ledger reconciles sales, purchases, and expenses into a single
// chronological cash ledger with a running balance. The ledger is derived
// data: it is recomputed from the source collections on every request and
// never persisted.
package ledger

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"go-pos-backoffice/internal/model"
	"go-pos-backoffice/pkg/format"

	"github.com/google/uuid"
)

type EntryType string

const (
	EntrySale     EntryType = "SALE"
	EntryPurchase EntryType = "PURCHASE"
	EntryExpense  EntryType = "EXPENSE"
)

// Entry is one row of the reconciled cash ledger. Balance is the running
// balance over the full unfiltered sequence and Seq is its 1-based position.
type Entry struct {
	Seq           int                 `json:"seq"`
	Type          EntryType           `json:"type"`
	Date          time.Time           `json:"date"`
	Label         string              `json:"label"`
	In            int64               `json:"in"`
	Out           int64               `json:"out"`
	PaymentMethod model.PaymentMethod `json:"payment_method"`
	AccountID     *uuid.UUID          `json:"account_id,omitempty"`
	AccountName   string              `json:"account_name"`
	Balance       int64               `json:"balance"`
}

// Reconcile merges the three collections into one ascending ledger.
// Only CASH and TRANSFER documents qualify; CREDIT never enters the ledger.
// Ties on date keep the sales, purchases, expenses concatenation order.
// Zero dates sort first.
func Reconcile(sales []model.Sale, purchases []model.Purchase, expenses []model.Expense) []Entry {
	entries := make([]Entry, 0, len(sales)+len(purchases)+len(expenses))

	for i := range sales {
		s := &sales[i]
		if !s.PaymentMethod.AffectsCash() {
			continue
		}
		entries = append(entries, Entry{
			Type:          EntrySale,
			Date:          s.LedgerDate(),
			Label:         saleLabel(s),
			In:            s.TotalAmount,
			PaymentMethod: s.PaymentMethod,
			AccountID:     s.SourceAccountID,
			AccountName:   accountName(s.SourceAccount),
		})
	}
	for i := range purchases {
		p := &purchases[i]
		if !p.PaymentMethod.AffectsCash() {
			continue
		}
		entries = append(entries, Entry{
			Type:          EntryPurchase,
			Date:          p.LedgerDate(),
			Label:         purchaseLabel(p),
			Out:           p.TotalAmount,
			PaymentMethod: p.PaymentMethod,
			AccountID:     p.SourceAccountID,
			AccountName:   accountName(p.SourceAccount),
		})
	}
	for i := range expenses {
		e := &expenses[i]
		if !e.PaymentMethod.AffectsCash() {
			continue
		}
		entries = append(entries, Entry{
			Type:          EntryExpense,
			Date:          e.LedgerDate(),
			Label:         expenseLabel(e),
			Out:           e.Amount,
			PaymentMethod: e.PaymentMethod,
			AccountID:     e.SourceAccountID,
			AccountName:   accountName(e.SourceAccount),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	var balance int64
	for i := range entries {
		balance += entries[i].In - entries[i].Out
		entries[i].Balance = balance
		entries[i].Seq = i + 1
	}

	return entries
}

// Filtered is a date-windowed view of an already-balanced ledger. The
// summary totals cover only the filtered subset; the Balance column on the
// entries stays the full-history running balance.
type Filtered struct {
	Entries      []Entry `json:"entries"`
	TotalIn      int64   `json:"total_in"`
	TotalOut     int64   `json:"total_out"`
	FinalBalance int64   `json:"final_balance"`
}

// ErrInvalidDate reports a filter bound that is not YYYY-MM-DD
var ErrInvalidDate = errors.New("invalid date, use YYYY-MM-DD")

// Filter applies an inclusive date range over reconciled entries. Empty
// strings leave that bound open. The start date is truncated to 00:00:00
// and the end date extended to the end of day. Bounds are parsed in the
// business timezone, the same zone the document services stamp dates in.
func Filter(entries []Entry, startDate, endDate string) (*Filtered, error) {
	var start, endExclusive time.Time
	if startDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", startDate, format.Jakarta)
		if err != nil {
			return nil, fmt.Errorf("start_date %q: %w", startDate, ErrInvalidDate)
		}
		start = parsed
	}
	if endDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", endDate, format.Jakarta)
		if err != nil {
			return nil, fmt.Errorf("end_date %q: %w", endDate, ErrInvalidDate)
		}
		endExclusive = parsed.AddDate(0, 0, 1)
	}

	out := &Filtered{Entries: []Entry{}}
	for _, e := range entries {
		if startDate != "" && e.Date.Before(start) {
			continue
		}
		if endDate != "" && !e.Date.Before(endExclusive) {
			continue
		}
		out.Entries = append(out.Entries, e)
		out.TotalIn += e.In
		out.TotalOut += e.Out
	}
	out.FinalBalance = out.TotalIn - out.TotalOut
	return out, nil
}

const DefaultPageSize = 15

// Paginate slices one page out of the filtered entries. The page number is
// clamped into [1, totalPages] and totalPages is never below 1.
func Paginate(entries []Entry, page, pageSize int) (pageEntries []Entry, clampedPage, totalPages int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	totalPages = (len(entries) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	startIdx := (page - 1) * pageSize
	endIdx := startIdx + pageSize
	if startIdx > len(entries) {
		startIdx = len(entries)
	}
	if endIdx > len(entries) {
		endIdx = len(entries)
	}
	return entries[startIdx:endIdx], page, totalPages
}

// WriteCSV serializes entries as CSV: string fields quoted with embedded
// quotes doubled, numeric fields bare. The full set is written, not a page.
func WriteCSV(w io.Writer, entries []Entry) error {
	header := "Date,Type,Label,Payment Method,Account,Cash In,Cash Out,Balance\n"
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	for _, e := range entries {
		row := fmt.Sprintf("%s,%s,%s,%s,%s,%d,%d,%d\n",
			quote(format.DateTime(e.Date)),
			quote(string(e.Type)),
			quote(e.Label),
			quote(string(e.PaymentMethod)),
			quote(e.AccountName),
			e.In, e.Out, e.Balance,
		)
		if _, err := io.WriteString(w, row); err != nil {
			return err
		}
	}
	return nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func saleLabel(s *model.Sale) string {
	name := s.CustomerName
	if name == "" && s.Customer != nil {
		name = s.Customer.Name
	}
	if name == "" {
		name = "Umum"
	}
	return "Sale - " + name
}

func purchaseLabel(p *model.Purchase) string {
	name := p.SupplierName
	if name == "" && p.Supplier != nil {
		name = p.Supplier.Name
	}
	label := "Purchase"
	if name != "" {
		label += " - " + name
	}
	if p.InvoiceNumber != "" {
		label += " (" + p.InvoiceNumber + ")"
	}
	return label
}

func expenseLabel(e *model.Expense) string {
	if e.Category == "" {
		return e.Description
	}
	return e.Category + " - " + e.Description
}

func accountName(a *model.Account) string {
	if a == nil {
		return ""
	}
	return a.Name
}
