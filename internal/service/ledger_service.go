package service

import (
	"io"

	"go-pos-backoffice/internal/ledger"
	"go-pos-backoffice/internal/repository"
)

// LedgerPage is one page of the reconciled cash ledger plus the summary
// totals of the whole filtered window
type LedgerPage struct {
	Entries      []ledger.Entry `json:"entries"`
	TotalIn      int64          `json:"total_in"`
	TotalOut     int64          `json:"total_out"`
	FinalBalance int64          `json:"final_balance"`
	Page         int            `json:"page"`
	PageSize     int            `json:"page_size"`
	TotalPages   int            `json:"total_pages"`
	TotalEntries int            `json:"total_entries"`
}

type LedgerService interface {
	GetLedger(startDate, endDate string, page, pageSize int) (*LedgerPage, error)
	ExportCSV(w io.Writer, startDate, endDate string) error
}

type ledgerService struct {
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	expenseRepo  repository.ExpenseRepository
}

func NewLedgerService(saleRepo repository.SaleRepository, purchaseRepo repository.PurchaseRepository, expenseRepo repository.ExpenseRepository) LedgerService {
	return &ledgerService{
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		expenseRepo:  expenseRepo,
	}
}

func (s *ledgerService) reconcileFiltered(startDate, endDate string) (*ledger.Filtered, error) {
	sales, err := s.saleRepo.FindForLedger()
	if err != nil {
		return nil, err
	}
	purchases, err := s.purchaseRepo.FindForLedger()
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.FindForLedger()
	if err != nil {
		return nil, err
	}

	entries := ledger.Reconcile(sales, purchases, expenses)
	return ledger.Filter(entries, startDate, endDate)
}

func (s *ledgerService) GetLedger(startDate, endDate string, page, pageSize int) (*LedgerPage, error) {
	filtered, err := s.reconcileFiltered(startDate, endDate)
	if err != nil {
		return nil, err
	}

	if pageSize <= 0 {
		pageSize = ledger.DefaultPageSize
	}
	pageEntries, clampedPage, totalPages := ledger.Paginate(filtered.Entries, page, pageSize)

	return &LedgerPage{
		Entries:      pageEntries,
		TotalIn:      filtered.TotalIn,
		TotalOut:     filtered.TotalOut,
		FinalBalance: filtered.FinalBalance,
		Page:         clampedPage,
		PageSize:     pageSize,
		TotalPages:   totalPages,
		TotalEntries: len(filtered.Entries),
	}, nil
}

// ExportCSV writes the full filtered window, never just a page
func (s *ledgerService) ExportCSV(w io.Writer, startDate, endDate string) error {
	filtered, err := s.reconcileFiltered(startDate, endDate)
	if err != nil {
		return err
	}
	return ledger.WriteCSV(w, filtered.Entries)
}
