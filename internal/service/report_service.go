package service

import (
	"sort"
	"time"

	"go-pos-backoffice/internal/cache"
	"go-pos-backoffice/internal/model"
	"go-pos-backoffice/internal/repository"

	"github.com/google/uuid"
)

// RangeSummary is the backend-computed P&L for a date window
type RangeSummary struct {
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	TotalSales     int64  `json:"total_sales"`
	TotalPurchases int64  `json:"total_purchases"`
	TotalExpenses  int64  `json:"total_expenses"`
	COGS           int64  `json:"cogs"`
	GrossProfit    int64  `json:"gross_profit"`
	NetProfit      int64  `json:"net_profit"`
}

type DashboardStats struct {
	TotalProducts  int64 `json:"total_products"`
	LowStockCount  int64 `json:"low_stock_count"`
	TotalValuation int64 `json:"total_valuation"`
	TodaySales     int64 `json:"today_sales"`
}

// TopProduct is one row of the best-seller ranking
type TopProduct struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Qty       int       `json:"qty"`
	LineTotal int64     `json:"line_total"`
}

// ReferenceData bundles the dropdown lists shared by every form view
type ReferenceData struct {
	Products  []model.Product  `json:"products"`
	Customers []model.Customer `json:"customers"`
	Suppliers []model.Supplier `json:"suppliers"`
}

type ReportService interface {
	GetRangeSummary(startDate, endDate string) (*RangeSummary, error)
	GetCustomersByChannel() ([]repository.ChannelCount, error)
	GetDashboardStats() (*DashboardStats, error)
	GetTopProducts(limit int) ([]TopProduct, error)
	GetStockMovementChart(days int) ([]repository.DailyMovement, error)
	GetReferenceData() (*ReferenceData, error)
}

// recentSalesWindow bounds the top-products aggregation
const recentSalesWindow = 200

type reportService struct {
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	expenseRepo  repository.ExpenseRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	refCache     *cache.Store
}

func NewReportService(
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	expenseRepo repository.ExpenseRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	refCache *cache.Store,
) ReportService {
	return &reportService{
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		expenseRepo:  expenseRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		refCache:     refCache,
	}
}

func (s *reportService) GetRangeSummary(startDate, endDate string) (*RangeSummary, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return nil, err
	}

	totalSales, err := s.saleRepo.TotalBetween(start, end)
	if err != nil {
		return nil, err
	}
	totalPurchases, err := s.purchaseRepo.TotalBetween(start, end)
	if err != nil {
		return nil, err
	}
	totalExpenses, err := s.expenseRepo.TotalBetween(start, end)
	if err != nil {
		return nil, err
	}
	cogs, err := s.saleRepo.COGSBetween(start, end)
	if err != nil {
		return nil, err
	}

	grossProfit := totalSales - cogs
	return &RangeSummary{
		StartDate:      startDate,
		EndDate:        endDate,
		TotalSales:     totalSales,
		TotalPurchases: totalPurchases,
		TotalExpenses:  totalExpenses,
		COGS:           cogs,
		GrossProfit:    grossProfit,
		NetProfit:      grossProfit - totalExpenses,
	}, nil
}

func (s *reportService) GetCustomersByChannel() ([]repository.ChannelCount, error) {
	return s.customerRepo.CountByChannel()
}

func (s *reportService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalProducts, err = s.productRepo.CountAll(); err != nil {
		return nil, err
	}
	if stats.LowStockCount, err = s.productRepo.CountLowStock(); err != nil {
		return nil, err
	}
	if stats.TotalValuation, err = s.productRepo.StockValuation(); err != nil {
		return nil, err
	}

	today := time.Now().In(jakartaLoc)
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, jakartaLoc)
	if stats.TodaySales, err = s.saleRepo.TotalBetween(midnight, midnight); err != nil {
		return nil, err
	}

	return stats, nil
}

// GetTopProducts ranks products by quantity sold across recent sales.
// The aggregation is in-memory over a bounded window, not a SQL rollup.
func (s *reportService) GetTopProducts(limit int) ([]TopProduct, error) {
	if limit <= 0 {
		limit = 5
	}

	sales, err := s.saleRepo.FindRecent(recentSalesWindow)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[uuid.UUID]*TopProduct)
	for _, sale := range sales {
		for _, item := range sale.Items {
			entry, ok := byProduct[item.ProductID]
			if !ok {
				entry = &TopProduct{ProductID: item.ProductID}
				if item.Product != nil {
					entry.Name = item.Product.Name
				}
				byProduct[item.ProductID] = entry
			}
			entry.Qty += item.Qty
			entry.LineTotal += item.Subtotal
		}
	}

	ranked := make([]TopProduct, 0, len(byProduct))
	for _, entry := range byProduct {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Qty != ranked[j].Qty {
			return ranked[i].Qty > ranked[j].Qty
		}
		return ranked[i].LineTotal > ranked[j].LineTotal
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (s *reportService) GetStockMovementChart(days int) ([]repository.DailyMovement, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)
	return s.movementRepo.DailyTotals(startDate, endDate)
}

// GetReferenceData serves the shared dropdown lists through the
// read-through cache; the owning services invalidate on mutation
func (s *reportService) GetReferenceData() (*ReferenceData, error) {
	products, err := s.refCache.GetOrLoad(cache.KeyProducts, func() (interface{}, error) {
		return s.productRepo.FindAll()
	})
	if err != nil {
		return nil, err
	}
	customers, err := s.refCache.GetOrLoad(cache.KeyCustomers, func() (interface{}, error) {
		return s.customerRepo.FindAll()
	})
	if err != nil {
		return nil, err
	}
	suppliers, err := s.refCache.GetOrLoad(cache.KeySuppliers, func() (interface{}, error) {
		return s.supplierRepo.FindAll()
	})
	if err != nil {
		return nil, err
	}

	return &ReferenceData{
		Products:  products.([]model.Product),
		Customers: customers.([]model.Customer),
		Suppliers: suppliers.([]model.Supplier),
	}, nil
}
