package service

import (
	"errors"
	"time"

	"go-pos-backoffice/internal/model"

	"gorm.io/gorm"
)

var ErrEmptyBackup = errors.New("backup document has no collections")

// BackupDocument is the single JSON file produced by export and accepted
// verbatim by restore
type BackupDocument struct {
	ExportedAt     time.Time             `json:"exported_at"`
	Products       []model.Product       `json:"products"`
	Customers      []model.Customer      `json:"customers"`
	Suppliers      []model.Supplier      `json:"suppliers"`
	Accounts       []model.Account       `json:"accounts"`
	Sales          []model.Sale          `json:"sales"`
	Purchases      []model.Purchase      `json:"purchases"`
	PurchasePlans  []model.PurchasePlan  `json:"purchase_plans"`
	Expenses       []model.Expense       `json:"expenses"`
	Recipes        []model.Recipe        `json:"recipes"`
	StockMovements []model.StockMovement `json:"stock_movements"`
}

type BackupService interface {
	Export() (*BackupDocument, error)
	Restore(doc *BackupDocument, userID string) error
}

type backupService struct {
	db *gorm.DB
}

func NewBackupService(db *gorm.DB) BackupService {
	return &backupService{db: db}
}

func (s *backupService) Export() (*BackupDocument, error) {
	doc := &BackupDocument{ExportedAt: time.Now()}

	collect := []struct {
		dest interface{}
	}{
		{&doc.Products},
		{&doc.Customers},
		{&doc.Suppliers},
		{&doc.Accounts},
		{&doc.Expenses},
		{&doc.Recipes},
		{&doc.StockMovements},
	}
	for _, c := range collect {
		if err := s.db.Find(c.dest).Error; err != nil {
			return nil, err
		}
	}

	// Documents with line items carry them embedded
	if err := s.db.Preload("Items").Find(&doc.Sales).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Items").Find(&doc.Purchases).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Items").Find(&doc.PurchasePlans).Error; err != nil {
		return nil, err
	}

	return doc, nil
}

// Restore wipes every collection and reinserts the document's contents.
// All-or-nothing: any failure rolls the database back to its prior state.
func (s *backupService) Restore(doc *BackupDocument, userID string) error {
	if doc == nil {
		return ErrEmptyBackup
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// Children before parents
		wipeOrder := []interface{}{
			&model.StockMovement{},
			&model.Recipe{},
			&model.SaleItem{},
			&model.Sale{},
			&model.PurchaseItem{},
			&model.Purchase{},
			&model.PurchasePlanItem{},
			&model.PurchasePlan{},
			&model.Expense{},
			&model.Account{},
			&model.Customer{},
			&model.Supplier{},
			&model.Product{},
		}
		for _, table := range wipeOrder {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table).Error; err != nil {
				return err
			}
		}

		insert := []struct {
			count int
			run   func() error
		}{
			{len(doc.Products), func() error { return tx.Create(&doc.Products).Error }},
			{len(doc.Customers), func() error { return tx.Create(&doc.Customers).Error }},
			{len(doc.Suppliers), func() error { return tx.Create(&doc.Suppliers).Error }},
			{len(doc.Accounts), func() error { return tx.Create(&doc.Accounts).Error }},
			{len(doc.Sales), func() error { return tx.Create(&doc.Sales).Error }},
			{len(doc.Purchases), func() error { return tx.Create(&doc.Purchases).Error }},
			{len(doc.PurchasePlans), func() error { return tx.Create(&doc.PurchasePlans).Error }},
			{len(doc.Expenses), func() error { return tx.Create(&doc.Expenses).Error }},
			{len(doc.Recipes), func() error { return tx.Create(&doc.Recipes).Error }},
			{len(doc.StockMovements), func() error { return tx.Create(&doc.StockMovements).Error }},
		}
		for _, step := range insert {
			if step.count == 0 {
				continue
			}
			if err := step.run(); err != nil {
				return err
			}
		}

		return nil
	})
}
