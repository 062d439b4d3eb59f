package service

import (
	"errors"

	"go-pos-backoffice/internal/model"
	"go-pos-backoffice/internal/repository"
	"go-pos-backoffice/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrExpenseNotFound = errors.New("expense not found")

type ExpenseRequest struct {
	Category        string              `json:"category" validate:"required"`
	Description     string              `json:"description" validate:"required"`
	Amount          int64               `json:"amount" validate:"required,gt=0"`
	PaymentMethod   model.PaymentMethod `json:"payment_method" validate:"required,oneof=CASH TRANSFER CREDIT"`
	SourceAccountID *string             `json:"source_account_id" validate:"omitempty,uuid4"`
	ExpenseDate     string              `json:"expense_date" validate:"required"`
	Notes           string              `json:"notes"`
}

type ExpenseService interface {
	CreateExpense(req *ExpenseRequest, userID string) (*model.Expense, error)
	UpdateExpense(id uuid.UUID, req *ExpenseRequest, userID string) (*model.Expense, error)
	DeleteExpense(id uuid.UUID, userID string) error
	GetExpenses(startDate, endDate string, page, pageSize int) ([]model.Expense, int64, error)
	GetExpense(id uuid.UUID) (*model.Expense, error)
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	accountRepo repository.AccountRepository
	db          *gorm.DB
}

func NewExpenseService(expenseRepo repository.ExpenseRepository, accountRepo repository.AccountRepository, db *gorm.DB) ExpenseService {
	return &expenseService{
		expenseRepo: expenseRepo,
		accountRepo: accountRepo,
		db:          db,
	}
}

func (s *expenseService) CreateExpense(req *ExpenseRequest, userID string) (*model.Expense, error) {
	expense, err := s.buildExpense(req, userID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if createErr := tx.Create(expense).Error; createErr != nil {
			return createErr
		}
		if expense.PaymentMethod.AffectsCash() {
			return s.accountRepo.AdjustBalance(tx, *expense.SourceAccountID, -expense.Amount, userID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.expenseRepo.FindByID(expense.ID)
}

// UpdateExpense reverses the old balance effect and applies the new one,
// so editing amount, method, or account keeps balances consistent.
func (s *expenseService) UpdateExpense(id uuid.UUID, req *ExpenseRequest, userID string) (*model.Expense, error) {
	existing, err := s.expenseRepo.FindByID(id)
	if err != nil {
		return nil, ErrExpenseNotFound
	}

	replacement, err := s.buildExpense(req, userID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if existing.PaymentMethod.AffectsCash() && existing.SourceAccountID != nil {
			if balErr := s.accountRepo.AdjustBalance(tx, *existing.SourceAccountID, existing.Amount, userID); balErr != nil {
				return balErr
			}
		}

		existing.Category = replacement.Category
		existing.Description = replacement.Description
		existing.Amount = replacement.Amount
		existing.PaymentMethod = replacement.PaymentMethod
		existing.SourceAccountID = replacement.SourceAccountID
		existing.ExpenseDate = replacement.ExpenseDate
		existing.Notes = replacement.Notes
		existing.UpdatedBy = userID
		existing.SourceAccount = nil

		if saveErr := tx.Save(existing).Error; saveErr != nil {
			return saveErr
		}

		if existing.PaymentMethod.AffectsCash() {
			return s.accountRepo.AdjustBalance(tx, *existing.SourceAccountID, -existing.Amount, userID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.expenseRepo.FindByID(id)
}

func (s *expenseService) DeleteExpense(id uuid.UUID, userID string) error {
	expense, err := s.expenseRepo.FindByID(id)
	if err != nil {
		return ErrExpenseNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if expense.PaymentMethod.AffectsCash() && expense.SourceAccountID != nil {
			if balErr := s.accountRepo.AdjustBalance(tx, *expense.SourceAccountID, expense.Amount, userID); balErr != nil {
				return balErr
			}
		}
		return s.expenseRepo.Delete(tx, expense.ID)
	})
}

func (s *expenseService) GetExpenses(startDate, endDate string, page, pageSize int) ([]model.Expense, int64, error) {
	start, err := parseOptionalDate(startDate)
	if err != nil {
		return nil, 0, err
	}
	end, err := parseOptionalDate(endDate)
	if err != nil {
		return nil, 0, err
	}
	return s.expenseRepo.FindAll(start, end, page, pageSize)
}

func (s *expenseService) GetExpense(id uuid.UUID) (*model.Expense, error) {
	expense, err := s.expenseRepo.FindByID(id)
	if err != nil {
		return nil, ErrExpenseNotFound
	}
	return expense, nil
}

func (s *expenseService) buildExpense(req *ExpenseRequest, userID string) (*model.Expense, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	expenseDate, err := parseDate(req.ExpenseDate)
	if err != nil {
		return nil, err
	}

	var accountID *uuid.UUID
	if req.PaymentMethod.AffectsCash() {
		if req.SourceAccountID == nil {
			return nil, ErrAccountRequired
		}
		parsed, parseErr := uuid.Parse(*req.SourceAccountID)
		if parseErr != nil {
			return nil, errors.New("invalid account ID format")
		}
		account, findErr := s.accountRepo.FindByID(parsed)
		if findErr != nil || !account.IsActive {
			return nil, ErrAccountNotFound
		}
		accountID = &account.ID
	}

	expense := &model.Expense{
		Category:        req.Category,
		Description:     req.Description,
		Amount:          req.Amount,
		PaymentMethod:   req.PaymentMethod,
		SourceAccountID: accountID,
		ExpenseDate:     expenseDate,
		Notes:           req.Notes,
	}
	expense.CreatedBy = userID
	expense.UpdatedBy = userID
	return expense, nil
}
