package service

import (
	"errors"
	"fmt"
	"time"

	"go-pos-backoffice/pkg/format"
	"go-pos-backoffice/pkg/validator"
)

// business timezone, shared with the ledger's date-range bounds
var jakartaLoc = format.Jakarta

// Errors shared by the document services
var (
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrAccountRequired   = errors.New("source account is required for CASH/TRANSFER payment")
	ErrAccountNotFound   = errors.New("source account not found or inactive")
	ErrInsufficientStock = errors.New("insufficient stock remaining")
	ErrEmptyItems        = errors.New("at least one item is required")
)

func parseDate(dateStr string) (time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01-02", dateStr, jakartaLoc)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return parsed, nil
}

// parseOptionalDate maps "" to nil for open-ended range filters
func parseOptionalDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}
	parsed, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func validationError(errs []*validator.ErrorResponse) error {
	first := errs[0]
	return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
}
