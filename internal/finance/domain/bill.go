package domain

import (
	"context"
	"time"

	"github.com/sebuszqo/BillPlatform/internal/finance/errors"
	"github.com/shopspring/decimal"
)

const (
	maxRemarkLength = 200
	// amountScale matches the scale of the bills.amount column.
	amountScale = 2
)

type Bill struct {
	ID         string          `json:"billID"`
	UserID     string          `json:"indUserID"`
	CategoryID string          `json:"billTypeID"`
	Amount     decimal.Decimal `json:"amount"`
	BillDate   time.Time       `json:"billDate"`
	Remark     string          `json:"remark"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func (b *Bill) Validate() error {
	if b.UserID == "" {
		return errors.NewValidationError("User ID must be provided")
	}
	if b.CategoryID == "" {
		return errors.NewValidationError("Bill type ID must be provided")
	}
	if !b.Amount.Equal(b.Amount.Round(amountScale)) {
		return errors.NewValidationError("Amount must have at most two decimal places")
	}
	if len(b.Remark) > maxRemarkLength {
		return errors.NewValidationError("Remark must be of length less than 200")
	}
	return nil
}

type BillRepository interface {
	Save(ctx context.Context, bill Bill) error
	// FindByUser and FindByUserAndCategory return bills in insertion order.
	FindByUser(ctx context.Context, userID string) ([]Bill, error)
	FindByUserAndCategory(ctx context.Context, userID, categoryID string) ([]Bill, error)
}
