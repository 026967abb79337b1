package domain

import (
	"context"
	"time"

	"github.com/sebuszqo/BillPlatform/internal/finance/errors"
)

// BillCategory is a user-defined bill type.
type BillCategory struct {
	ID        string    `json:"billTypeID"`
	UserID    string    `json:"userID"`
	Name      string    `json:"billTypeName"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *BillCategory) Validate() error {
	if c.UserID == "" {
		return errors.NewValidationError("User ID must be provided")
	}
	if c.Name == "" {
		return errors.NewValidationError("Bill type name must be provided")
	}
	if c.Icon == "" {
		return errors.NewValidationError("Icon must be provided")
	}
	return nil
}

type CategoryRepository interface {
	Save(ctx context.Context, category BillCategory) error
	ExistsByID(ctx context.Context, categoryID string) (bool, error)
	// FindByUser lists categories in creation order.
	FindByUser(ctx context.Context, userID string) ([]BillCategory, error)
}
