package user

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// limitScale matches the scale of the users.month_limit column.
const limitScale = 2

var ErrInvalidLimit = errors.New("monthly limit must be greater than zero with at most two decimal places")

// LimitService manages the per-user monthly spending limit.
type LimitService interface {
	// GetMonthlyLimit returns an invalid NullDecimal while no limit has been set.
	GetMonthlyLimit(ctx context.Context, userID string) (decimal.NullDecimal, error)
	UpdateMonthlyLimit(ctx context.Context, userID string, newLimit decimal.Decimal) (decimal.Decimal, error)
}

type limitService struct {
	repo Repository
}

func NewLimitService(repo Repository) LimitService {
	return &limitService{repo: repo}
}

func (s *limitService) GetMonthlyLimit(ctx context.Context, userID string) (decimal.NullDecimal, error) {
	return s.repo.getMonthLimit(ctx, userID)
}

func (s *limitService) UpdateMonthlyLimit(ctx context.Context, userID string, newLimit decimal.Decimal) (decimal.Decimal, error) {
	if !newLimit.IsPositive() || !newLimit.Equal(newLimit.Round(limitScale)) {
		return decimal.Zero, ErrInvalidLimit
	}

	// Unknown users are rejected here rather than leaving orphaned limit state.
	exists, err := s.repo.userExists(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	if !exists {
		return decimal.Zero, ErrUserNotFound
	}

	if err := s.repo.updateMonthLimit(ctx, userID, newLimit); err != nil {
		return decimal.Zero, err
	}
	return newLimit, nil
}
