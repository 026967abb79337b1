package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/BillPlatform/internal/finance/domain"
	financeErrors "github.com/sebuszqo/BillPlatform/internal/finance/errors"
)

// BillEventPublisher announces bills once they are stored.
type BillEventPublisher interface {
	PublishBillRecorded(ctx context.Context, bill domain.Bill) error
}

type BillService struct {
	repo      domain.BillRepository
	publisher BillEventPublisher
	now       func() time.Time
}

// NewBillService accepts a nil publisher, in which case no events are sent.
func NewBillService(repo domain.BillRepository, publisher BillEventPublisher) *BillService {
	return &BillService{repo: repo, publisher: publisher, now: time.Now}
}

// AddBill records the bill as given. Whether the user and bill type exist is
// decided by the caller or, failing that, by storage.
func (s *BillService) AddBill(ctx context.Context, bill *domain.Bill) error {
	if err := bill.Validate(); err != nil {
		return err
	}

	bill.ID = uuid.NewString()
	if bill.BillDate.IsZero() {
		bill.BillDate = s.now().UTC()
	}

	if err := s.repo.Save(ctx, *bill); err != nil {
		return err
	}

	// The bill is already stored, so a failed publish is only logged.
	if s.publisher != nil {
		if err := s.publisher.PublishBillRecorded(ctx, *bill); err != nil {
			slog.ErrorContext(ctx, "Failed to publish bill event", "bill_id", bill.ID, "error", err)
		}
	}
	return nil
}

func (s *BillService) AllBillsForUser(ctx context.Context, userID string) ([]domain.Bill, error) {
	bills, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(bills) == 0 {
		return nil, financeErrors.ErrNoBills
	}
	return bills, nil
}

func (s *BillService) AllBillsForUserAndCategory(ctx context.Context, userID, categoryID string) ([]domain.Bill, error) {
	bills, err := s.repo.FindByUserAndCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	if len(bills) == 0 {
		return nil, financeErrors.ErrNoBills
	}
	return bills, nil
}
