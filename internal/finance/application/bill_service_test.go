package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sebuszqo/BillPlatform/internal/finance/domain"
	financeErrors "github.com/sebuszqo/BillPlatform/internal/finance/errors"
	"github.com/sebuszqo/BillPlatform/internal/finance/infrastructure"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBill_AssignsIDAndDate(t *testing.T) {
	repo := infrastructure.NewMemoryBillRepository(nil)
	service := NewBillService(repo, nil)
	fixed := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	bill := &domain.Bill{UserID: "u-1", CategoryID: "c-1", Amount: decimal.RequireFromString("12.50")}
	require.NoError(t, service.AddBill(context.Background(), bill))

	assert.NotEmpty(t, bill.ID)
	assert.Equal(t, fixed, bill.BillDate)
	assert.Equal(t, 1, repo.Count())
}

func TestAddBill_KeepsGivenDate(t *testing.T) {
	repo := infrastructure.NewMemoryBillRepository(nil)
	service := NewBillService(repo, nil)
	date := time.Date(2023, time.December, 24, 0, 0, 0, 0, time.UTC)

	bill := &domain.Bill{UserID: "u-1", CategoryID: "c-1", BillDate: date}
	require.NoError(t, service.AddBill(context.Background(), bill))
	assert.Equal(t, date, bill.BillDate)
}

func TestAddBill_RequiresIdentifiers(t *testing.T) {
	repo := infrastructure.NewMemoryBillRepository(nil)
	service := NewBillService(repo, nil)

	err := service.AddBill(context.Background(), &domain.Bill{UserID: "u-1"})
	assert.True(t, financeErrors.IsValidationError(err))

	err = service.AddBill(context.Background(), &domain.Bill{CategoryID: "c-1"})
	assert.True(t, financeErrors.IsValidationError(err))

	assert.Equal(t, 0, repo.Count())
}

func TestAddBill_RemarkTooLong(t *testing.T) {
	service := NewBillService(infrastructure.NewMemoryBillRepository(nil), nil)

	err := service.AddBill(context.Background(), &domain.Bill{UserID: "u-1", CategoryID: "c-1", Remark: strings.Repeat("x", 201)})
	assert.True(t, financeErrors.IsValidationError(err))
}

func TestAddBill_AmountScale(t *testing.T) {
	repo := infrastructure.NewMemoryBillRepository(nil)
	service := NewBillService(repo, nil)

	err := service.AddBill(context.Background(), &domain.Bill{UserID: "u-1", CategoryID: "c-1", Amount: decimal.RequireFromString("1.234")})
	assert.True(t, financeErrors.IsValidationError(err))
	assert.Equal(t, 0, repo.Count())

	require.NoError(t, service.AddBill(context.Background(), &domain.Bill{UserID: "u-1", CategoryID: "c-1", Amount: decimal.RequireFromString("1.230")}))
	assert.Equal(t, 1, repo.Count())
}

func TestAddBill_StorageLookupErrorPropagates(t *testing.T) {
	lookupErr := errors.New("category store unavailable")
	categories := infrastructure.NewMemoryCategoryRepository()
	categories.Err = lookupErr
	repo := infrastructure.NewMemoryBillRepository(categories)
	service := NewBillService(repo, nil)

	err := service.AddBill(context.Background(), &domain.Bill{UserID: "u-1", CategoryID: "c-1"})
	assert.ErrorIs(t, err, lookupErr)
	assert.NotErrorIs(t, err, financeErrors.ErrReferenceViolation)
	assert.Equal(t, 0, repo.Count())
}

func TestAddBill_StorageRejectsUnknownCategory(t *testing.T) {
	categories := infrastructure.NewMemoryCategoryRepository()
	service := NewBillService(infrastructure.NewMemoryBillRepository(categories), nil)

	err := service.AddBill(context.Background(), &domain.Bill{UserID: "u-1", CategoryID: "missing"})
	assert.ErrorIs(t, err, financeErrors.ErrReferenceViolation)
}

func TestAllBillsForUser(t *testing.T) {
	service := NewBillService(infrastructure.NewMemoryBillRepository(nil), nil)
	ctx := context.Background()

	_, err := service.AllBillsForUser(ctx, "u-1")
	assert.ErrorIs(t, err, financeErrors.ErrNoBills)
	assert.True(t, financeErrors.IsNoData(err))

	for _, remark := range []string{"first", "second", "third"} {
		require.NoError(t, service.AddBill(ctx, &domain.Bill{UserID: "u-1", CategoryID: "c-1", Remark: remark}))
	}
	require.NoError(t, service.AddBill(ctx, &domain.Bill{UserID: "u-2", CategoryID: "c-1", Remark: "other"}))

	bills, err := service.AllBillsForUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, bills, 3)
	assert.Equal(t, "first", bills[0].Remark)
	assert.Equal(t, "third", bills[2].Remark)
}

func TestAllBillsForUserAndCategory(t *testing.T) {
	service := NewBillService(infrastructure.NewMemoryBillRepository(nil), nil)
	ctx := context.Background()

	require.NoError(t, service.AddBill(ctx, &domain.Bill{UserID: "u-1", CategoryID: "food", Remark: "lunch"}))
	require.NoError(t, service.AddBill(ctx, &domain.Bill{UserID: "u-1", CategoryID: "rent", Remark: "march"}))
	require.NoError(t, service.AddBill(ctx, &domain.Bill{UserID: "u-1", CategoryID: "food", Remark: "dinner"}))

	bills, err := service.AllBillsForUserAndCategory(ctx, "u-1", "food")
	require.NoError(t, err)
	require.Len(t, bills, 2)
	assert.Equal(t, "lunch", bills[0].Remark)
	assert.Equal(t, "dinner", bills[1].Remark)

	_, err = service.AllBillsForUserAndCategory(ctx, "u-1", "travel")
	assert.ErrorIs(t, err, financeErrors.ErrNoBills)
}

type recordingPublisher struct {
	published []domain.Bill
	err       error
}

func (p *recordingPublisher) PublishBillRecorded(_ context.Context, bill domain.Bill) error {
	p.published = append(p.published, bill)
	return p.err
}

func TestAddBill_PublishesStoredBill(t *testing.T) {
	publisher := &recordingPublisher{}
	service := NewBillService(infrastructure.NewMemoryBillRepository(nil), publisher)

	bill := &domain.Bill{UserID: "u-1", CategoryID: "c-1", Amount: decimal.NewFromInt(40)}
	require.NoError(t, service.AddBill(context.Background(), bill))

	require.Len(t, publisher.published, 1)
	assert.Equal(t, bill.ID, publisher.published[0].ID)
}

func TestAddBill_PublishFailureDoesNotFailBill(t *testing.T) {
	repo := infrastructure.NewMemoryBillRepository(nil)
	publisher := &recordingPublisher{err: errors.New("broker unavailable")}
	service := NewBillService(repo, publisher)

	require.NoError(t, service.AddBill(context.Background(), &domain.Bill{UserID: "u-1", CategoryID: "c-1"}))
	assert.Equal(t, 1, repo.Count())
}

func TestAddBill_NothingPublishedWhenStorageFails(t *testing.T) {
	publisher := &recordingPublisher{}
	categories := infrastructure.NewMemoryCategoryRepository()
	service := NewBillService(infrastructure.NewMemoryBillRepository(categories), publisher)

	err := service.AddBill(context.Background(), &domain.Bill{UserID: "u-1", CategoryID: "missing"})
	require.Error(t, err)
	assert.Empty(t, publisher.published)
}
