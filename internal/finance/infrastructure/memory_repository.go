package infrastructure

import (
	"context"
	"sync"
	"time"

	"github.com/sebuszqo/BillPlatform/internal/finance/domain"
	financeErrors "github.com/sebuszqo/BillPlatform/internal/finance/errors"
)

// MemoryCategoryRepository is the in-process counterpart of CategoryRepository.
type MemoryCategoryRepository struct {
	mu         sync.RWMutex
	Categories []domain.BillCategory
	// Err, when set, is returned by ExistsByID.
	Err error
}

func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{}
}

func (m *MemoryCategoryRepository) Save(_ context.Context, category domain.BillCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	category.CreatedAt = time.Now().UTC()
	m.Categories = append(m.Categories, category)
	return nil
}

func (m *MemoryCategoryRepository) ExistsByID(_ context.Context, categoryID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return false, m.Err
	}
	for _, c := range m.Categories {
		if c.ID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryCategoryRepository) FindByUser(_ context.Context, userID string) ([]domain.BillCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var filtered []domain.BillCategory
	for _, c := range m.Categories {
		if c.UserID == userID {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// MemoryBillRepository is the in-process counterpart of BillRepository. When
// categories is set, saving a bill for an unknown bill type fails the way the
// bills foreign key does.
type MemoryBillRepository struct {
	mu         sync.RWMutex
	Bills      []domain.Bill
	categories *MemoryCategoryRepository
}

func NewMemoryBillRepository(categories *MemoryCategoryRepository) *MemoryBillRepository {
	return &MemoryBillRepository{categories: categories}
}

func (m *MemoryBillRepository) Save(ctx context.Context, bill domain.Bill) error {
	if m.categories != nil {
		exists, err := m.categories.ExistsByID(ctx, bill.CategoryID)
		if err != nil {
			return err
		}
		if !exists {
			return financeErrors.ErrReferenceViolation
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	bill.CreatedAt = time.Now().UTC()
	m.Bills = append(m.Bills, bill)
	return nil
}

func (m *MemoryBillRepository) FindByUser(_ context.Context, userID string) ([]domain.Bill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var filtered []domain.Bill
	for _, b := range m.Bills {
		if b.UserID == userID {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

func (m *MemoryBillRepository) FindByUserAndCategory(_ context.Context, userID, categoryID string) ([]domain.Bill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var filtered []domain.Bill
	for _, b := range m.Bills {
		if b.UserID == userID && b.CategoryID == categoryID {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

// Count reports how many bills are stored.
func (m *MemoryBillRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Bills)
}
