package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/sebuszqo/BillPlatform/internal/finance/domain"
	financeErrors "github.com/sebuszqo/BillPlatform/internal/finance/errors"
)

// UserDirectory is the slice of the user service the registry depends on.
type UserDirectory interface {
	UserExists(ctx context.Context, userID string) (bool, error)
}

type CategoryService struct {
	repo  domain.CategoryRepository
	users UserDirectory
}

func NewCategoryService(repo domain.CategoryRepository, users UserDirectory) *CategoryService {
	return &CategoryService{repo: repo, users: users}
}

func (s *CategoryService) CreateCategory(ctx context.Context, userID, name, icon string) (*domain.BillCategory, error) {
	category := domain.BillCategory{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   name,
		Icon:   icon,
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.users.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, financeErrors.ErrUnknownUser
	}

	if err := s.repo.Save(ctx, category); err != nil {
		return nil, err
	}
	return &category, nil
}

// CategoryExists checks the id globally, whoever owns the category.
func (s *CategoryService) CategoryExists(ctx context.Context, categoryID string) (bool, error) {
	return s.repo.ExistsByID(ctx, categoryID)
}

func (s *CategoryService) UserCategories(ctx context.Context, userID string) ([]domain.BillCategory, error) {
	categories, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, financeErrors.ErrNoCategories
	}
	return categories, nil
}
