package infrastructure

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sebuszqo/BillPlatform/internal/finance/domain"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Save(ctx context.Context, category domain.BillCategory) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bill_types (id, user_id, name, icon, created_at)
        VALUES ($1, $2, $3, $4, NOW())`,
		category.ID, category.UserID, category.Name, category.Icon,
	)
	if err != nil {
		return fmt.Errorf("could not save bill type: %w", translateWriteError(err))
	}
	return nil
}

func (r *CategoryRepository) ExistsByID(ctx context.Context, categoryID string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM bill_types WHERE id = $1)"
	err := r.db.QueryRowContext(ctx, query, categoryID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *CategoryRepository) FindByUser(ctx context.Context, userID string) ([]domain.BillCategory, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, icon, created_at FROM bill_types WHERE user_id = $1 ORDER BY seq`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.BillCategory
	for rows.Next() {
		var category domain.BillCategory
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name, &category.Icon, &category.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}
