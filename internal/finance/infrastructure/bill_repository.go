package infrastructure

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sebuszqo/BillPlatform/internal/finance/domain"
)

const billColumns = `id, user_id, bill_type_id, amount, bill_date, remark, created_at`

type BillRepository struct {
	db *sql.DB
}

func NewBillRepository(db *sql.DB) *BillRepository {
	return &BillRepository{db: db}
}

func (r *BillRepository) Save(ctx context.Context, bill domain.Bill) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bills (id, user_id, bill_type_id, amount, bill_date, remark, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
		bill.ID, bill.UserID, bill.CategoryID, bill.Amount, bill.BillDate, bill.Remark,
	)
	if err != nil {
		return fmt.Errorf("could not save bill: %w", translateWriteError(err))
	}
	return nil
}

func (r *BillRepository) FindByUser(ctx context.Context, userID string) ([]domain.Bill, error) {
	return r.query(ctx, `SELECT `+billColumns+` FROM bills WHERE user_id = $1 ORDER BY seq`, userID)
}

func (r *BillRepository) FindByUserAndCategory(ctx context.Context, userID, categoryID string) ([]domain.Bill, error) {
	return r.query(ctx,
		`SELECT `+billColumns+` FROM bills WHERE user_id = $1 AND bill_type_id = $2 ORDER BY seq`,
		userID, categoryID)
}

func (r *BillRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.Bill, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []domain.Bill
	for rows.Next() {
		var bill domain.Bill
		if err := rows.Scan(&bill.ID, &bill.UserID, &bill.CategoryID, &bill.Amount,
			&bill.BillDate, &bill.Remark, &bill.CreatedAt); err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, rows.Err()
}
