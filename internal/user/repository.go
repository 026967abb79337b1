package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const pgUniqueViolation = "23505"

var (
	ErrUserNotFound = errors.New("user not found")
)

type Repository interface {
	createUser(ctx context.Context, user *User) error
	emailExists(ctx context.Context, email string) (bool, error)
	getUserIDByEmail(ctx context.Context, email string) (string, error)
	userExists(ctx context.Context, userID string) (bool, error)
	getMonthLimit(ctx context.Context, userID string) (decimal.NullDecimal, error)
	updateMonthLimit(ctx context.Context, userID string, limit decimal.Decimal) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) Repository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) createUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email, username, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at;
	`
	err := r.db.QueryRowContext(ctx, query, user.ID, user.Email, user.Username, user.PasswordHash).Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("could not create user: %w", err)
	}
	return nil
}

func (r *userRepository) emailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)"
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("could not check email: %w", err)
	}
	return exists, nil
}

func (r *userRepository) getUserIDByEmail(ctx context.Context, email string) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("could not find user: %w", err)
	}
	return id, nil
}

func (r *userRepository) userExists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)"
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("could not check user: %w", err)
	}
	return exists, nil
}

func (r *userRepository) getMonthLimit(ctx context.Context, userID string) (decimal.NullDecimal, error) {
	var limit decimal.NullDecimal
	err := r.db.QueryRowContext(ctx, "SELECT month_limit FROM users WHERE id = $1", userID).Scan(&limit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.NullDecimal{}, ErrUserNotFound
		}
		return decimal.NullDecimal{}, fmt.Errorf("could not read month limit: %w", err)
	}
	return limit, nil
}

func (r *userRepository) updateMonthLimit(ctx context.Context, userID string, limit decimal.Decimal) error {
	query := `
        UPDATE users
        SET month_limit = $1,
            updated_at = NOW()
        WHERE id = $2
    `
	res, err := r.db.ExecContext(ctx, query, limit, userID)
	if err != nil {
		return fmt.Errorf("could not update month limit: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not update month limit: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
