package infrastructure

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	financeErrors "github.com/sebuszqo/BillPlatform/internal/finance/errors"
)

const pgForeignKeyViolation = "23503"

func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return financeErrors.ErrReferenceViolation
	}
	return err
}
