package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrInUse    = errors.New("record is still referenced")
)

// foreignKeyViolation is the SQLSTATE postgres reports when a delete would
// orphan a join row or an insert references a missing row.
const foreignKeyViolation = "23503"

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return ErrInUse
	}
	return err
}

// translateLinkError is translateError for inserts into a join table, where
// a foreign key violation means one side of the pair is missing.
func translateLinkError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return ErrNotFound
	}
	return translateError(err)
}
