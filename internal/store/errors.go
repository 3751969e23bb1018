package store

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrUniqueViolation     = errors.New("unique constraint violated")
	ErrForeignKeyViolation = errors.New("foreign key constraint violated")
	ErrCheckViolation      = errors.New("check constraint violated")
	ErrRetryable           = errors.New("database temporarily unavailable")
)

const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeLockNotAvailable     = "55P03"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	classConnectionException = "08"
)

func pgCode(err error) string {
	var pqErr *pq.Error

	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// classify tags driver errors with the store's sentinels so callers can use
// errors.Is regardless of which driver (lib/pq or pgx) is configured.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	code := pgCode(err)

	switch {
	case code == codeUniqueViolation:
		return fmt.Errorf("%w: %w", ErrUniqueViolation, err)
	case code == codeForeignKeyViolation:
		return fmt.Errorf("%w: %w", ErrForeignKeyViolation, err)
	case code == codeCheckViolation:
		return fmt.Errorf("%w: %w", ErrCheckViolation, err)
	case code == codeLockNotAvailable, code == codeSerializationFailure, code == codeDeadlockDetected,
		strings.HasPrefix(code, classConnectionException):
		return fmt.Errorf("%w: %w", ErrRetryable, err)
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || pgconn.SafeToRetry(err) {
		return fmt.Errorf("%w: %w", ErrRetryable, err)
	}

	return err
}
