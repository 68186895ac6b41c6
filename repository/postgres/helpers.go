package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vecindapp/auth-service/domain"
)

const uniqueViolation = "23505"

// violatedConstraint returns the name of the unique constraint err broke, used
// to map registration races onto the right conflict error kind.
func violatedConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// wrapStoreErr classifies low-level store failures. A deadline hit while
// waiting for a pooled connection surfaces as a visible busy signal instead
// of a generic internal error.
func wrapStoreErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.WrapError(domain.ErrCodeStoreBusy, op+": store busy", err)
	}
	return domain.WrapError(domain.ErrCodeInternal, op+" failed", err)
}
