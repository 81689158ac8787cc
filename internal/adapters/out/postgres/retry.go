package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes that signal a retriable transaction failure.
const (
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
)

// IsRetriable reports whether the error is a transient transaction failure
// that a clean re-run can resolve.
func IsRetriable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == serializationFailure || pgErr.Code == deadlockDetected
}

// WithRetry runs op, re-running it on serialization failures and deadlocks
// with exponential backoff. Business errors pass through untouched on the
// first occurrence. The operation must be safe to re-run from scratch, which
// every unit-of-work-scoped handler is.
func WithRetry(ctx context.Context, op func(ctx context.Context) error) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(
		backoff.NewExponentialBackOff(backoff.WithInitialInterval(10*time.Millisecond)), 3,
	), ctx)

	return backoff.Retry(func() error {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if IsRetriable(err) {
			return err
		}
		return backoff.Permanent(err)
	}, policy)
}
