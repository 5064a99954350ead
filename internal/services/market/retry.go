package market

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phonegame/market/internal/infra/pgutils"
)

const maxTxAttempts = 3

// withRetry runs fn inside pgutils.WithTx and retries the whole transaction
// on serialization aborts and deadlock kills. Every other error surfaces
// verbatim; domain errors are never retried.
func (s *MarketService) withRetry(ctx context.Context, fn func(*sql.Tx) error) error {
	return retryTx(ctx, func() error {
		return pgutils.WithTx(ctx, s.db, fn)
	})
}

func retryTx(ctx context.Context, run func() error) error {
	var err error

	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = run()
		if err == nil || !isRetryable(err) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 10 * time.Millisecond):
		}
	}

	return err
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	// serialization_failure, deadlock_detected
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
