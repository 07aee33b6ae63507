package postgres

import (
	"context"
	"fmt"
)

type counterRepository struct {
	q DBTX
}

// Increment is a single upsert round-trip, so concurrent callers never read the same value.
func (r *counterRepository) Increment(ctx context.Context, name string, start int64) (int64, error) {
	var seq int64
	err := r.q.QueryRowContext(ctx,
		`INSERT INTO counters (name, seq) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET seq = counters.seq + 1
		 RETURNING seq`, name, start+1).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter %s: %w", name, err)
	}
	return seq, nil
}
