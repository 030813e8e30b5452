package events

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// SequenceRepository hands out per-partition monotonic sequence numbers so
// consumers can detect gaps and reorderings.
type SequenceRepository interface {
	NextSequence(ctx context.Context, partitionKey string) (int64, error)
}

// DBPool matches the methods from *pgxpool.Pool that we use.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type sequenceRepository struct {
	pool DBPool
}

func NewSequenceRepository(pool DBPool) SequenceRepository {
	return &sequenceRepository{pool: pool}
}

func (r *sequenceRepository) NextSequence(ctx context.Context, partitionKey string) (int64, error) {
	if partitionKey == "" {
		return 0, fmt.Errorf("partition key is required")
	}

	// single-statement upsert, atomic without an explicit transaction
	const query = `
INSERT INTO event_sequences (partition_key, last_sequence, updated_at)
VALUES ($1, 1, now())
ON CONFLICT (partition_key) DO UPDATE
SET last_sequence = event_sequences.last_sequence + 1,
    updated_at = now()
RETURNING last_sequence
`

	var next int64
	if err := r.pool.QueryRow(ctx, query, partitionKey).Scan(&next); err != nil {
		return 0, fmt.Errorf("increment sequence: %w", err)
	}
	return next, nil
}
