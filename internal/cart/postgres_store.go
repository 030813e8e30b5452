package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBPool matches the methods from *pgxpool.Pool that the store uses.
// This allows us to mock the database in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresStore persists the serialized session state in a single JSONB slot
// per owner, upserted after every mutation.
type PostgresStore struct {
	pool DBPool
}

func NewPostgresStore(pool DBPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Save(ctx context.Context, key string, s *State) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal cart state: %w", err)
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO cart_sessions (owner_id, state, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (owner_id) DO UPDATE SET state = EXCLUDED.state, updated_at = now()
	`, key, raw)
	if err != nil {
		return fmt.Errorf("upsert cart session: %w", err)
	}
	return nil
}

func (p *PostgresStore) Load(ctx context.Context, key string) (*State, error) {
	var raw []byte
	row := p.pool.QueryRow(ctx, `SELECT state FROM cart_sessions WHERE owner_id = $1`, key)
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select cart session: %w", err)
	}

	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("unmarshal cart state: %w", err)
	}
	if s.Items == nil {
		s.Items = []Item{}
	}
	return &s, nil
}
