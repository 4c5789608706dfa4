package cache

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps stage results in a stage_cache table, keyed on
// (stage, key). Suited for deployments that already run Postgres and
// want cached runs to survive restarts.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the cache table if it does not exist.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS stage_cache (
			stage TEXT NOT NULL,
			cache_key TEXT NOT NULL,
			data JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (stage, cache_key)
		)
	`
	if _, err := p.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create stage_cache table: %w", err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, stage Stage, key string) ([]byte, bool, error) {
	query := `
		SELECT data
		FROM stage_cache
		WHERE stage = $1 AND cache_key = $2
		LIMIT 1
	`
	var data []byte
	err := p.pool.QueryRow(ctx, query, string(stage), key).Scan(&data)
	if err != nil {
		return nil, false, nil // Cache miss
	}
	return data, true, nil
}

func (p *PostgresStore) Set(ctx context.Context, stage Stage, key string, value []byte) error {
	query := `
		INSERT INTO stage_cache (stage, cache_key, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (stage, cache_key)
		DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = NOW()
	`
	if _, err := p.pool.Exec(ctx, query, string(stage), key, value); err != nil {
		return fmt.Errorf("failed to save to db cache: %w", err)
	}
	return nil
}

func (p *PostgresStore) DropStage(ctx context.Context, stage Stage) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM stage_cache WHERE stage = $1`, string(stage)); err != nil {
		return fmt.Errorf("failed to drop stage from db cache: %w", err)
	}
	return nil
}
