package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBackend stores collections as JSONB documents in the collections
// table created by the db migrations.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

func NewPostgresBackend(pool *pgxpool.Pool) *PostgresBackend {
	return &PostgresBackend{pool: pool}
}

func (b *PostgresBackend) Driver() string { return DriverPostgres }

// Pool exposes the underlying pool for migrations and health reporting.
func (b *PostgresBackend) Pool() *pgxpool.Pool { return b.pool }

func (b *PostgresBackend) Load(ctx context.Context, name string) ([]byte, error) {
	var payload []byte
	err := b.pool.QueryRow(ctx, `SELECT payload FROM collections WHERE name = $1`, name).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", name, err)
	}
	return payload, nil
}

func (b *PostgresBackend) Save(ctx context.Context, name string, payload []byte) error {
	if err := validateName(name); err != nil {
		return err
	}
	_, err := b.pool.Exec(ctx, `
		INSERT INTO collections (name, payload, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()`,
		name, string(payload),
	)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", name, err)
	}
	return nil
}

func (b *PostgresBackend) Ping(ctx context.Context) error { return b.pool.Ping(ctx) }

func (b *PostgresBackend) Close() error {
	b.pool.Close()
	return nil
}
