// Package postgres implements store.Store on PostgreSQL through a pgx pool.
// The schema is managed by golang-migrate from the embedded migrations
// directory.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/store"
)

var _ store.Store = (*Store)(nil)

// Store provides PostgreSQL-backed persistence.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// Open connects to databaseURL, runs migrations, and returns a ready store.
func Open(ctx context.Context, databaseURL string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	version, err := Migrate(pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	logger.Debug("postgres store opened", "schema_version", version)

	return &Store{pool: pool, logger: logger}, nil
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases every pooled connection.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Pool exposes the pool for operator tooling and tests.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// CountReferences implements domain.DependentCounter.
func (s *Store) CountReferences(ctx context.Context, child domain.Entity, column, id string) (int, error) {
	q, err := store.ReferenceQuery(child, column, "$1")
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.pool.QueryRow(ctx, q, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count references: %w", err)
	}
	return n, nil
}

func (s *Store) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, s.pool, fn)
}

// utc normalizes timestamps read back from timestamptz columns.
func utc(ts ...*time.Time) {
	for _, t := range ts {
		*t = t.UTC()
	}
}
