package db

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bruce184/OCMS/internal/config"
	"github.com/bruce184/OCMS/internal/pkg/logger"
)

// defaultQueryTimeout caps a single statement when no configuration has been
// applied yet.
const defaultQueryTimeout = 5 * time.Second

// queryTimeout is set once from config when the pool is built.
var queryTimeout = defaultQueryTimeout

// PostgresDB database connection structure
type PostgresDB struct {
	Pool *pgxpool.Pool
}

// newPoolConfig translates the application config into a pgxpool config.
// Every pooled connection carries a server-side statement_timeout, so a
// single hung query fails with a timeout error instead of blocking its
// handler indefinitely.
func newPoolConfig(cfg *config.Config) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.GetPostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)

	maxLifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection max lifetime: %w", err)
	}
	poolConfig.MaxConnLifetime = maxLifetime

	poolConfig.ConnConfig.RuntimeParams["statement_timeout"] =
		strconv.FormatInt(cfg.QueryTimeout().Milliseconds(), 10)

	return poolConfig, nil
}

// NewPostgresDB creates a new PostgreSQL connection pool. The pool bounds
// concurrent in-flight queries; requests beyond its capacity queue on
// Acquire rather than fail.
func NewPostgresDB(cfg *config.Config) (*PostgresDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := newPoolConfig(cfg)
	if err != nil {
		return nil, err
	}
	queryTimeout = cfg.QueryTimeout()

	poolConfig.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
		if err := conn.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("Unhealthy connection detected")
			return false
		}
		return true
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	return &PostgresDB{Pool: pool}, nil
}

// Close closes the pool.
func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// QueryContext derives a context carrying the configured per-query timeout.
// A caller that already set a deadline keeps its own.
func QueryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, queryTimeout)
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx pgx.Tx) error

// WithTransaction runs a function within a transaction, bounded by the
// configured query timeout.
func WithTransaction(ctx context.Context, pool *pgxpool.Pool, fn TransactionFn) error {
	ctx, cancel := QueryContext(ctx)
	defer cancel()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
