package dbclient

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"userhub/pkg/logger"
)

// Константы для сообщений логгера пула.
const (
	LogPoolConnecting = "connecting to Postgres connection pool"
	LogPoolConnected  = "successfully connected to Postgres connection pool"
	LogPoolClosing    = "closing Postgres connection pool"
)

// Константы для сообщений об ошибках пула.
const (
	ErrParsePoolConfig = "failed to parse pool config"
	ErrCreatePool      = "failed to create connection pool"
	ErrPingDatabase    = "failed to ping database"
	errExecuteQuery    = "error executing query"
	errFetchAllRows    = "error fetching all rows"
	errFetchOneRow     = "error fetching one row"
)

// Querier покрывает операции pgxpool.Pool, используемые клиентом.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

// PoolClient реализует Client поверх pgxpool.
type PoolClient struct {
	dsn            string
	minConn        int
	maxConn        int
	acquireTimeout time.Duration
	pool           Querier
}

// NewPoolClient создает клиента пула соединений. Соединение
// устанавливается отдельным вызовом Connect.
func NewPoolClient(dsn string, minConn, maxConn int, acquireTimeout time.Duration) *PoolClient {
	return &PoolClient{
		dsn:            dsn,
		minConn:        minConn,
		maxConn:        maxConn,
		acquireTimeout: acquireTimeout,
	}
}

// NewPoolClientFromQuerier создает клиента поверх готового пула.
func NewPoolClientFromQuerier(pool Querier, acquireTimeout time.Duration) *PoolClient {
	return &PoolClient{pool: pool, acquireTimeout: acquireTimeout}
}

// Connect инициализирует пул соединений, если он еще не создан.
func (c *PoolClient) Connect(ctx context.Context) error {
	if c.pool != nil {
		return nil
	}

	log := logger.Log(ctx)
	log.Info(ctx, LogPoolConnecting,
		zap.Int("min_conn", c.minConn),
		zap.Int("max_conn", c.maxConn))

	poolCfg, err := pgxpool.ParseConfig(c.dsn)
	if err != nil {
		log.Error(ctx, ErrParsePoolConfig, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrParsePoolConfig, err)
	}

	poolCfg.MinConns = int32(c.minConn)
	poolCfg.MaxConns = int32(c.maxConn)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error(ctx, ErrCreatePool, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Error(ctx, ErrPingDatabase, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}

	log.Info(ctx, LogPoolConnected)
	c.pool = pool
	return nil
}

// Close закрывает пул соединений.
func (c *PoolClient) Close(ctx context.Context) error {
	if c.pool == nil {
		return nil
	}
	logger.Log(ctx).Info(ctx, LogPoolClosing)
	c.pool.Close()
	c.pool = nil
	return nil
}

// Ping проверяет доступность базы данных.
func (c *PoolClient) Ping(ctx context.Context) error {
	if c.pool == nil {
		return ErrNotConnected
	}
	return c.pool.Ping(ctx)
}

// Execute выполняет запрос и возвращает число затронутых строк.
func (c *PoolClient) Execute(ctx context.Context, query string, args ...any) (int64, error) {
	if c.pool == nil {
		return 0, ErrNotConnected
	}

	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	tag, err := c.pool.Exec(opCtx, query, args...)
	if err != nil {
		logger.Log(ctx).Error(ctx, errExecuteQuery, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", errExecuteQuery, err)
	}

	return tag.RowsAffected(), nil
}

// FetchAll возвращает все строки результата запроса.
func (c *PoolClient) FetchAll(ctx context.Context, query string, args ...any) ([]Row, error) {
	if c.pool == nil {
		return nil, ErrNotConnected
	}

	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	rows, err := c.pool.Query(opCtx, query, args...)
	if err != nil {
		logger.Log(ctx).Error(ctx, errFetchAllRows, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFetchAllRows, err)
	}

	return collectRows(rows)
}

// FetchOne возвращает первую строку результата запроса или nil,
// если запрос не вернул строк.
func (c *PoolClient) FetchOne(ctx context.Context, query string, args ...any) (Row, error) {
	if c.pool == nil {
		return nil, ErrNotConnected
	}

	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	rows, err := c.pool.Query(opCtx, query, args...)
	if err != nil {
		logger.Log(ctx).Error(ctx, errFetchOneRow, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFetchOneRow, err)
	}

	collected, err := collectRows(rows)
	if err != nil {
		return nil, err
	}
	if len(collected) == 0 {
		return nil, nil
	}
	return collected[0], nil
}

// opContext ограничивает операцию таймаутом захвата слота пула:
// исчерпанный пул завершает операцию ошибкой, а не зависанием.
func (c *PoolClient) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.acquireTimeout > 0 {
		return context.WithTimeout(ctx, c.acquireTimeout)
	}
	return ctx, func() {}
}
