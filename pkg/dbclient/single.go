package dbclient

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"userhub/pkg/logger"
)

// Константы для сообщений логгера одиночного соединения.
const (
	LogSingleConnecting = "connecting to Postgres with a single connection"
	LogSingleConnected  = "successfully connected to Postgres"
	LogSingleClosing    = "closing Postgres connection"
)

// Константы для сообщений об ошибках одиночного соединения.
const (
	ErrConnect    = "failed to connect to database"
	errBeginTx    = "failed to begin transaction"
	errCommitTx   = "failed to commit transaction"
	errRollbackTx = "failed to rollback transaction"
	errCloseConn  = "failed to close connection"
)

// Conn покрывает операции pgx.Conn, используемые клиентом.
type Conn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// SingleClient реализует Client поверх одного соединения pgx,
// сериализуемого мьютексом. Записи выполняются в транзакции:
// при ошибке состояние откатывается до того, как ошибка уйдет выше.
type SingleClient struct {
	dsn  string
	mu   sync.Mutex
	conn Conn
}

// NewSingleClient создает клиента одиночного соединения.
func NewSingleClient(dsn string) *SingleClient {
	return &SingleClient{dsn: dsn}
}

// NewSingleClientFromConn создает клиента поверх готового соединения.
func NewSingleClientFromConn(conn Conn) *SingleClient {
	return &SingleClient{conn: conn}
}

// Connect устанавливает соединение, если оно еще не установлено.
func (c *SingleClient) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}

	log := logger.Log(ctx)
	log.Info(ctx, LogSingleConnecting)

	conn, err := pgx.Connect(ctx, c.dsn)
	if err != nil {
		log.Error(ctx, ErrConnect, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrConnect, err)
	}

	log.Info(ctx, LogSingleConnected)
	c.conn = conn
	return nil
}

// Close закрывает соединение.
func (c *SingleClient) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}

	logger.Log(ctx).Info(ctx, LogSingleClosing)
	if err := c.conn.Close(ctx); err != nil {
		return fmt.Errorf("%s: %w", errCloseConn, err)
	}
	c.conn = nil
	return nil
}

// Ping проверяет доступность базы данных.
func (c *SingleClient) Ping(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrNotConnected
	}
	return c.conn.Ping(ctx)
}

// Execute выполняет запрос в транзакции и возвращает число затронутых
// строк. При ошибке транзакция откатывается до возврата ошибки.
func (c *SingleClient) Execute(ctx context.Context, query string, args ...any) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return 0, ErrNotConnected
	}

	log := logger.Log(ctx)

	tx, err := c.conn.Begin(ctx)
	if err != nil {
		log.Error(ctx, errBeginTx, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", errBeginTx, err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		log.Error(ctx, errExecuteQuery, zap.Error(err))
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			log.Error(ctx, errRollbackTx, zap.Error(rollbackErr))
		}
		return 0, fmt.Errorf("%s: %w", errExecuteQuery, err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, errCommitTx, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", errCommitTx, err)
	}

	return tag.RowsAffected(), nil
}

// FetchAll возвращает все строки результата запроса.
func (c *SingleClient) FetchAll(ctx context.Context, query string, args ...any) ([]Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, ErrNotConnected
	}

	rows, err := c.conn.Query(ctx, query, args...)
	if err != nil {
		logger.Log(ctx).Error(ctx, errFetchAllRows, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFetchAllRows, err)
	}

	return collectRows(rows)
}

// FetchOne возвращает первую строку результата запроса или nil,
// если запрос не вернул строк.
func (c *SingleClient) FetchOne(ctx context.Context, query string, args ...any) (Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, ErrNotConnected
	}

	rows, err := c.conn.Query(ctx, query, args...)
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
