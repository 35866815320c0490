// Package dbclient предоставляет единый интерфейс доступа к базе данных
// поверх двух бекендов: пула соединений и одиночного соединения.
// Выбор бекенда задается конфигурацией, а не кодом вызывающей стороны.
package dbclient

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Row - одна строка результата в виде отображения имя колонки -> значение.
type Row map[string]any

// Client - единый интерфейс подключения и выполнения запросов.
// Execute возвращает число затронутых строк, FetchOne возвращает nil
// для отсутствующей строки - отсутствие не является ошибкой.
type Client interface {
	Connect(ctx context.Context) error
	Close(ctx context.Context) error
	Ping(ctx context.Context) error
	Execute(ctx context.Context, query string, args ...any) (int64, error)
	FetchAll(ctx context.Context, query string, args ...any) ([]Row, error)
	FetchOne(ctx context.Context, query string, args ...any) (Row, error)
}

// Поддерживаемые режимы подключения.
const (
	ModePool   = "pool"
	ModeSingle = "single"
)

// Ошибки клиента базы данных.
var (
	ErrNotConnected    = errors.New("database client is not connected")
	ErrUnsupportedMode = errors.New("unsupported database mode")
)

// Config описывает параметры подключения к базе данных.
type Config struct {
	DSN            string
	Mode           string
	MinConn        int
	MaxConn        int
	AcquireTimeout time.Duration
}

// New создает клиента для режима, указанного в конфигурации.
func New(cfg Config) (Client, error) {
	switch cfg.Mode {
	case ModePool, "":
		return NewPoolClient(cfg.DSN, cfg.MinConn, cfg.MaxConn, cfg.AcquireTimeout), nil
	case ModeSingle:
		return NewSingleClient(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMode, cfg.Mode)
	}
}
