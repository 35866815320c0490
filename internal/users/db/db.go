// Package db инициализирует хранилище сервиса пользователей.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"userhub/internal/users/config"
	"userhub/pkg/dbclient"
	"userhub/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing users database"
	LogDBInitialized     = "users database initialized successfully"
	LogMigrationStarting = "starting database migrations for users service"
)

// Константы для сообщений об ошибках.
const (
	ErrDBClient     = "failed to create database client"
	ErrDBMigrations = "failed to apply users database migrations"
	ErrDBConnection = "failed to connect to users database"
	ErrGetPath      = "failed to get path"
)

// New применяет миграции и возвращает подключенный клиент базы данных
// в режиме, заданном конфигурацией.
func New(ctx context.Context, cfg *config.PostgresConfig, migrationsDir string) (dbclient.Client, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.String("mode", cfg.Mode),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	migrationsPath := migrationsDir
	if !filepath.IsAbs(migrationsPath) {
		absPath, err := filepath.Abs(migrationsPath)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", ErrDBMigrations, ErrGetPath, err)
		}
		migrationsPath = absPath
	}
	migrationsPath = "file://" + migrationsPath

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
	if err := dbclient.MigrateDSN(ctx, cfg.GetConnectionURL(), migrationsPath); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	client, err := dbclient.New(dbclient.Config{
		DSN:            cfg.GetDSN(),
		Mode:           cfg.Mode,
		MinConn:        cfg.MinConn,
		MaxConn:        cfg.MaxConn,
		AcquireTimeout: cfg.GetAcquireTimeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBClient, err)
	}

	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return client, nil
}
