package config

import (
	"fmt"
	"time"
)

// PostgresConfig содержит настройки подключения к базе данных.
// Mode выбирает режим клиента: pool или single.
type PostgresConfig struct {
	Host           string `yaml:"host" env:"USERS_POSTGRES_HOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"USERS_POSTGRES_PORT" env-default:"5432"`
	User           string `yaml:"user" env:"USERS_POSTGRES_USER" env-default:"postgres"`
	Password       string `yaml:"password" env:"USERS_POSTGRES_PASSWORD" env-default:"postgres"`
	Database       string `yaml:"database" env:"USERS_POSTGRES_DB" env-default:"users"`
	Mode           string `yaml:"mode" env:"USERS_POSTGRES_MODE" env-default:"pool"`
	MinConn        int    `yaml:"min_conn" env:"USERS_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn        int    `yaml:"max_conn" env:"USERS_POSTGRES_MAX_CONN" env-default:"10"`
	AcquireTimeout int    `yaml:"acquire_timeout" env:"USERS_POSTGRES_ACQUIRE_TIMEOUT" env-default:"5"`
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

// GetAcquireTimeout возвращает таймаут получения соединения как time.Duration.
func (p *PostgresConfig) GetAcquireTimeout() time.Duration {
	return time.Duration(p.AcquireTimeout) * time.Second
}
