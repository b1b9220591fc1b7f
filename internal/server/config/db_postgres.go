// Package config содержит также открытие подключения к базе данных сервера
// и применение миграций.
//
// Пакет выполняет:
//   - открытие соединения с PostgreSQL (через драйвер pgx) и настройку пула;
//   - проверку доступности базы (Ping);
//   - запуск миграций (golang-migrate).
package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v4/stdlib"
)

// pingTimeout — сколько ждём ответа базы при старте.
const pingTimeout = 5 * time.Second

// OpenDB открывает пул подключений к PostgreSQL по DSN, настраивает его
// и проверяет доступность базы.
//
// Закрывать возвращённый *sql.DB должен вызывающий.
func OpenDB(ctx context.Context, cfg DBConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// Направления миграций для Migrate.
const (
	MigrateUp   = "up"
	MigrateDown = "down"
)

// Migrate применяет (up) или откатывает (down) миграции из sourceURL,
// например file://migrations/postgres.
//
// migrate.ErrNoChange не считается ошибкой.
func Migrate(db *sql.DB, sourceURL, direction string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrations: %w", err)
	}

	switch direction {
	case MigrateUp:
		err = m.Up()
	case MigrateDown:
		err = m.Down()
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations %s: %w", direction, err)
	}
	return nil
}
