// Package migrations схема БД, встроенная в бинарник
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var files embed.FS

// ErrMigrate возвращается при ошибке применения миграций
var ErrMigrate = errors.New("migrations: failed to apply")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Up применяет все новые миграции
func Up(db *sql.DB, log Logger) error {
	src, err := iofs.New(files, "sql")
	if err != nil {
		return fmt.Errorf("%w: open source: %v", ErrMigrate, err)
	}
	defer src.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("%w: init driver: %v", ErrMigrate, err)
	}

	// m.Close() не вызываем: драйвер закрыл бы общий *sql.DB
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("%w: init migrator: %v", ErrMigrate, err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: %v", ErrMigrate, err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("%w: read version: %v", ErrMigrate, err)
	}
	log.Info("Database schema at version %d (dirty=%t)", version, dirty)

	return nil
}

// Files встроенные файлы миграций
func Files() embed.FS {
	return files
}
