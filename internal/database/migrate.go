package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/flashnote/schemas"
)

// Migrate applies every pending up migration for the given driver.
// The migrator takes ownership of db and closes it when done, so callers should pass a dedicated handle.
func Migrate(db *sqlx.DB, driver string) (applied bool, err error) {
	dir, err := migrationDir(driver)
	if err != nil {
		return false, err
	}

	src, err := iofs.New(schemas.Migrations, dir)
	if err != nil {
		return false, fmt.Errorf("open migration source %s: %w", dir, err)
	}

	var target migratedb.Driver
	switch driver {
	case DriverSQLite:
		target, err = migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	default:
		target, err = migratemysql.WithInstance(db.DB, &migratemysql.Config{})
	}
	if err != nil {
		return false, fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, target)
	if err != nil {
		return false, fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err == nil {
			err = errors.Join(srcErr, dbErr)
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return false, nil
		}
		return false, fmt.Errorf("apply migrations: %w", err)
	}
	return true, nil
}

func migrationDir(driver string) (string, error) {
	switch driver {
	case DriverSQLite:
		return "migrations/sqlite", nil
	case DriverMySQL, "":
		return "migrations/mysql", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}
