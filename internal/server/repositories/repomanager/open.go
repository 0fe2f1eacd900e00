package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophfeed/internal/server/config"
)

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// Open connects to the configured database, verifies the connection and
// migrates the schema to the latest version.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, RepositoryManager, error) {
	var (
		m          RepositoryManager
		driverName string
	)

	switch driver {
	case config.DriverPostgres:
		m, driverName = NewPostgresRepositoryManager(), PostgresDriverName
	case config.DriverSQLite:
		m, driverName, dsn = NewSQLiteRepositoryManager(), SQLiteDriverName, SQLiteDSN(dsn)
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	if driver == config.DriverSQLite {
		// Writes are serialised through a single connection.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	return db, m, nil
}
