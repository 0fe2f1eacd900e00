package repomanager

import (
	"context"
	"database/sql"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/gophfeed/internal/server/migrations"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

// SQLiteDriverName is the database/sql driver registered by go-sqlite3.
const SQLiteDriverName = "sqlite3"

// sqliteDefaultParams turn on foreign keys and make concurrent writers wait
// instead of failing with SQLITE_BUSY. keys lists the spellings go-sqlite3
// accepts for the same setting.
var sqliteDefaultParams = []struct {
	keys  []string
	param string
}{
	{keys: []string{"_foreign_keys", "_fk"}, param: "_foreign_keys=on"},
	{keys: []string{"_busy_timeout", "_timeout"}, param: "_busy_timeout=5000"},
}

// SQLiteRepositoryManager vends repositories for SQLite and applies the
// sqlite migration set.
type SQLiteRepositoryManager struct {
	sqlRepositories
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, migrations.SQLiteDir)
}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}

// SQLiteDSN adds each default connection parameter the DSN does not set
// itself. Parameters given explicitly, including _foreign_keys=off, are kept.
func SQLiteDSN(dsn string) string {
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}

	_, query, _ := strings.Cut(dsn, "?")
	q, _ := url.ParseQuery(query)

	var missing []string
	for _, d := range sqliteDefaultParams {
		set := false
		for _, k := range d.keys {
			if q.Has(k) {
				set = true
				break
			}
		}
		if !set {
			missing = append(missing, d.param)
		}
	}

	if len(missing) == 0 {
		return dsn
	}
	sep := "&"
	if query == "" {
		sep = "?"
		dsn = strings.TrimSuffix(dsn, "?")
	}
	return dsn + sep + strings.Join(missing, "&")
}
