// Package dbxtest provides migrated in-memory SQLite stores for tests.
package dbxtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/blogcore/internal/dbx"
	"github.com/dmitrijs2005/blogcore/internal/server/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// SQLiteDSN keeps the store in memory with foreign keys enforced.
const SQLiteDSN = "file::memory:?_pragma=foreign_keys(1)&_time_format=sqlite"

// OpenSQLite returns a fresh, fully migrated in-memory database that is
// closed when the test ends. The pool is limited to one connection since
// every in-memory connection is a separate database.
func OpenSQLite(t testing.TB) *sql.DB {
	t.Helper()

	db, err := dbx.Open(context.Background(), dbx.SQLite{}, SQLiteDSN, dbx.PoolOptions{MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect(dbx.SQLite{}.GooseDialect()))
	goose.SetLogger(goose.NopLogger())
	require.NoError(t, goose.UpContext(context.Background(), db, dbx.SQLite{}.Name()))

	return db
}
