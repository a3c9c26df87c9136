// Package repomanager provides a RepositoryManager for the SQL dialects in
// dbx, wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/blogcore/internal/dbx"
	"github.com/dmitrijs2005/blogcore/internal/server/migrations"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/categories"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/comments"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/entity"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/posts"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager vends repositories for one dialect and exposes a
// schema migration hook.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
	opts    []entity.Option
}

// Categories returns a categories.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Categories(db dbx.DBTX) categories.Repository {
	return categories.NewSQLRepository(db, m.dialect, m.opts...)
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect, m.opts...)
}

// Posts returns a posts.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Posts(db dbx.DBTX) posts.Repository {
	return posts.NewSQLRepository(db, m.dialect, m.opts...)
}

// Comments returns a comments.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Comments(db dbx.DBTX) comments.Repository {
	return comments.NewSQLRepository(db, m.dialect, m.opts...)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations of the manager's
// dialect and runs them against the provided database connection.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect.GooseDialect()); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, m.dialect.Name()); err != nil {
		return err
	}
	return nil
}

// NewSQLRepositoryManager constructs a RepositoryManager for dialect d.
// Options are passed to every repository it vends.
func NewSQLRepositoryManager(d dbx.Dialect, opts ...entity.Option) RepositoryManager {
	return &SQLRepositoryManager{dialect: d, opts: opts}
}
