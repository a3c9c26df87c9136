// Package server assembles the blog core from configuration: it opens the
// shared store, applies migrations and builds the managers and the media
// presigner that front-ends call into.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/blogcore/internal/dbx"
	"github.com/dmitrijs2005/blogcore/internal/logging"
	"github.com/dmitrijs2005/blogcore/internal/server/config"
	"github.com/dmitrijs2005/blogcore/internal/server/managers"
	"github.com/dmitrijs2005/blogcore/internal/server/media"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/blogcore/internal/server/validation"
	"github.com/pressly/goose/v3"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	repos    repomanager.RepositoryManager
	managers *managers.Set
	media    *media.Presigner
}

// openDB is a seam for tests.
var openDB = dbx.Open

// NewApp opens the store described by c and wires every component on top of
// it. Logs go to w. The returned App owns the pool; call Close when done.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	logger, err := logging.New(c.LogBackend, c.LogLevel, w)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	dialect, err := dbx.DialectFor(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	db, err := openDB(ctx, dialect, c.DatabaseDSN, c.Pool())
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	repos := repomanager.NewSQLRepositoryManager(dialect)

	app := &App{
		config: c,
		logger: logger,
		db:     db,
		repos:  repos,
		managers: managers.New(db, repos, managers.Options{
			Logger:                       logger,
			Validator:                    validation.New(),
			Hasher:                       managers.NewBcryptHasher(c.BcryptCost),
			BlockCategoryDeleteWithPosts: c.BlockCategoryDeleteWithPosts,
		}),
		media: media.NewPresigner(c),
	}

	if c.MigrateOnStart {
		if err := app.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	logger.Info(ctx, "store opened", "driver", dialect.DriverName(), "migrated", c.MigrateOnStart)
	return app, nil
}

// Migrate applies pending schema migrations.
func (app *App) Migrate(ctx context.Context) error {
	goose.SetLogger(&gooseLogger{ctx: ctx, logger: app.logger})
	if err := app.repos.RunMigrations(ctx, app.db); err != nil {
		app.logger.Error(ctx, "migration failed", "error", err)
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func (app *App) Config() *config.Config  { return app.config }
func (app *App) Logger() logging.Logger  { return app.logger }
func (app *App) Managers() *managers.Set { return app.managers }
func (app *App) Media() *media.Presigner { return app.media }
func (app *App) DB() *sql.DB             { return app.db }

// Close releases the connection pool.
func (app *App) Close() error {
	return app.db.Close()
}

// gooseLogger forwards migration progress to the application logger.
type gooseLogger struct {
	ctx    context.Context
	logger logging.Logger
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.logger.Info(l.ctx, fmt.Sprintf(format, v...), "component", "migrations")
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(l.ctx, fmt.Sprintf(format, v...), "component", "migrations")
	os.Exit(1)
}
