package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/blogcore/internal/dbx"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/categories"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/comments"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/posts"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Categories(db dbx.DBTX) categories.Repository
	Users(db dbx.DBTX) users.Repository
	Posts(db dbx.DBTX) posts.Repository
	Comments(db dbx.DBTX) comments.Repository
}
