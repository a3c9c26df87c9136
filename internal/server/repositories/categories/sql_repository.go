// Package categories persists categories through the generic entity repository.
package categories

import (
	"context"

	"github.com/dmitrijs2005/blogcore/internal/dbx"
	"github.com/dmitrijs2005/blogcore/internal/server/models"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/entity"
)

// Table maps models.Category onto the categories table.
var Table = entity.Table[models.Category]{
	Name:    "categories",
	Columns: []string{"name", "description"},
	Values: func(c *models.Category) []any {
		return []any{c.Name, c.Description}
	},
	Targets: func(c *models.Category) []any {
		return []any{&c.Name, &c.Description}
	},
}

type SQLRepository struct {
	*entity.SQLRepository[models.Category, *models.Category]
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect, opts ...entity.Option) *SQLRepository {
	return &SQLRepository{entity.NewSQLRepository[models.Category, *models.Category](db, d, Table, opts...)}
}

func (r *SQLRepository) NameTaken(ctx context.Context, name string, exceptID int64) (bool, error) {
	return r.Query(entity.EqFold("name", name), entity.NotEq("id", exceptID)).Exists(ctx)
}
