// Package posts persists posts through the generic entity repository.
package posts

import (
	"context"

	"github.com/dmitrijs2005/blogcore/internal/dbx"
	"github.com/dmitrijs2005/blogcore/internal/server/models"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/entity"
)

var Table = entity.Table[models.Post]{
	Name: "posts",
	Columns: []string{
		"title", "content", "image_url", "view_count", "publish_date", "category_id", "user_id",
	},
	Values: func(p *models.Post) []any {
		return []any{p.Title, p.Content, p.ImageURL, p.ViewCount, p.PublishDate, p.CategoryID, p.UserID}
	},
	Targets: func(p *models.Post) []any {
		return []any{&p.Title, &p.Content, &p.ImageURL, &p.ViewCount, &p.PublishDate, &p.CategoryID, &p.UserID}
	},
}

type SQLRepository struct {
	*entity.SQLRepository[models.Post, *models.Post]
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect, opts ...entity.Option) *SQLRepository {
	return &SQLRepository{entity.NewSQLRepository[models.Post, *models.Post](db, d, Table, opts...)}
}

func (r *SQLRepository) GetByCategory(ctx context.Context, categoryID int64) ([]*models.Post, error) {
	return r.Query(entity.Eq("category_id", categoryID)).
		OrderByDesc("publish_date").OrderBy("id").All(ctx)
}

func (r *SQLRepository) GetByUser(ctx context.Context, userID int64) ([]*models.Post, error) {
	return r.Query(entity.Eq("user_id", userID)).
		OrderByDesc("publish_date").OrderBy("id").All(ctx)
}

func (r *SQLRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	return r.Query(entity.Eq("category_id", categoryID)).Count(ctx)
}
