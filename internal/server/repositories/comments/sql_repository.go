// Package comments persists comments through the generic entity repository.
package comments

import (
	"context"

	"github.com/dmitrijs2005/blogcore/internal/dbx"
	"github.com/dmitrijs2005/blogcore/internal/server/models"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/entity"
)

var Table = entity.Table[models.Comment]{
	Name:    "comments",
	Columns: []string{"text", "comment_date", "post_id", "user_id"},
	Values: func(c *models.Comment) []any {
		return []any{c.Text, c.CommentDate, c.PostID, nullableID(c.UserID)}
	},
	Targets: func(c *models.Comment) []any {
		return []any{&c.Text, &c.CommentDate, &c.PostID, &c.UserID}
	},
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

type SQLRepository struct {
	*entity.SQLRepository[models.Comment, *models.Comment]
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect, opts ...entity.Option) *SQLRepository {
	return &SQLRepository{entity.NewSQLRepository[models.Comment, *models.Comment](db, d, Table, opts...)}
}

func (r *SQLRepository) GetByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	return r.Query(entity.Eq("post_id", postID)).
		OrderBy("comment_date").OrderBy("id").All(ctx)
}

func (r *SQLRepository) DeleteByPost(ctx context.Context, postID int64) (int64, error) {
	return r.DeleteWhere(ctx, entity.Eq("post_id", postID))
}

func (r *SQLRepository) DetachUser(ctx context.Context, userID int64) (int64, error) {
	return r.Exec(ctx, "UPDATE comments SET user_id = NULL WHERE user_id = ?", userID)
}
