// Package users persists users. Email and username lookups are
// case-insensitive.
package users

import (
	"context"

	"github.com/dmitrijs2005/blogcore/internal/dbx"
	"github.com/dmitrijs2005/blogcore/internal/server/models"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/entity"
)

var Table = entity.Table[models.User]{
	Name: "users",
	Columns: []string{
		"first_name", "last_name", "email", "username", "password_hash", "profile_picture_url",
	},
	Values: func(u *models.User) []any {
		return []any{u.FirstName, u.LastName, u.Email, u.Username, u.PasswordHash, u.ProfilePictureURL}
	},
	Targets: func(u *models.User) []any {
		return []any{&u.FirstName, &u.LastName, &u.Email, &u.Username, &u.PasswordHash, &u.ProfilePictureURL}
	},
}

type SQLRepository struct {
	*entity.SQLRepository[models.User, *models.User]
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect, opts ...entity.Option) *SQLRepository {
	return &SQLRepository{entity.NewSQLRepository[models.User, *models.User](db, d, Table, opts...)}
}

func (r *SQLRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.GetOne(ctx, entity.EqFold("email", email))
}

func (r *SQLRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.GetOne(ctx, entity.EqFold("username", username))
}

func (r *SQLRepository) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	return r.Query(entity.EqFold("email", email), entity.NotEq("id", exceptID)).Exists(ctx)
}

func (r *SQLRepository) UsernameTaken(ctx context.Context, username string, exceptID int64) (bool, error) {
	return r.Query(entity.EqFold("username", username), entity.NotEq("id", exceptID)).Exists(ctx)
}
