package categories

import (
	"context"

	"github.com/dmitrijs2005/blogcore/internal/server/models"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/entity"
)

type Repository interface {
	entity.Repository[models.Category, *models.Category]
	// NameTaken reports whether a live category other than exceptID already
	// uses name, compared case-insensitively.
	NameTaken(ctx context.Context, name string, exceptID int64) (bool, error)
}
