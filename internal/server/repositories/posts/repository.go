package posts

import (
	"context"

	"github.com/dmitrijs2005/blogcore/internal/server/models"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/entity"
)

type Repository interface {
	entity.Repository[models.Post, *models.Post]
	// GetByCategory and GetByUser return live posts, newest first.
	GetByCategory(ctx context.Context, categoryID int64) ([]*models.Post, error)
	GetByUser(ctx context.Context, userID int64) ([]*models.Post, error)
	CountByCategory(ctx context.Context, categoryID int64) (int64, error)
}
