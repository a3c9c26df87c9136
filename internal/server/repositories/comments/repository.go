package comments

import (
	"context"

	"github.com/dmitrijs2005/blogcore/internal/server/models"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/entity"
)

type Repository interface {
	entity.Repository[models.Comment, *models.Comment]
	// GetByPost returns the live comments of a post, oldest first.
	GetByPost(ctx context.Context, postID int64) ([]*models.Comment, error)
	// DeleteByPost soft-deletes every live comment of a post.
	DeleteByPost(ctx context.Context, postID int64) (int64, error)
	// DetachUser clears the author of every comment written by userID,
	// deleted comments included.
	DetachUser(ctx context.Context, userID int64) (int64, error)
}
