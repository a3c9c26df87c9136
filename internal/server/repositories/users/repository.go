package users

import (
	"context"

	"github.com/dmitrijs2005/blogcore/internal/server/models"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/entity"
)

type Repository interface {
	entity.Repository[models.User, *models.User]
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// EmailTaken and UsernameTaken ignore the user identified by exceptID.
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
	UsernameTaken(ctx context.Context, username string, exceptID int64) (bool, error)
}
