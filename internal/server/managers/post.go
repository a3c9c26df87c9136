package managers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/blogcore/internal/common"
	"github.com/dmitrijs2005/blogcore/internal/dbx"
	"github.com/dmitrijs2005/blogcore/internal/logging"
	"github.com/dmitrijs2005/blogcore/internal/result"
	"github.com/dmitrijs2005/blogcore/internal/server/models"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/blogcore/internal/server/validation"
)

// PostReader resolves live posts.
type PostReader interface {
	GetByID(ctx context.Context, id int64) (result.DataResult[*models.Post], error)
}

// PostManager owns the post rules: a post references a live category and a
// live author, both resolved through their managers.
type PostManager struct {
	manager
	categories CategoryReader
	users      UserReader
}

func NewPostManager(db *sql.DB, rm repomanager.RepositoryManager, v *validation.Validator, l logging.Logger,
	categories CategoryReader, users UserReader) *PostManager {
	return &PostManager{
		manager:    newManager(db, rm, v, l, "post"),
		categories: categories,
		users:      users,
	}
}

func postNotFound(id int64) string {
	return fmt.Sprintf("Post with id %d not found", id)
}

// GetByID returns the live post with id.
func (s *PostManager) GetByID(ctx context.Context, id int64) (result.DataResult[*models.Post], error) {
	p, err := s.repomanager.Posts(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return failData[*models.Post](ctx, &s.manager, "get post", postNotFound(id)), nil
		}
		return result.DataResult[*models.Post]{}, s.fatal(ctx, "get post", err)
	}
	return result.OkData(p, "Post retrieved successfully"), nil
}

// GetAll returns every live post ordered by id.
func (s *PostManager) GetAll(ctx context.Context) (result.DataResult[[]*models.Post], error) {
	list, err := s.repomanager.Posts(s.db).GetAll(ctx)
	if err != nil {
		return result.DataResult[[]*models.Post]{}, s.fatal(ctx, "list posts", err)
	}
	return result.OkData(list, "Posts retrieved successfully"), nil
}

// GetPostsByCategoryID lists the live posts of a live category, newest first.
func (s *PostManager) GetPostsByCategoryID(ctx context.Context, categoryID int64) (result.DataResult[[]*models.Post], error) {
	const op = "list posts by category"

	cat, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return result.DataResult[[]*models.Post]{}, s.fatal(ctx, op, err)
	}
	if !cat.Success {
		return failData[[]*models.Post](ctx, &s.manager, op, cat.Message), nil
	}

	list, err := s.repomanager.Posts(s.db).GetByCategory(ctx, categoryID)
	if err != nil {
		return result.DataResult[[]*models.Post]{}, s.fatal(ctx, op, err)
	}
	return result.OkData(list, "Posts retrieved successfully"), nil
}

// GetPostsByUserID lists the live posts of a live author, newest first.
func (s *PostManager) GetPostsByUserID(ctx context.Context, userID int64) (result.DataResult[[]*models.Post], error) {
	const op = "list posts by user"

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return result.DataResult[[]*models.Post]{}, s.fatal(ctx, op, err)
	}
	if !u.Success {
		return failData[[]*models.Post](ctx, &s.manager, op, u.Message), nil
	}

	list, err := s.repomanager.Posts(s.db).GetByUser(ctx, userID)
	if err != nil {
		return result.DataResult[[]*models.Post]{}, s.fatal(ctx, op, err)
	}
	return result.OkData(list, "Posts retrieved successfully"), nil
}

// Add stamps PublishDate and zeroes ViewCount, validates p, checks its
// references and persists it.
func (s *PostManager) Add(ctx context.Context, p *models.Post) (result.Result, error) {
	const op = "add post"

	p.PublishDate = s.now()
	p.ViewCount = 0

	if res, err := s.admit(ctx, op, p); err != nil || !res.Success {
		return res, err
	}

	if err := s.repomanager.Posts(s.db).Add(ctx, p); err != nil {
		return result.Result{}, s.fatal(ctx, op, err)
	}

	return s.done(ctx, "post added", p.ID, "Post added successfully"), nil
}

// Update validates p, checks its references and replaces the live post with
// the same id.
func (s *PostManager) Update(ctx context.Context, p *models.Post) (result.Result, error) {
	const op = "update post"

	if res, err := s.admit(ctx, op, p); err != nil || !res.Success {
		return res, err
	}

	if err := s.repomanager.Posts(s.db).Update(ctx, p); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return s.fail(ctx, op, postNotFound(p.ID)), nil
		}
		return result.Result{}, s.fatal(ctx, op, err)
	}

	return s.done(ctx, "post updated", p.ID, "Post updated successfully"), nil
}

// admit runs validation and the reference checks shared by Add and Update.
func (s *PostManager) admit(ctx context.Context, op string, p *models.Post) (result.Result, error) {
	if msg, err := s.check(p); err != nil {
		return result.Result{}, s.fatal(ctx, op, err)
	} else if msg != "" {
		return s.fail(ctx, op, msg), nil
	}

	cat, err := s.categories.GetByID(ctx, p.CategoryID)
	if err != nil {
		return result.Result{}, s.fatal(ctx, op, err)
	}
	if !cat.Success {
		return s.fail(ctx, op, cat.Message), nil
	}

	u, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return result.Result{}, s.fatal(ctx, op, err)
	}
	if !u.Success {
		return s.fail(ctx, op, u.Message), nil
	}

	return result.Ok(""), nil
}

// Delete soft-deletes the live post with id together with its live comments,
// in one transaction.
func (s *PostManager) Delete(ctx context.Context, id int64) (result.Result, error) {
	const op = "delete post"

	var res result.Result
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		posts := s.repomanager.Posts(tx)

		p, err := posts.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				res = s.fail(ctx, op, postNotFound(id))
				return nil
			}
			return err
		}

		n, err := s.repomanager.Comments(tx).DeleteByPost(ctx, id)
		if err != nil {
			return err
		}
		if err := posts.Delete(ctx, p); err != nil {
			return err
		}

		s.logger.Info(ctx, "post deleted", "id", id, "comments", n)
		res = result.Ok("Post deleted successfully")
		return nil
	})
	if err != nil {
		return result.Result{}, s.fatal(ctx, op, err)
	}
	return res, nil
}
