package managers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/blogcore/internal/common"
	"github.com/dmitrijs2005/blogcore/internal/logging"
	"github.com/dmitrijs2005/blogcore/internal/result"
	"github.com/dmitrijs2005/blogcore/internal/server/models"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/blogcore/internal/server/validation"
)

// CommentManager owns the comment rules: a comment references a live post
// and, unless anonymous, a live user.
type CommentManager struct {
	manager
	posts PostReader
	users UserReader
}

func NewCommentManager(db *sql.DB, rm repomanager.RepositoryManager, v *validation.Validator, l logging.Logger,
	posts PostReader, users UserReader) *CommentManager {
	return &CommentManager{
		manager: newManager(db, rm, v, l, "comment"),
		posts:   posts,
		users:   users,
	}
}

func commentNotFound(id int64) string {
	return fmt.Sprintf("Comment with id %d not found", id)
}

// GetByID returns the live comment with id.
func (s *CommentManager) GetByID(ctx context.Context, id int64) (result.DataResult[*models.Comment], error) {
	c, err := s.repomanager.Comments(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return failData[*models.Comment](ctx, &s.manager, "get comment", commentNotFound(id)), nil
		}
		return result.DataResult[*models.Comment]{}, s.fatal(ctx, "get comment", err)
	}
	return result.OkData(c, "Comment retrieved successfully"), nil
}

// GetAll returns every live comment ordered by id.
func (s *CommentManager) GetAll(ctx context.Context) (result.DataResult[[]*models.Comment], error) {
	list, err := s.repomanager.Comments(s.db).GetAll(ctx)
	if err != nil {
		return result.DataResult[[]*models.Comment]{}, s.fatal(ctx, "list comments", err)
	}
	return result.OkData(list, "Comments retrieved successfully"), nil
}

// GetCommentsByPostID lists the live comments of a live post, oldest first.
func (s *CommentManager) GetCommentsByPostID(ctx context.Context, postID int64) (result.DataResult[[]*models.Comment], error) {
	const op = "list comments by post"

	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return result.DataResult[[]*models.Comment]{}, s.fatal(ctx, op, err)
	}
	if !p.Success {
		return failData[[]*models.Comment](ctx, &s.manager, op, p.Message), nil
	}

	list, err := s.repomanager.Comments(s.db).GetByPost(ctx, postID)
	if err != nil {
		return result.DataResult[[]*models.Comment]{}, s.fatal(ctx, op, err)
	}
	return result.OkData(list, "Comments retrieved successfully"), nil
}

// Add stamps CommentDate, validates c, checks its references and persists it.
func (s *CommentManager) Add(ctx context.Context, c *models.Comment) (result.Result, error) {
	const op = "add comment"

	c.CommentDate = s.now()

	if res, err := s.admit(ctx, op, c); err != nil || !res.Success {
		return res, err
	}

	if err := s.repomanager.Comments(s.db).Add(ctx, c); err != nil {
		return result.Result{}, s.fatal(ctx, op, err)
	}

	return s.done(ctx, "comment added", c.ID, "Comment added successfully"), nil
}

// Update validates c, checks its references and replaces the live comment
// with the same id.
func (s *CommentManager) Update(ctx context.Context, c *models.Comment) (result.Result, error) {
	const op = "update comment"

	if res, err := s.admit(ctx, op, c); err != nil || !res.Success {
		return res, err
	}

	if err := s.repomanager.Comments(s.db).Update(ctx, c); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return s.fail(ctx, op, commentNotFound(c.ID)), nil
		}
		return result.Result{}, s.fatal(ctx, op, err)
	}

	return s.done(ctx, "comment updated", c.ID, "Comment updated successfully"), nil
}

func (s *CommentManager) admit(ctx context.Context, op string, c *models.Comment) (result.Result, error) {
	if msg, err := s.check(c); err != nil {
		return result.Result{}, s.fatal(ctx, op, err)
	} else if msg != "" {
		return s.fail(ctx, op, msg), nil
	}

	p, err := s.posts.GetByID(ctx, c.PostID)
	if err != nil {
		return result.Result{}, s.fatal(ctx, op, err)
	}
	if !p.Success {
		return s.fail(ctx, op, p.Message), nil
	}

	if c.UserID != nil {
		u, err := s.users.GetByID(ctx, *c.UserID)
		if err != nil {
			return result.Result{}, s.fatal(ctx, op, err)
		}
		if !u.Success {
			return s.fail(ctx, op, u.Message), nil
		}
	}

	return result.Ok(""), nil
}

// Delete soft-deletes the live comment with id.
func (s *CommentManager) Delete(ctx context.Context, id int64) (result.Result, error) {
	const op = "delete comment"

	repo := s.repomanager.Comments(s.db)

	c, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return s.fail(ctx, op, commentNotFound(id)), nil
		}
		return result.Result{}, s.fatal(ctx, op, err)
	}

	if err := repo.Delete(ctx, c); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return s.fail(ctx, op, commentNotFound(id)), nil
		}
		return result.Result{}, s.fatal(ctx, op, err)
	}

	return s.done(ctx, "comment deleted", id, "Comment deleted successfully"), nil
}
