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

// CategoryReader resolves live categories.
type CategoryReader interface {
	GetByID(ctx context.Context, id int64) (result.DataResult[*models.Category], error)
}

// CategoryManager owns the category rules: names are unique among live
// categories, compared case-insensitively.
type CategoryManager struct {
	manager
	blockDeleteWithPosts bool
}

func NewCategoryManager(db *sql.DB, rm repomanager.RepositoryManager, v *validation.Validator, l logging.Logger, blockDeleteWithPosts bool) *CategoryManager {
	return &CategoryManager{
		manager:              newManager(db, rm, v, l, "category"),
		blockDeleteWithPosts: blockDeleteWithPosts,
	}
}

func categoryNotFound(id int64) string {
	return fmt.Sprintf("Category with id %d not found", id)
}

func categoryNameTaken(name string) string {
	return fmt.Sprintf("Category with name '%s' already exists", name)
}

// GetByID returns the live category with id.
func (s *CategoryManager) GetByID(ctx context.Context, id int64) (result.DataResult[*models.Category], error) {
	c, err := s.repomanager.Categories(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return failData[*models.Category](ctx, &s.manager, "get category", categoryNotFound(id)), nil
		}
		return result.DataResult[*models.Category]{}, s.fatal(ctx, "get category", err)
	}
	return result.OkData(c, "Category retrieved successfully"), nil
}

// GetAll returns every live category ordered by id.
func (s *CategoryManager) GetAll(ctx context.Context) (result.DataResult[[]*models.Category], error) {
	list, err := s.repomanager.Categories(s.db).GetAll(ctx)
	if err != nil {
		return result.DataResult[[]*models.Category]{}, s.fatal(ctx, "list categories", err)
	}
	return result.OkData(list, "Categories retrieved successfully"), nil
}

// Add validates c, rejects a name already used by a live category and
// persists it. On success c carries its id and CreatedDate.
func (s *CategoryManager) Add(ctx context.Context, c *models.Category) (result.Result, error) {
	const op = "add category"

	if msg, err := s.check(c); err != nil {
		return result.Result{}, s.fatal(ctx, op, err)
	} else if msg != "" {
		return s.fail(ctx, op, msg), nil
	}

	repo := s.repomanager.Categories(s.db)

	taken, err := repo.NameTaken(ctx, c.Name, 0)
	if err != nil {
		return result.Result{}, s.fatal(ctx, op, err)
	}
	if taken {
		return s.fail(ctx, op, categoryNameTaken(c.Name)), nil
	}

	if err := repo.Add(ctx, c); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return s.fail(ctx, op, categoryNameTaken(c.Name)), nil
		}
		return result.Result{}, s.fatal(ctx, op, err)
	}

	return s.done(ctx, "category added", c.ID, "Category added successfully"), nil
}

// Update validates c and replaces the live category with the same id.
func (s *CategoryManager) Update(ctx context.Context, c *models.Category) (result.Result, error) {
	const op = "update category"

	if msg, err := s.check(c); err != nil {
		return result.Result{}, s.fatal(ctx, op, err)
	} else if msg != "" {
		return s.fail(ctx, op, msg), nil
	}

	repo := s.repomanager.Categories(s.db)

	taken, err := repo.NameTaken(ctx, c.Name, c.ID)
	if err != nil {
		return result.Result{}, s.fatal(ctx, op, err)
	}
	if taken {
		return s.fail(ctx, op, categoryNameTaken(c.Name)), nil
	}

	if err := repo.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return s.fail(ctx, op, categoryNotFound(c.ID)), nil
		case errors.Is(err, common.ErrConflict):
			return s.fail(ctx, op, categoryNameTaken(c.Name)), nil
		}
		return result.Result{}, s.fatal(ctx, op, err)
	}

	return s.done(ctx, "category updated", c.ID, "Category updated successfully"), nil
}

// Delete soft-deletes the live category with id. Posts are never cascaded;
// when the manager is configured to block, a category that still has live
// posts is kept.
func (s *CategoryManager) Delete(ctx context.Context, id int64) (result.Result, error) {
	const op = "delete category"

	repo := s.repomanager.Categories(s.db)

	c, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return s.fail(ctx, op, categoryNotFound(id)), nil
		}
		return result.Result{}, s.fatal(ctx, op, err)
	}

	if s.blockDeleteWithPosts {
		n, err := s.repomanager.Posts(s.db).CountByCategory(ctx, id)
		if err != nil {
			return result.Result{}, s.fatal(ctx, op, err)
		}
		if n > 0 {
			return s.fail(ctx, op, fmt.Sprintf("Category with id %d still has %d posts", id, n)), nil
		}
	}

	if err := repo.Delete(ctx, c); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return s.fail(ctx, op, categoryNotFound(id)), nil
		}
		return result.Result{}, s.fatal(ctx, op, err)
	}

	return s.done(ctx, "category deleted", id, "Category deleted successfully"), nil
}
