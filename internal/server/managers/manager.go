// Package managers contains the business layer. One manager per entity
// composes its repository, the validation rule set and the existence checks
// against sibling managers.
//
// Every operation returns two channels: a result.Result (or DataResult) for
// expected business outcomes, and an error for infrastructure failures such
// as an unreachable store or a broken uniqueness invariant. A non-nil error
// means the Result must be ignored.
package managers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/blogcore/internal/logging"
	"github.com/dmitrijs2005/blogcore/internal/result"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/entity"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/blogcore/internal/server/validation"
)

// manager holds what every entity manager shares.
type manager struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validator   *validation.Validator
	logger      logging.Logger
	now         func() time.Time
}

func newManager(db *sql.DB, rm repomanager.RepositoryManager, v *validation.Validator, l logging.Logger, entityName string) manager {
	return manager{
		db:          db,
		repomanager: rm,
		validator:   v,
		logger:      l.With("entity", entityName),
		now:         entity.Now,
	}
}

// check runs the rule set of e, skipping the rules of the except fields.
// A non-empty message is the first violation.
func (m *manager) check(e any, except ...string) (string, error) {
	var err error
	if len(except) > 0 {
		err = m.validator.ValidateExcept(e, except...)
	} else {
		err = m.validator.Validate(e)
	}
	if err == nil {
		return "", nil
	}
	var v *validation.Violation
	if errors.As(err, &v) {
		return v.Message, nil
	}
	return "", err
}

func (m *manager) fail(ctx context.Context, op, message string) result.Result {
	m.logger.Warn(ctx, op+" rejected", "reason", message)
	return result.Fail(message)
}

func failData[T any](ctx context.Context, m *manager, op, message string) result.DataResult[T] {
	m.logger.Warn(ctx, op+" rejected", "reason", message)
	return result.FailData[T](message)
}

func (m *manager) fatal(ctx context.Context, op string, err error) error {
	m.logger.Error(ctx, op+" failed", "error", err)
	return fmt.Errorf("%s: %w", op, err)
}

func (m *manager) done(ctx context.Context, op string, id int64, message string) result.Result {
	m.logger.Info(ctx, op, "id", id)
	return result.Ok(message)
}
