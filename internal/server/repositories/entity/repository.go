// Package entity implements the generic repository shared by every entity
// type: CRUD over live rows, soft delete, and composable deferred queries.
package entity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/blogcore/internal/common"
	"github.com/dmitrijs2005/blogcore/internal/dbx"
	"github.com/dmitrijs2005/blogcore/internal/server/models"
)

// EntityPtr constrains PT to a pointer to T that exposes the base shape.
type EntityPtr[T any] interface {
	*T
	models.Entity
}

// SQLRepository provides CRUD over the live rows of one table. Every read is
// scoped to rows with is_deleted = false, so callers never repeat that filter.
type SQLRepository[T any, PT EntityPtr[T]] struct {
	db      dbx.DBTX
	dialect dbx.Dialect
	table   Table[T]
	now     func() time.Time
}

// Option configures an SQLRepository.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the clock used for audit stamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Now is the default clock. Timestamps are truncated to microseconds, the
// precision PostgreSQL keeps.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// NewSQLRepository binds a table descriptor to a store handle.
func NewSQLRepository[T any, PT EntityPtr[T]](db dbx.DBTX, d dbx.Dialect, table Table[T], opts ...Option) *SQLRepository[T, PT] {
	o := options{now: Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &SQLRepository[T, PT]{db: db, dialect: d, table: table, now: o.now}
}

// Query returns a deferred query over live rows.
func (r *SQLRepository[T, PT]) Query(filters ...Filter) *Query[T, PT] {
	return &Query[T, PT]{repo: r, filters: filters}
}

// GetByID returns the live entity with id or common.ErrorNotFound.
func (r *SQLRepository[T, PT]) GetByID(ctx context.Context, id int64) (PT, error) {
	return r.Query(Eq(colID, id)).One(ctx)
}

// GetOne returns the single live entity matching f. The filter must match at
// most one row; more than one is reported as common.ErrMultipleRows.
func (r *SQLRepository[T, PT]) GetOne(ctx context.Context, f Filter) (PT, error) {
	return r.Query(f).One(ctx)
}

// GetAll returns every live entity matching all filters, ordered by id.
func (r *SQLRepository[T, PT]) GetAll(ctx context.Context, filters ...Filter) ([]PT, error) {
	return r.Query(filters...).OrderBy(colID).All(ctx)
}

// Add stamps CreatedDate and IsDeleted, inserts the row and stores the new id.
func (r *SQLRepository[T, PT]) Add(ctx context.Context, e PT) error {
	b := e.Meta()
	created := r.now()

	cols := append([]string{colCreatedDate, colUpdatedDate, colIsDeleted}, r.table.Columns...)
	args := append([]any{created, nil, false}, r.table.Values((*T)(e))...)

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		r.table.Name, strings.Join(cols, ", "), placeholders(len(cols)), colID)

	var id int64
	if err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), args...).Scan(&id); err != nil {
		return r.wrap(err)
	}

	b.ID = id
	b.CreatedDate = created
	b.UpdatedDate = nil
	b.IsDeleted = false
	return nil
}

// Update stamps UpdatedDate and replaces the entity-specific columns of the
// live row identified by ID. CreatedDate is never written; the stored value is
// read back into the entity. A missing or deleted row yields common.ErrorNotFound.
func (r *SQLRepository[T, PT]) Update(ctx context.Context, e PT) error {
	b := e.Meta()
	updated := r.now()

	sets := make([]string, 0, len(r.table.Columns)+1)
	for _, c := range r.table.Columns {
		sets = append(sets, c+" = ?")
	}
	sets = append(sets, colUpdatedDate+" = ?")

	args := append(r.table.Values((*T)(e)), updated, b.ID, false)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ? AND %s = ?",
		r.table.Name, strings.Join(sets, ", "), colID, colIsDeleted)

	n, err := r.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	var created time.Time
	query = fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", colCreatedDate, r.table.Name, colID)
	if err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), b.ID).Scan(&created); err != nil {
		return r.wrap(err)
	}

	b.CreatedDate = created
	b.UpdatedDate = &updated
	b.IsDeleted = false
	return nil
}

// Delete flags the live row identified by ID as deleted. Only is_deleted is
// written and the row is never removed.
func (r *SQLRepository[T, PT]) Delete(ctx context.Context, e PT) error {
	b := e.Meta()

	query := fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s = ? AND %s = ?",
		r.table.Name, colIsDeleted, colID, colIsDeleted)

	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), true, b.ID, false)
	if err != nil {
		return r.wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return r.wrap(err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	b.IsDeleted = true
	return nil
}

// DeleteWhere flags every live row matching f as deleted and returns how many
// rows changed.
func (r *SQLRepository[T, PT]) DeleteWhere(ctx context.Context, f Filter) (int64, error) {
	where := And(Eq(colIsDeleted, false), f)
	query := fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s", r.table.Name, colIsDeleted, where.clause)

	args := append([]any{true}, where.args...)
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return 0, r.wrap(err)
	}
	return res.RowsAffected()
}

// Exec runs a statement against the table's store handle. It exists for
// per-entity repositories that need set-based writes beyond CRUD.
func (r *SQLRepository[T, PT]) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return 0, r.wrap(err)
	}
	return res.RowsAffected()
}

func (r *SQLRepository[T, PT]) selectRows(ctx context.Context, query string, args []any) ([]PT, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return nil, r.wrap(err)
	}
	defer rows.Close()

	var out []PT
	for rows.Next() {
		e := PT(new(T))
		if err := rows.Scan(r.targets(e)...); err != nil {
			return nil, r.wrap(err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, r.wrap(err)
	}
	return out, nil
}

func (r *SQLRepository[T, PT]) targets(e PT) []any {
	b := e.Meta()
	t := []any{&b.ID, &b.CreatedDate, &b.UpdatedDate, &b.IsDeleted}
	return append(t, r.table.Targets((*T)(e))...)
}

func (r *SQLRepository[T, PT]) wrap(err error) error {
	if r.dialect.IsUniqueViolation(err) {
		return fmt.Errorf("%s: %w: %v", r.table.Name, common.ErrConflict, err)
	}
	return fmt.Errorf("db error: %w", err)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
