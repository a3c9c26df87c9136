package entity

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/blogcore/internal/common"
)

// Query is a composable, not-yet-executed query over live rows. Nothing hits
// the store until All, One, Count or Exists is called. Builder methods return
// a new Query, so a handle can be shared and refined independently.
type Query[T any, PT EntityPtr[T]] struct {
	repo    *SQLRepository[T, PT]
	filters []Filter
	orderBy []string
	limit   int
}

// Where adds a filter; filters are joined with AND.
func (q *Query[T, PT]) Where(f Filter) *Query[T, PT] {
	c := q.clone()
	c.filters = append(c.filters, f)
	return c
}

// OrderBy sorts ascending by column.
func (q *Query[T, PT]) OrderBy(column string) *Query[T, PT] {
	c := q.clone()
	c.orderBy = append(c.orderBy, column+" ASC")
	return c
}

// OrderByDesc sorts descending by column.
func (q *Query[T, PT]) OrderByDesc(column string) *Query[T, PT] {
	c := q.clone()
	c.orderBy = append(c.orderBy, column+" DESC")
	return c
}

// Limit caps the number of returned rows. Zero means no limit.
func (q *Query[T, PT]) Limit(n int) *Query[T, PT] {
	c := q.clone()
	c.limit = n
	return c
}

func (q *Query[T, PT]) clone() *Query[T, PT] {
	c := *q
	c.filters = append([]Filter(nil), q.filters...)
	c.orderBy = append([]string(nil), q.orderBy...)
	return &c
}

// where returns the WHERE clause, always scoped to live rows.
func (q *Query[T, PT]) where() (string, []any) {
	f := And(append([]Filter{Eq(colIsDeleted, false)}, q.filters...)...)
	return " WHERE " + f.clause, f.args
}

// SQL renders the select statement in '?' form.
func (q *Query[T, PT]) SQL() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(q.repo.table.selectList(), ", "))
	b.WriteString(" FROM ")
	b.WriteString(q.repo.table.Name)

	where, args := q.where()
	b.WriteString(where)

	if len(q.orderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(q.orderBy, ", "))
	}
	if q.limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, q.limit)
	}
	return b.String(), args
}

// All executes the query and returns every matching row.
func (q *Query[T, PT]) All(ctx context.Context) ([]PT, error) {
	query, args := q.SQL()
	return q.repo.selectRows(ctx, query, args)
}

// One executes the query expecting at most one row. No row yields
// common.ErrorNotFound; more than one yields common.ErrMultipleRows.
func (q *Query[T, PT]) One(ctx context.Context) (PT, error) {
	rows, err := q.Limit(2).All(ctx)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, common.ErrorNotFound
	case 1:
		return rows[0], nil
	default:
		return nil, fmt.Errorf("%s: %w", q.repo.table.Name, common.ErrMultipleRows)
	}
}

// Count returns the number of matching rows.
func (q *Query[T, PT]) Count(ctx context.Context) (int64, error) {
	where, args := q.where()
	query := "SELECT COUNT(*) FROM " + q.repo.table.Name + where

	var n int64
	if err := q.repo.db.QueryRowContext(ctx, q.repo.dialect.Rebind(query), args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// Exists reports whether any row matches.
func (q *Query[T, PT]) Exists(ctx context.Context) (bool, error) {
	n, err := q.Count(ctx)
	return n > 0, err
}
