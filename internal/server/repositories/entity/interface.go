package entity

import "context"

// Repository is the uniform CRUD contract over one entity type.
// *SQLRepository satisfies it; per-entity repositories extend it.
type Repository[T any, PT EntityPtr[T]] interface {
	GetByID(ctx context.Context, id int64) (PT, error)
	GetOne(ctx context.Context, f Filter) (PT, error)
	GetAll(ctx context.Context, filters ...Filter) ([]PT, error)
	Add(ctx context.Context, e PT) error
	Update(ctx context.Context, e PT) error
	Delete(ctx context.Context, e PT) error
	DeleteWhere(ctx context.Context, f Filter) (int64, error)
	Query(filters ...Filter) *Query[T, PT]
}
