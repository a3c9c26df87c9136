// Package models defines the persisted entities of the publishing domain.
// Relationships are expressed only through foreign-key identifiers; related
// collections are derived by querying, never stored as back-references.
package models

import "time"

// Base is the shape shared by every persisted entity.
type Base struct {
	// ID is assigned by the store on creation and never changes afterwards.
	ID int64
	// CreatedDate is set once at creation.
	CreatedDate time.Time
	// UpdatedDate is set on every successful update, nil until the first one.
	UpdatedDate *time.Time
	// IsDeleted marks the row as logically absent. Rows are never removed.
	IsDeleted bool
}

// Meta gives access to the shared fields.
func (b *Base) Meta() *Base { return b }

// Entity is the capability every persisted type exposes so that a single
// generic repository can stamp and scope it.
type Entity interface {
	Meta() *Base
}
