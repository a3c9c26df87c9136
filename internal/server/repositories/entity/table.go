package entity

// Table describes how one entity type maps onto its table. Base columns
// (id, created_date, updated_date, is_deleted) are handled by the repository;
// Columns lists the entity-specific ones, and Values and Targets must return
// values and scan destinations in the same order.
type Table[T any] struct {
	Name    string
	Columns []string
	Values  func(e *T) []any
	Targets func(e *T) []any
}

const (
	colID          = "id"
	colCreatedDate = "created_date"
	colUpdatedDate = "updated_date"
	colIsDeleted   = "is_deleted"
)

var baseColumns = []string{colID, colCreatedDate, colUpdatedDate, colIsDeleted}

func (t Table[T]) selectList() []string {
	cols := make([]string, 0, len(baseColumns)+len(t.Columns))
	cols = append(cols, baseColumns...)
	return append(cols, t.Columns...)
}
