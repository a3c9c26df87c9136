package entity

import "strings"

// Filter is a caller-supplied predicate: a SQL boolean expression written with
// '?' placeholders plus its arguments. Column names are trusted; values always
// travel as arguments.
type Filter struct {
	clause string
	args   []any
}

// Where builds a Filter from a raw clause. Values belong in args, bound
// through ? placeholders; a ? inside a quoted literal is not a placeholder.
func Where(clause string, args ...any) Filter {
	return Filter{clause: clause, args: args}
}

// Eq matches column = v.
func Eq(column string, v any) Filter {
	return Where(column+" = ?", v)
}

// NotEq matches column <> v.
func NotEq(column string, v any) Filter {
	return Where(column+" <> ?", v)
}

// EqFold matches column = v ignoring case.
func EqFold(column string, v string) Filter {
	return Where("lower("+column+") = lower(?)", v)
}

// And joins filters; empty filters are skipped.
func And(filters ...Filter) Filter {
	var parts []string
	var args []any
	for _, f := range filters {
		if f.empty() {
			continue
		}
		parts = append(parts, "("+f.clause+")")
		args = append(args, f.args...)
	}
	return Filter{clause: strings.Join(parts, " AND "), args: args}
}

func (f Filter) empty() bool {
	return strings.TrimSpace(f.clause) == ""
}

// String returns the clause, mainly for logs and tests.
func (f Filter) String() string {
	return f.clause
}

// Args returns the filter arguments in placeholder order.
func (f Filter) Args() []any {
	return f.args
}
