package dbx

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect captures the differences between the relational stores the
// repositories run against. Repositories write queries with '?' placeholders
// and let the dialect rebind them.
type Dialect interface {
	// Name is the dialect name used for migration directories.
	Name() string
	// DriverName is the database/sql driver name.
	DriverName() string
	// GooseDialect is the dialect name understood by goose.
	GooseDialect() string
	// Rebind rewrites '?' placeholders into the driver's native form.
	Rebind(query string) string
	// IsUniqueViolation reports whether err was caused by a unique constraint.
	IsUniqueViolation(err error) bool
}

// Postgres speaks PostgreSQL through the pgx stdlib driver.
type Postgres struct{}

func (Postgres) Name() string         { return "postgres" }
func (Postgres) DriverName() string   { return "pgx" }
func (Postgres) GooseDialect() string { return "pgx" }

// Rebind turns "a = ? AND b = ?" into "a = $1 AND b = $2". A '?' inside a
// quoted literal or identifier is left alone; a doubled quote reads as
// close-then-reopen, so escaping needs no special case.
func (Postgres) Rebind(query string) string {
	n := strings.Count(query, "?")
	if n == 0 {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + n*2)

	i := 0
	var quote rune
	for _, r := range query {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '?':
			i++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(i))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

func (Postgres) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// SQLite speaks SQLite through the pure-Go modernc driver.
type SQLite struct{}

func (SQLite) Name() string               { return "sqlite" }
func (SQLite) DriverName() string         { return "sqlite" }
func (SQLite) GooseDialect() string       { return "sqlite3" }
func (SQLite) Rebind(query string) string { return query }

func (SQLite) IsUniqueViolation(err error) bool {
	var sqlErr *sqlite.Error
	if !errors.As(err, &sqlErr) {
		return false
	}
	code := sqlErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

// DialectFor maps a configured driver name onto its Dialect.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "pgx", "postgres":
		return Postgres{}, nil
	case "sqlite":
		return SQLite{}, nil
	default:
		return nil, errors.New("unsupported database driver: " + driver)
	}
}
