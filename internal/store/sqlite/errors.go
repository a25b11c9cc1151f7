package sqlite

import (
	"database/sql"
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/foldnote/foldnote-server/internal/store"
)

// mapError translates driver errors into store errors. notFound is returned
// for sql.ErrNoRows; pass nil to keep ErrNoRows as is.
func mapError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) && notFound != nil {
		return notFound
	}
	if kind, ok := constraintKind(err); ok {
		return store.ConstraintError(kind, err)
	}
	return err
}

func constraintKind(err error) (store.ConstraintKind, bool) {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return store.ConstraintForeignKey, true
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return store.ConstraintUnique, true
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return store.ConstraintCheck, true
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return store.ConstraintNotNull, true
		}
	}

	// Fall back to the message for errors surfaced with a primary code only.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return store.ConstraintForeignKey, true
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return store.ConstraintUnique, true
	case strings.Contains(msg, "CHECK constraint failed"):
		return store.ConstraintCheck, true
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return store.ConstraintNotNull, true
	}
	return "", false
}
