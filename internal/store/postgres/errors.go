package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/foldnote/foldnote-server/internal/store"
)

// mapError translates pgx errors into store errors. notFound replaces
// pgx.ErrNoRows when non-nil.
func mapError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) && notFound != nil {
		return notFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.ForeignKeyViolation:
		return store.ConstraintError(store.ConstraintForeignKey, err)
	case pgerrcode.UniqueViolation:
		return store.ConstraintError(store.ConstraintUnique, err)
	case pgerrcode.CheckViolation:
		return store.ConstraintError(store.ConstraintCheck, err)
	case pgerrcode.NotNullViolation:
		return store.ConstraintError(store.ConstraintNotNull, err)
	}
	return err
}
