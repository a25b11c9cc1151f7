package store

import (
	"github.com/foldnote/foldnote-server/internal/errors"
)

// Sentinel errors. Every NotFound sentinel matches errors.ErrNotFound.
var (
	ErrNotFound           = errors.ErrNotFound
	ErrUserNotFound       = errors.NotFound("user not found")
	ErrFolderNotFound     = errors.NotFound("folder not found")
	ErrNoteNotFound       = errors.NotFound("note not found")
	ErrTagNotFound        = errors.NotFound("tag not found")
	ErrAttachmentNotFound = errors.NotFound("attachment not found")

	ErrConstraintViolation = errors.ErrConstraintViolation
)

// ConstraintKind names the kind of integrity rule a write broke.
type ConstraintKind string

// Constraint kinds reported by the backends.
const (
	ConstraintForeignKey ConstraintKind = "foreign_key"
	ConstraintUnique     ConstraintKind = "unique"
	ConstraintCheck      ConstraintKind = "check"
	ConstraintNotNull    ConstraintKind = "not_null"
)

var constraintMessages = map[ConstraintKind]string{
	ConstraintForeignKey: "referenced record does not exist",
	ConstraintUnique:     "a record with the same unique value already exists",
	ConstraintCheck:      "value violates a check constraint",
	ConstraintNotNull:    "required value is missing",
}

// ConstraintError wraps a driver error as a ConstraintViolation.
func ConstraintError(kind ConstraintKind, cause error) error {
	msg, ok := constraintMessages[kind]
	if !ok {
		msg = ErrConstraintViolation.Message
	}
	return errors.Wrap(cause, errors.CodeConstraintViolation, msg).
		WithDetails(map[string]string{"constraint": string(kind)})
}
