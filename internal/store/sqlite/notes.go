package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/store"
)

// noteColumns must match the scan order in scanNote.
const noteColumns = `id, title, content, user_id, folder_id, created_at, updated_at`

func scanNote(row scanner) (*domain.Note, error) {
	var (
		n         domain.Note
		folderID  sql.NullString
		createdAt string
		updatedAt string
	)

	if err := row.Scan(&n.ID, &n.Title, &n.Content, &n.UserID, &folderID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	n.FolderID = stringPtr(folderID)
	if n.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if n.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// CreateNote inserts a note. Unknown user_id or folder_id is a constraint
// violation.
func (s *Store) CreateNote(ctx context.Context, n *domain.Note) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (`+noteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID,
		n.Title,
		n.Content,
		n.UserID,
		nullableString(n.FolderID),
		formatTime(n.CreatedAt),
		formatTime(n.UpdatedAt),
	)
	return mapError(err, nil)
}

// GetNote retrieves a note by ID.
func (s *Store) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if err != nil {
		return nil, mapError(err, store.ErrNoteNotFound)
	}
	return n, nil
}

// ListNotes resolves filter into one query. A tag filter adds an inner
// join on note_tags, which drops untagged notes.
func (s *Store) ListNotes(ctx context.Context, filter domain.NoteFilter) ([]*domain.Note, error) {
	var (
		q    strings.Builder
		args []any
	)

	q.WriteString(`SELECT n.id, n.title, n.content, n.user_id, n.folder_id, n.created_at, n.updated_at FROM notes n`)
	if filter.TagID != nil {
		q.WriteString(` JOIN note_tags nt ON nt.note_id = n.id AND nt.tag_id = ?`)
		args = append(args, *filter.TagID)
	}
	q.WriteString(` WHERE n.user_id = ?`)
	args = append(args, filter.UserID)

	switch {
	case filter.Folder.IsNull():
		q.WriteString(` AND n.folder_id IS NULL`)
	case filter.Folder.Set:
		q.WriteString(` AND n.folder_id = ?`)
		args = append(args, *filter.Folder.Value)
	}
	q.WriteString(` ORDER BY n.created_at ASC, n.rowid ASC`)

	rows, err := s.db.QueryContext(ctx, q.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := []*domain.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// UpdateNote applies patch and refreshes updated_at.
func (s *Store) UpdateNote(ctx context.Context, id string, patch domain.NotePatch, now time.Time) (*domain.Note, error) {
	var n *domain.Note
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		n, err = scanNote(tx.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id))
		if err != nil {
			return mapError(err, store.ErrNoteNotFound)
		}

		patch.Apply(n)
		n.UpdatedAt = domain.NextUpdatedAt(n.UpdatedAt, now)

		_, err = tx.ExecContext(ctx, `
			UPDATE notes SET title = ?, content = ?, folder_id = ?, updated_at = ?
			WHERE id = ?`,
			n.Title,
			n.Content,
			nullableString(n.FolderID),
			formatTime(n.UpdatedAt),
			id,
		)
		if err != nil {
			return fmt.Errorf("update note: %w", mapError(err, nil))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

// DeleteNote removes a note with its tag links and attachments.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	return mapError(err, nil)
}
