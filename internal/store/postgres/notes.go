package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/store"
)

const noteColumns = `id, title, content, user_id, folder_id, created_at, updated_at`

func scanNote(row pgx.Row) (*domain.Note, error) {
	var n domain.Note
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &n.UserID, &n.FolderID, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	utc(&n.CreatedAt, &n.UpdatedAt)
	return &n, nil
}

// CreateNote inserts a note.
func (s *Store) CreateNote(ctx context.Context, n *domain.Note) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO notes (`+noteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.Title, n.Content, n.UserID, n.FolderID, n.CreatedAt, n.UpdatedAt)
	return mapError(err, nil)
}

// GetNote retrieves a note by ID.
func (s *Store) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	n, err := scanNote(s.pool.QueryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, store.ErrNoteNotFound)
	}
	return n, nil
}

// ListNotes builds one query with an optional join on note_tags.
func (s *Store) ListNotes(ctx context.Context, filter domain.NoteFilter) ([]*domain.Note, error) {
	var (
		q    strings.Builder
		args []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	q.WriteString(`SELECT n.id, n.title, n.content, n.user_id, n.folder_id, n.created_at, n.updated_at FROM notes n`)
	if filter.TagID != nil {
		q.WriteString(` JOIN note_tags nt ON nt.note_id = n.id AND nt.tag_id = ` + arg(*filter.TagID))
	}
	q.WriteString(` WHERE n.user_id = ` + arg(filter.UserID))

	switch {
	case filter.Folder.IsNull():
		q.WriteString(` AND n.folder_id IS NULL`)
	case filter.Folder.Set:
		q.WriteString(` AND n.folder_id = ` + arg(*filter.Folder.Value))
	}
	q.WriteString(` ORDER BY n.created_at ASC, n.id ASC`)

	rows, err := s.pool.Query(ctx, q.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return collect(rows, scanNote)
}

// UpdateNote applies patch under a row lock and refreshes updated_at.
func (s *Store) UpdateNote(ctx context.Context, id string, patch domain.NotePatch, now time.Time) (*domain.Note, error) {
	var n *domain.Note
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		n, err = scanNote(tx.QueryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return mapError(err, store.ErrNoteNotFound)
		}

		patch.Apply(n)
		n.UpdatedAt = domain.NextUpdatedAt(n.UpdatedAt, now)

		_, err = tx.Exec(ctx, `
			UPDATE notes SET title = $1, content = $2, folder_id = $3, updated_at = $4
			WHERE id = $5`,
			n.Title, n.Content, n.FolderID, n.UpdatedAt, id)
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

// DeleteNote removes a note, its tag links, and its attachments.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	return mapError(err, nil)
}
