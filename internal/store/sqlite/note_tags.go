package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/store"
)

// AddTagToNote links noteID and tagID. When the link exists it is returned
// as stored, original created_at included. The composite primary key is what
// keeps concurrent calls from inserting twice.
func (s *Store) AddTagToNote(ctx context.Context, noteID, tagID string, now time.Time) (*domain.NoteTag, error) {
	var nt domain.NoteTag
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireRow(ctx, tx, `SELECT 1 FROM notes WHERE id = ?`, noteID, store.ErrNoteNotFound); err != nil {
			return err
		}
		if err := requireRow(ctx, tx, `SELECT 1 FROM tags WHERE id = ?`, tagID, store.ErrTagNotFound); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO note_tags (note_id, tag_id, created_at)
			VALUES (?, ?, ?)
			ON CONFLICT (note_id, tag_id) DO NOTHING`,
			noteID, tagID, formatTime(now))
		if err != nil {
			return fmt.Errorf("insert note_tag: %w", mapError(err, nil))
		}

		var createdAt string
		err = tx.QueryRowContext(ctx, `
			SELECT note_id, tag_id, created_at FROM note_tags
			WHERE note_id = ? AND tag_id = ?`, noteID, tagID).
			Scan(&nt.NoteID, &nt.TagID, &createdAt)
		if err != nil {
			return fmt.Errorf("read note_tag: %w", err)
		}
		nt.CreatedAt, err = parseTime(createdAt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &nt, nil
}

// RemoveTagFromNote deletes the link if present.
func (s *Store) RemoveTagFromNote(ctx context.Context, noteID, tagID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM note_tags WHERE note_id = ? AND tag_id = ?`, noteID, tagID)
	return mapError(err, nil)
}

// ListNoteTags returns the full tag records linked to noteID, in the order
// they were linked. Unknown notes yield an empty slice.
func (s *Store) ListNoteTags(ctx context.Context, noteID string) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.user_id, t.color, t.created_at
		FROM tags t
		JOIN note_tags nt ON nt.tag_id = t.id
		WHERE nt.note_id = ?
		ORDER BY nt.created_at ASC, nt.rowid ASC`, noteID)
	if err != nil {
		return nil, err
	}
	return collectTags(rows)
}

func requireRow(ctx context.Context, tx *sql.Tx, query, id string, notFound error) error {
	var one int
	err := tx.QueryRowContext(ctx, query, id).Scan(&one)
	if err != nil {
		return mapError(err, notFound)
	}
	return nil
}
