package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/store"
)

// AddTagToNote links noteID and tagID, returning the stored link when it
// already exists. A concurrent insert of the same pair blocks on the primary
// key until the first commits, then does nothing.
func (s *Store) AddTagToNote(ctx context.Context, noteID, tagID string, now time.Time) (*domain.NoteTag, error) {
	var nt domain.NoteTag
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		if err := requireRow(ctx, tx, `SELECT 1 FROM notes WHERE id = $1`, noteID, store.ErrNoteNotFound); err != nil {
			return err
		}
		if err := requireRow(ctx, tx, `SELECT 1 FROM tags WHERE id = $1`, tagID, store.ErrTagNotFound); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO note_tags (note_id, tag_id, created_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (note_id, tag_id) DO NOTHING`,
			noteID, tagID, now)
		if err != nil {
			return fmt.Errorf("insert note_tag: %w", mapError(err, nil))
		}

		err = tx.QueryRow(ctx, `
			SELECT note_id, tag_id, created_at FROM note_tags
			WHERE note_id = $1 AND tag_id = $2`, noteID, tagID).
			Scan(&nt.NoteID, &nt.TagID, &nt.CreatedAt)
		if err != nil {
			return fmt.Errorf("read note_tag: %w", err)
		}
		utc(&nt.CreatedAt)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &nt, nil
}

// RemoveTagFromNote deletes the link if present.
func (s *Store) RemoveTagFromNote(ctx context.Context, noteID, tagID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM note_tags WHERE note_id = $1 AND tag_id = $2`, noteID, tagID)
	return mapError(err, nil)
}

// ListNoteTags returns the tags linked to noteID in link order.
func (s *Store) ListNoteTags(ctx context.Context, noteID string) ([]*domain.Tag, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT t.id, t.name, t.user_id, t.color, t.created_at
		FROM tags t
		JOIN note_tags nt ON nt.tag_id = t.id
		WHERE nt.note_id = $1
		ORDER BY nt.created_at ASC, t.id ASC`, noteID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTag)
}

func requireRow(ctx context.Context, tx pgx.Tx, query, id string, notFound error) error {
	var one int
	if err := tx.QueryRow(ctx, query, id).Scan(&one); err != nil {
		return mapError(err, notFound)
	}
	return nil
}
