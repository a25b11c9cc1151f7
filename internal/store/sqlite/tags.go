package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/store"
)

// tagColumns must match the scan order in scanTag.
const tagColumns = `id, name, user_id, color, created_at`

func scanTag(row scanner) (*domain.Tag, error) {
	var (
		t         domain.Tag
		color     sql.NullString
		createdAt string
	)

	if err := row.Scan(&t.ID, &t.Name, &t.UserID, &color, &createdAt); err != nil {
		return nil, err
	}

	var err error
	t.Color = stringPtr(color)
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTags(rows *sql.Rows) ([]*domain.Tag, error) {
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// CreateTag inserts a new tag.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (`+tagColumns+`)
		VALUES (?, ?, ?, ?, ?)`,
		t.ID,
		t.Name,
		t.UserID,
		nullableString(t.Color),
		formatTime(t.CreatedAt),
	)
	return mapError(err, nil)
}

// GetTag retrieves a tag by ID.
func (s *Store) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+tagColumns+` FROM tags WHERE id = ?`, id)
	t, err := scanTag(row)
	if err != nil {
		return nil, mapError(err, store.ErrTagNotFound)
	}
	return t, nil
}

// ListTags returns the tags owned by userID in creation order.
func (s *Store) ListTags(ctx context.Context, userID string) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+tagColumns+` FROM tags
		WHERE user_id = ?
		ORDER BY created_at ASC, rowid ASC`, userID)
	if err != nil {
		return nil, err
	}
	return collectTags(rows)
}

// UpdateTag applies patch. Tags carry no updated_at.
func (s *Store) UpdateTag(ctx context.Context, id string, patch domain.TagPatch) (*domain.Tag, error) {
	var t *domain.Tag
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		t, err = scanTag(tx.QueryRowContext(ctx, `SELECT `+tagColumns+` FROM tags WHERE id = ?`, id))
		if err != nil {
			return mapError(err, store.ErrTagNotFound)
		}

		patch.Apply(t)

		_, err = tx.ExecContext(ctx, `UPDATE tags SET name = ?, color = ? WHERE id = ?`,
			t.Name, nullableString(t.Color), id)
		if err != nil {
			return fmt.Errorf("update tag: %w", mapError(err, nil))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTag removes a tag and its note links. Notes are untouched.
func (s *Store) DeleteTag(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	return mapError(err, nil)
}
