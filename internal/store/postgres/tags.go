package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/store"
)

const tagColumns = `id, name, user_id, color, created_at`

func scanTag(row pgx.Row) (*domain.Tag, error) {
	var t domain.Tag
	if err := row.Scan(&t.ID, &t.Name, &t.UserID, &t.Color, &t.CreatedAt); err != nil {
		return nil, err
	}
	utc(&t.CreatedAt)
	return &t, nil
}

// CreateTag inserts a tag.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tags (`+tagColumns+`)
		VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.Name, t.UserID, t.Color, t.CreatedAt)
	return mapError(err, nil)
}

// GetTag retrieves a tag by ID.
func (s *Store) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	t, err := scanTag(s.pool.QueryRow(ctx, `SELECT `+tagColumns+` FROM tags WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, store.ErrTagNotFound)
	}
	return t, nil
}

// ListTags returns the tags of userID in creation order.
func (s *Store) ListTags(ctx context.Context, userID string) ([]*domain.Tag, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+tagColumns+` FROM tags
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTag)
}

// UpdateTag applies patch under a row lock.
func (s *Store) UpdateTag(ctx context.Context, id string, patch domain.TagPatch) (*domain.Tag, error) {
	var t *domain.Tag
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		t, err = scanTag(tx.QueryRow(ctx, `SELECT `+tagColumns+` FROM tags WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return mapError(err, store.ErrTagNotFound)
		}

		patch.Apply(t)

		_, err = tx.Exec(ctx, `UPDATE tags SET name = $1, color = $2 WHERE id = $3`, t.Name, t.Color, id)
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

// DeleteTag removes a tag and its note links.
func (s *Store) DeleteTag(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	return mapError(err, nil)
}
