package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/store"
)

const folderColumns = `id, name, user_id, parent_folder_id, created_at, updated_at`

func scanFolder(row pgx.Row) (*domain.Folder, error) {
	var f domain.Folder
	if err := row.Scan(&f.ID, &f.Name, &f.UserID, &f.ParentFolderID, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	utc(&f.CreatedAt, &f.UpdatedAt)
	return &f, nil
}

// CreateFolder inserts a folder. parent_folder_id is not checked.
func (s *Store) CreateFolder(ctx context.Context, f *domain.Folder) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO folders (`+folderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		f.ID, f.Name, f.UserID, f.ParentFolderID, f.CreatedAt, f.UpdatedAt)
	return mapError(err, nil)
}

// GetFolder retrieves a folder by ID.
func (s *Store) GetFolder(ctx context.Context, id string) (*domain.Folder, error) {
	f, err := scanFolder(s.pool.QueryRow(ctx, `SELECT `+folderColumns+` FROM folders WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, store.ErrFolderNotFound)
	}
	return f, nil
}

// ListFolders returns the flat folder set of userID in creation order.
func (s *Store) ListFolders(ctx context.Context, userID string) ([]*domain.Folder, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+folderColumns+` FROM folders
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanFolder)
}

// UpdateFolder applies patch under a row lock and refreshes updated_at.
func (s *Store) UpdateFolder(ctx context.Context, id string, patch domain.FolderPatch, now time.Time) (*domain.Folder, error) {
	var f *domain.Folder
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		f, err = scanFolder(tx.QueryRow(ctx, `SELECT `+folderColumns+` FROM folders WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return mapError(err, store.ErrFolderNotFound)
		}

		patch.Apply(f)
		f.UpdatedAt = domain.NextUpdatedAt(f.UpdatedAt, now)

		_, err = tx.Exec(ctx, `UPDATE folders SET name = $1, parent_folder_id = $2, updated_at = $3 WHERE id = $4`,
			f.Name, f.ParentFolderID, f.UpdatedAt, id)
		if err != nil {
			return fmt.Errorf("update folder: %w", mapError(err, nil))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// DeleteFolder removes a folder. Notes become unfiled, subfolders dangle.
func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM folders WHERE id = $1`, id)
	return mapError(err, nil)
}

// collect drains rows through scan, always returning a non-nil slice.
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]*T, error) {
	defer rows.Close()

	out := []*T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
