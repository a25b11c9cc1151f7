package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/store"
)

// folderColumns must match the scan order in scanFolder.
const folderColumns = `id, name, user_id, parent_folder_id, created_at, updated_at`

func scanFolder(row scanner) (*domain.Folder, error) {
	var (
		f         domain.Folder
		parentID  sql.NullString
		createdAt string
		updatedAt string
	)

	if err := row.Scan(&f.ID, &f.Name, &f.UserID, &parentID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	f.ParentFolderID = stringPtr(parentID)
	if f.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if f.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateFolder inserts a folder. parent_folder_id is stored unchecked.
func (s *Store) CreateFolder(ctx context.Context, f *domain.Folder) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO folders (`+folderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		f.ID,
		f.Name,
		f.UserID,
		nullableString(f.ParentFolderID),
		formatTime(f.CreatedAt),
		formatTime(f.UpdatedAt),
	)
	return mapError(err, nil)
}

// GetFolder retrieves a folder by ID.
func (s *Store) GetFolder(ctx context.Context, id string) (*domain.Folder, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+folderColumns+` FROM folders WHERE id = ?`, id)
	f, err := scanFolder(row)
	if err != nil {
		return nil, mapError(err, store.ErrFolderNotFound)
	}
	return f, nil
}

// ListFolders returns every folder owned by userID, parents and children
// together, in creation order.
func (s *Store) ListFolders(ctx context.Context, userID string) ([]*domain.Folder, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+folderColumns+` FROM folders
		WHERE user_id = ?
		ORDER BY created_at ASC, rowid ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	folders := []*domain.Folder{}
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// UpdateFolder applies patch and refreshes updated_at.
func (s *Store) UpdateFolder(ctx context.Context, id string, patch domain.FolderPatch, now time.Time) (*domain.Folder, error) {
	var f *domain.Folder
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		f, err = scanFolder(tx.QueryRowContext(ctx, `SELECT `+folderColumns+` FROM folders WHERE id = ?`, id))
		if err != nil {
			return mapError(err, store.ErrFolderNotFound)
		}

		patch.Apply(f)
		f.UpdatedAt = domain.NextUpdatedAt(f.UpdatedAt, now)

		_, err = tx.ExecContext(ctx, `
			UPDATE folders SET name = ?, parent_folder_id = ?, updated_at = ?
			WHERE id = ?`,
			f.Name,
			nullableString(f.ParentFolderID),
			formatTime(f.UpdatedAt),
			id,
		)
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

// DeleteFolder removes a folder. Notes in it become unfiled; child folders
// keep their parent_folder_id.
func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
	return mapError(err, nil)
}
