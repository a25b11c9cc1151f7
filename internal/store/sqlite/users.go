package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/store"
)

// userColumns must match the scan order in scanUser.
const userColumns = `id, email, name, google_id, avatar_url, created_at, updated_at`

func scanUser(row scanner) (*domain.User, error) {
	var (
		u         domain.User
		avatarURL sql.NullString
		createdAt string
		updatedAt string
	)

	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.GoogleID, &avatarURL, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	u.AvatarURL = stringPtr(avatarURL)
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user. Duplicate email or google_id is a
// constraint violation.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.Email,
		u.Name,
		u.GoogleID,
		nullableString(u.AvatarURL),
		formatTime(u.CreatedAt),
		formatTime(u.UpdatedAt),
	)
	return mapError(err, nil)
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, mapError(err, store.ErrUserNotFound)
	}
	return u, nil
}

// GetUserByGoogleID retrieves a user by their identity provider subject.
func (s *Store) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE google_id = ?`, googleID)
	u, err := scanUser(row)
	if err != nil {
		return nil, mapError(err, store.ErrUserNotFound)
	}
	return u, nil
}

// UpdateUser applies patch and refreshes updated_at.
func (s *Store) UpdateUser(ctx context.Context, id string, patch domain.UserPatch, now time.Time) (*domain.User, error) {
	var u *domain.User
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		u, err = scanUser(tx.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
		if err != nil {
			return mapError(err, store.ErrUserNotFound)
		}

		patch.Apply(u)
		u.UpdatedAt = domain.NextUpdatedAt(u.UpdatedAt, now)

		_, err = tx.ExecContext(ctx, `
			UPDATE users SET name = ?, avatar_url = ?, updated_at = ?
			WHERE id = ?`,
			u.Name,
			nullableString(u.AvatarURL),
			formatTime(u.UpdatedAt),
			id,
		)
		if err != nil {
			return fmt.Errorf("update user: %w", mapError(err, nil))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser removes a user. Folders, notes, and tags go with it.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return mapError(err, nil)
}
