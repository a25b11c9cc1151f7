package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/store"
)

const userColumns = `id, email, name, google_id, avatar_url, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.GoogleID, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	utc(&u.CreatedAt, &u.UpdatedAt)
	return &u, nil
}

// CreateUser inserts a new user.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Email, u.Name, u.GoogleID, u.AvatarURL, u.CreatedAt, u.UpdatedAt)
	return mapError(err, nil)
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, store.ErrUserNotFound)
	}
	return u, nil
}

// GetUserByGoogleID retrieves a user by identity provider subject.
func (s *Store) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE google_id = $1`, googleID))
	if err != nil {
		return nil, mapError(err, store.ErrUserNotFound)
	}
	return u, nil
}

// UpdateUser applies patch under a row lock and refreshes updated_at.
func (s *Store) UpdateUser(ctx context.Context, id string, patch domain.UserPatch, now time.Time) (*domain.User, error) {
	var u *domain.User
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		u, err = scanUser(tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return mapError(err, store.ErrUserNotFound)
		}

		patch.Apply(u)
		u.UpdatedAt = domain.NextUpdatedAt(u.UpdatedAt, now)

		_, err = tx.Exec(ctx, `UPDATE users SET name = $1, avatar_url = $2, updated_at = $3 WHERE id = $4`,
			u.Name, u.AvatarURL, u.UpdatedAt, id)
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

// DeleteUser removes a user and, by cascade, everything they own.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return mapError(err, nil)
}
