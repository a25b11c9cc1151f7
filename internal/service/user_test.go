package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/errors"
	"github.com/foldnote/foldnote-server/internal/store"
)

func TestUserService_CreateUser(t *testing.T) {
	s := setupTestServices(t, Options{})
	ctx := context.Background()

	avatar := "https://example.com/a.png"
	u, err := s.users.CreateUser(ctx, CreateUserRequest{
		Email:     "ada@example.com",
		Name:      "Ada",
		GoogleID:  "g-ada",
		AvatarURL: &avatar,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, u.CreatedAt, u.UpdatedAt)
	require.NotNil(t, u.AvatarURL)
	assert.Equal(t, avatar, *u.AvatarURL)

	got, err := s.users.GetUserByGoogleID(ctx, "g-ada")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
}

func TestUserService_CreateUser_Validation(t *testing.T) {
	s := setupTestServices(t, Options{})

	_, err := s.users.CreateUser(context.Background(), CreateUserRequest{
		Email:    "not-an-email",
		GoogleID: "g-1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))

	var e *errors.Error
	require.True(t, errors.As(err, &e))
	assert.Contains(t, e.Details, "email")
}

func TestUserService_CreateUser_Duplicate(t *testing.T) {
	s := setupTestServices(t, Options{})
	ctx := context.Background()
	createTestUser(t, s, "g-dup")

	_, err := s.users.CreateUser(ctx, CreateUserRequest{
		Email:    "other@example.com",
		GoogleID: "g-dup",
	})
	assert.True(t, errors.Is(err, store.ErrConstraintViolation))

	_, err = s.users.CreateUser(ctx, CreateUserRequest{
		Email:    "g-dup@example.com",
		GoogleID: "g-other",
	})
	assert.True(t, errors.Is(err, store.ErrConstraintViolation))
}

func TestUserService_GetUserByGoogleID_Missing(t *testing.T) {
	s := setupTestServices(t, Options{})

	u, err := s.users.GetUserByGoogleID(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserService_UpdateUser(t *testing.T) {
	s := setupTestServices(t, Options{})
	ctx := context.Background()

	avatar := "https://example.com/a.png"
	u, err := s.users.CreateUser(ctx, CreateUserRequest{
		Email: "b@example.com", Name: "B", GoogleID: "g-b", AvatarURL: &avatar,
	})
	require.NoError(t, err)

	name := "Bea"
	updated, err := s.users.UpdateUser(ctx, u.ID, UpdateUserRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Bea", updated.Name)
	require.NotNil(t, updated.AvatarURL, "absent avatar_url must not clear it")
	assert.True(t, updated.UpdatedAt.After(u.UpdatedAt))

	cleared, err := s.users.UpdateUser(ctx, u.ID, UpdateUserRequest{AvatarURL: domain.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, cleared.AvatarURL)
	assert.Equal(t, "Bea", cleared.Name)

	_, err = s.users.UpdateUser(ctx, "missing", UpdateUserRequest{Name: &name})
	assert.True(t, errors.Is(err, store.ErrUserNotFound))
}

func TestUserService_DeleteUser_Cascades(t *testing.T) {
	s := setupTestServices(t, Options{})
	ctx := context.Background()

	u := createTestUser(t, s, "g-c")
	f := createTestFolder(t, s, u.ID, "Work", nil)
	n := createTestNote(t, s, u.ID, "Plan", &f.ID)

	require.NoError(t, s.users.DeleteUser(ctx, u.ID))
	require.NoError(t, s.users.DeleteUser(ctx, u.ID), "second delete is a no-op")

	_, err := s.users.GetUser(ctx, u.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	_, err = s.folders.GetFolder(ctx, f.ID)
	assert.True(t, errors.Is(err, store.ErrFolderNotFound))
	got, err := s.notes.GetNoteByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
