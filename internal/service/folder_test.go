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

func TestFolderService_CreateFolder_Permissive(t *testing.T) {
	s := setupTestServices(t, Options{})
	ctx := context.Background()
	u := createTestUser(t, s, "g-1")

	ghost := "fld-does-not-exist"
	f := createTestFolder(t, s, u.ID, "Orphan", &ghost)
	require.NotNil(t, f.ParentFolderID)
	assert.Equal(t, ghost, *f.ParentFolderID)

	_, err := s.folders.CreateFolder(ctx, CreateFolderRequest{Name: "", UserID: u.ID})
	assert.True(t, errors.Is(err, errors.ErrValidation))

	_, err = s.folders.CreateFolder(ctx, CreateFolderRequest{Name: "x", UserID: "no-such-user"})
	assert.True(t, errors.Is(err, store.ErrConstraintViolation))
}

func TestFolderService_CreateFolder_NormalizesName(t *testing.T) {
	s := setupTestServices(t, Options{})
	u := createTestUser(t, s, "g-1")

	f := createTestFolder(t, s, u.ID, "Cafe\u0301", nil)
	assert.Equal(t, "Caf\u00e9", f.Name)
}

func TestFolderService_Strict(t *testing.T) {
	s := setupTestServices(t, Options{StrictFolderHierarchy: true})
	ctx := context.Background()
	u := createTestUser(t, s, "g-1")
	other := createTestUser(t, s, "g-2")

	root := createTestFolder(t, s, u.ID, "Root", nil)
	child := createTestFolder(t, s, u.ID, "Child", &root.ID)
	grandchild := createTestFolder(t, s, u.ID, "Grandchild", &child.ID)
	foreign := createTestFolder(t, s, other.ID, "Theirs", nil)

	ghost := "fld-ghost"
	_, err := s.folders.CreateFolder(ctx, CreateFolderRequest{Name: "x", UserID: u.ID, ParentFolderID: &ghost})
	assert.ErrorIs(t, err, ErrParentNotFound)

	_, err = s.folders.CreateFolder(ctx, CreateFolderRequest{Name: "x", UserID: u.ID, ParentFolderID: &foreign.ID})
	assert.True(t, errors.Is(err, errors.ErrConstraintViolation))

	_, err = s.folders.UpdateFolder(ctx, root.ID, UpdateFolderRequest{ParentFolderID: domain.Some(root.ID)})
	assert.True(t, errors.Is(err, errors.ErrConstraintViolation))

	_, err = s.folders.UpdateFolder(ctx, root.ID, UpdateFolderRequest{ParentFolderID: domain.Some(grandchild.ID)})
	assert.True(t, errors.Is(err, errors.ErrConstraintViolation))

	moved, err := s.folders.UpdateFolder(ctx, grandchild.ID, UpdateFolderRequest{ParentFolderID: domain.Some(root.ID)})
	require.NoError(t, err)
	assert.Equal(t, root.ID, *moved.ParentFolderID)

	detached, err := s.folders.UpdateFolder(ctx, child.ID, UpdateFolderRequest{ParentFolderID: domain.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, detached.ParentFolderID)
}

func TestFolderService_Permissive_AllowsCycle(t *testing.T) {
	s := setupTestServices(t, Options{})
	ctx := context.Background()
	u := createTestUser(t, s, "g-1")

	a := createTestFolder(t, s, u.ID, "A", nil)
	b := createTestFolder(t, s, u.ID, "B", &a.ID)

	_, err := s.folders.UpdateFolder(ctx, a.ID, UpdateFolderRequest{ParentFolderID: domain.Some(b.ID)})
	require.NoError(t, err)

	tree, err := s.folders.GetFolderTree(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, a.ID, tree[0].Folder.ID)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, b.ID, tree[0].Children[0].Folder.ID)
}

func TestFolderService_UpdateFolder(t *testing.T) {
	s := setupTestServices(t, Options{})
	ctx := context.Background()
	u := createTestUser(t, s, "g-1")
	parent := createTestFolder(t, s, u.ID, "Parent", nil)
	f := createTestFolder(t, s, u.ID, "Old", &parent.ID)

	name := "New"
	updated, err := s.folders.UpdateFolder(ctx, f.ID, UpdateFolderRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	require.NotNil(t, updated.ParentFolderID)
	assert.Equal(t, parent.ID, *updated.ParentFolderID)

	_, err = s.folders.UpdateFolder(ctx, "fld-missing", UpdateFolderRequest{Name: &name})
	assert.True(t, errors.Is(err, store.ErrFolderNotFound))

	empty := ""
	_, err = s.folders.UpdateFolder(ctx, f.ID, UpdateFolderRequest{Name: &empty})
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestFolderService_DeleteFolder(t *testing.T) {
	s := setupTestServices(t, Options{})
	ctx := context.Background()
	u := createTestUser(t, s, "g-1")

	parent := createTestFolder(t, s, u.ID, "Parent", nil)
	sub := createTestFolder(t, s, u.ID, "Sub", &parent.ID)
	n := createTestNote(t, s, u.ID, "Filed", &parent.ID)

	require.NoError(t, s.folders.DeleteFolder(ctx, parent.ID))
	require.NoError(t, s.folders.DeleteFolder(ctx, parent.ID))

	got, err := s.notes.GetNoteByID(ctx, n.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.FolderID)

	orphan, err := s.folders.GetFolder(ctx, sub.ID)
	require.NoError(t, err)
	require.NotNil(t, orphan.ParentFolderID)
	assert.Equal(t, parent.ID, *orphan.ParentFolderID)

	tree, err := s.folders.GetFolderTree(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.True(t, tree[0].Orphaned)
}
