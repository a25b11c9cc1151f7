package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/store/sqlite"
	"github.com/foldnote/foldnote-server/internal/validation"
)

type testServices struct {
	store       *sqlite.Store
	users       *UserService
	folders     *FolderService
	notes       *NoteService
	tags        *TagService
	attachments *AttachmentService
}

// setupTestServices wires every service to a fresh sqlite database.
func setupTestServices(t *testing.T, opts Options) *testServices {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	testStore, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = testStore.Close() //nolint:errcheck // Test cleanup
	})

	v := validation.New()
	return &testServices{
		store:       testStore,
		users:       NewUserService(testStore, v, logger),
		folders:     NewFolderService(testStore, v, logger, opts),
		notes:       NewNoteService(testStore, v, logger),
		tags:        NewTagService(testStore, v, logger),
		attachments: NewAttachmentService(testStore, v, logger),
	}
}

func createTestUser(t *testing.T, s *testServices, googleID string) *domain.User {
	t.Helper()

	u, err := s.users.CreateUser(context.Background(), CreateUserRequest{
		Email:    googleID + "@example.com",
		Name:     "Test " + googleID,
		GoogleID: googleID,
	})
	require.NoError(t, err)
	return u
}

func createTestFolder(t *testing.T, s *testServices, userID, name string, parentID *string) *domain.Folder {
	t.Helper()

	f, err := s.folders.CreateFolder(context.Background(), CreateFolderRequest{
		Name:           name,
		UserID:         userID,
		ParentFolderID: parentID,
	})
	require.NoError(t, err)
	return f
}

func createTestNote(t *testing.T, s *testServices, userID, title string, folderID *string) *domain.Note {
	t.Helper()

	n, err := s.notes.CreateNote(context.Background(), CreateNoteRequest{
		Title:    title,
		Content:  "body of " + title,
		UserID:   userID,
		FolderID: folderID,
	})
	require.NoError(t, err)
	return n
}
