package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/errors"
	"github.com/foldnote/foldnote-server/internal/export"
	"github.com/foldnote/foldnote-server/internal/store"
)

func TestNoteService_CreateNote(t *testing.T) {
	s := setupTestServices(t, Options{})
	ctx := context.Background()
	u := createTestUser(t, s, "g-1")

	n := createTestNote(t, s, u.ID, "First", nil)
	assert.True(t, strings.HasPrefix(n.ID, "note-"))
	assert.Nil(t, n.FolderID)

	_, err := s.notes.CreateNote(ctx, CreateNoteRequest{Title: "", UserID: u.ID})
	assert.True(t, errors.Is(err, errors.ErrValidation))

	ghost := "fld-ghost"
	_, err = s.notes.CreateNote(ctx, CreateNoteRequest{Title: "x", UserID: u.ID, FolderID: &ghost})
	assert.True(t, errors.Is(err, store.ErrConstraintViolation))
}

func TestCreate_EmptyOwnerIsConstraintViolation(t *testing.T) {
	s := setupTestServices(t, Options{})
	ctx := context.Background()

	_, err := s.notes.CreateNote(ctx, CreateNoteRequest{Title: "x"})
	assert.True(t, errors.Is(err, store.ErrConstraintViolation), "note: %v", err)
	assert.False(t, errors.Is(err, errors.ErrValidation))

	_, err = s.folders.CreateFolder(ctx, CreateFolderRequest{Name: "x"})
	assert.True(t, errors.Is(err, store.ErrConstraintViolation), "folder: %v", err)

	_, err = s.tags.CreateTag(ctx, CreateTagRequest{Name: "x"})
	assert.True(t, errors.Is(err, store.ErrConstraintViolation), "tag: %v", err)

	_, err = s.attachments.CreateAttachment(ctx, attachmentRequest("", 10))
	assert.True(t, errors.Is(err, store.ErrConstraintViolation), "attachment: %v", err)
}

func TestNoteService_GetNoteByID_Missing(t *testing.T) {
	s := setupTestServices(t, Options{})

	n, err := s.notes.GetNoteByID(context.Background(), "note-missing")
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestNoteService_ListNotes(t *testing.T) {
	s := setupTestServices(t, Options{})
	ctx := context.Background()
	u := createTestUser(t, s, "g-1")
	f := createTestFolder(t, s, u.ID, "Work", nil)

	filed := createTestNote(t, s, u.ID, "Filed", &f.ID)
	loose := createTestNote(t, s, u.ID, "Loose", nil)

	tag, err := s.tags.CreateTag(ctx, CreateTagRequest{Name: "urgent", UserID: u.ID})
	require.NoError(t, err)
	_, err = s.tags.AddTagToNote(ctx, loose.ID, tag.ID)
	require.NoError(t, err)

	all, err := s.notes.ListNotes(ctx, domain.NoteFilter{UserID: u.ID})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, filed.ID, all[0].ID)

	unfiled, err := s.notes.ListNotes(ctx, domain.NoteFilter{UserID: u.ID, Folder: domain.Null[string]()})
	require.NoError(t, err)
	require.Len(t, unfiled, 1)
	assert.Equal(t, loose.ID, unfiled[0].ID)

	inFolder, err := s.notes.ListNotes(ctx, domain.NoteFilter{UserID: u.ID, Folder: domain.Some(f.ID)})
	require.NoError(t, err)
	require.Len(t, inFolder, 1)
	assert.Equal(t, filed.ID, inFolder[0].ID)

	tagged, err := s.notes.ListNotes(ctx, domain.NoteFilter{UserID: u.ID, TagID: &tag.ID})
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, loose.ID, tagged[0].ID)

	none, err := s.notes.ListNotes(ctx, domain.NoteFilter{UserID: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNoteService_UpdateNote(t *testing.T) {
	s := setupTestServices(t, Options{})
	ctx := context.Background()
	u := createTestUser(t, s, "g-1")
	f := createTestFolder(t, s, u.ID, "Work", nil)
	n := createTestNote(t, s, u.ID, "Draft", &f.ID)

	content := "rewritten"
	updated, err := s.notes.UpdateNote(ctx, n.ID, UpdateNoteRequest{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "rewritten", updated.Content)
	assert.Equal(t, "Draft", updated.Title)
	require.NotNil(t, updated.FolderID)
	assert.True(t, updated.UpdatedAt.After(n.UpdatedAt))

	unfiled, err := s.notes.UpdateNote(ctx, n.ID, UpdateNoteRequest{FolderID: domain.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, unfiled.FolderID)

	_, err = s.notes.UpdateNote(ctx, n.ID, UpdateNoteRequest{FolderID: domain.Some("fld-ghost")})
	assert.True(t, errors.Is(err, store.ErrConstraintViolation))

	_, err = s.notes.UpdateNote(ctx, "note-missing", UpdateNoteRequest{Content: &content})
	assert.True(t, errors.Is(err, store.ErrNoteNotFound))
}

func TestNoteService_DeleteNote(t *testing.T) {
	s := setupTestServices(t, Options{})
	ctx := context.Background()
	u := createTestUser(t, s, "g-1")
	n := createTestNote(t, s, u.ID, "Doomed", nil)

	att, err := s.attachments.CreateAttachment(ctx, CreateAttachmentRequest{
		NoteID: n.ID, Filename: "a.bin", OriginalFilename: "a.bin",
		FileSize: 10, MimeType: "application/octet-stream", FilePath: "/tmp/a.bin",
	})
	require.NoError(t, err)

	require.NoError(t, s.notes.DeleteNote(ctx, n.ID))
	require.NoError(t, s.notes.DeleteNote(ctx, n.ID))

	_, err = s.attachments.GetAttachment(ctx, att.ID)
	assert.True(t, errors.Is(err, store.ErrAttachmentNotFound))
}

func TestNoteService_ExportNote(t *testing.T) {
	s := setupTestServices(t, Options{})
	ctx := context.Background()
	u := createTestUser(t, s, "g-1")
	n := createTestNote(t, s, u.ID, "Exported", nil)

	tag, err := s.tags.CreateTag(ctx, CreateTagRequest{Name: "ideas", UserID: u.ID})
	require.NoError(t, err)
	_, err = s.tags.AddTagToNote(ctx, n.ID, tag.ID)
	require.NoError(t, err)

	out, err := s.notes.ExportNote(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "exported.md", out.Filename)
	assert.Equal(t, export.ContentType, out.ContentType)

	doc, err := export.Parse(out.Body)
	require.NoError(t, err)
	assert.Equal(t, n.ID, doc.ID)
	assert.Equal(t, []string{"ideas"}, doc.Tags)
	assert.Equal(t, n.Content, doc.Content)

	_, err = s.notes.ExportNote(ctx, "note-missing")
	assert.True(t, errors.Is(err, store.ErrNoteNotFound))
}
