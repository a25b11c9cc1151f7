package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foldnote/foldnote-server/internal/api/dto"
)

func attachmentBody(name string) map[string]any {
	return map[string]any{
		"filename":          name,
		"original_filename": "original-" + name,
		"file_size":         2048,
		"mime_type":         "application/pdf",
		"file_path":         "/data/attachments/" + name,
	}
}

func TestAttachments_Lifecycle(t *testing.T) {
	ts := setupTestServer(t)
	u := ts.createUser(t, "g-1")
	n := ts.createNote(t, u.ID, "Plan", nil)

	resp := ts.api.Post("/api/v1/notes/"+n.ID+"/attachments", attachmentBody("a.pdf"))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	a := decode[dto.Attachment](t, resp).Data
	assert.Equal(t, n.ID, a.NoteID)
	assert.Equal(t, int64(2048), a.FileSize)

	resp = ts.api.Post("/api/v1/notes/"+n.ID+"/attachments", attachmentBody("b.pdf"))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/notes/" + n.ID + "/attachments")
	require.Equal(t, http.StatusOK, resp.Code)
	list := decode[[]dto.Attachment](t, resp).Data
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)

	resp = ts.api.Get("/api/v1/attachments/" + a.ID)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "original-a.pdf", decode[dto.Attachment](t, resp).Data.OriginalFilename)

	resp = ts.api.Delete("/api/v1/attachments/" + a.ID)
	require.Equal(t, http.StatusNoContent, resp.Code)
	resp = ts.api.Delete("/api/v1/attachments/" + a.ID)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/v1/attachments/" + a.ID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateAttachment_UnknownNoteIsConstraintViolation(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/notes/note-missing/attachments", attachmentBody("a.pdf"))
	require.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "CONSTRAINT_VIOLATION", decode[any](t, resp).Code)
}

func TestCreateAttachment_NonPositiveSizeIsValidationError(t *testing.T) {
	ts := setupTestServer(t)
	u := ts.createUser(t, "g-1")
	n := ts.createNote(t, u.ID, "Plan", nil)

	body := attachmentBody("a.pdf")
	body["file_size"] = 0
	resp := ts.api.Post("/api/v1/notes/"+n.ID+"/attachments", body)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "VALIDATION", decode[any](t, resp).Code)
}
