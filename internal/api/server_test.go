package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foldnote/foldnote-server/internal/api/dto"
	"github.com/foldnote/foldnote-server/internal/service"
	"github.com/foldnote/foldnote-server/internal/store/sqlite"
	"github.com/foldnote/foldnote-server/internal/validation"
)

// testEnvelope mirrors response.Envelope with a typed payload.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details"`
}

// testServer wraps the API server with an in-process client.
type testServer struct {
	*Server
	api humatest.TestAPI
}

type testServerOptions struct {
	Options
	FolderOptions service.Options
}

// setupTestServer creates a server backed by a fresh sqlite database.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	return setupTestServerWith(t, testServerOptions{})
}

func setupTestServerWith(t *testing.T, opts testServerOptions) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close() //nolint:errcheck // Test cleanup
	})

	v := validation.New()
	services := &Services{
		User:       service.NewUserService(st, v, logger),
		Folder:     service.NewFolderService(st, v, logger, opts.FolderOptions),
		Note:       service.NewNoteService(st, v, logger),
		Tag:        service.NewTagService(st, v, logger),
		Attachment: service.NewAttachmentService(st, v, logger),
	}

	s := NewServer(st, services, opts.Options, logger)
	return &testServer{Server: s, api: humatest.Wrap(t, s.API())}
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) testEnvelope[T] {
	t.Helper()

	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env), "body: %s", resp.Body.String())
	return env
}

func (ts *testServer) createUser(t *testing.T, googleID string) dto.User {
	t.Helper()

	resp := ts.api.Post("/api/v1/users", map[string]any{
		"email":     googleID + "@example.com",
		"name":      "User " + googleID,
		"google_id": googleID,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[dto.User](t, resp).Data
}

func (ts *testServer) createFolder(t *testing.T, userID, name string, parentID *string) dto.Folder {
	t.Helper()

	body := map[string]any{"name": name, "user_id": userID}
	if parentID != nil {
		body["parent_folder_id"] = *parentID
	}
	resp := ts.api.Post("/api/v1/folders", body)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[dto.Folder](t, resp).Data
}

func (ts *testServer) createNote(t *testing.T, userID, title string, folderID *string) dto.Note {
	t.Helper()

	body := map[string]any{"title": title, "content": "body of " + title, "user_id": userID}
	if folderID != nil {
		body["folder_id"] = *folderID
	}
	resp := ts.api.Post("/api/v1/notes", body)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[dto.Note](t, resp).Data
}

func (ts *testServer) createTag(t *testing.T, userID, name string) dto.Tag {
	t.Helper()

	resp := ts.api.Post("/api/v1/tags", map[string]any{"name": name, "user_id": userID})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[dto.Tag](t, resp).Data
}

// === Tests ===

func TestHealth_Healthy(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	env := decode[HealthResponse](t, resp)
	assert.True(t, env.Success)
	assert.Equal(t, 1, env.V)
	assert.Equal(t, "healthy", env.Data.Status)
	assert.Equal(t, "healthy", env.Data.Components["database"].Status)
}

func TestHealth_DatabaseClosed(t *testing.T) {
	ts := setupTestServer(t)
	require.NoError(t, ts.store.Close())

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusServiceUnavailable, resp.Code)

	env := decode[HealthResponse](t, resp)
	assert.Equal(t, "unhealthy", env.Data.Status)
	assert.Equal(t, "database unreachable", env.Data.Components["database"].Message)
}

func TestUnknownRoute_ReturnsEnvelope(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/nope")
	require.Equal(t, http.StatusNotFound, resp.Code)

	env := decode[any](t, resp)
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestRequestID_Echoed(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health", "X-Request-Id: req-123")
	assert.Equal(t, "req-123", resp.Header().Get("X-Request-Id"))
}

func TestCORS_Preflight(t *testing.T) {
	ts := setupTestServerWith(t, testServerOptions{
		Options: Options{CORSAllowedOrigins: []string{"https://app.example.com"}},
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/users", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestOpenAPI_ListsOperations(t *testing.T) {
	ts := setupTestServer(t)

	oapi := ts.API().OpenAPI()
	for _, path := range []string{
		"/api/v1/users",
		"/api/v1/users/{user_id}/folders/tree",
		"/api/v1/users/{user_id}/notes",
		"/api/v1/notes/{id}/export",
		"/api/v1/notes/{note_id}/tags/{tag_id}",
		"/api/v1/attachments/{id}",
	} {
		assert.Contains(t, oapi.Paths, path)
	}
}
