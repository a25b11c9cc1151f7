package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/foldnote/foldnote-server/internal/api/dto"
	"github.com/foldnote/foldnote-server/internal/domain"
	domainerrors "github.com/foldnote/foldnote-server/internal/errors"
	"github.com/foldnote/foldnote-server/internal/service"
)

func (s *Server) registerNoteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createNote",
		Method:        http.MethodPost,
		Path:          "/api/v1/notes",
		Summary:       "Create note",
		Description:   "Creates a note, optionally inside a folder",
		Tags:          []string{"Notes"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "listNotes",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{user_id}/notes",
		Summary:     "List notes",
		Description: "Returns the user's notes in creation order. folder_id selects one folder, unfiled=true selects notes without a folder, tag_id selects notes carrying a tag.",
		Tags:        []string{"Notes"},
	}, s.handleListNotes)

	huma.Register(s.api, huma.Operation{
		OperationID: "getNoteById",
		Method:      http.MethodGet,
		Path:        "/api/v1/notes/{id}",
		Summary:     "Get note",
		Tags:        []string{"Notes"},
	}, s.handleGetNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateNote",
		Method:      http.MethodPatch,
		Path:        "/api/v1/notes/{id}",
		Summary:     "Update note",
		Description: "Edits a note. Send folder_id null to unfile it.",
		Tags:        []string{"Notes"},
	}, s.handleUpdateNote)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteNote",
		Method:        http.MethodDelete,
		Path:          "/api/v1/notes/{id}",
		Summary:       "Delete note",
		Description:   "Deletes a note with its tag links and attachments",
		Tags:          []string{"Notes"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "exportNote",
		Method:      http.MethodGet,
		Path:        "/api/v1/notes/{id}/export",
		Summary:     "Export note",
		Description: "Returns the note as Markdown with YAML front matter",
		Tags:        []string{"Notes"},
	}, s.handleExportNote)
}

// === DTOs ===

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	Title    string  `json:"title" doc:"Title"`
	Content  string  `json:"content" doc:"Body text"`
	UserID   string  `json:"user_id" doc:"Owner ID"`
	FolderID *string `json:"folder_id,omitempty" doc:"Containing folder"`
}

// CreateNoteInput wraps the create note request for Huma.
type CreateNoteInput struct {
	Body CreateNoteRequest
}

// NoteOutput wraps a note for Huma.
type NoteOutput struct {
	Body dto.Note
}

// NoteListOutput wraps a note list for Huma.
type NoteListOutput struct {
	Body []dto.Note
}

// ListNotesInput contains the note filters.
type ListNotesInput struct {
	UserID   string `path:"user_id" doc:"Owner ID"`
	FolderID string `query:"folder_id" doc:"Only notes in this folder"`
	Unfiled  bool   `query:"unfiled" doc:"Only notes without a folder"`
	TagID    string `query:"tag_id" doc:"Only notes carrying this tag"`
}

// Filter converts the query into a note filter.
func (in *ListNotesInput) Filter() (domain.NoteFilter, error) {
	filter := domain.NoteFilter{UserID: in.UserID}
	switch {
	case in.Unfiled && in.FolderID != "":
		return filter, domainerrors.ValidationWithDetails(
			"folder_id and unfiled cannot be combined",
			map[string]string{"unfiled": "cannot be combined with folder_id"})
	case in.Unfiled:
		filter.Folder = domain.Null[string]()
	case in.FolderID != "":
		filter.Folder = domain.Some(in.FolderID)
	}
	if in.TagID != "" {
		filter.TagID = &in.TagID
	}
	return filter, nil
}

// NoteIDInput identifies a note.
type NoteIDInput struct {
	ID string `path:"id" doc:"Note ID"`
}

// UpdateNoteRequest is the request body for updating a note.
type UpdateNoteRequest struct {
	Title    *string            `json:"title,omitempty" doc:"Title"`
	Content  *string            `json:"content,omitempty" doc:"Body text"`
	FolderID dto.NullableString `json:"folder_id,omitempty" doc:"Containing folder, null to unfile"`
}

// UpdateNoteInput wraps the update note request for Huma.
type UpdateNoteInput struct {
	ID   string `path:"id" doc:"Note ID"`
	Body UpdateNoteRequest
}

// ExportNoteOutput is a Markdown document.
type ExportNoteOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// === Handlers ===

func (s *Server) handleCreateNote(ctx context.Context, input *CreateNoteInput) (*NoteOutput, error) {
	n, err := s.services.Note.CreateNote(ctx, service.CreateNoteRequest{
		Title:    input.Body.Title,
		Content:  input.Body.Content,
		UserID:   input.Body.UserID,
		FolderID: input.Body.FolderID,
	})
	if err != nil {
		return nil, err
	}
	return &NoteOutput{Body: dto.FromNote(n)}, nil
}

func (s *Server) handleListNotes(ctx context.Context, input *ListNotesInput) (*NoteListOutput, error) {
	filter, err := input.Filter()
	if err != nil {
		return nil, err
	}
	notes, err := s.services.Note.ListNotes(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &NoteListOutput{Body: dto.Map(notes, dto.FromNote)}, nil
}

func (s *Server) handleGetNote(ctx context.Context, input *NoteIDInput) (*NoteOutput, error) {
	n, err := s.services.Note.GetNoteByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domainerrors.NotFound("note not found")
	}
	return &NoteOutput{Body: dto.FromNote(n)}, nil
}

func (s *Server) handleUpdateNote(ctx context.Context, input *UpdateNoteInput) (*NoteOutput, error) {
	n, err := s.services.Note.UpdateNote(ctx, input.ID, service.UpdateNoteRequest{
		Title:    input.Body.Title,
		Content:  input.Body.Content,
		FolderID: input.Body.FolderID.Optional(),
	})
	if err != nil {
		return nil, err
	}
	return &NoteOutput{Body: dto.FromNote(n)}, nil
}

func (s *Server) handleDeleteNote(ctx context.Context, input *NoteIDInput) (*struct{}, error) {
	if err := s.services.Note.DeleteNote(ctx, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleExportNote(ctx context.Context, input *NoteIDInput) (*ExportNoteOutput, error) {
	doc, err := s.services.Note.ExportNote(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ExportNoteOutput{
		ContentType:        doc.ContentType,
		ContentDisposition: `attachment; filename="` + doc.Filename + `"`,
		Body:               doc.Body,
	}, nil
}
