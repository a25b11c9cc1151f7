package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/foldnote/foldnote-server/internal/api/dto"
	"github.com/foldnote/foldnote-server/internal/service"
)

func (s *Server) registerAttachmentRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createAttachment",
		Method:        http.MethodPost,
		Path:          "/api/v1/notes/{note_id}/attachments",
		Summary:       "Record attachment",
		Description:   "Stores metadata for a file already written to storage",
		Tags:          []string{"Attachments"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateAttachment)

	huma.Register(s.api, huma.Operation{
		OperationID: "listNoteAttachments",
		Method:      http.MethodGet,
		Path:        "/api/v1/notes/{note_id}/attachments",
		Summary:     "List attachments",
		Tags:        []string{"Attachments"},
	}, s.handleListNoteAttachments)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAttachment",
		Method:      http.MethodGet,
		Path:        "/api/v1/attachments/{id}",
		Summary:     "Get attachment",
		Tags:        []string{"Attachments"},
	}, s.handleGetAttachment)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteAttachment",
		Method:        http.MethodDelete,
		Path:          "/api/v1/attachments/{id}",
		Summary:       "Delete attachment",
		Tags:          []string{"Attachments"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteAttachment)
}

// === DTOs ===

// CreateAttachmentRequest is the request body for recording an attachment.
type CreateAttachmentRequest struct {
	Filename         string `json:"filename" doc:"Stored file name"`
	OriginalFilename string `json:"original_filename" doc:"Name of the uploaded file"`
	FileSize         int64  `json:"file_size" doc:"Size in bytes"`
	MimeType         string `json:"mime_type" doc:"Media type"`
	FilePath         string `json:"file_path" doc:"Storage location"`
}

// CreateAttachmentInput wraps the create attachment request for Huma.
type CreateAttachmentInput struct {
	NoteID string `path:"note_id" doc:"Note ID"`
	Body   CreateAttachmentRequest
}

// AttachmentOutput wraps an attachment for Huma.
type AttachmentOutput struct {
	Body dto.Attachment
}

// AttachmentListOutput wraps an attachment list for Huma.
type AttachmentListOutput struct {
	Body []dto.Attachment
}

// AttachmentIDInput identifies an attachment.
type AttachmentIDInput struct {
	ID string `path:"id" doc:"Attachment ID"`
}

// === Handlers ===

func (s *Server) handleCreateAttachment(ctx context.Context, input *CreateAttachmentInput) (*AttachmentOutput, error) {
	a, err := s.services.Attachment.CreateAttachment(ctx, service.CreateAttachmentRequest{
		NoteID:           input.NoteID,
		Filename:         input.Body.Filename,
		OriginalFilename: input.Body.OriginalFilename,
		FileSize:         input.Body.FileSize,
		MimeType:         input.Body.MimeType,
		FilePath:         input.Body.FilePath,
	})
	if err != nil {
		return nil, err
	}
	return &AttachmentOutput{Body: dto.FromAttachment(a)}, nil
}

func (s *Server) handleListNoteAttachments(ctx context.Context, input *NoteScopedInput) (*AttachmentListOutput, error) {
	atts, err := s.services.Attachment.ListNoteAttachments(ctx, input.NoteID)
	if err != nil {
		return nil, err
	}
	return &AttachmentListOutput{Body: dto.Map(atts, dto.FromAttachment)}, nil
}

func (s *Server) handleGetAttachment(ctx context.Context, input *AttachmentIDInput) (*AttachmentOutput, error) {
	a, err := s.services.Attachment.GetAttachment(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &AttachmentOutput{Body: dto.FromAttachment(a)}, nil
}

func (s *Server) handleDeleteAttachment(ctx context.Context, input *AttachmentIDInput) (*struct{}, error) {
	if err := s.services.Attachment.DeleteAttachment(ctx, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}
