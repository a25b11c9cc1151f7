package service

import (
	"context"
	"log/slog"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/id"
	"github.com/foldnote/foldnote-server/internal/logger"
	"github.com/foldnote/foldnote-server/internal/store"
	"github.com/foldnote/foldnote-server/internal/validation"
)

// AttachmentService manages attachment metadata. File bytes are stored by
// the caller; only the reference is recorded here.
type AttachmentService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewAttachmentService creates a new attachment service.
func NewAttachmentService(store store.Store, validator *validation.Validator, logger *slog.Logger) *AttachmentService {
	return &AttachmentService{store: store, validator: validator, logger: logger}
}

// CreateAttachmentRequest is the input to CreateAttachment.
type CreateAttachmentRequest struct {
	NoteID           string `json:"note_id"`
	Filename         string `json:"filename" validate:"max=255"`
	OriginalFilename string `json:"original_filename" validate:"max=255"`
	FileSize         int64  `json:"file_size" validate:"gt=0"`
	MimeType         string `json:"mime_type" validate:"max=255"`
	FilePath         string `json:"file_path" validate:"max=4096"`
}

// CreateAttachment records an attachment. A note_id that does not reference
// an existing note fails with a constraint violation.
func (s *AttachmentService) CreateAttachment(ctx context.Context, req CreateAttachmentRequest) (*domain.Attachment, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	a := &domain.Attachment{
		ID:               id.MustGenerate(id.PrefixAttachment),
		NoteID:           req.NoteID,
		Filename:         req.Filename,
		OriginalFilename: req.OriginalFilename,
		FileSize:         req.FileSize,
		MimeType:         req.MimeType,
		FilePath:         req.FilePath,
		CreatedAt:        domain.Now(),
	}
	if err := s.store.CreateAttachment(ctx, a); err != nil {
		return nil, err
	}

	logger.FromContext(ctx, s.logger).Info("attachment created",
		"attachment_id", a.ID,
		"note_id", a.NoteID,
		"size", a.FileSize,
	)
	return a, nil
}

// GetAttachment returns an attachment or store.ErrAttachmentNotFound.
func (s *AttachmentService) GetAttachment(ctx context.Context, id string) (*domain.Attachment, error) {
	return s.store.GetAttachment(ctx, id)
}

// ListNoteAttachments returns the attachments of a note.
func (s *AttachmentService) ListNoteAttachments(ctx context.Context, noteID string) ([]*domain.Attachment, error) {
	return s.store.ListNoteAttachments(ctx, noteID)
}

// DeleteAttachment removes attachment metadata. Missing ids are a no-op.
func (s *AttachmentService) DeleteAttachment(ctx context.Context, id string) error {
	if err := s.store.DeleteAttachment(ctx, id); err != nil {
		return err
	}

	logger.FromContext(ctx, s.logger).Info("attachment deleted", "attachment_id", id)
	return nil
}
