package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/export"
	"github.com/foldnote/foldnote-server/internal/id"
	"github.com/foldnote/foldnote-server/internal/logger"
	"github.com/foldnote/foldnote-server/internal/normalize"
	"github.com/foldnote/foldnote-server/internal/store"
	"github.com/foldnote/foldnote-server/internal/validation"
)

// NoteService manages notes and their export.
type NoteService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewNoteService creates a new note service.
func NewNoteService(store store.Store, validator *validation.Validator, logger *slog.Logger) *NoteService {
	return &NoteService{store: store, validator: validator, logger: logger}
}

// CreateNoteRequest is the input to CreateNote.
type CreateNoteRequest struct {
	Title    string  `json:"title" validate:"required,min=1,max=500"`
	Content  string  `json:"content"`
	UserID   string  `json:"user_id"`
	FolderID *string `json:"folder_id,omitempty"`
}

// UpdateNoteRequest is a partial note update. FolderID distinguishes
// "leave alone" from "move to unfiled".
type UpdateNoteRequest struct {
	Title    *string                 `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	Content  *string                 `json:"content,omitempty"`
	FolderID domain.Optional[string] `json:"folder_id"`
}

// ExportedNote is a rendered note document.
type ExportedNote struct {
	Filename    string
	ContentType string
	Body        []byte
}

// CreateNote stores a new note. A folder_id that does not reference an
// existing folder fails with a constraint violation.
func (s *NoteService) CreateNote(ctx context.Context, req CreateNoteRequest) (*domain.Note, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	now := domain.Now()
	n := &domain.Note{
		ID:        id.MustGenerate(id.PrefixNote),
		Title:     normalize.Text(req.Title),
		Content:   req.Content,
		UserID:    req.UserID,
		FolderID:  req.FolderID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateNote(ctx, n); err != nil {
		return nil, err
	}

	logger.FromContext(ctx, s.logger).Info("note created",
		"note_id", n.ID,
		"user_id", n.UserID,
		"filed", n.FolderID != nil,
	)
	return n, nil
}

// GetNoteByID returns nil without error when the note does not exist.
func (s *NoteService) GetNoteByID(ctx context.Context, id string) (*domain.Note, error) {
	n, err := s.store.GetNote(ctx, id)
	if errors.Is(err, store.ErrNoteNotFound) {
		return nil, nil
	}
	return n, err
}

// ListNotes returns the notes matching filter, oldest first.
func (s *NoteService) ListNotes(ctx context.Context, filter domain.NoteFilter) ([]*domain.Note, error) {
	return s.store.ListNotes(ctx, filter)
}

// UpdateNote applies a partial update. Unknown ids fail with
// store.ErrNoteNotFound.
func (s *NoteService) UpdateNote(ctx context.Context, noteID string, req UpdateNoteRequest) (*domain.Note, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	patch := domain.NotePatch{
		Title:    normalize.TextPtr(req.Title),
		Content:  req.Content,
		FolderID: req.FolderID,
	}
	n, err := s.store.UpdateNote(ctx, noteID, patch, domain.Now())
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx, s.logger).Info("note updated", "note_id", n.ID)
	return n, nil
}

// DeleteNote removes a note with its tag links and attachments.
func (s *NoteService) DeleteNote(ctx context.Context, id string) error {
	logDeletionImpact(ctx, s.logger, s.store, domain.EntityNote, id)

	if err := s.store.DeleteNote(ctx, id); err != nil {
		return err
	}

	logger.FromContext(ctx, s.logger).Info("note deleted", "note_id", id)
	return nil
}

// ExportNote renders a note as Markdown with YAML front matter.
func (s *NoteService) ExportNote(ctx context.Context, id string) (*ExportedNote, error) {
	n, err := s.store.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}
	tags, err := s.store.ListNoteTags(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list note tags: %w", err)
	}

	body, err := export.Markdown(n, tags)
	if err != nil {
		return nil, fmt.Errorf("render note: %w", err)
	}

	logger.FromContext(ctx, s.logger).Debug("note exported", "note_id", id, "bytes", len(body))
	return &ExportedNote{
		Filename:    export.Filename(n),
		ContentType: export.ContentType,
		Body:        body,
	}, nil
}
