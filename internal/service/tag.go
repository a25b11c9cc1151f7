package service

import (
	"context"
	"log/slog"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/id"
	"github.com/foldnote/foldnote-server/internal/logger"
	"github.com/foldnote/foldnote-server/internal/normalize"
	"github.com/foldnote/foldnote-server/internal/store"
	"github.com/foldnote/foldnote-server/internal/validation"
)

// TagService manages tags and note-tag associations.
type TagService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, validator *validation.Validator, logger *slog.Logger) *TagService {
	return &TagService{store: store, validator: validator, logger: logger}
}

// CreateTagRequest is the input to CreateTag.
type CreateTagRequest struct {
	Name   string  `json:"name" validate:"required,min=1,max=100"`
	UserID string  `json:"user_id"`
	Color  *string `json:"color,omitempty" validate:"omitempty,max=32"`
}

// UpdateTagRequest is a partial tag update.
type UpdateTagRequest struct {
	Name  *string                 `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Color domain.Optional[string] `json:"color"`
}

// CreateTag stores a new tag for req.UserID.
func (s *TagService) CreateTag(ctx context.Context, req CreateTagRequest) (*domain.Tag, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	t := &domain.Tag{
		ID:        id.MustGenerate(id.PrefixTag),
		Name:      normalize.Text(req.Name),
		UserID:    req.UserID,
		Color:     req.Color,
		CreatedAt: domain.Now(),
	}
	if err := s.store.CreateTag(ctx, t); err != nil {
		return nil, err
	}

	logger.FromContext(ctx, s.logger).Info("tag created", "tag_id", t.ID, "user_id", t.UserID)
	return t, nil
}

// GetTag returns a tag or store.ErrTagNotFound.
func (s *TagService) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	return s.store.GetTag(ctx, id)
}

// ListTags returns all tags of a user.
func (s *TagService) ListTags(ctx context.Context, userID string) ([]*domain.Tag, error) {
	return s.store.ListTags(ctx, userID)
}

// UpdateTag applies a partial update. Unknown ids fail with
// store.ErrTagNotFound.
func (s *TagService) UpdateTag(ctx context.Context, tagID string, req UpdateTagRequest) (*domain.Tag, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	patch := domain.TagPatch{Name: normalize.TextPtr(req.Name), Color: req.Color}
	t, err := s.store.UpdateTag(ctx, tagID, patch)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx, s.logger).Info("tag updated", "tag_id", t.ID)
	return t, nil
}

// DeleteTag removes a tag and its note associations.
func (s *TagService) DeleteTag(ctx context.Context, id string) error {
	logDeletionImpact(ctx, s.logger, s.store, domain.EntityTag, id)

	if err := s.store.DeleteTag(ctx, id); err != nil {
		return err
	}

	logger.FromContext(ctx, s.logger).Info("tag deleted", "tag_id", id)
	return nil
}

// AddTagToNote links a tag to a note. Linking twice returns the original
// association. Unknown note or tag ids fail with NotFound.
func (s *TagService) AddTagToNote(ctx context.Context, noteID, tagID string) (*domain.NoteTag, error) {
	nt, err := s.store.AddTagToNote(ctx, noteID, tagID, domain.Now())
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx, s.logger).Info("tag added to note", "note_id", noteID, "tag_id", tagID)
	return nt, nil
}

// RemoveTagFromNote unlinks a tag from a note. Missing links are a no-op.
func (s *TagService) RemoveTagFromNote(ctx context.Context, noteID, tagID string) error {
	if err := s.store.RemoveTagFromNote(ctx, noteID, tagID); err != nil {
		return err
	}

	logger.FromContext(ctx, s.logger).Info("tag removed from note", "note_id", noteID, "tag_id", tagID)
	return nil
}

// ListNoteTags returns the tags linked to a note.
func (s *TagService) ListNoteTags(ctx context.Context, noteID string) ([]*domain.Tag, error) {
	return s.store.ListNoteTags(ctx, noteID)
}
