package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/foldnote/foldnote-server/internal/api/dto"
	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/service"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createTag",
		Method:        http.MethodPost,
		Path:          "/api/v1/tags",
		Summary:       "Create tag",
		Description:   "Creates a tag. Names are unique per user.",
		Tags:          []string{"Tags"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{user_id}/tags",
		Summary:     "List tags",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTag",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Get tag",
		Tags:        []string{"Tags"},
	}, s.handleGetTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTag",
		Method:      http.MethodPatch,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Update tag",
		Description: "Renames or recolors a tag. Send color null to clear it.",
		Tags:        []string{"Tags"},
	}, s.handleUpdateTag)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteTag",
		Method:        http.MethodDelete,
		Path:          "/api/v1/tags/{id}",
		Summary:       "Delete tag",
		Description:   "Deletes a tag and removes it from every note",
		Tags:          []string{"Tags"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "addTagToNote",
		Method:      http.MethodPut,
		Path:        "/api/v1/notes/{note_id}/tags/{tag_id}",
		Summary:     "Tag note",
		Description: "Links a tag to a note. Repeating the call returns the existing link.",
		Tags:        []string{"Tags"},
	}, s.handleAddTagToNote)

	huma.Register(s.api, huma.Operation{
		OperationID:   "removeTagFromNote",
		Method:        http.MethodDelete,
		Path:          "/api/v1/notes/{note_id}/tags/{tag_id}",
		Summary:       "Untag note",
		Tags:          []string{"Tags"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleRemoveTagFromNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "listNoteTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/notes/{note_id}/tags",
		Summary:     "List note tags",
		Tags:        []string{"Tags"},
	}, s.handleListNoteTags)
}

// === DTOs ===

// CreateTagRequest is the request body for creating a tag.
type CreateTagRequest struct {
	Name   string  `json:"name" doc:"Tag name"`
	UserID string  `json:"user_id" doc:"Owner ID"`
	Color  *string `json:"color,omitempty" doc:"Display color"`
}

// CreateTagInput wraps the create tag request for Huma.
type CreateTagInput struct {
	Body CreateTagRequest
}

// TagOutput wraps a tag for Huma.
type TagOutput struct {
	Body dto.Tag
}

// TagListOutput wraps a tag list for Huma.
type TagListOutput struct {
	Body []dto.Tag
}

// TagIDInput identifies a tag.
type TagIDInput struct {
	ID string `path:"id" doc:"Tag ID"`
}

// UpdateTagRequest is the request body for updating a tag.
type UpdateTagRequest struct {
	Name  *string            `json:"name,omitempty" doc:"Tag name"`
	Color dto.NullableString `json:"color,omitempty" doc:"Display color, null to clear"`
}

// UpdateTagInput wraps the update tag request for Huma.
type UpdateTagInput struct {
	ID   string `path:"id" doc:"Tag ID"`
	Body UpdateTagRequest
}

// NoteTagInput identifies a note-tag link.
type NoteTagInput struct {
	NoteID string `path:"note_id" doc:"Note ID"`
	TagID  string `path:"tag_id" doc:"Tag ID"`
}

// NoteTagOutput wraps a note-tag link for Huma.
type NoteTagOutput struct {
	Body dto.NoteTag
}

// NoteScopedInput selects the resources of one note.
type NoteScopedInput struct {
	NoteID string `path:"note_id" doc:"Note ID"`
}

// === Handlers ===

func toTagList(tags []*domain.Tag) []dto.Tag {
	return dto.Map(tags, dto.FromTag)
}

func (s *Server) handleCreateTag(ctx context.Context, input *CreateTagInput) (*TagOutput, error) {
	t, err := s.services.Tag.CreateTag(ctx, service.CreateTagRequest{
		Name:   input.Body.Name,
		UserID: input.Body.UserID,
		Color:  input.Body.Color,
	})
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: dto.FromTag(t)}, nil
}

func (s *Server) handleListTags(ctx context.Context, input *UserScopedInput) (*TagListOutput, error) {
	tags, err := s.services.Tag.ListTags(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return &TagListOutput{Body: toTagList(tags)}, nil
}

func (s *Server) handleGetTag(ctx context.Context, input *TagIDInput) (*TagOutput, error) {
	t, err := s.services.Tag.GetTag(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: dto.FromTag(t)}, nil
}

func (s *Server) handleUpdateTag(ctx context.Context, input *UpdateTagInput) (*TagOutput, error) {
	t, err := s.services.Tag.UpdateTag(ctx, input.ID, service.UpdateTagRequest{
		Name:  input.Body.Name,
		Color: input.Body.Color.Optional(),
	})
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: dto.FromTag(t)}, nil
}

func (s *Server) handleDeleteTag(ctx context.Context, input *TagIDInput) (*struct{}, error) {
	if err := s.services.Tag.DeleteTag(ctx, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleAddTagToNote(ctx context.Context, input *NoteTagInput) (*NoteTagOutput, error) {
	nt, err := s.services.Tag.AddTagToNote(ctx, input.NoteID, input.TagID)
	if err != nil {
		return nil, err
	}
	return &NoteTagOutput{Body: dto.FromNoteTag(nt)}, nil
}

func (s *Server) handleRemoveTagFromNote(ctx context.Context, input *NoteTagInput) (*struct{}, error) {
	if err := s.services.Tag.RemoveTagFromNote(ctx, input.NoteID, input.TagID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleListNoteTags(ctx context.Context, input *NoteScopedInput) (*TagListOutput, error) {
	tags, err := s.services.Tag.ListNoteTags(ctx, input.NoteID)
	if err != nil {
		return nil, err
	}
	return &TagListOutput{Body: toTagList(tags)}, nil
}
