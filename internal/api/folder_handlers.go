package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/foldnote/foldnote-server/internal/api/dto"
	"github.com/foldnote/foldnote-server/internal/service"
)

func (s *Server) registerFolderRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createFolder",
		Method:        http.MethodPost,
		Path:          "/api/v1/folders",
		Summary:       "Create folder",
		Description:   "Creates a folder. parent_folder_id is not required to reference an existing folder unless strict hierarchy mode is on.",
		Tags:          []string{"Folders"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateFolder)

	huma.Register(s.api, huma.Operation{
		OperationID: "listFolders",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{user_id}/folders",
		Summary:     "List folders",
		Description: "Returns the user's folders as a flat list in creation order",
		Tags:        []string{"Folders"},
	}, s.handleListFolders)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFolderTree",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{user_id}/folders/tree",
		Summary:     "Get folder tree",
		Description: "Returns the user's folders nested by parent. Folders whose parent is missing are returned as orphaned roots.",
		Tags:        []string{"Folders"},
	}, s.handleGetFolderTree)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFolder",
		Method:      http.MethodGet,
		Path:        "/api/v1/folders/{id}",
		Summary:     "Get folder",
		Tags:        []string{"Folders"},
	}, s.handleGetFolder)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateFolder",
		Method:      http.MethodPatch,
		Path:        "/api/v1/folders/{id}",
		Summary:     "Update folder",
		Description: "Renames or moves a folder. Send parent_folder_id null to make it a root.",
		Tags:        []string{"Folders"},
	}, s.handleUpdateFolder)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteFolder",
		Method:        http.MethodDelete,
		Path:          "/api/v1/folders/{id}",
		Summary:       "Delete folder",
		Description:   "Deletes a folder. Its notes become unfiled; its subfolders keep their parent reference.",
		Tags:          []string{"Folders"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteFolder)
}

// === DTOs ===

// CreateFolderRequest is the request body for creating a folder.
type CreateFolderRequest struct {
	Name           string  `json:"name" doc:"Folder name"`
	UserID         string  `json:"user_id" doc:"Owner ID"`
	ParentFolderID *string `json:"parent_folder_id,omitempty" doc:"Parent folder ID"`
}

// CreateFolderInput wraps the create folder request for Huma.
type CreateFolderInput struct {
	Body CreateFolderRequest
}

// FolderOutput wraps a folder for Huma.
type FolderOutput struct {
	Body dto.Folder
}

// UserScopedInput selects the resources of one user.
type UserScopedInput struct {
	UserID string `path:"user_id" doc:"Owner ID"`
}

// FolderListOutput wraps a folder list for Huma.
type FolderListOutput struct {
	Body []dto.Folder
}

// FolderTreeOutput wraps a folder forest for Huma.
type FolderTreeOutput struct {
	Body []dto.FolderNode
}

// FolderIDInput identifies a folder.
type FolderIDInput struct {
	ID string `path:"id" doc:"Folder ID"`
}

// UpdateFolderRequest is the request body for updating a folder.
type UpdateFolderRequest struct {
	Name           *string            `json:"name,omitempty" doc:"Folder name"`
	ParentFolderID dto.NullableString `json:"parent_folder_id,omitempty" doc:"Parent folder ID, null for a root folder"`
}

// UpdateFolderInput wraps the update folder request for Huma.
type UpdateFolderInput struct {
	ID   string `path:"id" doc:"Folder ID"`
	Body UpdateFolderRequest
}

// === Handlers ===

func (s *Server) handleCreateFolder(ctx context.Context, input *CreateFolderInput) (*FolderOutput, error) {
	f, err := s.services.Folder.CreateFolder(ctx, service.CreateFolderRequest{
		Name:           input.Body.Name,
		UserID:         input.Body.UserID,
		ParentFolderID: input.Body.ParentFolderID,
	})
	if err != nil {
		return nil, err
	}
	return &FolderOutput{Body: dto.FromFolder(f)}, nil
}

func (s *Server) handleListFolders(ctx context.Context, input *UserScopedInput) (*FolderListOutput, error) {
	folders, err := s.services.Folder.ListFolders(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return &FolderListOutput{Body: dto.Map(folders, dto.FromFolder)}, nil
}

func (s *Server) handleGetFolderTree(ctx context.Context, input *UserScopedInput) (*FolderTreeOutput, error) {
	tree, err := s.services.Folder.GetFolderTree(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return &FolderTreeOutput{Body: dto.FromFolderNodes(tree)}, nil
}

func (s *Server) handleGetFolder(ctx context.Context, input *FolderIDInput) (*FolderOutput, error) {
	f, err := s.services.Folder.GetFolder(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &FolderOutput{Body: dto.FromFolder(f)}, nil
}

func (s *Server) handleUpdateFolder(ctx context.Context, input *UpdateFolderInput) (*FolderOutput, error) {
	f, err := s.services.Folder.UpdateFolder(ctx, input.ID, service.UpdateFolderRequest{
		Name:           input.Body.Name,
		ParentFolderID: input.Body.ParentFolderID.Optional(),
	})
	if err != nil {
		return nil, err
	}
	return &FolderOutput{Body: dto.FromFolder(f)}, nil
}

func (s *Server) handleDeleteFolder(ctx context.Context, input *FolderIDInput) (*struct{}, error) {
	if err := s.services.Folder.DeleteFolder(ctx, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}
