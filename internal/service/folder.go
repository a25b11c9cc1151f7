package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/foldnote/foldnote-server/internal/domain"
	domainerrors "github.com/foldnote/foldnote-server/internal/errors"
	"github.com/foldnote/foldnote-server/internal/id"
	"github.com/foldnote/foldnote-server/internal/logger"
	"github.com/foldnote/foldnote-server/internal/normalize"
	"github.com/foldnote/foldnote-server/internal/store"
	"github.com/foldnote/foldnote-server/internal/validation"
)

// FolderService manages the per-user folder hierarchy.
//
// By default parent_folder_id is stored as given, so a folder may point at
// a missing or foreign folder. With Options.StrictFolderHierarchy the
// parent must exist, share the owner, and not sit below the folder itself.
type FolderService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
	strict    bool
}

// NewFolderService creates a new folder service.
func NewFolderService(store store.Store, validator *validation.Validator, logger *slog.Logger, opts Options) *FolderService {
	return &FolderService{
		store:     store,
		validator: validator,
		logger:    logger,
		strict:    opts.StrictFolderHierarchy,
	}
}

// CreateFolderRequest is the input to CreateFolder.
type CreateFolderRequest struct {
	Name           string  `json:"name" validate:"required,min=1,max=255"`
	UserID         string  `json:"user_id"`
	ParentFolderID *string `json:"parent_folder_id,omitempty"`
}

// UpdateFolderRequest is a partial folder update.
type UpdateFolderRequest struct {
	Name           *string                 `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	ParentFolderID domain.Optional[string] `json:"parent_folder_id"`
}

// Hierarchy violations reported in strict mode.
var (
	ErrParentNotFound = domainerrors.ConstraintViolation("parent folder does not exist")
	ErrParentForeign  = domainerrors.ConstraintViolation("parent folder belongs to another user")
	ErrParentIsSelf   = domainerrors.ConstraintViolation("folder cannot be its own parent")
	ErrParentIsChild  = domainerrors.ConstraintViolation("parent folder is inside this folder")
)

// CreateFolder creates a folder for req.UserID.
func (s *FolderService) CreateFolder(ctx context.Context, req CreateFolderRequest) (*domain.Folder, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if s.strict && req.ParentFolderID != nil {
		if _, err := s.checkParent(ctx, req.UserID, *req.ParentFolderID); err != nil {
			return nil, err
		}
	}

	now := domain.Now()
	f := &domain.Folder{
		ID:             id.MustGenerate(id.PrefixFolder),
		Name:           normalize.Text(req.Name),
		UserID:         req.UserID,
		ParentFolderID: req.ParentFolderID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.CreateFolder(ctx, f); err != nil {
		return nil, err
	}

	logger.FromContext(ctx, s.logger).Info("folder created",
		"folder_id", f.ID,
		"user_id", f.UserID,
		"has_parent", f.ParentFolderID != nil,
	)
	return f, nil
}

// GetFolder returns a folder or store.ErrFolderNotFound.
func (s *FolderService) GetFolder(ctx context.Context, id string) (*domain.Folder, error) {
	return s.store.GetFolder(ctx, id)
}

// ListFolders returns the flat folder list of a user.
func (s *FolderService) ListFolders(ctx context.Context, userID string) ([]*domain.Folder, error) {
	return s.store.ListFolders(ctx, userID)
}

// GetFolderTree returns the user's folders arranged as a forest.
func (s *FolderService) GetFolderTree(ctx context.Context, userID string) ([]*domain.FolderNode, error) {
	folders, err := s.store.ListFolders(ctx, userID)
	if err != nil {
		return nil, err
	}

	tree := domain.BuildFolderTree(folders)
	for _, root := range tree {
		if root.Orphaned {
			logger.FromContext(ctx, s.logger).Debug("folder has missing parent",
				"folder_id", root.Folder.ID,
				"parent_folder_id", root.Folder.ParentFolderID,
			)
		}
	}
	return tree, nil
}

// UpdateFolder applies a partial update. Unknown ids fail with
// store.ErrFolderNotFound.
func (s *FolderService) UpdateFolder(ctx context.Context, folderID string, req UpdateFolderRequest) (*domain.Folder, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if s.strict && req.ParentFolderID.Value != nil {
		if err := s.checkMove(ctx, folderID, *req.ParentFolderID.Value); err != nil {
			return nil, err
		}
	}

	patch := domain.FolderPatch{
		Name:           normalize.TextPtr(req.Name),
		ParentFolderID: req.ParentFolderID,
	}
	f, err := s.store.UpdateFolder(ctx, folderID, patch, domain.Now())
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx, s.logger).Info("folder updated", "folder_id", f.ID)
	return f, nil
}

// DeleteFolder removes a folder. Its notes become unfiled and its
// subfolders keep pointing at the deleted id.
func (s *FolderService) DeleteFolder(ctx context.Context, id string) error {
	logDeletionImpact(ctx, s.logger, s.store, domain.EntityFolder, id)

	if err := s.store.DeleteFolder(ctx, id); err != nil {
		return err
	}

	logger.FromContext(ctx, s.logger).Info("folder deleted", "folder_id", id)
	return nil
}

func (s *FolderService) checkParent(ctx context.Context, userID, parentID string) (*domain.Folder, error) {
	parent, err := s.store.GetFolder(ctx, parentID)
	if errors.Is(err, store.ErrFolderNotFound) {
		return nil, ErrParentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load parent folder: %w", err)
	}
	if parent.UserID != userID {
		return nil, ErrParentForeign
	}
	return parent, nil
}

func (s *FolderService) checkMove(ctx context.Context, folderID, parentID string) error {
	current, err := s.store.GetFolder(ctx, folderID)
	if err != nil {
		return err
	}
	if parentID == folderID {
		return ErrParentIsSelf
	}
	if _, err := s.checkParent(ctx, current.UserID, parentID); err != nil {
		return err
	}

	folders, err := s.store.ListFolders(ctx, current.UserID)
	if err != nil {
		return fmt.Errorf("list folders: %w", err)
	}
	if domain.IsDescendant(folders, folderID, parentID) {
		return ErrParentIsChild
	}
	return nil
}
