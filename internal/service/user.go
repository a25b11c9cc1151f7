package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/id"
	"github.com/foldnote/foldnote-server/internal/logger"
	"github.com/foldnote/foldnote-server/internal/normalize"
	"github.com/foldnote/foldnote-server/internal/store"
	"github.com/foldnote/foldnote-server/internal/validation"
)

// UserService manages user records. Identity verification happens upstream;
// a user here is whatever the caller says it is.
type UserService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store store.Store, validator *validation.Validator, logger *slog.Logger) *UserService {
	return &UserService{store: store, validator: validator, logger: logger}
}

// CreateUserRequest is the input to CreateUser.
type CreateUserRequest struct {
	Email     string  `json:"email" validate:"required,email,max=320"`
	Name      string  `json:"name" validate:"max=255"`
	GoogleID  string  `json:"google_id" validate:"required,max=255"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,max=2048"`
}

// UpdateUserRequest carries the mutable user fields.
type UpdateUserRequest struct {
	Name      *string                 `json:"name,omitempty" validate:"omitempty,max=255"`
	AvatarURL domain.Optional[string] `json:"avatar_url"`
}

// CreateUser registers a new user. Duplicate email or google_id fails with
// a constraint violation.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	now := domain.Now()
	u := &domain.User{
		ID:        id.NewUserID(),
		Email:     req.Email,
		Name:      normalize.Text(req.Name),
		GoogleID:  req.GoogleID,
		AvatarURL: req.AvatarURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	logger.FromContext(ctx, s.logger).Info("user created", "user_id", u.ID)
	return u, nil
}

// GetUser returns the user with id or store.ErrUserNotFound.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.store.GetUser(ctx, id)
}

// GetUserByGoogleID returns nil without error when no user matches.
func (s *UserService) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	u, err := s.store.GetUserByGoogleID(ctx, googleID)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, nil
	}
	return u, err
}

// UpdateUser changes name and avatar.
func (s *UserService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*domain.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	patch := domain.UserPatch{Name: normalize.TextPtr(req.Name), AvatarURL: req.AvatarURL}
	u, err := s.store.UpdateUser(ctx, id, patch, domain.Now())
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx, s.logger).Info("user updated", "user_id", id)
	return u, nil
}

// DeleteUser removes a user and everything they own. Missing ids are a no-op.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	logDeletionImpact(ctx, s.logger, s.store, domain.EntityUser, id)

	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}

	logger.FromContext(ctx, s.logger).Info("user deleted", "user_id", id)
	return nil
}
