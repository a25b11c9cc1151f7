package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/foldnote/foldnote-server/internal/api/dto"
	domainerrors "github.com/foldnote/foldnote-server/internal/errors"
	"github.com/foldnote/foldnote-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createUser",
		Method:        http.MethodPost,
		Path:          "/api/v1/users",
		Summary:       "Create user",
		Description:   "Registers a user. Email and google_id must be unique.",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUserByGoogleId",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/google/{google_id}",
		Summary:     "Find user by Google ID",
		Description: "Returns the user registered with an identity provider subject",
		Tags:        []string{"Users"},
	}, s.handleGetUserByGoogleID)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}",
		Summary:     "Get user",
		Tags:        []string{"Users"},
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateUser",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/{id}",
		Summary:     "Update user",
		Description: "Changes name and avatar. Send avatar_url null to remove it.",
		Tags:        []string{"Users"},
	}, s.handleUpdateUser)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteUser",
		Method:        http.MethodDelete,
		Path:          "/api/v1/users/{id}",
		Summary:       "Delete user",
		Description:   "Deletes a user with all folders, notes and tags. Succeeds when the user does not exist.",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteUser)
}

// === DTOs ===

// CreateUserRequest is the request body for creating a user.
type CreateUserRequest struct {
	Email     string  `json:"email" doc:"Email address"`
	Name      string  `json:"name" doc:"Display name"`
	GoogleID  string  `json:"google_id" doc:"Identity provider subject"`
	AvatarURL *string `json:"avatar_url,omitempty" doc:"Avatar image URL"`
}

// CreateUserInput wraps the create user request for Huma.
type CreateUserInput struct {
	Body CreateUserRequest
}

// UserOutput wraps a user for Huma.
type UserOutput struct {
	Body dto.User
}

// GetUserInput contains parameters for getting a user.
type GetUserInput struct {
	ID string `path:"id" doc:"User ID"`
}

// GetUserByGoogleIDInput contains parameters for the Google ID lookup.
type GetUserByGoogleIDInput struct {
	GoogleID string `path:"google_id" doc:"Identity provider subject"`
}

// UpdateUserRequest is the request body for updating a user.
type UpdateUserRequest struct {
	Name      *string            `json:"name,omitempty" doc:"Display name"`
	AvatarURL dto.NullableString `json:"avatar_url,omitempty" doc:"Avatar image URL, null to remove"`
}

// UpdateUserInput wraps the update user request for Huma.
type UpdateUserInput struct {
	ID   string `path:"id" doc:"User ID"`
	Body UpdateUserRequest
}

// DeleteUserInput contains parameters for deleting a user.
type DeleteUserInput struct {
	ID string `path:"id" doc:"User ID"`
}

// === Handlers ===

func (s *Server) handleCreateUser(ctx context.Context, input *CreateUserInput) (*UserOutput, error) {
	u, err := s.services.User.CreateUser(ctx, service.CreateUserRequest{
		Email:     input.Body.Email,
		Name:      input.Body.Name,
		GoogleID:  input.Body.GoogleID,
		AvatarURL: input.Body.AvatarURL,
	})
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: dto.FromUser(u)}, nil
}

func (s *Server) handleGetUserByGoogleID(ctx context.Context, input *GetUserByGoogleIDInput) (*UserOutput, error) {
	u, err := s.services.User.GetUserByGoogleID(ctx, input.GoogleID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domainerrors.NotFound("user not found")
	}
	return &UserOutput{Body: dto.FromUser(u)}, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *GetUserInput) (*UserOutput, error) {
	u, err := s.services.User.GetUser(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: dto.FromUser(u)}, nil
}

func (s *Server) handleUpdateUser(ctx context.Context, input *UpdateUserInput) (*UserOutput, error) {
	u, err := s.services.User.UpdateUser(ctx, input.ID, service.UpdateUserRequest{
		Name:      input.Body.Name,
		AvatarURL: input.Body.AvatarURL.Optional(),
	})
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: dto.FromUser(u)}, nil
}

func (s *Server) handleDeleteUser(ctx context.Context, input *DeleteUserInput) (*struct{}, error) {
	if err := s.services.User.DeleteUser(ctx, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}
