package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/foldnote/foldnote-server/internal/errors"
	"github.com/foldnote/foldnote-server/internal/store"
)

func TestNewAPIError_DomainErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", store.ErrNoteNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("load: %w", store.ErrFolderNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"constraint", store.ConstraintError(store.ConstraintForeignKey, nil), http.StatusConflict, "CONSTRAINT_VIOLATION"},
		{"validation", domainerrors.Validation("bad"), http.StatusBadRequest, "VALIDATION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := newAPIError(http.StatusInternalServerError, "unexpected", tt.err)
			apiErr, ok := se.(*APIError)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.GetStatus())
			assert.Equal(t, tt.code, apiErr.Code)
		})
	}
}

func TestNewAPIError_UnprocessableBecomesBadRequest(t *testing.T) {
	se := newAPIError(http.StatusUnprocessableEntity, "validation failed",
		&huma.ErrorDetail{Location: "body.name", Message: "expected required property name to be present"})

	apiErr, ok := se.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.GetStatus())
	assert.Equal(t, "VALIDATION", apiErr.Code)

	details, ok := apiErr.Details.([]FieldError)
	require.True(t, ok)
	require.Len(t, details, 1)
	assert.Equal(t, "body.name", details[0].Location)
}

func TestNewAPIError_HidesInternalMessages(t *testing.T) {
	se := newAPIError(http.StatusInternalServerError, "unexpected", fmt.Errorf("disk on fire"))

	apiErr, ok := se.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, apiErr.GetStatus())
	assert.Equal(t, "INTERNAL", apiErr.Code)
	assert.Equal(t, "internal server error", apiErr.Message)
}
