package validation_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foldnote/foldnote-server/internal/errors"
	"github.com/foldnote/foldnote-server/internal/validation"
)

type testRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Name     string  `json:"name" validate:"required,min=1,max=255"`
	Title    *string `json:"title,omitempty" validate:"omitempty,min=1"`
	FileSize int64   `json:"file_size" validate:"gt=0"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	err := v.Validate(testRequest{Email: "ann@example.com", Name: "Ann", FileSize: 1})
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()
	empty := ""

	tests := []struct {
		name      string
		req       testRequest
		wantField string
		wantMsg   string
	}{
		{"missing name", testRequest{Email: "a@example.com", FileSize: 1}, "name", "is required"},
		{"invalid email", testRequest{Email: "nope", Name: "A", FileSize: 1}, "email", "must be a valid email address"},
		{"name too long", testRequest{Email: "a@example.com", Name: strings.Repeat("x", 256), FileSize: 1}, "name", "must not exceed 255 characters"},
		{"empty optional title", testRequest{Email: "a@example.com", Name: "A", Title: &empty, FileSize: 1}, "title", "must be at least 1 characters"},
		{"zero file size", testRequest{Email: "a@example.com", Name: "A"}, "file_size", "must be greater than 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var coded *errors.Error
			require.ErrorAs(t, err, &coded)
			assert.Equal(t, http.StatusBadRequest, coded.HTTPStatus())
			assert.ErrorIs(t, err, errors.ErrValidation)

			details, ok := coded.Details.(map[string]string)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, details[tt.wantField])
		})
	}
}

func TestValidator_JSONFieldNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(testRequest{Name: "Test", FileSize: 1})
	require.Error(t, err)

	assert.Contains(t, err.Error(), "email")
	assert.NotContains(t, err.Error(), "Email")
}
