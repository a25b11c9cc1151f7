// Package dto provides request and response types for the Foldnote API.
// These types are used by huma to generate OpenAPI documentation and perform validation.
package dto

import (
	"bytes"
	"encoding/json"

	"github.com/danielgtaylor/huma/v2"

	"github.com/foldnote/foldnote-server/internal/domain"
)

// NullableString is a PATCH field that tells an absent key apart from an
// explicit null. The zero value means absent.
type NullableString struct {
	Set   bool
	Value *string
}

// Schema documents the field as a nullable string.
func (NullableString) Schema(huma.Registry) *huma.Schema {
	return &huma.Schema{Type: huma.TypeString, Nullable: true}
}

// UnmarshalJSON is only called for keys present in the body.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// MarshalJSON writes null or the string.
func (n NullableString) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// Optional converts the field for the service layer.
func (n NullableString) Optional() domain.Optional[string] {
	return domain.Optional[string]{Set: n.Set, Value: n.Value}
}

// Set builds a present NullableString, for clients and tests.
func Set(v string) NullableString {
	return NullableString{Set: true, Value: &v}
}

// Null builds a present NullableString holding null.
func Null() NullableString {
	return NullableString{Set: true}
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message" doc:"Human-readable message"`
}
