package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type optionalProbe struct {
	FolderID Optional[string] `json:"folder_id"`
}

func TestOptional_UnmarshalDistinguishesAbsentFromNull(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantSet  bool
		wantNull bool
		wantVal  string
	}{
		{"absent", `{}`, false, false, ""},
		{"null", `{"folder_id": null}`, true, true, ""},
		{"value", `{"folder_id": "fld-1"}`, true, false, "fld-1"},
		{"empty string", `{"folder_id": ""}`, true, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p optionalProbe
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))

			assert.Equal(t, tt.wantSet, p.FolderID.Set)
			assert.Equal(t, tt.wantNull, p.FolderID.IsNull())
			if tt.wantSet && !tt.wantNull {
				require.NotNil(t, p.FolderID.Value)
				assert.Equal(t, tt.wantVal, *p.FolderID.Value)
			}
		})
	}
}

func TestOptional_UnmarshalWrongType(t *testing.T) {
	var p optionalProbe
	err := json.Unmarshal([]byte(`{"folder_id": 12}`), &p)
	assert.Error(t, err)
}

func TestOptional_Marshal(t *testing.T) {
	b, err := json.Marshal(optionalProbe{FolderID: Some("fld-1")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"folder_id":"fld-1"}`, string(b))

	b, err = json.Marshal(optionalProbe{FolderID: Null[string]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"folder_id":null}`, string(b))
}

func TestOptional_PtrCopies(t *testing.T) {
	o := Some("a")
	p := o.Ptr()
	*p = "b"
	assert.Equal(t, "a", *o.Value)

	assert.Nil(t, Null[string]().Ptr())
	assert.True(t, OptionalOf[string](nil).IsNull())
	assert.Equal(t, "x", *OptionalOf(new("x")).Value)
}

func TestNotePatch_Apply(t *testing.T) {
	folder := "fld-1"
	base := Note{ID: "note-1", Title: "A", Content: "old", FolderID: &folder}

	t.Run("content only", func(t *testing.T) {
		n := base
		NotePatch{Content: new("X")}.Apply(&n)
		assert.Equal(t, "A", n.Title)
		assert.Equal(t, "X", n.Content)
		require.NotNil(t, n.FolderID)
		assert.Equal(t, "fld-1", *n.FolderID)
	})

	t.Run("explicit null folder", func(t *testing.T) {
		n := base
		NotePatch{FolderID: Null[string]()}.Apply(&n)
		assert.Nil(t, n.FolderID)
		assert.Equal(t, "old", n.Content)
	})

	t.Run("move folder", func(t *testing.T) {
		n := base
		NotePatch{FolderID: Some("fld-2")}.Apply(&n)
		assert.Equal(t, "fld-2", *n.FolderID)
	})
}

func TestFolderAndTagPatch_Apply(t *testing.T) {
	parent := "fld-0"
	f := Folder{Name: "Work", ParentFolderID: &parent}
	FolderPatch{Name: new("Home")}.Apply(&f)
	assert.Equal(t, "Home", f.Name)
	assert.Equal(t, "fld-0", *f.ParentFolderID)

	FolderPatch{ParentFolderID: Null[string]()}.Apply(&f)
	assert.Nil(t, f.ParentFolderID)

	color := "#ff0000"
	tag := Tag{Name: "Urgent", Color: &color}
	TagPatch{Color: Null[string]()}.Apply(&tag)
	assert.Nil(t, tag.Color)
	assert.Equal(t, "Urgent", tag.Name)
}

func TestUserPatch(t *testing.T) {
	assert.True(t, UserPatch{}.IsEmpty())

	u := User{Name: "Ann"}
	p := UserPatch{AvatarURL: Some("https://example.com/a.png")}
	assert.False(t, p.IsEmpty())
	p.Apply(&u)
	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, "https://example.com/a.png", *u.AvatarURL)
}
