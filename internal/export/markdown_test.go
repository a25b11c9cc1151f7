package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foldnote/foldnote-server/internal/domain"
)

func TestMarkdown_RoundTrip(t *testing.T) {
	folder := "fld-1"
	created := time.Date(2026, 5, 1, 10, 0, 0, 123000, time.UTC)
	note := &domain.Note{
		ID:        "note-1",
		Title:     "Meeting: Q3 plan",
		Content:   "# Agenda\n\n- budget\n---\n- hiring",
		UserID:    "u-1",
		FolderID:  &folder,
		CreatedAt: created,
		UpdatedAt: created.Add(time.Hour),
	}
	tags := []*domain.Tag{{ID: "tag-1", Name: "Urgent"}, {ID: "tag-2", Name: "work: q3"}}

	out, err := Markdown(note, tags)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "---\nid: note-1\n"))

	doc, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, "note-1", doc.ID)
	assert.Equal(t, "Meeting: Q3 plan", doc.Title)
	require.NotNil(t, doc.FolderID)
	assert.Equal(t, "fld-1", *doc.FolderID)
	assert.Equal(t, []string{"Urgent", "work: q3"}, doc.Tags)
	assert.True(t, doc.CreatedAt.Equal(created))
	assert.Equal(t, note.Content, doc.Content)
}

func TestMarkdown_UnfiledUntagged(t *testing.T) {
	note := &domain.Note{ID: "note-2", Title: "Loose", Content: "", CreatedAt: time.Now(), UpdatedAt: time.Now()}

	out, err := Markdown(note, nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "folder_id: null\n")
	assert.Contains(t, string(out), "tags: []\n")

	doc, err := Parse(out)
	require.NoError(t, err)
	assert.Nil(t, doc.FolderID)
	assert.Empty(t, doc.Tags)
	assert.Empty(t, doc.Content)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("no front matter"))
	assert.Error(t, err)

	_, err = Parse([]byte("---\nid: x\n"))
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "weekly-review.md", Filename(&domain.Note{ID: "note-1", Title: "Weekly Review!"}))
	assert.Equal(t, "note-2.md", Filename(&domain.Note{ID: "note-2", Title: "\U0001F5D2"}))
}
