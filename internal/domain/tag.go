package domain

import "time"

// Tag is a colored label scoped to one user.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"user_id"`
	Color     *string   `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// TagPatch is a partial tag update.
type TagPatch struct {
	Name  *string
	Color Optional[string]
}

// Apply copies the fields present in p onto t.
func (p TagPatch) Apply(t *Tag) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Color.Set {
		t.Color = p.Color.Ptr()
	}
}

// NoteTag represents the many-to-many relationship between notes and tags.
// At most one exists per (NoteID, TagID) pair.
type NoteTag struct {
	NoteID    string    `json:"note_id"`
	TagID     string    `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}
