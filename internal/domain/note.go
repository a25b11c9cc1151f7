package domain

import "time"

// Note belongs to exactly one user and at most one folder.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    string    `json:"user_id"`
	FolderID  *string   `json:"folder_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NotePatch is a partial note update.
type NotePatch struct {
	Title    *string
	Content  *string
	FolderID Optional[string]
}

// Apply copies the fields present in p onto n.
func (p NotePatch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.FolderID.Set {
		n.FolderID = p.FolderID.Ptr()
	}
}

// NoteFilter selects the notes of one user. Filters are conjunctive.
//
// Folder: absent matches any folder, explicit null matches notes without a
// folder, a value matches exactly that folder_id.
// TagID: nil matches any note; otherwise only notes associated with the tag.
type NoteFilter struct {
	UserID string
	Folder Optional[string]
	TagID  *string
}
