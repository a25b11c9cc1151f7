package dto

import (
	"time"

	"github.com/foldnote/foldnote-server/internal/color"
	"github.com/foldnote/foldnote-server/internal/domain"
)

// User is the API representation of a user.
type User struct {
	ID          string    `json:"id" doc:"User ID"`
	Email       string    `json:"email" doc:"Email address"`
	Name        string    `json:"name" doc:"Display name"`
	GoogleID    string    `json:"google_id" doc:"Identity provider subject"`
	AvatarURL   *string   `json:"avatar_url" doc:"Avatar image URL"`
	AvatarColor string    `json:"avatar_color" doc:"Placeholder color derived from the user ID, for clients without an avatar image"`
	CreatedAt   time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time `json:"updated_at" doc:"Last update time"`
}

// Folder is the API representation of a folder.
type Folder struct {
	ID             string    `json:"id" doc:"Folder ID"`
	Name           string    `json:"name" doc:"Folder name"`
	UserID         string    `json:"user_id" doc:"Owner ID"`
	ParentFolderID *string   `json:"parent_folder_id" doc:"Parent folder ID; may reference a deleted folder"`
	CreatedAt      time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt      time.Time `json:"updated_at" doc:"Last update time"`
}

// FolderNode is one folder in a tree with its children.
type FolderNode struct {
	Folder
	Orphaned bool         `json:"orphaned" doc:"True when parent_folder_id does not resolve to a folder of this user"`
	Children []FolderNode `json:"children" doc:"Subfolders in creation order"`
}

// Note is the API representation of a note.
type Note struct {
	ID        string    `json:"id" doc:"Note ID"`
	Title     string    `json:"title" doc:"Title"`
	Content   string    `json:"content" doc:"Body text"`
	UserID    string    `json:"user_id" doc:"Owner ID"`
	FolderID  *string   `json:"folder_id" doc:"Containing folder, null when unfiled"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

// Tag is the API representation of a tag.
type Tag struct {
	ID        string    `json:"id" doc:"Tag ID"`
	Name      string    `json:"name" doc:"Tag name"`
	UserID    string    `json:"user_id" doc:"Owner ID"`
	Color     *string   `json:"color" doc:"Display color"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
}

// NoteTag is a note-tag association.
type NoteTag struct {
	NoteID    string    `json:"note_id" doc:"Note ID"`
	TagID     string    `json:"tag_id" doc:"Tag ID"`
	CreatedAt time.Time `json:"created_at" doc:"When the tag was first applied"`
}

// Attachment is the API representation of attachment metadata.
type Attachment struct {
	ID               string    `json:"id" doc:"Attachment ID"`
	NoteID           string    `json:"note_id" doc:"Owning note ID"`
	Filename         string    `json:"filename" doc:"Stored file name"`
	OriginalFilename string    `json:"original_filename" doc:"Name of the uploaded file"`
	FileSize         int64     `json:"file_size" doc:"Size in bytes"`
	MimeType         string    `json:"mime_type" doc:"Media type"`
	FilePath         string    `json:"file_path" doc:"Storage location"`
	CreatedAt        time.Time `json:"created_at" doc:"Creation time"`
}

// FromUser converts a domain user.
func FromUser(u *domain.User) User {
	return User{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		GoogleID:    u.GoogleID,
		AvatarURL:   u.AvatarURL,
		AvatarColor: color.ForID(u.ID),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// FromFolder converts a domain folder.
func FromFolder(f *domain.Folder) Folder {
	return Folder{
		ID:             f.ID,
		Name:           f.Name,
		UserID:         f.UserID,
		ParentFolderID: f.ParentFolderID,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}

// FromFolderNodes converts a folder forest.
func FromFolderNodes(nodes []*domain.FolderNode) []FolderNode {
	out := make([]FolderNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, FolderNode{
			Folder:   FromFolder(n.Folder),
			Orphaned: n.Orphaned,
			Children: FromFolderNodes(n.Children),
		})
	}
	return out
}

// FromNote converts a domain note.
func FromNote(n *domain.Note) Note {
	return Note{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		UserID:    n.UserID,
		FolderID:  n.FolderID,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// FromTag converts a domain tag.
func FromTag(t *domain.Tag) Tag {
	return Tag{
		ID:        t.ID,
		Name:      t.Name,
		UserID:    t.UserID,
		Color:     t.Color,
		CreatedAt: t.CreatedAt,
	}
}

// FromNoteTag converts a domain association.
func FromNoteTag(nt *domain.NoteTag) NoteTag {
	return NoteTag{NoteID: nt.NoteID, TagID: nt.TagID, CreatedAt: nt.CreatedAt}
}

// FromAttachment converts domain attachment metadata.
func FromAttachment(a *domain.Attachment) Attachment {
	return Attachment{
		ID:               a.ID,
		NoteID:           a.NoteID,
		Filename:         a.Filename,
		OriginalFilename: a.OriginalFilename,
		FileSize:         a.FileSize,
		MimeType:         a.MimeType,
		FilePath:         a.FilePath,
		CreatedAt:        a.CreatedAt,
	}
}

// Map converts a slice with fn.
func Map[T any, R any](in []T, fn func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
