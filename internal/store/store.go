// Package store defines the persistence interface for the Foldnote server.
package store

import (
	"context"
	"time"

	"github.com/foldnote/foldnote-server/internal/domain"
)

// Store defines the interface for all persistence operations.
//
// Update methods fail with an entity NotFound error for unknown ids.
// Delete methods succeed when the row is already absent.
// Writes that break a foreign key, unique, or check constraint fail with
// ErrConstraintViolation.
type Store interface {
	UserStore
	FolderStore
	NoteStore
	TagStore
	AttachmentStore

	// CountReferences counts rows of child whose column equals id.
	// Only (child, column) pairs named by the deletion policy are accepted.
	CountReferences(ctx context.Context, child domain.Entity, column, id string) (int, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}

// UserStore persists users.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, patch domain.UserPatch, now time.Time) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// FolderStore persists folders. parent_folder_id is stored as given.
type FolderStore interface {
	CreateFolder(ctx context.Context, folder *domain.Folder) error
	GetFolder(ctx context.Context, id string) (*domain.Folder, error)
	ListFolders(ctx context.Context, userID string) ([]*domain.Folder, error)
	UpdateFolder(ctx context.Context, id string, patch domain.FolderPatch, now time.Time) (*domain.Folder, error)
	DeleteFolder(ctx context.Context, id string) error
}

// NoteStore persists notes.
type NoteStore interface {
	CreateNote(ctx context.Context, note *domain.Note) error
	GetNote(ctx context.Context, id string) (*domain.Note, error)
	// ListNotes returns the notes matching filter in creation order.
	// It never fails because the owner is unknown.
	ListNotes(ctx context.Context, filter domain.NoteFilter) ([]*domain.Note, error)
	UpdateNote(ctx context.Context, id string, patch domain.NotePatch, now time.Time) (*domain.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

// TagStore persists tags and their note associations.
type TagStore interface {
	CreateTag(ctx context.Context, tag *domain.Tag) error
	GetTag(ctx context.Context, id string) (*domain.Tag, error)
	ListTags(ctx context.Context, userID string) ([]*domain.Tag, error)
	UpdateTag(ctx context.Context, id string, patch domain.TagPatch) (*domain.Tag, error)
	DeleteTag(ctx context.Context, id string) error

	// AddTagToNote links a note and a tag. An existing link is returned
	// unchanged.
	AddTagToNote(ctx context.Context, noteID, tagID string, now time.Time) (*domain.NoteTag, error)
	RemoveTagFromNote(ctx context.Context, noteID, tagID string) error
	ListNoteTags(ctx context.Context, noteID string) ([]*domain.Tag, error)
}

// AttachmentStore persists attachment metadata.
type AttachmentStore interface {
	CreateAttachment(ctx context.Context, attachment *domain.Attachment) error
	GetAttachment(ctx context.Context, id string) (*domain.Attachment, error)
	ListNoteAttachments(ctx context.Context, noteID string) ([]*domain.Attachment, error)
	DeleteAttachment(ctx context.Context, id string) error
}
