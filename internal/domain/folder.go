package domain

import "time"

// Folder groups notes for one user. ParentFolderID is a plain pointer to
// another folder; it is not a foreign key and may dangle after the parent
// is deleted.
type Folder struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	UserID         string    `json:"user_id"`
	ParentFolderID *string   `json:"parent_folder_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FolderPatch is a partial folder update.
type FolderPatch struct {
	Name           *string
	ParentFolderID Optional[string]
}

// Apply copies the fields present in p onto f.
func (p FolderPatch) Apply(f *Folder) {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.ParentFolderID.Set {
		f.ParentFolderID = p.ParentFolderID.Ptr()
	}
}
