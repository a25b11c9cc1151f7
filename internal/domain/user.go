package domain

import "time"

// User is the root owner of folders, notes, and tags.
// Only Name and AvatarURL change after creation.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	GoogleID  string    `json:"google_id"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserPatch lists the mutable user fields. Nil Name means unchanged.
type UserPatch struct {
	Name      *string
	AvatarURL Optional[string]
}

// Apply copies the fields present in p onto u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.AvatarURL.Set {
		u.AvatarURL = p.AvatarURL.Ptr()
	}
}

// IsEmpty reports whether the patch carries no fields.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && !p.AvatarURL.Set
}
