package domain

import "time"

// Attachment is file metadata for a note. The bytes live elsewhere; FilePath
// is only a reference.
type Attachment struct {
	ID               string    `json:"id"`
	NoteID           string    `json:"note_id"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	FileSize         int64     `json:"file_size"`
	MimeType         string    `json:"mime_type"`
	FilePath         string    `json:"file_path"`
	CreatedAt        time.Time `json:"created_at"`
}
