package sqlite

import (
	"context"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/store"
)

// attachmentColumns must match the scan order in scanAttachment.
const attachmentColumns = `id, note_id, filename, original_filename, file_size, mime_type, file_path, created_at`

func scanAttachment(row scanner) (*domain.Attachment, error) {
	var (
		a         domain.Attachment
		createdAt string
	)

	err := row.Scan(
		&a.ID,
		&a.NoteID,
		&a.Filename,
		&a.OriginalFilename,
		&a.FileSize,
		&a.MimeType,
		&a.FilePath,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAttachment inserts attachment metadata. The note must exist.
func (s *Store) CreateAttachment(ctx context.Context, a *domain.Attachment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attachments (`+attachmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		a.NoteID,
		a.Filename,
		a.OriginalFilename,
		a.FileSize,
		a.MimeType,
		a.FilePath,
		formatTime(a.CreatedAt),
	)
	return mapError(err, nil)
}

// GetAttachment retrieves an attachment by ID.
func (s *Store) GetAttachment(ctx context.Context, id string) (*domain.Attachment, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+attachmentColumns+` FROM attachments WHERE id = ?`, id)
	a, err := scanAttachment(row)
	if err != nil {
		return nil, mapError(err, store.ErrAttachmentNotFound)
	}
	return a, nil
}

// ListNoteAttachments returns the attachments of noteID in creation order.
func (s *Store) ListNoteAttachments(ctx context.Context, noteID string) ([]*domain.Attachment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+attachmentColumns+` FROM attachments
		WHERE note_id = ?
		ORDER BY created_at ASC, rowid ASC`, noteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attachments := []*domain.Attachment{}
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}

// DeleteAttachment removes an attachment record.
func (s *Store) DeleteAttachment(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM attachments WHERE id = ?`, id)
	return mapError(err, nil)
}
