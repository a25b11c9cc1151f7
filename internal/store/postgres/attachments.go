package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/store"
)

const attachmentColumns = `id, note_id, filename, original_filename, file_size, mime_type, file_path, created_at`

func scanAttachment(row pgx.Row) (*domain.Attachment, error) {
	var a domain.Attachment
	err := row.Scan(&a.ID, &a.NoteID, &a.Filename, &a.OriginalFilename, &a.FileSize, &a.MimeType, &a.FilePath, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	utc(&a.CreatedAt)
	return &a, nil
}

// CreateAttachment inserts attachment metadata.
func (s *Store) CreateAttachment(ctx context.Context, a *domain.Attachment) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO attachments (`+attachmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.NoteID, a.Filename, a.OriginalFilename, a.FileSize, a.MimeType, a.FilePath, a.CreatedAt)
	return mapError(err, nil)
}

// GetAttachment retrieves an attachment by ID.
func (s *Store) GetAttachment(ctx context.Context, id string) (*domain.Attachment, error) {
	a, err := scanAttachment(s.pool.QueryRow(ctx, `SELECT `+attachmentColumns+` FROM attachments WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, store.ErrAttachmentNotFound)
	}
	return a, nil
}

// ListNoteAttachments returns the attachments of noteID in creation order.
func (s *Store) ListNoteAttachments(ctx context.Context, noteID string) ([]*domain.Attachment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+attachmentColumns+` FROM attachments
		WHERE note_id = $1
		ORDER BY created_at ASC, id ASC`, noteID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanAttachment)
}

// DeleteAttachment removes an attachment record.
func (s *Store) DeleteAttachment(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	return mapError(err, nil)
}
