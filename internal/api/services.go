package api

import (
	"github.com/foldnote/foldnote-server/internal/service"
)

// Services groups all business logic services used by the API server.
type Services struct {
	User       *service.UserService
	Folder     *service.FolderService
	Note       *service.NoteService
	Tag        *service.TagService
	Attachment *service.AttachmentService
}
