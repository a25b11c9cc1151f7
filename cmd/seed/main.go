// Package main provides a tool to seed a database with demo notebooks.
//
// It creates users with nested folders, tagged notes, and attachment
// records through the service layer, so every write passes the same
// validation the API applies.
//
// Usage:
//
//	DB_PATH=~/Foldnote/data/foldnote.db go run ./cmd/seed
//	DB_PATH=~/Foldnote/data/foldnote.db go run ./cmd/seed --users 3 --notes 40
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/service"
	"github.com/foldnote/foldnote-server/internal/store/sqlite"
	"github.com/foldnote/foldnote-server/internal/validation"
)

var (
	userCount = flag.Int("users", 1, "Number of demo users to create")
	noteCount = flag.Int("notes", 20, "Notes per user")
	orphans   = flag.Bool("orphans", true, "Delete one parent folder to leave dangling references")
)

var (
	folderNames = []string{"Work", "Personal", "Reading", "Recipes", "Travel"}
	subfolders  = []string{"Archive", "Drafts", "Ideas"}
	tagNames    = []string{"urgent", "idea", "reference", "todo", "later"}
	titles      = []string{"Meeting notes", "Shopping list", "Book summary", "Trip plan", "Weekly review", "Sketch"}
)

type services struct {
	users       *service.UserService
	folders     *service.FolderService
	notes       *service.NoteService
	tags        *service.TagService
	attachments *service.AttachmentService
}

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dbPath = filepath.Join(home, "Foldnote", "data", "foldnote.db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := sqlite.Open(dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	v := validation.New()
	svc := &services{
		users:       service.NewUserService(s, v, logger),
		folders:     service.NewFolderService(s, v, logger, service.Options{}),
		notes:       service.NewNoteService(s, v, logger),
		tags:        service.NewTagService(s, v, logger),
		attachments: service.NewAttachmentService(s, v, logger),
	}

	ctx := context.Background()
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))

	for n := range *userCount {
		if err := seedUser(ctx, svc, rng, n); err != nil {
			log.Fatalf("Failed to seed user %d: %v", n, err)
		}
	}

	fmt.Println("\nDone.")
}

func seedUser(ctx context.Context, svc *services, rng *rand.Rand, n int) error {
	googleID := fmt.Sprintf("seed-%d-%d", n, rng.IntN(1_000_000))
	user, err := svc.users.CreateUser(ctx, service.CreateUserRequest{
		Email:    googleID + "@example.com",
		Name:     fmt.Sprintf("Demo User %d", n+1),
		GoogleID: googleID,
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	fmt.Printf("\nSeeding data for user: %s (%s)\n", user.Name, user.ID)

	var folders []*domain.Folder
	for _, name := range folderNames {
		parent, err := svc.folders.CreateFolder(ctx, service.CreateFolderRequest{Name: name, UserID: user.ID})
		if err != nil {
			return fmt.Errorf("create folder: %w", err)
		}
		folders = append(folders, parent)

		for _, sub := range subfolders[:rng.IntN(len(subfolders)+1)] {
			child, err := svc.folders.CreateFolder(ctx, service.CreateFolderRequest{
				Name:           sub,
				UserID:         user.ID,
				ParentFolderID: &parent.ID,
			})
			if err != nil {
				return fmt.Errorf("create subfolder: %w", err)
			}
			folders = append(folders, child)
		}
	}
	fmt.Printf("  Created %d folders\n", len(folders))

	var tags []*domain.Tag
	for _, name := range tagNames {
		tag, err := svc.tags.CreateTag(ctx, service.CreateTagRequest{Name: name, UserID: user.ID})
		if err != nil {
			return fmt.Errorf("create tag: %w", err)
		}
		tags = append(tags, tag)
	}

	links, files := 0, 0
	for i := range *noteCount {
		req := service.CreateNoteRequest{
			Title:   fmt.Sprintf("%s #%d", titles[rng.IntN(len(titles))], i+1),
			Content: "Seeded note body.",
			UserID:  user.ID,
		}
		// Roughly one note in four stays unfiled.
		if rng.IntN(4) != 0 {
			req.FolderID = &folders[rng.IntN(len(folders))].ID
		}
		note, err := svc.notes.CreateNote(ctx, req)
		if err != nil {
			return fmt.Errorf("create note: %w", err)
		}

		for _, tag := range tags {
			if rng.IntN(3) == 0 {
				if _, err := svc.tags.AddTagToNote(ctx, note.ID, tag.ID); err != nil {
					return fmt.Errorf("tag note: %w", err)
				}
				links++
			}
		}

		if rng.IntN(5) == 0 {
			name := fmt.Sprintf("%s.pdf", note.ID)
			_, err := svc.attachments.CreateAttachment(ctx, service.CreateAttachmentRequest{
				NoteID:           note.ID,
				Filename:         name,
				OriginalFilename: "scan.pdf",
				FileSize:         1024 + rng.Int64N(1<<20),
				MimeType:         "application/pdf",
				FilePath:         filepath.Join("attachments", name),
			})
			if err != nil {
				return fmt.Errorf("create attachment: %w", err)
			}
			files++
		}
	}
	fmt.Printf("  Created %d notes, %d tag links, %d attachments\n", *noteCount, links, files)

	if *orphans {
		// Deleting a top-level folder leaves its subfolders pointing at it.
		if err := svc.folders.DeleteFolder(ctx, folders[0].ID); err != nil {
			return fmt.Errorf("delete folder: %w", err)
		}
		fmt.Printf("  Deleted folder %q; its subfolders now have a dangling parent\n", folders[0].Name)
	}
	return nil
}
