// Package main prints a summary of a Foldnote SQLite database: row counts
// per table and the references the deletion policy leaves dangling.
//
// Usage:
//
//	DB_PATH=~/Foldnote/data/foldnote.db go run ./cmd/dbinspect
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/foldnote/foldnote-server/internal/store/sqlite"
)

var tables = []string{"users", "folders", "notes", "tags", "note_tags", "attachments"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		dbPath = filepath.Join(home, "Foldnote", "data", "foldnote.db")
	}
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("database not found: %w", err)
	}

	s, err := sqlite.Open(dbPath, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	ctx := context.Background()
	db := s.DB()

	fmt.Println("=== Database Inspection ===")
	fmt.Printf("Path: %s\n\n", dbPath)

	fmt.Println("Rows:")
	for _, table := range tables {
		var n int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return fmt.Errorf("count %s: %w", table, err)
		}
		fmt.Printf("  %-12s %d\n", table, n)
	}
	fmt.Println()

	dangling, err := danglingParents(ctx, db)
	if err != nil {
		return fmt.Errorf("inspect folders: %w", err)
	}
	fmt.Printf("Folders with a missing parent: %d\n", len(dangling))
	for i, d := range dangling {
		if i == 10 {
			fmt.Printf("  ... and %d more\n", len(dangling)-10)
			break
		}
		fmt.Printf("  %s (%s) -> %s\n", d.id, d.name, d.parentID)
	}
	return nil
}

type danglingFolder struct {
	id, name, parentID string
}

func danglingParents(ctx context.Context, db *sql.DB) ([]danglingFolder, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT f.id, f.name, f.parent_folder_id
		FROM folders f
		LEFT JOIN folders p ON p.id = f.parent_folder_id
		WHERE f.parent_folder_id IS NOT NULL AND p.id IS NULL
		ORDER BY f.created_at, f.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []danglingFolder
	for rows.Next() {
		var d danglingFolder
		if err := rows.Scan(&d.id, &d.name, &d.parentID); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
