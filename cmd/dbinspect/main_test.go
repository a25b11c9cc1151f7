package main

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/foldnote/foldnote-server/internal/store/sqlite"
)

func TestRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "foldnote.db")
	s, err := sqlite.Open(dbPath, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	t.Setenv("DB_PATH", dbPath)
	for i := range 2 {
		if err := run(); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
}

func TestRun_MissingDatabase(t *testing.T) {
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "absent.db"))

	err := run()
	if err == nil {
		t.Fatal("expected error for missing database")
	}
	if !strings.Contains(err.Error(), "database not found") {
		t.Fatalf("unexpected error: %v", err)
	}
}
