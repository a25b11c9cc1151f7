// Package service holds the business operations behind the API: input
// validation, folder hierarchy rules, id and timestamp assignment, and
// mutation logging. Persistence is delegated to store.Store.
package service

import (
	"context"
	"log/slog"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/logger"
	"github.com/foldnote/foldnote-server/internal/store"
)

// Options tunes service behavior.
type Options struct {
	// StrictFolderHierarchy rejects parent_folder_id values that are missing,
	// owned by another user, or would create a cycle. Off by default.
	StrictFolderHierarchy bool
}

// logDeletionImpact records what a delete is about to do to dependent rows.
// Counting failures are logged and otherwise ignored.
func logDeletionImpact(ctx context.Context, fallback *slog.Logger, s store.Store, entity domain.Entity, id string) {
	log := logger.FromContext(ctx, fallback)
	impact, err := domain.ComputeDeletionImpact(ctx, s, entity, id)
	if err != nil {
		log.Warn("could not compute deletion impact",
			"entity", entity,
			"id", id,
			"error", err,
		)
		return
	}
	if len(impact.Effects) == 0 {
		return
	}
	args := append([]any{"entity", entity, "id", id}, impact.LogArgs()...)
	log.Debug("deletion impact", args...)
}
