// Package di provides dependency injection configuration for the Foldnote server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/foldnote/foldnote-server/internal/config"
	"github.com/foldnote/foldnote-server/internal/di/providers"
	"github.com/foldnote/foldnote-server/internal/logger"
	"github.com/foldnote/foldnote-server/internal/metrics"
	"github.com/foldnote/foldnote-server/internal/service"
	"github.com/foldnote/foldnote-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)
	do.Provide(injector, providers.ProvideMetrics)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideUserService)
	do.Provide(injector, providers.ProvideFolderService)
	do.Provide(injector, providers.ProvideNoteService)
	do.Provide(injector, providers.ProvideTagService)
	do.Provide(injector, providers.ProvideAttachmentService)

	// Server
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*metrics.Metrics](injector)

	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}

	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*service.UserService](injector)
	_ = do.MustInvoke[*service.FolderService](injector)
	_ = do.MustInvoke[*service.NoteService](injector)
	_ = do.MustInvoke[*service.TagService](injector)
	_ = do.MustInvoke[*service.AttachmentService](injector)

	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}

	return nil
}
