package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/mom-agent/internal/config"
	"github.com/phrazzld/mom-agent/internal/platform/filestore"
	"github.com/phrazzld/mom-agent/internal/platform/provider"
	"github.com/phrazzld/mom-agent/internal/service"
)

// application holds the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	store          *filestore.Store
	meetingService service.MeetingService
}

type appOption func(*appDeps)

type appDeps struct {
	generator service.MinutesGenerator
}

// withGenerator replaces the provider-backed generator.
func withGenerator(g service.MinutesGenerator) appOption {
	return func(d *appDeps) { d.generator = g }
}

// newApplication wires the file store, the generation service and the
// meeting service from cfg.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...appOption) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	var deps appDeps
	for _, opt := range opts {
		opt(&deps)
	}

	fs, err := filestore.NewOS(cfg.Storage.DataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}

	if deps.generator == nil {
		gen, err := provider.NewService(ctx, cfg.LLM, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create generation service: %w", err)
		}
		deps.generator = gen
	}

	meetings, err := service.NewMeetingService(fs, fs, deps.generator, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create meeting service: %w", err)
	}

	return &application{
		config:         cfg,
		logger:         logger,
		store:          fs,
		meetingService: meetings,
	}, nil
}

// cleanup releases resources on shutdown. The file store holds no open
// handles between calls, so there is only the log line.
func (app *application) cleanup() {
	app.logger.Info("application cleanup completed")
}
