// Package provider selects the language model adapter named in configuration
// and builds the generation service around it.
package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/mom-agent/internal/config"
	"github.com/phrazzld/mom-agent/internal/generation"
	"github.com/phrazzld/mom-agent/internal/platform/anthropic"
	"github.com/phrazzld/mom-agent/internal/platform/gemini"
	"github.com/phrazzld/mom-agent/internal/platform/openai"
)

// New returns the Completer for cfg.Provider.
func New(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.Completer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		return openai.NewCompleter(logger, cfg)
	case config.ProviderAnthropic:
		return anthropic.NewCompleter(logger, cfg)
	case config.ProviderGemini:
		return gemini.NewCompleter(ctx, logger, cfg)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
}

// NewService builds the adapter for cfg and the generation service that
// drives it over the configured model sequence.
func NewService(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (*generation.Service, error) {
	completer, err := New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	svc, err := generation.NewService(completer, generation.Options{
		PrimaryModel:   cfg.Model,
		FallbackModels: cfg.FallbackModels,
		AttemptTimeout: cfg.AttemptTimeout(),
	}, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("generation service ready",
		"provider", completer.Name(),
		"models", svc.Models())
	return svc, nil
}
