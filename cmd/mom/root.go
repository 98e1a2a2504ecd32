package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/phrazzld/mom-agent/internal/config"
	"github.com/phrazzld/mom-agent/internal/platform/filestore"
	"github.com/phrazzld/mom-agent/internal/platform/logger"
	"github.com/phrazzld/mom-agent/internal/platform/provider"
	"github.com/phrazzld/mom-agent/internal/service"
)

// deps are the constructors the commands use. Tests swap the generator.
type deps struct {
	newGenerator func(ctx context.Context, cfg config.LLMConfig, l *slog.Logger) (service.MinutesGenerator, error)
	now          func() time.Time
}

func defaultDeps() deps {
	return deps{
		newGenerator: func(ctx context.Context, cfg config.LLMConfig, l *slog.Logger) (service.MinutesGenerator, error) {
			return provider.NewService(ctx, cfg, l)
		},
		now: time.Now,
	}
}

// env is what every command needs after flags are parsed.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	deps   deps
}

type rootOptions struct {
	configFile string
	verbose    bool
}

func newRootCmd(d deps) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "mom",
		Short: "Generate Minutes of Meeting from transcripts",
		Long: `mom turns a meeting transcript into structured Minutes of Meeting using an LLM,
falling back across the configured models.

Examples:
  mom generate transcript.txt --project Acme
  cat transcript.txt | mom generate - --project Acme --save "Weekly sync"
  mom probe
  mom projects`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	load := func(c *cobra.Command) (*env, error) {
		return loadEnv(opts, d, c.ErrOrStderr())
	}

	cmd.AddCommand(
		newGenerateCmd(load),
		newProbeCmd(load),
		newProjectsCmd(load),
	)
	return cmd
}

func loadEnv(opts *rootOptions, d deps, stderr io.Writer) (*env, error) {
	for _, name := range []string{".env.local", ".env"} {
		if _, err := os.Stat(name); err == nil {
			if err := godotenv.Load(name); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", name, err)
			}
		}
	}

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}

	// The CLI keeps stderr quiet unless asked; minutes go to stdout.
	logCfg := cfg.Server
	logCfg.LogFormat = "text"
	logCfg.LogLevel = "warn"
	if opts.verbose {
		logCfg.LogLevel = "debug"
	}
	l, err := logger.New(logCfg, stderr)
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, logger: l, deps: d}, nil
}

func (e *env) generator(ctx context.Context) (service.MinutesGenerator, error) {
	return e.deps.newGenerator(ctx, e.cfg.LLM, e.logger)
}

func (e *env) meetingService(gen service.MinutesGenerator) (service.MeetingService, error) {
	fs, err := filestore.NewOS(e.cfg.Storage.DataDir, e.logger)
	if err != nil {
		return nil, err
	}
	if gen == nil {
		gen = offlineGenerator{}
	}
	return service.NewMeetingService(fs, fs, gen, e.logger, service.WithClock(e.deps.now))
}

// offlineGenerator backs commands that never reach the model.
type offlineGenerator struct{}

func (offlineGenerator) GenerateMoM(context.Context, string, string, string) (string, error) {
	return "", fmt.Errorf("generation is not available in this command")
}

func (offlineGenerator) TestConnection(context.Context) bool { return false }

func (offlineGenerator) Provider() string { return "" }

func (offlineGenerator) Models() []string { return nil }
