// Package main implements the MoM Agent HTTP server, which stores meeting
// transcripts per project and turns them into minutes through an LLM.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/phrazzld/mom-agent/internal/config"
	"github.com/phrazzld/mom-agent/internal/platform/logger"
)

func main() {
	configFile := flag.String("config", "", "path to a YAML config file (default ./config.yaml when present)")
	flag.Parse()

	if err := run(context.Background(), *configFile); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run(ctx context.Context, configFile string) error {
	cfg, err := initializeApp(configFile)
	if err != nil {
		return err
	}

	l, err := logger.Setup(cfg.Server, os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"data_dir", cfg.Storage.DataDir,
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.Model)

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}

// initializeApp loads .env files and the configuration.
func initializeApp(configFile string) (*config.Config, error) {
	// A missing .env is normal outside development.
	for _, name := range []string{".env.local", ".env"} {
		if _, err := os.Stat(name); err == nil {
			if err := godotenv.Load(name); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", name, err)
			}
		}
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
