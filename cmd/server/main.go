// Command server runs the wardrobe API: freshness tracking, laundry
// suggestions, embedding-based outfit recommendations and the weather
// advisory cache behind one HTTP surface.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/closetpilot/wardrobe-api/internal/config"
	"github.com/closetpilot/wardrobe-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server exited with error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	slog.SetDefault(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	return app.startHTTPServer(ctx, app.setupRouter())
}
