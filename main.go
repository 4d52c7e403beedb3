package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fallencrown/gamecore/gamecore"
	"github.com/fallencrown/gamecore/gamecore/logger"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	customHandler := logger.NewHandler()
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting Fallen Crown game core",
		slog.String("version", version),
		slog.String("commit", commit))

	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := gamecore.LoadConfig(*path)
	if err != nil {
		logger.LogError("Failed to load configuration", err)
		os.Exit(-1)
	}
	slog.Info("Configuration loaded successfully")

	setupStart := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	app := gamecore.New(*cfg, version, commit)
	if err := app.Setup(ctx); err != nil {
		logger.LogError("Failed to set up game core", err,
			slog.Duration("attempted_for", time.Since(setupStart)))
		os.Exit(-1)
	}
	defer app.Close()

	slog.Info("Game core is running. Press CTRL-C to exit.",
		slog.Duration("startup_took", time.Since(setupStart)))
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down game core...")
}
