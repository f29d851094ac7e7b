package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/youruser/hashprint/internal/api"
	"github.com/youruser/hashprint/internal/config"
	"github.com/youruser/hashprint/internal/logging"
	"github.com/youruser/hashprint/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	p, store, err := pipeline.Build(cfg, logger)
	if err != nil {
		logger.Error("failed to build pipeline", "error", err)
		os.Exit(1)
	}
	var hist api.HistoryLister
	if store != nil {
		defer store.Close()
		hist = store
	}

	r := gin.Default()
	api.RegisterRoutes(r, api.NewHandler(p, hist, cfg.PublicURL, logger))

	logger.Info("starting server", "addr", "http://localhost:"+cfg.Port, "overlay", cfg.OverlayPath)
	if err := r.Run(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
