// Command hashprint performs a single run: it fetches the most recent image
// posted under a hashtag, stamps the overlay and caption on it and writes the
// composite to OUTPUT_PATH.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/youruser/hashprint/internal/config"
	"github.com/youruser/hashprint/internal/logging"
	"github.com/youruser/hashprint/internal/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	// Without an overlay there is nothing to do, and that is not a failure.
	if err := pipeline.CheckOverlay(cfg.OverlayPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 0
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	p, store, err := pipeline.Build(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := p.Run(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	if !res.Skipped {
		fmt.Println(res.OutputPath)
	}
	return 0
}
