package pipeline

import (
	"image"
	"log/slog"

	"github.com/youruser/hashprint/internal/config"
	"github.com/youruser/hashprint/internal/history"
	imagepkg "github.com/youruser/hashprint/internal/image"
	"github.com/youruser/hashprint/internal/media"
	"github.com/youruser/hashprint/internal/printer"
	"github.com/youruser/hashprint/internal/util"
)

// Build wires the production components described by cfg. The returned store
// is nil when HISTORY_DB is unset; otherwise the caller closes it.
func Build(cfg *config.Config, logger *slog.Logger) (*Pipeline, *history.Store, error) {
	font, err := imagepkg.LoadFont(cfg.FontPath)
	if err != nil {
		return nil, nil, err
	}

	// Only the Graph API is paced; media downloads go to a CDN.
	apiClient := util.NewClient(cfg.HTTPTimeout, cfg.APIMinInterval)
	mediaClient := util.NewClient(cfg.HTTPTimeout, 0)
	opts := Options{
		Locator:      media.NewGraphLocator(cfg.GraphAPIURL, apiClient, logger),
		Fetcher:      imagepkg.NewFetcher(mediaClient),
		Compositor:   imagepkg.NewCompositor(LayoutFromConfig(cfg.Layout), font),
		Query:        QueryFromConfig(cfg),
		OverlayPath:  cfg.OverlayPath,
		OutputPath:   cfg.OutputPath,
		CaptionLabel: cfg.CaptionLabel,
		JPEGQuality:  cfg.JPEGQuality,
		Logger:       logger,
	}
	if cfg.PrintEnabled {
		opts.Printer = printer.NewSpooler(cfg.PrintCommand)
	}

	var store *history.Store
	if cfg.HistoryDB != "" {
		store, err = history.Open(cfg.HistoryDB)
		if err != nil {
			return nil, nil, err
		}
		opts.History = store
	}

	p, err := New(opts)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, nil, err
	}
	return p, store, nil
}

func QueryFromConfig(cfg *config.Config) media.Query {
	return media.Query{
		HashtagID:   cfg.HashtagID,
		UserID:      cfg.UserID,
		Fields:      cfg.Fields,
		AccessToken: cfg.AccessToken,
	}
}

func LayoutFromConfig(l config.Layout) imagepkg.Layout {
	layout := imagepkg.DefaultLayout()
	layout.OverlayOffset = image.Pt(l.OverlayX, l.OverlayY)
	layout.TextOrigin = image.Pt(l.TextX, l.TextY)
	if l.FontSize > 0 {
		layout.FontSize = l.FontSize
	}
	return layout
}
