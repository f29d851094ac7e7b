// Package pipeline runs one locate, fetch, compose, save pass.
package pipeline

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/youruser/hashprint/internal/errors"
	"github.com/youruser/hashprint/internal/history"
	imagepkg "github.com/youruser/hashprint/internal/image"
	"github.com/youruser/hashprint/internal/media"
	"github.com/youruser/hashprint/internal/printer"
	"github.com/youruser/hashprint/internal/util"
)

type Fetcher interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

type Recorder interface {
	Record(ctx context.Context, r history.Run) error
}

// Options configures a Pipeline. Printer and History are optional.
type Options struct {
	Locator    media.Locator
	Fetcher    Fetcher
	Compositor *imagepkg.Compositor
	Query      media.Query

	OverlayPath  string
	OutputPath   string
	CaptionLabel string
	JPEGQuality  int

	Printer printer.Printer
	History Recorder
	Logger  *slog.Logger
	Now     func() time.Time
}

// Result describes a finished run. Skipped is set when the overlay file was
// absent and nothing was attempted.
type Result struct {
	RunID      string `json:"run_id"`
	MediaURL   string `json:"media_url,omitempty"`
	OutputPath string `json:"output_path,omitempty"`
	Caption    string `json:"caption,omitempty"`
	Skipped    bool   `json:"skipped"`
	Printed    bool   `json:"printed"`
}

type Pipeline struct {
	opts   Options
	logger *slog.Logger
}

func New(opts Options) (*Pipeline, error) {
	if opts.Locator == nil || opts.Fetcher == nil || opts.Compositor == nil {
		return nil, errors.New("pipeline: locator, fetcher and compositor are required")
	}
	if opts.OverlayPath == "" || opts.OutputPath == "" {
		return nil, errors.New("pipeline: overlay and output paths are required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{opts: opts, logger: opts.Logger}, nil
}

// OutputPath is where successful runs write the composite.
func (p *Pipeline) OutputPath() string {
	return p.opts.OutputPath
}

// Run executes one pass. A missing overlay file is not an error: the run is
// reported as skipped and nothing is fetched or written. Any other failure
// aborts the remaining stages and leaves the output path untouched.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}
	log := p.logger.With("run_id", res.RunID)

	if err := CheckOverlay(p.opts.OverlayPath); err != nil {
		log.Warn("skipping run", "error", err)
		res.Skipped = true
		p.record(ctx, log, res, nil)
		return res, nil
	}

	err := p.run(ctx, log, res)
	p.record(ctx, log, res, err)
	if err != nil {
		log.Error("run failed", "kind", apperrors.KindOf(err), "error", err)
		return nil, err
	}
	log.Info("run complete", "output", res.OutputPath, "printed", res.Printed)
	return res, nil
}

// CheckOverlay reports a KindPreflight error when the overlay file is absent.
func CheckOverlay(path string) error {
	if !util.FileExists(path) {
		return apperrors.New(apperrors.KindPreflight, "pipeline.preflight", "overlay image not found: "+path)
	}
	return nil
}

func (p *Pipeline) run(ctx context.Context, log *slog.Logger, res *Result) error {
	mediaURL, err := p.opts.Locator.Locate(ctx, p.opts.Query)
	if err != nil {
		return err
	}
	res.MediaURL = mediaURL
	log.Info("located media", "media_url", mediaURL)

	base, err := p.opts.Fetcher.Fetch(ctx, mediaURL)
	if err != nil {
		return err
	}
	overlay, err := imagepkg.Open(p.opts.OverlayPath)
	if err != nil {
		return err
	}
	log.Debug("images ready", "base", base.Bounds().Size(), "overlay", overlay.Bounds().Size())

	res.Caption = imagepkg.Caption(p.opts.Now(), p.opts.CaptionLabel)
	out, err := p.opts.Compositor.Compose(base, overlay, res.Caption)
	if err != nil {
		return err
	}
	if rect, err := p.opts.Compositor.TextRect(res.Caption); err == nil {
		log.Debug("caption drawn", "caption", res.Caption, "bounds", rect)
	}

	if err := imagepkg.Save(out, p.opts.OutputPath, p.opts.JPEGQuality); err != nil {
		return err
	}
	res.OutputPath = p.opts.OutputPath

	if p.opts.Printer != nil {
		if err := p.opts.Printer.Print(ctx, res.OutputPath); err != nil {
			return err
		}
		res.Printed = true
	}
	return nil
}

func (p *Pipeline) record(ctx context.Context, log *slog.Logger, res *Result, runErr error) {
	if p.opts.History == nil {
		return
	}
	r := history.Run{
		ID:         res.RunID,
		MediaURL:   res.MediaURL,
		OutputPath: res.OutputPath,
		Caption:    res.Caption,
		Status:     history.StatusSuccess,
	}
	switch {
	case runErr != nil:
		r.Status = history.StatusFailed
		r.ErrorMessage = runErr.Error()
	case res.Skipped:
		r.Status = history.StatusSkipped
	}
	if err := p.opts.History.Record(context.WithoutCancel(ctx), r); err != nil {
		log.Warn("failed to record run history", "error", err)
	}
}
