package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "github.com/youruser/hashprint/internal/errors"
)

// Config is captured once at startup and passed down; nothing below cmd reads the environment.
type Config struct {
	HashtagID   string
	UserID      string
	Fields      string
	AccessToken string

	GraphAPIURL  string
	OverlayPath  string
	OutputPath   string
	CaptionLabel string
	FontPath     string
	Layout       Layout

	HTTPTimeout    time.Duration
	APIMinInterval time.Duration
	JPEGQuality    int

	PrintEnabled bool
	PrintCommand string
	HistoryDB    string

	LogLevel  string
	LogFormat string
	Port      string
	PublicURL string
}

// Layout holds the drawing offsets and glyph size used by the compositor.
type Layout struct {
	OverlayX int
	OverlayY int
	TextX    int
	TextY    int
	FontSize float64
}

const (
	DefaultGraphAPIURL    = "https://graph.facebook.com"
	DefaultOverlayPath    = "./data/overlay/overlay_image.png"
	DefaultOutputPath     = "data/final_image.jpg"
	DefaultCaptionLabel   = "Some Text Here - Lorem ipsum?"
	DefaultHTTPTimeout    = 15 * time.Second
	DefaultAPIMinInterval = time.Second
	DefaultJPEGQuality    = 95
	DefaultPrintCommand   = "lp"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultPort           = "8080"
)

// DefaultLayout places the overlay at (50,50) and the caption at (50,100) with 20px glyphs.
func DefaultLayout() Layout {
	return Layout{
		OverlayX: 50,
		OverlayY: 50,
		TextX:    50,
		TextY:    100,
		FontSize: 20,
	}
}

// Load reads .env (if any) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("ignoring unreadable .env file", "error", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment. Required query fields
// are not checked here; see Validate.
func FromEnv() (*Config, error) {
	cfg := Config{
		HashtagID:    os.Getenv("HASHTAG_ID"),
		UserID:       os.Getenv("USER_ID"),
		Fields:       os.Getenv("FIELDS"),
		AccessToken:  os.Getenv("ACCESS_TOKEN"),
		GraphAPIURL:  envOr("GRAPH_API_URL", DefaultGraphAPIURL),
		OverlayPath:  envOr("OVERLAY_PATH", DefaultOverlayPath),
		OutputPath:   envOr("OUTPUT_PATH", DefaultOutputPath),
		CaptionLabel: envOr("CAPTION_LABEL", DefaultCaptionLabel),
		FontPath:     os.Getenv("FONT_PATH"),
		Layout:       DefaultLayout(),
		PrintCommand: envOr("PRINT_COMMAND", DefaultPrintCommand),
		HistoryDB:    os.Getenv("HISTORY_DB"),
		LogLevel:     envOr("LOG_LEVEL", DefaultLogLevel),
		LogFormat:    envOr("LOG_FORMAT", DefaultLogFormat),
		Port:         strings.TrimPrefix(envOr("PORT", DefaultPort), ":"),
	}
	cfg.GraphAPIURL = strings.TrimRight(cfg.GraphAPIURL, "/")

	var err error
	if cfg.HTTPTimeout, err = durationEnv("HTTP_TIMEOUT", DefaultHTTPTimeout); err != nil {
		return nil, err
	}
	if cfg.APIMinInterval, err = durationEnv("API_MIN_INTERVAL", DefaultAPIMinInterval); err != nil {
		return nil, err
	}
	if cfg.JPEGQuality, err = intEnv("JPEG_QUALITY", DefaultJPEGQuality); err != nil {
		return nil, err
	}
	if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
		return nil, apperrors.New(apperrors.KindConfig, "config", fmt.Sprintf("JPEG_QUALITY must be within 1..100, got %d", cfg.JPEGQuality))
	}
	if cfg.PrintEnabled, err = boolEnv("PRINT_ENABLED", false); err != nil {
		return nil, err
	}

	cfg.PublicURL = strings.TrimRight(envOr("PUBLIC_URL", "http://localhost:"+cfg.Port), "/")

	if path := os.Getenv("LAYOUT_FILE"); path != "" {
		layout, err := LoadLayout(path, cfg.Layout)
		if err != nil {
			return nil, err
		}
		cfg.Layout = layout
	}

	return &cfg, nil
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"HASHTAG_ID", c.HashtagID},
		{"USER_ID", c.UserID},
		{"FIELDS", c.Fields},
		{"ACCESS_TOKEN", c.AccessToken},
	}
	for _, r := range required {
		if r.value == "" {
			return apperrors.New(apperrors.KindConfig, "config", "missing "+r.name)
		}
	}
	return nil
}

type layoutFile struct {
	Overlay  *point   `yaml:"overlay"`
	Text     *point   `yaml:"text"`
	FontSize *float64 `yaml:"font_size"`
}

type point struct {
	X *int `yaml:"x"`
	Y *int `yaml:"y"`
}

// LoadLayout applies the keys present in the YAML file at path on top of base.
func LoadLayout(path string, base Layout) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, apperrors.Wrap(apperrors.KindConfig, "layout", "read "+path, err)
	}
	return ParseLayout(data, base)
}

func ParseLayout(data []byte, base Layout) (Layout, error) {
	var lf layoutFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return base, apperrors.Wrap(apperrors.KindConfig, "layout", "parse layout yaml", err)
	}

	out := base
	if lf.Overlay != nil {
		applyPoint(lf.Overlay, &out.OverlayX, &out.OverlayY)
	}
	if lf.Text != nil {
		applyPoint(lf.Text, &out.TextX, &out.TextY)
	}
	if lf.FontSize != nil {
		if *lf.FontSize <= 0 {
			return base, apperrors.New(apperrors.KindConfig, "layout", "font_size must be positive")
		}
		out.FontSize = *lf.FontSize
	}
	return out, nil
}

func applyPoint(p *point, x, y *int) {
	if p.X != nil {
		*x = *p.X
	}
	if p.Y != nil {
		*y = *p.Y
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.KindConfig, "config", "invalid "+key, err)
	}
	if d <= 0 {
		return 0, apperrors.New(apperrors.KindConfig, "config", key+" must be positive")
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.KindConfig, "config", "invalid "+key, err)
	}
	return n, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, apperrors.Wrap(apperrors.KindConfig, "config", "invalid "+key, err)
	}
	return b, nil
}
