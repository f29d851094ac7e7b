package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/youruser/hashprint/internal/errors"
)

var allKeys = []string{
	"HASHTAG_ID", "USER_ID", "FIELDS", "ACCESS_TOKEN", "GRAPH_API_URL", "OVERLAY_PATH",
	"OUTPUT_PATH", "CAPTION_LABEL", "FONT_PATH", "LAYOUT_FILE", "HTTP_TIMEOUT",
	"API_MIN_INTERVAL", "JPEG_QUALITY", "PRINT_ENABLED", "PRINT_COMMAND", "HISTORY_DB",
	"LOG_LEVEL", "LOG_FORMAT", "PORT", "PUBLIC_URL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultGraphAPIURL, cfg.GraphAPIURL)
	assert.Equal(t, DefaultOverlayPath, cfg.OverlayPath)
	assert.Equal(t, DefaultOutputPath, cfg.OutputPath)
	assert.Equal(t, DefaultCaptionLabel, cfg.CaptionLabel)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, DefaultAPIMinInterval, cfg.APIMinInterval)
	assert.Equal(t, DefaultJPEGQuality, cfg.JPEGQuality)
	assert.Equal(t, DefaultLayout(), cfg.Layout)
	assert.False(t, cfg.PrintEnabled)
	assert.Equal(t, "lp", cfg.PrintCommand)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8080", cfg.PublicURL)
	assert.Empty(t, cfg.FontPath)
	assert.Empty(t, cfg.HistoryDB)
}

func TestFromEnv_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("HASHTAG_ID", "17843853986012965")
	t.Setenv("USER_ID", "42")
	t.Setenv("FIELDS", "media_url,permalink")
	t.Setenv("ACCESS_TOKEN", "token")
	t.Setenv("GRAPH_API_URL", "http://graph.local/")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("JPEG_QUALITY", "80")
	t.Setenv("PRINT_ENABLED", "true")
	t.Setenv("PORT", ":9090")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "17843853986012965", cfg.HashtagID)
	assert.Equal(t, "http://graph.local", cfg.GraphAPIURL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 80, cfg.JPEGQuality)
	assert.True(t, cfg.PrintEnabled)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://localhost:9090", cfg.PublicURL)
}

func TestFromEnv_Malformed(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"HTTP_TIMEOUT", "soon"},
		{"HTTP_TIMEOUT", "-1s"},
		{"JPEG_QUALITY", "high"},
		{"JPEG_QUALITY", "101"},
		{"PRINT_ENABLED", "maybe"},
		{"LAYOUT_FILE", "/does/not/exist.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			require.Error(t, err)
			assert.True(t, apperrors.IsKind(err, apperrors.KindConfig))
		})
	}
}

func TestValidate_Missing(t *testing.T) {
	full := Config{HashtagID: "h", UserID: "u", Fields: "f", AccessToken: "a"}
	require.NoError(t, full.Validate())

	tests := []struct {
		name string
		mut  func(c *Config)
	}{
		{"HASHTAG_ID", func(c *Config) { c.HashtagID = "" }},
		{"USER_ID", func(c *Config) { c.UserID = "" }},
		{"FIELDS", func(c *Config) { c.Fields = "" }},
		{"ACCESS_TOKEN", func(c *Config) { c.AccessToken = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := full
			tt.mut(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.IsKind(err, apperrors.KindConfig))
			assert.Contains(t, err.Error(), tt.name)
		})
	}
}

func TestParseLayout(t *testing.T) {
	layout, err := ParseLayout([]byte("overlay: {x: 10}\ntext: {x: 5, y: 300}\nfont_size: 32\n"), DefaultLayout())
	require.NoError(t, err)

	assert.Equal(t, Layout{OverlayX: 10, OverlayY: 50, TextX: 5, TextY: 300, FontSize: 32}, layout)
}

func TestParseLayout_Invalid(t *testing.T) {
	_, err := ParseLayout([]byte("font_size: 0\n"), DefaultLayout())
	assert.Error(t, err)

	_, err = ParseLayout([]byte("overlay: [1, 2"), DefaultLayout())
	assert.Error(t, err)
}

func TestFromEnv_LayoutFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte("overlay: {x: 0, y: 0}\n"), 0o644))
	t.Setenv("LAYOUT_FILE", path)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Layout.OverlayX)
	assert.Equal(t, 0, cfg.Layout.OverlayY)
	assert.Equal(t, 100, cfg.Layout.TextY)
}
