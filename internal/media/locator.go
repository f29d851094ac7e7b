// Package media resolves a hashtag query to the URL of a single image.
package media

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/bytedance/sonic"

	apperrors "github.com/youruser/hashprint/internal/errors"
	"github.com/youruser/hashprint/internal/util"
)

// Query identifies the content to fetch. It is built once from configuration.
type Query struct {
	HashtagID   string
	UserID      string
	Fields      string
	AccessToken string
}

// Locator resolves a Query to a downloadable image URL.
type Locator interface {
	Locate(ctx context.Context, q Query) (string, error)
}

// GraphLocator queries the Graph API hashtag recent_media edge and takes the first item.
type GraphLocator struct {
	baseURL string
	client  *util.Client
	logger  *slog.Logger
}

func NewGraphLocator(baseURL string, client *util.Client, logger *slog.Logger) *GraphLocator {
	if logger == nil {
		logger = slog.Default()
	}
	return &GraphLocator{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// RequestURL builds the recent_media URL for q.
func (l *GraphLocator) RequestURL(q Query) string {
	params := url.Values{}
	params.Set("user_id", q.UserID)
	params.Set("fields", q.Fields)
	params.Set("access_token", q.AccessToken)
	return fmt.Sprintf("%s/%s/recent_media?%s", l.baseURL, url.PathEscape(q.HashtagID), params.Encode())
}

func (l *GraphLocator) Locate(ctx context.Context, q Query) (string, error) {
	const op = "media.locate"

	reqURL := l.RequestURL(q)
	l.logger.Debug("querying media API", "url", redact(reqURL))

	resp, err := l.client.Get(ctx, reqURL)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindNetwork, op, "media API request failed", err)
	}

	mediaURL, err := ExtractMediaURL(resp.Body)
	if err != nil && resp.StatusCode != http.StatusOK {
		l.logger.Warn("media API returned non-success status", "status", resp.StatusCode)
	}
	return mediaURL, err
}

// ExtractMediaURL returns data[0].media_url from a Graph API response body.
func ExtractMediaURL(body []byte) (string, error) {
	const op = "media.extract"

	var doc interface{}
	if err := sonic.Unmarshal(body, &doc); err != nil {
		return "", apperrors.Wrap(apperrors.KindInvalidResponse, op, "response is not valid JSON", err)
	}

	root, _ := doc.(map[string]interface{})
	if items, ok := root["data"].([]interface{}); ok && len(items) > 0 {
		if first, ok := items[0].(map[string]interface{}); ok {
			if u, ok := first["media_url"].(string); ok {
				return u, nil
			}
		}
	}

	msg := "data[0].media_url missing or not a string"
	if apiMsg := apiErrorMessage(root); apiMsg != "" {
		msg += " (api error: " + apiMsg + ")"
	}
	return "", apperrors.New(apperrors.KindMissingField, op, msg)
}

func apiErrorMessage(root map[string]interface{}) string {
	e, ok := root["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	m, _ := e["message"].(string)
	return m
}

func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Has("access_token") {
		q.Set("access_token", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
