package lyricsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nvoss/verso/internal/config"
	"github.com/nvoss/verso/internal/debuglog"
)

// DefaultBaseURL points at the public lyrics.ovh API.
const DefaultBaseURL = "https://api.lyrics.ovh"

// Client talks to the two read-only endpoints of the lyrics API:
// /suggest/{query} and /v1/{artist}/{title}. It never retries; failed
// requests surface to the caller exactly once.
type Client struct {
	base      string
	userAgent string
	http      *http.Client
}

func NewClient(cfg *config.Config) *Client {
	base := strings.TrimRight(cfg.API.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.API.HTTPTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base:      base,
		userAgent: cfg.API.UserAgent,
		http:      &http.Client{Timeout: timeout},
	}
}

// Suggest searches the API for songs matching query. A well-formed
// response with total == 0 yields ErrNoResults.
func (c *Client) Suggest(ctx context.Context, query string) ([]Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrNoResults
	}

	var sr suggestResponse
	if err := c.getJSON(ctx, c.base+"/suggest/"+url.PathEscape(query), &sr); err != nil {
		return nil, fmt.Errorf("fetching suggestions: %w", err)
	}

	if sr.Total == 0 || len(sr.Data) == 0 {
		return nil, ErrNoResults
	}

	out := make([]Suggestion, 0, len(sr.Data))
	for _, rec := range sr.Data {
		out = append(out, rec.toSuggestion())
	}
	return out, nil
}

// Lyrics fetches the full lyrics text for the given artist/title pair.
func (c *Client) Lyrics(ctx context.Context, artist, title string) (string, error) {
	endpoint := c.base + "/v1/" + url.PathEscape(artist) + "/" + url.PathEscape(title)

	var lr lyricsResponse
	if err := c.getJSON(ctx, endpoint, &lr); err != nil {
		return "", fmt.Errorf("fetching lyrics: %w", err)
	}

	return normalizeLyrics(lr.Lyrics), nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		debuglog.Warnf("GET %s failed: %v", endpoint, err)
		return err
	}
	defer resp.Body.Close()

	// Redirected responses arrive here with their final status, so a
	// plain 2xx check matches "ok or redirected".
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		debuglog.Warnf("GET %s -> HTTP %d", endpoint, resp.StatusCode)
		return &StatusError{Code: resp.StatusCode, URL: endpoint}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// normalizeLyrics unifies line endings and strips the decorative
// "Paroles de la chanson …" header some mirrors prepend.
func normalizeLyrics(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	if len(lines) > 0 && strings.HasPrefix(lines[0], "Paroles de la chanson") {
		lines = lines[1:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
