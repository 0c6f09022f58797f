// Package dictionary looks words up in the public dictionary API.
package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/highshore/one-cup-eng-sub002/models"
)

// Config holds the endpoint configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client fetches dictionary entries, optionally through a Cache.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *Cache
	log        *logrus.Entry
}

// NewClient creates a client. cache may be nil.
func NewClient(cfg Config, cache *Cache, logger *logrus.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		log:        logger.WithField("component", "dictionary"),
	}
}

// Lookup returns the entries for word. A word the dictionary does not know
// yields (nil, nil); transport failures and other statuses are errors.
func (c *Client) Lookup(ctx context.Context, word string) ([]models.DictionaryEntry, error) {
	if word == "" {
		return nil, nil
	}
	if entries, ok := c.cache.get(ctx, word); ok {
		return entries, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+url.PathEscape(word), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dictionary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.cache.put(ctx, word, nil)
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("dictionary API returned status %d", resp.StatusCode)
	}

	var entries []models.DictionaryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode dictionary response: %w", err)
	}
	clean(entries)
	if len(entries) == 0 {
		entries = nil
	}
	c.cache.put(ctx, word, entries)
	return entries, nil
}

// clean strips inline markup some definitions carry.
func clean(entries []models.DictionaryEntry) {
	for i := range entries {
		for j := range entries[i].Meanings {
			defs := entries[i].Meanings[j].Definitions
			for k := range defs {
				defs[k].Definition = StripMarkup(defs[k].Definition)
				defs[k].Example = StripMarkup(defs[k].Example)
			}
		}
	}
}

// StripMarkup returns the text content of an HTML fragment.
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}
