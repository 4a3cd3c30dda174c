// Package feed fetches and parses retailer-deal RSS/Atom feeds. It owns the
// network side of ingestion: timeouts, retries with backoff and rate-limit
// pauses. Entries are handed to the curator in original feed order.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"syncflow-curator/internal/model"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/123.0 Safari/537.36"

// Client fetches feeds over HTTP.
type Client struct {
	httpClient *http.Client
	retries    int
	rateDelay  time.Duration
}

// NewClient builds a feed client. retries is the total number of attempts
// per feed; rateDelay is slept before each request.
func NewClient(timeout time.Duration, retries int, rateDelay time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if retries <= 0 {
		retries = 2
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		retries:    retries,
		rateDelay:  rateDelay,
	}
}

// Fetch downloads and parses one feed, returning its entries in feed order.
// Attempts are spaced by exponential backoff; the last error is returned
// when all attempts fail.
func (c *Client) Fetch(ctx context.Context, feedURL string) ([]model.RawEntry, error) {
	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, time.Duration(1<<(attempt-1))*time.Second); err != nil {
				return nil, err
			}
		}
		if err := sleep(ctx, c.rateDelay); err != nil {
			return nil, err
		}
		body, err := c.get(ctx, feedURL)
		if err != nil {
			lastErr = err
			continue
		}
		entries, err := ParseEntries(body)
		if err != nil {
			lastErr = err
			continue
		}
		return entries, nil
	}
	return nil, fmt.Errorf("fetch %s: %w", feedURL, lastErr)
}

func (c *Client) get(ctx context.Context, feedURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("feed returned %s", resp.Status)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ParseEntries parses an RSS or Atom body into raw entries. Items keep their
// feed order; the summary falls back to the content field when the
// description is empty.
func ParseEntries(body string) ([]model.RawEntry, error) {
	parsed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	entries := make([]model.RawEntry, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		summary := it.Description
		if summary == "" {
			summary = it.Content
		}
		entries = append(entries, model.RawEntry{
			Title:   strings.TrimSpace(it.Title),
			Summary: summary,
			Link:    it.Link,
		})
	}
	return entries, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
