package facts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultEndpoint serves one fact per calendar day
	DefaultEndpoint = "https://uselessfacts.jsph.pl/api/v2/facts/today"
	// Prefix marks a successfully fetched and normalized fact
	Prefix = "Today's fact: "
	// FailureText is returned when every retry attempt failed; it never
	// carries the prefix, so it is never published over good content
	FailureText = "Could not fetch fact after retries"

	userAgent    = "LED-Matrix-Facts/1.0"
	fetchTimeout = 30 * time.Second
	maxFactLen   = 150
)

// ErrMissingText indicates a well-formed response without the fact field
var ErrMissingText = errors.New("facts: response has no text field")

// Fetcher retrieves the daily fact over HTTPS
type Fetcher struct {
	endpoint string
	client   *http.Client
}

// NewFetcher creates a fetcher for the given endpoint; an empty endpoint
// selects the default
func NewFetcher(endpoint string) *Fetcher {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Fetcher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: fetchTimeout},
	}
}

// Fetch performs one request and returns the normalized, prefixed fact text.
// Transport failures and non-success statuses are transient errors; a body
// without the fact field is ErrMissingText.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("facts: build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("facts: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("facts: fetch: unexpected status %s", resp.Status)
	}

	var payload struct {
		Text *string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("facts: decode response: %w", err)
	}
	if payload.Text == nil {
		return "", ErrMissingText
	}

	return Prefix + Normalize(*payload.Text), nil
}

// FetchWithRetry calls Fetch up to attempts times with a fixed wait between
// attempts. The first prefixed result is accepted immediately; exhaustion
// returns FailureText rather than an error, which callers treat as "no
// update available".
func (f *Fetcher) FetchWithRetry(ctx context.Context, attempts int, wait time.Duration) string {
	for attempt := 1; attempt <= attempts; attempt++ {
		text, err := f.Fetch(ctx)
		if err == nil && strings.HasPrefix(text, Prefix) {
			return text
		}
		if err != nil {
			log.Printf("Fact fetch attempt %d/%d failed: %v", attempt, attempts, err)
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return FailureText
		case <-time.After(wait):
		}
	}
	return FailureText
}

// Normalize cleans raw fact text for a one-line scrolling display: line
// breaks become spaces, runs of spaces collapse, surrounding space is
// trimmed and over-long text is truncated with an ellipsis marker.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	for strings.Contains(text, "  ") {
		text = strings.ReplaceAll(text, "  ", " ")
	}
	text = strings.TrimSpace(text)

	if runes := []rune(text); len(runes) > maxFactLen {
		text = string(runes[:maxFactLen-3]) + "..."
	}
	return text
}
