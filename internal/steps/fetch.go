package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"aura/internal/logging"
	"gopkg.in/yaml.v3"
)

// FetchError wraps a failed configuration load with its source. The
// host screen renders the retry state from this; there is no backoff
// or partial-data fallback, a retry re-fetches the whole document.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("load step configuration from %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client loads the step configuration document. The source may be an
// HTTP(S) URL (the deployed case: one fetch of a static JSON resource,
// no auth, no pagination) or a local JSON/YAML file for offline and
// development use.
type Client struct {
	source     string
	httpClient *http.Client
}

// NewClient creates a loader for the given source.
func NewClient(source string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		source:     source,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Source returns the configured source.
func (c *Client) Source() string { return c.source }

// Fetch retrieves and decodes the document.
func (c *Client) Fetch(ctx context.Context) (*Document, error) {
	if IsRemote(c.source) {
		return c.fetchHTTP(ctx)
	}
	return loadFile(c.source)
}

// Load fetches the document, builds the sequence, and validates it.
// This is the single entry point the TUI boots through.
func (c *Client) Load(ctx context.Context) (*Sequence, map[string]any, error) {
	start := time.Now()
	doc, err := c.Fetch(ctx)
	if err != nil {
		logging.FetchError("step config load failed: %v", err)
		return nil, nil, err
	}
	seq, err := NewSequence(doc.Steps)
	if err != nil {
		return nil, nil, &FetchError{Source: c.source, Err: err}
	}
	if err := seq.Validate(); err != nil {
		return nil, nil, &FetchError{Source: c.source, Err: err}
	}
	logging.Fetch("loaded %d steps from %s in %v", seq.Len(), c.source, time.Since(start))
	return seq, doc.InitialData, nil
}

func (c *Client) fetchHTTP(ctx context.Context) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.source, nil)
	if err != nil {
		return nil, &FetchError{Source: c.source, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Source: c.source, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{
			Source: c.source,
			Err:    fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, &FetchError{Source: c.source, Err: fmt.Errorf("decode: %w", err)}
	}
	return &doc, nil
}

func loadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FetchError{Source: path, Err: err}
	}

	var doc Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &FetchError{Source: path, Err: fmt.Errorf("decode: %w", err)}
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &FetchError{Source: path, Err: fmt.Errorf("decode: %w", err)}
		}
	}
	return &doc, nil
}

// IsRemote reports whether the source is an HTTP(S) URL rather than a
// local file path.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
