// Package catalog fetches, caches, and filters the public prompt listing.
//
// The catalog is resilient by contract: a listing fetch that fails for any
// reason (transport, bad status, malformed payload) logs the problem and
// falls back to the built-in sample set, so browsing keeps working offline.
package catalog

import (
	"context"
	"github.com/go-json-experiment/json"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/promptdeckapp/promptdeck/internal/domain"
)

// listingPath is the fixed resource the listing is fetched from.
const listingPath = "/api/v1/prompts"

// Catalog provides access to the prompt listing.
type Catalog struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
	baseURL     string

	mu      sync.Mutex
	prompts []*domain.Prompt
}

// listingResponse is the wire shape of the prompt listing.
type listingResponse struct {
	Prompts []*domain.Prompt `json:"prompts"`
}

// New creates a catalog client for the given API base URL.
// Politely rate limited; bursts cover a page load re-fetching after mutations.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Catalog {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Catalog{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 3),
		logger:      logger,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

// LoadPrompts fetches the listing, caches it, and returns it. On any failure
// the built-in samples are cached and returned instead; this never errors.
func (c *Catalog) LoadPrompts(ctx context.Context) []*domain.Prompt {
	prompts, err := c.fetch(ctx)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("prompt listing unavailable, using built-in samples",
				"url", c.baseURL+listingPath,
				"error", err,
			)
		}
		prompts = SamplePrompts()
	}

	c.mu.Lock()
	c.prompts = prompts
	c.mu.Unlock()

	return prompts
}

// Prompts returns the currently cached prompts. Empty until the first
// LoadPrompts call.
func (c *Catalog) Prompts() []*domain.Prompt {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.prompts)
}

// FilterPrompts applies the filter to the cached prompts. The cache is not
// modified; relative order is preserved unless a sort is requested.
func (c *Catalog) FilterPrompts(f Filter) []*domain.Prompt {
	return filterList(c.Prompts(), f)
}

// fetch performs one listing request.
func (c *Catalog) fetch(ctx context.Context) ([]*domain.Prompt, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+listingPath, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing failed: status %d", resp.StatusCode)
	}

	var listing listingResponse
	if err := json.UnmarshalRead(resp.Body, &listing); err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}

	if c.logger != nil {
		c.logger.Debug("prompt listing loaded", "count", len(listing.Prompts))
	}

	if listing.Prompts == nil {
		return []*domain.Prompt{}, nil
	}
	return listing.Prompts, nil
}
