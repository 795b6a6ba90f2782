// Package devtools queries a locally running browser's remote-debugging
// HTTP endpoint for its open pages. It is the only component in the
// module with network I/O.
package devtools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/frkavka/browser-info/internal/config"
	"github.com/frkavka/browser-info/internal/domain"
)

// Tab is one entry in the endpoint's /json tab list.
type Tab struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// Client talks to the debugging endpoint with a request-level timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a client for the configured endpoint (default port 9222).
func New(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    fmt.Sprintf("http://%s:%d", cfg.DevToolsHost, cfg.DevToolsPort),
		httpClient: &http.Client{Timeout: cfg.DevToolsTimeout},
		logger:     logger,
	}
}

// Available probes /json/version. Any 2xx response counts as available;
// network errors are swallowed, never propagated.
func (c *Client) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/json/version", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("debugging endpoint not reachable", zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// ActiveTab fetches the tab list and selects the first entry of type
// "page". List order is the endpoint's; selection is deterministic.
func (c *Client) ActiveTab(ctx context.Context) (*Tab, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/json", nil)
	if err != nil {
		return nil, domain.Wrap(domain.KindNetworkError, "building tab list request", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.Wrap(domain.KindNetworkError, "fetching tab list", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.Ef(domain.KindNetworkError, "tab list request returned %d", resp.StatusCode)
	}

	var tabs []Tab
	if err := json.NewDecoder(resp.Body).Decode(&tabs); err != nil {
		return nil, domain.Wrap(domain.KindParseError, "decoding tab list", err)
	}

	for i := range tabs {
		if tabs[i].Type == "page" {
			return &tabs[i], nil
		}
	}
	return nil, domain.E(domain.KindNoActiveTabs, "no page-type tabs open")
}

// ExtractInfo builds a BrowserInfo from the foreground page. Process id,
// geometry, version, tab count and incognito state are not derivable
// from this API and stay at their zero values; that fidelity gap versus
// the native strategies is deliberate.
func (c *Client) ExtractInfo(ctx context.Context) (*domain.BrowserInfo, error) {
	tab, err := c.ActiveTab(ctx)
	if err != nil {
		return nil, err
	}
	if !domain.ValidURL(tab.URL) {
		return nil, domain.Ef(domain.KindInvalidUrl, "debugging endpoint returned %q", tab.URL)
	}

	return &domain.BrowserInfo{
		URL:         tab.URL,
		Title:       tab.Title,
		BrowserName: "Chrome",
		BrowserType: domain.BrowserType{Kind: domain.BrowserChrome},
	}, nil
}

var _ domain.DebugClient = (*Client)(nil)
