package optimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"trazot/pkg/logger"
)

// Result holds the rewritten copy for a listing or article.
type Result struct {
	OptimizedTitle string `json:"optimizedTitle"`
	OptimizedBody  string `json:"optimizedBody"`
}

// Client calls the external generative content optimizer. Callers must treat
// every failure as "use the original text"; the zero-value fallback is built
// into Optimize itself.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type optimizeRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category"`
}

// Optimize rewrites title/body for the given category. On any failure it
// returns the original text unchanged, so creation flows never block on the
// optimizer being down.
func (c *Client) Optimize(ctx context.Context, title, body, category string) Result {
	fallback := Result{OptimizedTitle: title, OptimizedBody: body}
	if c == nil || c.baseURL == "" {
		return fallback
	}

	payload, err := json.Marshal(optimizeRequest{Title: title, Body: body, Category: category})
	if err != nil {
		return fallback
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fallback
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug("Optimizer unavailable, keeping original text: %v", err)
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Debug("Optimizer returned status %d, keeping original text", resp.StatusCode)
		return fallback
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fallback
	}
	if result.OptimizedTitle == "" {
		result.OptimizedTitle = title
	}
	if result.OptimizedBody == "" {
		result.OptimizedBody = body
	}
	return result
}
