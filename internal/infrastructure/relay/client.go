package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"trazot/internal/domain/entity"
	"trazot/pkg/logger"
)

// degradedLatency is the probe latency above which a reachable relay is
// reported as degraded rather than healthy.
const degradedLatency = 2 * time.Second

// Client talks to the remote relay: one URL, two operations distinguished by
// an action parameter. It never mutates the local store and never lets a
// network failure escape as an error the UI would have to handle.
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

// Configured reports whether a relay endpoint is set at all.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

type fetchEnvelope struct {
	Data *entity.Snapshot `json:"data"`
}

type pushEnvelope struct {
	Action  string           `json:"action"`
	Payload *entity.Snapshot `json:"payload"`
}

// FetchSnapshot returns the latest remote snapshot, or nil on any network,
// HTTP, or decode failure.
func (c *Client) FetchSnapshot(ctx context.Context) *entity.Snapshot {
	if !c.Configured() {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?action=fetch_latest", nil)
	if err != nil {
		return nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug("Relay fetch failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Debug("Relay fetch returned status %d", resp.StatusCode)
		return nil
	}

	var envelope fetchEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		logger.Warn("Relay returned undecodable snapshot: %v", err)
		return nil
	}
	return envelope.Data
}

// PushSnapshot posts the entire local state; true only on a 2xx response.
func (c *Client) PushSnapshot(ctx context.Context, snapshot *entity.Snapshot) bool {
	if !c.Configured() {
		return false
	}

	body, err := json.Marshal(pushEnvelope{Action: "push_sync", Payload: snapshot})
	if err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug("Relay push failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// HealthCheck probes the endpoint and classifies it by reachability alone;
// payload correctness is not checked.
func (c *Client) HealthCheck(ctx context.Context) entity.RelayHealth {
	if !c.Configured() {
		return entity.RelayHealth{Status: "offline"}
	}

	probeCtx, cancel := context.WithTimeout(ctx, degradedLatency)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.baseURL+"?action=fetch_latest", nil)
	if err != nil {
		return entity.RelayHealth{Status: "offline"}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	latency := time.Since(start)
	if err != nil {
		return entity.RelayHealth{Status: "offline", LatencyMs: latency.Milliseconds()}
	}
	resp.Body.Close()

	status := "healthy"
	if latency > degradedLatency/2 || resp.StatusCode >= 500 {
		status = "degraded"
	}
	return entity.RelayHealth{Status: status, LatencyMs: latency.Milliseconds()}
}
