// Package analytics sends API usage events to PostHog when an API key is configured.
package analytics

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// DefaultEndpoint is the PostHog ingestion host used when none is configured.
const DefaultEndpoint = "https://eu.i.posthog.com"

// Client wraps posthog.Client so callers need not check whether tracking is enabled.
// A zero Client drops every event.
type Client struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// NewClient creates a Client. An empty apiKey yields a disabled client.
func NewClient(apiKey, endpoint string, logger *slog.Logger) *Client {
	if apiKey == "" {
		logger.Info("POSTHOG_API_KEY not set, usage analytics disabled")
		return &Client{}
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	pc, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to create posthog client, usage analytics disabled", slog.String("error", err.Error()))
		return &Client{}
	}
	logger.Info("Usage analytics enabled", slog.String("endpoint", endpoint))
	return &Client{posthogClient: pc, logger: logger}
}

// Enabled reports whether events are sent.
func (c *Client) Enabled() bool {
	return c != nil && c.posthogClient != nil
}

// Enqueue queues an event for asynchronous delivery.
func (c *Client) Enqueue(distinctID, event string, properties map[string]any) {
	if !c.Enabled() {
		return
	}
	if err := c.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	}); err != nil {
		c.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes pending events.
func (c *Client) Close() {
	if !c.Enabled() {
		return
	}
	if err := c.posthogClient.Close(); err != nil {
		c.logger.Warn("Failed to flush analytics events", slog.String("error", err.Error()))
	}
}
