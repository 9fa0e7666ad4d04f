package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// PosthogClient wraps posthog.Client so callers never have to check whether
// analytics is configured. With no API key every method is a no-op.
type PosthogClient struct {
	client posthog.Client
	logger *slog.Logger
}

// NewPosthogClient builds the analytics client. An empty API key disables
// analytics entirely.
func NewPosthogClient(apiKey string, logger *slog.Logger) *PosthogClient {
	if apiKey == "" {
		logger.Info("Analytics disabled: no PostHog API key configured")
		return &PosthogClient{}
	}

	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	if err != nil {
		logger.Error("Failed to initialize PostHog client, analytics disabled", slog.Any("error", err))
		return &PosthogClient{}
	}

	logger.Info("PostHog analytics client initialized")
	return &PosthogClient{client: client, logger: logger}
}

// IsEnabled reports whether events will actually be sent.
func (p *PosthogClient) IsEnabled() bool {
	return p.client != nil
}

// Enqueue records one event for a user. Failures are logged and swallowed;
// analytics must never break a request.
func (p *PosthogClient) Enqueue(distinctID, event string, properties map[string]any) {
	if p.client == nil {
		return
	}
	err := p.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil && p.logger != nil {
		p.logger.Warn("Failed to enqueue analytics event",
			slog.String("event", event),
			slog.Any("error", err))
	}
}

// Close flushes buffered events. Call on shutdown.
func (p *PosthogClient) Close() {
	if p.client == nil {
		return
	}
	if err := p.client.Close(); err != nil && p.logger != nil {
		p.logger.Warn("Failed to close analytics client", slog.Any("error", err))
	}
}
