// Package slack delivers rendered reports to an incoming-webhook URL.
// The gateway owns only the mechanics of getting one payload out; it
// never retries, and the pipeline treats any rejection as fatal.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yardops/idlereport/internal/ports"
)

const (
	defaultTimeout = 30 * time.Second

	// defaultMaxPayload keeps each message under Slack's text limit.
	defaultMaxPayload = 12000

	continuationHeader = "\U0001F4CA *Daily Idle Report (continued)*"
)

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the default client, mainly for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Gateway) { g.client = client }
}

// WithTimeout sets the per-request timeout. Default: 30s.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.client.Timeout = d }
}

// WithMaxPayload sets the size at which reports split into follow-up
// messages. Default: 12000 bytes.
func WithMaxPayload(n int) Option {
	return func(g *Gateway) { g.maxPayload = n }
}

type Gateway struct {
	client     *http.Client
	url        string
	maxPayload int
}

var _ ports.DeliveryGateway = (*Gateway)(nil)

func New(url string, opts ...Option) *Gateway {
	g := &Gateway{
		client:     &http.Client{Timeout: defaultTimeout},
		url:        url,
		maxPayload: defaultMaxPayload,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Deliver posts the payload, splitting at blank-line section boundaries
// when it exceeds the payload budget. A non-2xx response is a rejected
// outcome, not an error; errors mean the request never completed.
func (g *Gateway) Deliver(ctx context.Context, d ports.Delivery) (ports.DeliveryOutcome, error) {
	chunks := splitPayload(d.Payload, g.maxPayload)

	for i, chunk := range chunks {
		if i > 0 {
			chunk = continuationHeader + "\n\n" + chunk
		}

		outcome, err := g.post(ctx, d, chunk)
		if err != nil || !outcome.Delivered {
			return outcome, err
		}
	}

	slog.Info("webhook delivery complete",
		"run_id", d.RunID,
		"date", d.ReportDate.Format("2006-01-02"),
		"messages", len(chunks),
	)

	return ports.DeliveryOutcome{Delivered: true}, nil
}

func (g *Gateway) post(ctx context.Context, d ports.Delivery, text string) (ports.DeliveryOutcome, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return ports.DeliveryOutcome{}, fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return ports.DeliveryOutcome{}, fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Report-Date", d.ReportDate.Format("2006-01-02"))
	req.Header.Set("X-Report-Run", d.RunID)

	resp, err := g.client.Do(req)
	if err != nil {
		return ports.DeliveryOutcome{}, fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return ports.DeliveryOutcome{
			Delivered: false,
			Reason:    fmt.Sprintf("webhook returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))),
		}, nil
	}

	return ports.DeliveryOutcome{Delivered: true}, nil
}

// splitPayload cuts the payload into chunks no larger than max, breaking
// only between sections so tables never tear across messages.
func splitPayload(payload string, max int) []string {
	if max <= 0 || len(payload) <= max {
		return []string{payload}
	}

	sections := strings.Split(payload, "\n\n")
	var chunks []string
	var current strings.Builder

	for _, section := range sections {
		if current.Len() > 0 && current.Len()+len(section)+2 > max {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(section)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}
