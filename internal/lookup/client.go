package lookup

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("licensure/internal/lookup")

// maxBodyBytes bounds how much of a portal page is read into memory.
const maxBodyBytes = 1 << 20

// ClientConfig tunes the shared portal client. Zero values take defaults.
type ClientConfig struct {
	// Timeout bounds one request end to end, body read included.
	Timeout time.Duration

	// UserAgent is sent on every request. State portals reject the default
	// Go client UA.
	UserAgent string

	// SnapshotMaxBytes truncates bodies kept for audit snapshots.
	SnapshotMaxBytes int
}

func (c ClientConfig) withDefaults() ClientConfig {
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
	}
	if c.SnapshotMaxBytes <= 0 {
		c.SnapshotMaxBytes = 5000
	}
	return c
}

// Client is the portal HTTP client shared by every board adapter. One
// instance serves the whole process; its transport holds a single
// connection per host, which keeps the outbound concurrency ceiling at one
// even if callers misbehave.
type Client struct {
	http        *http.Client
	userAgent   string
	snapshotMax int
}

// NewClient builds the shared portal client.
func NewClient(cfg ClientConfig) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxConnsPerHost:     1,
				MaxIdleConnsPerHost: 1,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent:   cfg.UserAgent,
		snapshotMax: cfg.SnapshotMaxBytes,
	}
}

// PostForm submits a board lookup form and returns the response body.
// op names the call site in errors ("va-dpor lookup").
func (c *Client) PostForm(ctx context.Context, op, rawurl string, form url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawurl, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(op, req)
}

// Get fetches a portal page (detail pages reached by key).
func (c *Client) Get(ctx context.Context, op, rawurl string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return "", &TransportError{Op: op, Err: err}
	}
	return c.do(op, req)
}

// Snapshot truncates a body for the audit trail.
func (c *Client) Snapshot(body string) string {
	if len(body) > c.snapshotMax {
		return body[:c.snapshotMax]
	}
	return body
}

func (c *Client) do(op string, req *http.Request) (string, error) {
	ctx, span := tracer.Start(req.Context(), "portal.request")
	span.SetAttributes(
		attribute.String("portal.op", op),
		attribute.String("http.method", req.Method),
		attribute.String("url.full", req.URL.String()),
	)
	defer span.End()
	req = req.WithContext(ctx)

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, "transport failure")
		span.RecordError(err)
		return "", &TransportError{Op: op, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		span.SetStatus(codes.Error, "body read failure")
		span.RecordError(err)
		return "", &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode/100 != 2 {
		span.SetStatus(codes.Error, resp.Status)
		return "", &UpstreamError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Snippet:    snippet(string(b)),
		}
	}
	return string(b), nil
}
