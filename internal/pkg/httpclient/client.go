// Package httpclient is the JSON over HTTP client shared by the outbound
// adapters. Every attempt gets its own timeout; transport failures, 429 and
// 5xx responses are retried with exponential backoff. Create is the exception:
// it only retries 429, since any other failure may follow an accepted request.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"manufacturing/internal/pkg/metrics"
)

const tracerName = "manufacturing/httpclient"

const maxErrorBody = 4 << 10

type Config struct {
	// Target labels metrics and spans, e.g. "scheduler".
	Target  string
	BaseURL string

	// Timeout bounds a single attempt.
	Timeout time.Duration

	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.InitialInterval <= 0 {
		c.InitialInterval = 200 * time.Millisecond
	}
	if c.MaxInterval <= 0 {
		c.MaxInterval = 2 * time.Second
	}
	return c
}

// StatusError is returned for a non-2xx response once retries are exhausted
// or immediately for a client error.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// StatusCode extracts the response status from err, or 0 when err is not a
// StatusError.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

type Client struct {
	cfg     Config
	http    *http.Client
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func New(cfg Config, httpClient *http.Client, m *metrics.Metrics, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:     cfg.withDefaults(),
		http:    httpClient,
		metrics: m,
		logger:  logger.With(zap.String("target", cfg.Target)),
	}
}

func (c *Client) Get(ctx context.Context, operation, path string, out any) error {
	return c.Do(ctx, operation, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, operation, path string, in, out any) error {
	return c.Do(ctx, operation, http.MethodPost, path, in, out)
}

func (c *Client) Put(ctx context.Context, operation, path string, in, out any) error {
	return c.Do(ctx, operation, http.MethodPut, path, in, out)
}

// Create posts a request that is not safe to repeat. Only 429 responses are
// retried; a transport error, a timeout or a 5xx is returned at once.
func (c *Client) Create(ctx context.Context, operation, path string, in, out any) error {
	return c.do(ctx, operation, http.MethodPost, path, in, out, false)
}

// Do sends in as the JSON body (when not nil) and decodes a 2xx response into
// out (when not nil).
func (c *Client) Do(ctx context.Context, operation, method, path string, in, out any) error {
	return c.do(ctx, operation, method, path, in, out, true)
}

func (c *Client) do(ctx context.Context, operation, method, path string, in, out any, idempotent bool) error {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("encode %s request: %w", operation, err)
		}
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, c.cfg.Target+"."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		))
	defer span.End()

	var body []byte
	attempt := 0
	op := func() error {
		attempt++
		var err error
		body, err = c.attempt(ctx, operation, method, path, payload, idempotent)
		return err
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Warn("outbound call failed, retrying",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait),
			zap.Error(err))
	}

	err := backoff.RetryNotify(op, c.policy(ctx), notify)
	span.SetAttributes(attribute.Int("http.attempts", attempt))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, operation+" failed")
		return err
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}

func (c *Client) policy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.InitialInterval
	b.MaxInterval = c.cfg.MaxInterval
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, c.cfg.MaxRetries), ctx)
}

func (c *Client) attempt(ctx context.Context, operation, method, path string, payload []byte, idempotent bool) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveOutbound(c.cfg.Target, operation, 0, time.Since(started))
		if !idempotent {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	c.metrics.ObserveOutbound(c.cfg.Target, operation, resp.StatusCode, time.Since(started))
	if err != nil {
		if !idempotent {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	statusErr := &StatusError{StatusCode: resp.StatusCode, Body: truncate(body)}
	if retryable(resp.StatusCode, idempotent) {
		return nil, statusErr
	}
	return nil, backoff.Permanent(statusErr)
}

func (c *Client) url(path string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

func retryable(status int, idempotent bool) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	return idempotent && status >= 500
}

func truncate(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody]
	}
	return s
}
