// Package api talks to the workers REST backend.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trouvetonpro/dalil/internal/directory"
	"github.com/trouvetonpro/dalil/internal/logger"
	"github.com/trouvetonpro/dalil/internal/metrics"
)

const (
	endpointList   = "list"
	endpointDetail = "detail"

	// maxBody caps how much of a response is read.
	maxBody = 8 << 20
)

// ErrUnavailable wraps every failure to obtain data from the backend. The UI
// shows one message for all of them; the concrete cause is only logged.
var ErrUnavailable = errors.New("workers backend unavailable")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http status %d", e.Code)
}

func (e *StatusError) Unwrap() error { return ErrUnavailable }

type fetchError struct {
	op  string
	err error
}

func (e *fetchError) Error() string { return e.op + ": " + e.err.Error() }

func (e *fetchError) Is(target error) bool { return target == ErrUnavailable }

func (e *fetchError) Unwrap() error { return e.err }

// Client fetches worker records.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	token   string
	log     logger.Logger
	metrics *metrics.Manager
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// WithToken sends "Authorization: Token <token>" on every request.
func WithToken(token string) Option { return func(c *Client) { c.token = strings.TrimSpace(token) } }

// WithLogger sets the logger; the default discards.
func WithLogger(l logger.Logger) Option { return func(c *Client) { c.log = l } }

// WithMetrics records request counts and latency.
func WithMetrics(m *metrics.Manager) Option { return func(c *Client) { c.metrics = m } }

// New builds a client for baseURL, e.g. http://10.0.0.2:8000. Requests go to
// {baseURL}/api/workers/.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q is not absolute", baseURL)
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// ListWorkers fetches every worker.
func (c *Client) ListWorkers(ctx context.Context) ([]directory.Worker, error) {
	var out []directory.Worker
	if err := c.getJSON(ctx, endpointList, c.baseURL.JoinPath("api", "workers/"), &out); err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	if out == nil {
		out = []directory.Worker{}
	}
	return out, nil
}

// GetWorker fetches one worker by id.
func (c *Client) GetWorker(ctx context.Context, id string) (directory.Worker, error) {
	var out directory.Worker
	if strings.TrimSpace(id) == "" {
		return out, errors.New("get worker: empty id")
	}
	target := c.baseURL.JoinPath("api", "workers", url.PathEscape(id)+"/")
	if err := c.getJSON(ctx, endpointDetail, target, &out); err != nil {
		return directory.Worker{}, fmt.Errorf("get worker %s: %w", id, err)
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, target *url.URL, dst any) error {
	reqID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return &fetchError{op: "build request", err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	start := time.Now()
	outcome := metrics.OutcomeOK
	defer func() {
		c.metrics.ObserveRequest(endpoint, outcome, time.Since(start))
	}()

	fields := []logger.Field{logger.String("url", target.String()), logger.String("request_id", reqID)}

	resp, err := c.http.Do(req)
	if err != nil {
		outcome = metrics.OutcomeTransport
		c.log.Warn(ctx, "request failed", append(fields, logger.Error(err))...)
		return &fetchError{op: "request", err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = metrics.OutcomeStatus
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		c.log.Warn(ctx, "unexpected status", append(fields, logger.Int("status", resp.StatusCode))...)
		return &StatusError{Code: resp.StatusCode}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(dst); err != nil {
		outcome = metrics.OutcomeDecode
		c.log.Warn(ctx, "decode failed", append(fields, logger.Error(err))...)
		return &fetchError{op: "decode", err: err}
	}
	c.log.Debug(ctx, "request ok", append(fields, logger.Int("status", resp.StatusCode))...)
	return nil
}
