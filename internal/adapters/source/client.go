package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/countrydash/internal/domain/country"
	"github.com/okian/countrydash/pkg/logger"
	"github.com/okian/countrydash/pkg/metrics"
)

// Default client configuration.
const (
	DefaultBaseURL      = "https://restcountries.com/v3.1"
	defaultTimeout      = 30 * time.Second
	defaultMaxBodyBytes = 32 << 20
)

// Fields is the field-selection query sent upstream.
type Fields []string

// Field sets used by the two views. AllFields serves both from one fetch.
var (
	TableFields     = Fields{"name", "currencies", "languages", "population", "area", "flags"}
	DashboardFields = Fields{"name", "currencies", "languages", "population", "area", "borders"}
	AllFields       = Fields{"name", "currencies", "languages", "population", "area", "flags", "borders"}
)

// String renders the comma separated field list.
func (f Fields) String() string { return strings.Join(f, ",") }

// Source supplies the full record sequence.
type Source interface {
	Fetch(ctx context.Context, fields Fields) ([]country.Record, error)
}

// Client is a Source backed by the REST Countries HTTP API.
type Client struct {
	baseURL      string
	timeout      time.Duration
	http         *http.Client
	maxBodyBytes int64
	logger       logger.Logger
}

// New constructs a Client with default configuration.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:      DefaultBaseURL,
		timeout:      defaultTimeout,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c
}

// URL returns the request URL for fields.
func (c *Client) URL(fields Fields) (string, error) {
	if len(fields) == 0 {
		return "", ErrNoFields
	}
	base, err := url.Parse(strings.TrimRight(c.baseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrBadBaseURL, c.baseURL)
	}
	return base.String() + "/all?fields=" + fields.String(), nil
}

// Fetch performs one GET and decodes the record array. Every failure is
// wrapped in ErrFetch.
func (c *Client) Fetch(ctx context.Context, fields Fields) ([]country.Record, error) {
	start := time.Now()
	records, err := c.fetch(ctx, fields)
	elapsedMs := float64(time.Since(start).Milliseconds())
	if err != nil {
		metrics.RecordFetch("error")
		metrics.RecordErrorByComponent("source", "fetch")
		metrics.RecordErrorLatency("source", "fetch", elapsedMs)
		if c.logger != nil {
			c.logger.Debug(ctx, "fetch country records failed", logger.Error(err))
		}
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	metrics.RecordFetch("ok")
	metrics.RecordFetchLatency(elapsedMs)
	if c.logger != nil {
		c.logger.Debug(ctx, "fetched country records",
			logger.Int("records", len(records)),
			logger.Float64("elapsed_ms", elapsedMs),
		)
	}
	return records, nil
}

func (c *Client) fetch(ctx context.Context, fields Fields) ([]country.Record, error) {
	u, err := c.URL(fields)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return country.Decode(body)
}
