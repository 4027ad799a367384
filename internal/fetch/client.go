// Package fetch implements the HTTP retrieval layer: a single-request JSON
// client built on the Colly collector and a bounded concurrent fan-out pool.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/jfalvarez/bookscout/internal/metrics"
)

// DefaultTimeout bounds every request when no timeout is configured.
const DefaultTimeout = 15 * time.Second

// Config controls client behavior.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// Client performs single JSON GETs using a shared Colly collector. It follows
// redirects and applies a fixed per-request timeout; it never retries.
type Client struct {
	cfg           Config
	transport     http.RoundTripper
	baseCollector *colly.Collector
}

// NewClient builds a Client with a pooled transport.
func NewClient(cfg Config) *Client {
	c := colly.NewCollector(colly.Async(false))
	c.IgnoreRobotsTxt = true

	transport := newHTTPTransport()
	c.WithTransport(transport)

	return &Client{
		cfg:           cfg,
		transport:     transport,
		baseCollector: c,
	}
}

// FetchJSON issues one GET against url and decodes the body into v. The body
// is decoded only when the response status is exactly 200; any other status,
// transport error, or malformed body yields an error the caller treats as a
// final miss for that URL.
func (c *Client) FetchJSON(ctx context.Context, url string, v any) error {
	start := time.Now()
	body, status, err := c.get(ctx, url)
	if err != nil {
		metrics.ObserveFetch(url, metrics.OutcomeError, time.Since(start))
		return fmt.Errorf("get %s: %w", url, err)
	}
	if status != http.StatusOK {
		metrics.ObserveFetch(url, metrics.OutcomeMiss, time.Since(start))
		return fmt.Errorf("get %s: unexpected status %d", url, status)
	}
	if err := json.Unmarshal(body, v); err != nil {
		metrics.ObserveFetch(url, metrics.OutcomeDecodeError, time.Since(start))
		return fmt.Errorf("decode %s: %w", url, err)
	}
	metrics.ObserveFetch(url, metrics.OutcomeOK, time.Since(start))
	return nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, int, error) {
	collector := c.baseCollector.Clone()
	if c.cfg.UserAgent != "" {
		collector.UserAgent = c.cfg.UserAgent
	}
	timeout := c.cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	collector.SetRequestTimeout(timeout)
	collector.WithTransport(c.transport)

	var (
		body     []byte
		status   int
		fetchErr error
	)
	collector.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = append([]byte(nil), r.Body...)
	})
	collector.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
		fetchErr = err
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(url)
	}()
	select {
	case err := <-done:
		if fetchErr != nil {
			return nil, status, fetchErr
		}
		if err != nil {
			return nil, status, err
		}
		return body, status, nil
	case <-ctx.Done():
		return nil, 0, ctx.Err()
	}
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
