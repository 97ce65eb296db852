// Package api is the Go client for the MyCV REST API. Every operation goes
// through Client.Request, which joins the path onto the base URL, sends JSON
// and turns any non-2xx response into a *RequestError.
package api

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/raysh454/mycv/internal/browser"
	"github.com/raysh454/mycv/internal/logging"
	"github.com/raysh454/mycv/internal/metrics"
	"github.com/raysh454/mycv/internal/webclient"
)

// Client is safe for concurrent use; it holds no per-call state.
type Client struct {
	baseURL string
	wc      webclient.WebClient
	logger  logging.Logger
	metrics metrics.Recorder
	headers map[string]string
	sink    browser.DownloadSink
	prober  browser.Prober
}

// Option configures a Client.
type Option func(*Client)

func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(c *Client) {
		if r != nil {
			c.metrics = r
		}
	}
}

// WithHeader adds a header sent on every request. Per-call headers win.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithDownloadSink sets where DownloadResumePDF delivers files.
func WithDownloadSink(s browser.DownloadSink) Option {
	return func(c *Client) {
		if s != nil {
			c.sink = s
		}
	}
}

// WithProber sets the capability prober behind SupportsMonthInput.
func WithProber(p browser.Prober) Option {
	return func(c *Client) {
		if p != nil {
			c.prober = p
		}
	}
}

// New creates a Client for the API rooted at baseURL (e.g.
// "http://localhost:8000/api"). wc performs the HTTP exchanges.
func New(baseURL string, wc webclient.WebClient, opts ...Option) (*Client, error) {
	if wc == nil {
		return nil, fmt.Errorf("nil webclient")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		wc:      wc,
		logger:  logging.NopLogger{},
		metrics: metrics.Nop{},
		headers: map[string]string{},
		sink:    browser.NewFileSink("."),
		prober:  browser.StaticProber{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(
		logging.Field{Key: "component", Value: "api"},
		logging.Field{Key: "base_url", Value: c.baseURL},
	)
	return c, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// Close releases the transport.
func (c *Client) Close() error {
	return c.wc.Close()
}
