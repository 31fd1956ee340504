package spimex

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/guttosm/spimexpulse/internal/logger"
)

const (
	// DefaultBaseURL is the public site of the St. Petersburg exchange.
	DefaultBaseURL = "https://spimex.com"

	defaultTimeout = 30 * time.Second
	userAgent      = "spimexpulse/1.0 (+https://github.com/guttosm/spimexpulse)"
)

// Client talks to the exchange site: it lists bulletin index pages and downloads
// bulletin files. It is safe to reuse across calls but the pipeline uses it from
// a single goroutine.
type Client struct {
	baseURL string
	http    *resty.Client
	log     zerolog.Logger
}

// NewClient builds a Client for baseURL. A zero timeout falls back to 30s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	rc := resty.New()
	rc.SetTimeout(timeout)
	rc.SetHeader("User-Agent", userAgent)

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    rc,
		log:     logger.Component("spimex"),
	}
}

// BaseURL returns the site root used to absolutize relative links.
func (c *Client) BaseURL() string { return c.baseURL }

// get performs a GET and returns the raw body plus the declared content type.
func (c *Client) get(ctx context.Context, url string) ([]byte, string, error) {
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, "", &FetchError{URL: url, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, "", &FetchError{URL: url, StatusCode: resp.StatusCode()}
	}
	return resp.Body(), resp.Header().Get("Content-Type"), nil
}
