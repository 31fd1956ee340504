package spimex

import (
	"context"
	"strings"
	"time"
)

// Fetch downloads the complete body of url. Non-2xx responses and transport
// failures are returned as *FetchError. There is no retry.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	start := time.Now()
	body, _, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Str("url", url).Int("bytes", len(body)).Dur("elapsed", time.Since(start)).Msg("bulletin downloaded")
	return body, nil
}

// Absolutize resolves a bulletin href against base. Anything already starting
// with "http" is returned untouched; everything else is prefixed with base.
func Absolutize(base, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	return base + href
}
