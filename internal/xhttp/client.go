package xhttp

import (
	"net/http"
	"time"
)

type ClientOption func(*http.Client)

func WithTimeout(d time.Duration) ClientOption {
	return func(c *http.Client) { c.Timeout = d }
}

// NewHTTPClient returns a client that stamps every request with userAgent.
func NewHTTPClient(userAgent string, opts ...ClientOption) *http.Client {
	c := &http.Client{Transport: NewTransport(userAgent)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
