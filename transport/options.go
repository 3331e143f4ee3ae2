package transport

import (
	"net/http"
	"time"
)

type Option func(h *HTTP)

// WithClient sets the HTTP client used for requests.
func WithClient(client *http.Client) Option {
	return func(h *HTTP) {
		if client != nil {
			h.client = client
		}
	}
}

// WithTimeout sets a timeout for whole requests, including reading the body.
// The client given by WithClient is copied, not modified; order WithTimeout after WithClient.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTP) {
		c := *h.client
		c.Timeout = d
		h.client = &c
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return WithHeader("User-Agent", ua)
}

// WithHeader sets a header sent with every request.
func WithHeader(key, value string) Option {
	return func(h *HTTP) {
		h.header.Set(key, value)
	}
}

// WithMaxBodySize limits the size of response bodies. Larger bodies are reported as ErrBodyTooLarge.
func WithMaxBodySize(n int64) Option {
	return func(h *HTTP) {
		if n > 0 {
			h.maxBodySize = n
		}
	}
}
