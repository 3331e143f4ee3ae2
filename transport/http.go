package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/motoki317/fetchstate"
)

// DefaultMaxBodySize is the default limit of a response body, in bytes.
const DefaultMaxBodySize = 10 << 20

// RequestIDHeader is set on every request to a random UUID.
const RequestIDHeader = "X-Request-ID"

// ErrBodyTooLarge is returned when a response body exceeds the configured maximum size.
var ErrBodyTooLarge = errors.New("response body too large")

// StatusError is returned for responses with a non-2xx status.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Status)
}

// HTTP retrieves resources with GET requests.
type HTTP struct {
	client      *http.Client
	header      http.Header
	maxBodySize int64
}

var _ fetchstate.Getter = (*HTTP)(nil)

// New creates an HTTP getter. Without options, it uses http.DefaultClient.
func New(options ...Option) *HTTP {
	h := &HTTP{
		client:      http.DefaultClient,
		header:      make(http.Header),
		maxBodySize: DefaultMaxBodySize,
	}
	h.header.Set("Accept", "application/json")
	for _, option := range options {
		option(h)
	}
	return h
}

// Get issues a GET request for locator and returns the response body.
func (h *HTTP) Get(ctx context.Context, locator string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, err
	}
	req.Header = h.header.Clone()
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		// drain so that the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, h.maxBodySize))
		return nil, &StatusError{
			Method: req.Method,
			URL:    req.URL.String(),
			Code:   resp.StatusCode,
			Status: resp.Status,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > h.maxBodySize {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL, ErrBodyTooLarge)
	}
	return body, nil
}
