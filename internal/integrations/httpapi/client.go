// Package httpapi is the small JSON-over-HTTP client shared by the live
// integration providers.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/julianstephens/mindfulpath/internal/logger"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Service string
	Code    int
	Body    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.Code, e.Body)
}

// Client issues JSON requests against a single base URL.
type Client struct {
	Service string
	BaseURL string
	Header  http.Header
	HTTP    *http.Client

	// Sign, when set, is called on every request just before it is sent.
	Sign func(req *http.Request, body []byte) error
}

func New(service, baseURL string, timeout time.Duration) *Client {
	return &Client{
		Service: service,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Header:  make(http.Header),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// WithHeader returns a copy of c that also sends key: value.
func (c *Client) WithHeader(key, value string) *Client {
	cp := *c
	cp.Header = c.Header.Clone()
	cp.Header.Set(key, value)
	return &cp
}

// Do sends in (if non-nil) as JSON and decodes the response into out (if non-nil).
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for k, vs := range c.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if c.Sign != nil {
		if err := c.Sign(req, body); err != nil {
			return fmt.Errorf("failed to sign request: %w", err)
		}
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", c.Service, err)
	}
	defer resp.Body.Close()
	logger.Debug("HTTP request", "service", c.Service, "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Service: c.Service, Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", c.Service, err)
	}
	return nil
}
