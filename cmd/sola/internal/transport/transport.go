// Package transport executes single request/response exchanges against
// the remote Sola service and normalizes the outcome: decoded payload,
// explicitly-empty success, or failure carrying the HTTP status code.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxBodyBytes caps response reads; the Sola API returns small JSON
// documents only.
const maxBodyBytes = 4 << 20

// Caller is the surface the orchestrator depends on. Call returns
// ok=true when the response carried a payload (decoded into out when out
// is non-nil), ok=false for an explicitly-empty success (HTTP 204), and
// a non-nil error for every failure.
type Caller interface {
	Call(ctx context.Context, method, path string, body, out any) (ok bool, err error)
}

// StatusError reports a non-success response. The status code is the
// only structured detail; the service does not define an error body.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("sola service returned HTTP %d", e.StatusCode)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// Client is the production Caller over net/http.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *slog.Logger
}

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *slog.Logger
}

// New creates a Client. Timeout defaults to 30 seconds.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		log:        log.With("component", "transport"),
	}
}

// Call performs one exchange. body (when non-nil) is JSON-encoded; out
// (when non-nil) receives the decoded JSON payload.
func (c *Client) Call(ctx context.Context, method, path string, body, out any) (bool, error) {
	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("call sola service: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode >= 400 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return false, &StatusError{StatusCode: resp.StatusCode}
	}

	if resp.StatusCode == http.StatusNoContent {
		return false, nil
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return true, nil
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return false, fmt.Errorf("read response body: %w", err)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return true, nil
}
