package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kelsos/task-orchestrator/internal/logger"
)

// APIClient performs the HTTP calls made by task executors. It is safe for
// concurrent use.
type APIClient struct {
	httpClient *http.Client
}

// NewAPIClient creates a new API client whose requests give up after timeout
func NewAPIClient(timeout time.Duration) *APIClient {
	return &APIClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch issues a GET request and consumes the whole body. Any non-2xx status
// is an error.
func (c *APIClient) Fetch(ctx context.Context, url string) error {
	start := time.Now()
	logger.Debug("Starting GET request to %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug("Request to %s failed after %v: %v", url, time.Since(start), err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	logger.Debug("Request to %s completed in %v with status %d", url, time.Since(start), resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP request failed with status: %s", resp.Status)
	}

	// Read the body so the request is complete and the connection reusable
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	return nil
}
