package rostercli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/okian/roster/internal/domain/roster"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// apiError mirrors the service error body.
type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("server returned %d %s: %s", e.Status, e.Code, e.Message)
}

// do sends a request and decodes a 200 JSON response into out.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &apiError{Status: resp.StatusCode}
		if jsonErr := json.Unmarshal(body, apiErr); jsonErr != nil {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// fetchRoster calls GET /roster with the flags that were set.
func (c *HTTPClient) fetchRoster(ctx context.Context, cfg *Config, sortSet bool) (roster.View, error) {
	q := url.Values{}
	if cfg.Search != "" {
		q.Set("search", cfg.Search)
	}
	if cfg.Metric != "" {
		q.Set("metric", cfg.Metric)
	}
	if sortSet {
		q.Set("sort", strconv.FormatBool(cfg.Sort))
	}
	if cfg.Limit > 0 {
		q.Set("limit", strconv.Itoa(cfg.Limit))
	}

	var view roster.View
	err := c.do(ctx, http.MethodGet, "/roster", q, &view)
	return view, err
}

// refresh calls POST /roster/refresh.
func (c *HTTPClient) refresh(ctx context.Context) error {
	var generation struct {
		ID string `json:"id"`
	}
	return c.do(ctx, http.MethodPost, "/roster/refresh", nil, &generation)
}
