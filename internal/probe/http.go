package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// PostForm performs a urlencoded POST request.
func (c *HTTPClient) PostForm(ctx context.Context, target string, values url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.client.Do(req)
}

// submit posts one scenario to /predict and returns the status and, for a
// 200, the decoded body.
func submit(ctx context.Context, client *HTTPClient, target string, s Scenario) (int, *Response, error) {
	values := url.Values{}
	if s.Text != "" {
		values.Set("text", s.Text)
	}
	if s.StudyBehavior != "" {
		values.Set("study_behavior", s.StudyBehavior)
	}
	if s.StudentID != "" {
		values.Set("student_id", s.StudentID)
	}

	resp, err := client.PostForm(ctx, target, values)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return resp.StatusCode, nil, nil
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.StatusCode, &out, nil
}
