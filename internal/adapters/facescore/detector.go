package facescore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultDetectorTimeout = 5 * time.Second
	maxDetectorResponse    = 1 << 20
)

// Detector finds faces in an encoded image and returns their emotion
// distributions, most prominent face first.
type Detector interface {
	Detect(ctx context.Context, image []byte) ([]Emotions, error)
}

// HTTPDetector calls a remote FER service that answers a raw image POST
// with {"faces":[{"emotions":{...}}]}.
type HTTPDetector struct {
	endpoint   string
	httpClient *http.Client
}

// DetectorOption configures an HTTPDetector.
type DetectorOption func(*HTTPDetector)

// WithDetectorTimeout sets the per-request timeout.
func WithDetectorTimeout(d time.Duration) DetectorOption {
	return func(h *HTTPDetector) {
		if d > 0 {
			h.httpClient.Timeout = d
		}
	}
}

// WithDetectorHTTPClient replaces the underlying HTTP client.
func WithDetectorHTTPClient(c *http.Client) DetectorOption {
	return func(h *HTTPDetector) {
		if c != nil {
			h.httpClient = c
		}
	}
}

// NewHTTPDetector creates a detector client for endpoint.
func NewHTTPDetector(endpoint string, opts ...DetectorOption) *HTTPDetector {
	h := &HTTPDetector{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: defaultDetectorTimeout},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type detectResponse struct {
	Faces []struct {
		Emotions Emotions `json:"emotions"`
	} `json:"faces"`
}

// Detect posts the image and decodes the detected faces.
func (h *HTTPDetector) Detect(ctx context.Context, image []byte) ([]Emotions, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDetector, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrDetector, resp.StatusCode)
	}
	var out detectResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxDetectorResponse)).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrDetector, err)
	}
	faces := make([]Emotions, 0, len(out.Faces))
	for _, f := range out.Faces {
		faces = append(faces, f.Emotions)
	}
	return faces, nil
}
