package textscore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/okian/mindscan/internal/domain/model"
)

const (
	defaultTimeout   = 2 * time.Second
	maxResponseBytes = 1 << 16
)

// Client scores text with a remote classifier that answers
// POST {"text": ...} with {"probability": p}.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a classifier client for endpoint.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type inferenceRequest struct {
	Text string `json:"text"`
}

type inferenceResponse struct {
	Probability *float64 `json:"probability"`
}

// ScoreText sends normalized text to the classifier.
func (c *Client) ScoreText(ctx context.Context, text string) (model.ChannelScore, error) {
	if text == "" {
		return Neutral(), nil
	}
	text = normalize(text)
	p, err := c.probability(ctx, text)
	if err != nil {
		return model.ChannelScore{}, err
	}
	return Interpret(p), nil
}

func (c *Client) probability(ctx context.Context, text string) (float64, error) {
	body, err := json.Marshal(inferenceRequest{Text: text})
	if err != nil {
		return 0, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInference, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: status %d", ErrInference, resp.StatusCode)
	}
	var out inferenceResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return 0, fmt.Errorf("%w: decode response: %w", ErrInference, err)
	}
	if out.Probability == nil || math.IsNaN(*out.Probability) || *out.Probability < 0 || *out.Probability > 1 {
		return 0, fmt.Errorf("%w: probability missing or outside [0,1]", ErrInference)
	}
	return *out.Probability, nil
}
