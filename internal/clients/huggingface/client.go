// Package huggingface provides a text-generation client for the Hugging Face Inference API
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/bobmcallan/realticker/internal/common"
)

const (
	ProviderName     = "huggingface"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second

	maxResponseBytes = 1 << 20
)

// ErrMissingAPIKey is returned when no usable key is configured
var ErrMissingAPIKey = errors.New("huggingface API key not configured")

// HTTPDoer describes an HTTP client.
//
//go:generate mockgen -package=huggingface_test -destination=mock_http_doer_test.go -source=client.go HTTPDoer
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Parameters are the generation settings sent with every request
type Parameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	TopP           float64 `json:"top_p"`
	ReturnFullText bool    `json:"return_full_text"`
}

type generateRequest struct {
	Inputs     string     `json:"inputs"`
	Parameters Parameters `json:"parameters"`
}

// Client implements interfaces.TextGenerator against a hosted model endpoint
type Client struct {
	apiURL     string
	apiKey     string
	httpClient HTTPDoer
	timeout    time.Duration
	limiter    *rate.Limiter
	params     Parameters
	logger     arbor.ILogger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithAPIURL sets the model endpoint
func WithAPIURL(apiURL string) ClientOption {
	return func(c *Client) {
		if apiURL != "" {
			c.apiURL = apiURL
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient HTTPDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the outbound request rate. Zero or less disables pacing.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout bounds each generation request
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithParameters overrides the sampling parameters. Zero values keep the defaults.
func WithParameters(maxNewTokens int, temperature, topP float64) ClientOption {
	return func(c *Client) {
		if maxNewTokens > 0 {
			c.params.MaxNewTokens = maxNewTokens
		}
		if temperature > 0 {
			c.params.Temperature = temperature
		}
		if topP > 0 {
			c.params.TopP = topP
		}
	}
}

// NewClient creates a new Hugging Face client.
// An empty or placeholder key returns ErrMissingAPIKey.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" || apiKey == common.PlaceholderHuggingFaceKey {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		apiURL:     common.DefaultHuggingFaceURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		params: Parameters{
			MaxNewTokens: 300,
			Temperature:  0.7,
			TopP:         0.9,
		},
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Name returns the provider name
func (c *Client) Name() string {
	return ProviderName
}

// APIError represents a non-200 response from the inference endpoint
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Hugging Face API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// GenerateText posts the prompt and returns the generated continuation.
// Both the list shape `[{"generated_text": ...}]` and the object shape are accepted.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	payload, err := json.Marshal(generateRequest{Inputs: prompt, Parameters: c.params})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("endpoint", c.apiURL).Int("prompt_chars", len(prompt)).Msg("Hugging Face request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   c.apiURL,
		}
	}

	return extractGeneratedText(body)
}

// extractGeneratedText pulls generated_text out of either response shape
func extractGeneratedText(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("invalid JSON response")
	}

	result := gjson.GetBytes(body, "0.generated_text")
	if !result.Exists() {
		result = gjson.GetBytes(body, "generated_text")
	}
	if !result.Exists() {
		return "", fmt.Errorf("response has no generated_text")
	}

	return result.String(), nil
}
