package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/smartjob/internal/ai"
)

const (
	DefaultURL   = "http://localhost:11434"
	DefaultModel = "mistral"

	generatePath = "/api/generate"
	contentType  = "application/json"
)

// Client talks to an Ollama-compatible /api/generate endpoint.
// Every call is a single blocking request: no retries and no timeout besides the caller's context.
type Client struct {
	baseURL string
	model   string
	logger  *zap.Logger

	HTTPClient *http.Client
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error"`
}

// New creates a client for the endpoint rooted at baseURL.
func New(baseURL, model string, logger *zap.Logger) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultURL
	}

	parsed, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse ollama url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported ollama url scheme: %q", parsed.Scheme)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    baseURL,
		model:      model,
		logger:     logger,
		HTTPClient: &http.Client{},
	}, nil
}

// GenerateContent posts the prompt and returns the "response" field of the reply untouched.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.HTTPClient == nil {
		return "", errors.New("ollama client is not initialized")
	}

	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug("make request", zap.String("url", req.URL.String()), zap.String("model", c.model))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ai.ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", ai.ErrModelUnavailable, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: bad status: %s", ai.ErrModelUnavailable, resp.Status)
	}

	var decoded generateResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return "", fmt.Errorf("%w: %w", ai.ErrMalformedModelResponse, err)
	}

	if msg := strings.TrimSpace(decoded.Error); msg != "" {
		return "", fmt.Errorf("%w: %s", ai.ErrModelUnavailable, msg)
	}

	return decoded.Response, nil
}

func (c *Client) Provider() string {
	return "ollama"
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}
