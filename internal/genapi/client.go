package genapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	DefaultBaseURL   = "https://api.anthropic.com"
	DefaultModel     = "claude-sonnet-4-20250514"
	DefaultMaxTokens = 8000
	DefaultTimeout   = 5 * time.Minute

	// APIKeyEnv is where the credential comes from when not passed explicitly.
	APIKeyEnv = "ANTHROPIC_API_KEY"

	apiVersion = "2023-06-01"
)

// Generator is the one-call generation boundary: prompt in, document text
// out. The orchestrator performs no retries inside this call.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Error is the uniform failure from the generation boundary. Timeouts, auth
// problems, malformed responses and empty content all surface as this one
// type with an opaque message; callers record the text, nothing more.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func failf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

type Options struct {
	BaseURL    string
	APIKey     string
	Model      string
	MaxTokens  int
	HTTPClient *http.Client
}

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
}

// NewClient builds a messages-API client. The API key falls back to the
// environment; a missing key is a startup error, not a per-job failure.
func NewClient(opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv(APIKeyEnv))
	}
	if apiKey == "" {
		return nil, fmt.Errorf("missing API key: set %s or pass one explicitly", APIKeyEnv)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		maxTokens:  maxTokens,
		httpClient: httpClient,
	}, nil
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
	Error   *apiError      `json:"error,omitempty"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Generate sends one prompt and returns the generated document text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", failf("prompt is empty")
	}

	body, err := json.Marshal(messagesRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", failf("encode request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", failf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", failf("call generation API: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", failf("read generation API response: %v", err)
	}

	var parsed messagesResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", failf("generation API returned HTTP %d", resp.StatusCode)
		}
		return "", failf("parse generation API response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil && strings.TrimSpace(parsed.Error.Message) != "" {
			return "", failf("generation API returned HTTP %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", failf("generation API returned HTTP %d", resp.StatusCode)
	}

	text := ""
	for _, block := range parsed.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if strings.TrimSpace(text) == "" {
		return "", failf("generation API returned empty content")
	}
	return text, nil
}
