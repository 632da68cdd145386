// Package llmprovider talks to an OpenAI compatible chat completions endpoint.
package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sashabaranov/go-openai"
)

// ErrDisabled is returned when no endpoint is configured.
var ErrDisabled = errors.New("llm provider is not configured")

// Config configures the client.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float32
}

// Client is a Resty-backed chat completions client.
type Client struct {
	httpClient *resty.Client
	model      string
	maxTokens  int
	temp       float32
	enabled    bool
}

// NewClient creates the client. An empty BaseURL yields a client whose Complete
// always returns ErrDisabled.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 200
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	if cfg.APIKey != "" {
		httpClient.SetAuthToken(cfg.APIKey)
	}

	return &Client{
		httpClient: httpClient,
		model:      cfg.Model,
		maxTokens:  maxTokens,
		temp:       cfg.Temperature,
		enabled:    strings.TrimSpace(cfg.BaseURL) != "",
	}
}

// Complete sends a single system + user exchange and returns the first choice's text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if !c.enabled {
		return "", ErrDisabled
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temp,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}

	var completion openai.ChatCompletionResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&completion).
		Post("/v1/chat/completions")
	if err != nil {
		return "", fmt.Errorf("llm request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("llm api error: %d %s", resp.StatusCode(), resp.String())
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("llm api returned no choices")
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
