package summary

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/gurnoor/vitalcall/pkg/config"
)

const anthropicVersion = "2023-06-01"

// Completion is one successful response from the summarization transport.
type Completion struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
}

// Completer is the summarization transport contract. Implementations make
// a single attempt; retry policy lives in the Service.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (*Completion, error)
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// AnthropicClient calls the Anthropic messages API over HTTP.
type AnthropicClient struct {
	httpClient *resty.Client
	model      string
	logger     *zap.Logger
}

// NewAnthropicClient builds the transport. A missing API key is a
// configuration error surfaced here, before any network attempt.
func NewAnthropicClient(cfg config.AnthropicConfig, logger *zap.Logger) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-api-key", cfg.APIKey).
		SetHeader("anthropic-version", anthropicVersion)

	return &AnthropicClient{
		httpClient: client,
		model:      cfg.Model,
		logger:     logger,
	}, nil
}

// Complete makes one messages API call and extracts the first text block.
func (c *AnthropicClient) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (*Completion, error) {
	request := anthropicRequest{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		System:      systemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: userPrompt},
		},
	}

	var response anthropicResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&response).
		Post("/v1/messages")

	if err != nil {
		return nil, fmt.Errorf("anthropic api call failed: %w", err)
	}

	if resp.IsError() {
		// Status code stays in the message so the caller can classify
		// authentication failures.
		return nil, fmt.Errorf("anthropic api returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var text string
	if len(response.Content) > 0 {
		text = response.Content[0].Text
	}

	c.logger.Debug("anthropic completion received",
		zap.String("model", response.Model),
		zap.Int("input_tokens", response.Usage.InputTokens),
		zap.Int("output_tokens", response.Usage.OutputTokens),
	)

	return &Completion{
		Text:         text,
		Model:        response.Model,
		InputTokens:  response.Usage.InputTokens,
		OutputTokens: response.Usage.OutputTokens,
	}, nil
}
