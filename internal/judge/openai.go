package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultMaxTokens = 3000
	requestTimeout   = 120 * time.Second
)

// Client is an OpenAI-compatible chat-completions judge. It works against
// Upstage and OpenRouter, rotating API keys per request.
type Client struct {
	cfg    Config
	keys   *KeyRotator
	http   *http.Client
	logger *slog.Logger
}

// NewClient builds a judge client from config. The returned client is safe
// for concurrent use.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	rotator := NewKeyRotator(cfg.APIKeys)
	if rotator.Len() == 0 {
		return nil, ErrNoAPIKey
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	return &Client{
		cfg:    cfg,
		keys:   rotator,
		http:   &http.Client{Timeout: requestTimeout},
		logger: logger,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model               string        `json:"model"`
	Messages            []chatMessage `json:"messages"`
	Temperature         float64       `json:"temperature"`
	MaxTokens           int           `json:"max_tokens,omitempty"`
	MaxCompletionTokens int           `json:"max_completion_tokens,omitempty"`

	// Reasoning disables provider-side chain-of-thought on OpenRouter;
	// the scoring prompts carry their own structure and the extra tokens
	// only slow runs down.
	Reasoning *reasoningConfig `json:"reasoning,omitempty"`
}

type reasoningConfig struct {
	Enabled bool `json:"enabled"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Classify sends the prompt as a single user message and returns the raw
// assistant content. Any transport, status, or decode failure is returned as
// an error for the caller's retry policy to handle.
func (c *Client) Classify(ctx context.Context, prompt string) (string, error) {
	key, err := c.keys.Next()
	if err != nil {
		return "", err
	}

	req := chatRequest{
		Model:       c.cfg.EffectiveModel(),
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.cfg.Temperature,
	}
	// GPT endpoints reject max_tokens in favor of max_completion_tokens.
	if strings.Contains(req.Model, "gpt-4") || strings.Contains(req.Model, "gpt-5") {
		req.MaxCompletionTokens = c.cfg.MaxTokens
	} else {
		req.MaxTokens = c.cfg.MaxTokens
	}
	if c.cfg.Provider != "upstage" {
		req.Reasoning = &reasoningConfig{Enabled: false}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("judge: marshal request: %w", err)
	}

	url := c.cfg.baseURL() + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("judge: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+key)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("judge: call %s: %w", c.cfg.Provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("judge call failed",
			"provider", c.cfg.Provider,
			"model", req.Model,
			"status", resp.StatusCode,
			"elapsed", time.Since(start))
		return "", fmt.Errorf("%w: %d: %s", ErrProviderStatus, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("judge: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	c.logger.Debug("judge call completed",
		"provider", c.cfg.Provider,
		"model", req.Model,
		"elapsed", time.Since(start))

	return parsed.Choices[0].Message.Content, nil
}
