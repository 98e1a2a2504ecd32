// Package openai implements generation.Completer with the OpenAI chat
// completions API via github.com/sashabaranov/go-openai.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/phrazzld/mom-agent/internal/config"
	"github.com/phrazzld/mom-agent/internal/generation"
)

// ProviderName is the display name used in diagnostics.
const ProviderName = "OpenAI"

// Completer sends single chat completion requests to OpenAI or any
// OpenAI-compatible endpoint.
type Completer struct {
	client *goopenai.Client
	logger *slog.Logger
}

// NewCompleter creates a Completer. cfg.BaseURL, when set, replaces the
// public API endpoint.
func NewCompleter(logger *slog.Logger, cfg config.LLMConfig) (*Completer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}

	clientConfig := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	return &Completer{
		client: goopenai.NewClientWithConfig(clientConfig),
		logger: logger.With("component", "openai"),
	}, nil
}

// Name implements generation.Completer.
func (c *Completer) Name() string {
	return ProviderName
}

// Complete implements generation.Completer.
func (c *Completer) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	chatReq := goopenai.ChatCompletionRequest{
		Model:     req.Model,
		Messages:  toChatMessages(req.Messages),
		MaxTokens: req.MaxTokens,
	}
	if req.Temperature != nil {
		chatReq.Temperature = *req.Temperature
	}

	c.logger.DebugContext(ctx, "calling OpenAI",
		"model", req.Model,
		"max_tokens", req.MaxTokens)

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", generation.NewProviderError(ProviderName, req.Model, statusCode(err), err)
	}

	if len(resp.Choices) == 0 {
		return "", generation.NewProviderError(ProviderName, req.Model, 0,
			fmt.Errorf("%w: no choices", generation.ErrEmptyReply))
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", generation.NewProviderError(ProviderName, req.Model, 0, generation.ErrEmptyReply)
	}
	return content, nil
}

func toChatMessages(msgs []generation.Message) []goopenai.ChatCompletionMessage {
	out := make([]goopenai.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		role := goopenai.ChatMessageRoleUser
		switch m.Role {
		case generation.RoleSystem:
			role = goopenai.ChatMessageRoleSystem
		case generation.RoleAssistant:
			role = goopenai.ChatMessageRoleAssistant
		}
		out = append(out, goopenai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}

// statusCode extracts the HTTP status from go-openai error types.
func statusCode(err error) int {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
