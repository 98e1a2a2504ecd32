// Package anthropic implements generation.Completer with the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/phrazzld/mom-agent/internal/config"
	"github.com/phrazzld/mom-agent/internal/generation"
)

// ProviderName is the display name used in diagnostics.
const ProviderName = "Anthropic"

// defaultMaxTokens is used when a request leaves MaxTokens unset; the
// Messages API requires the field.
const defaultMaxTokens = 1024

// Completer sends single message requests to Anthropic.
type Completer struct {
	client *sdk.Client
	logger *slog.Logger
}

// NewCompleter creates a Completer. SDK retries are disabled so the fallback
// executor sees exactly one request per attempt.
func NewCompleter(logger *slog.Logger, cfg config.LLMConfig) (*Completer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: anthropic API key cannot be empty", generation.ErrInvalidConfig)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Completer{
		client: sdk.NewClient(opts...),
		logger: logger.With("component", "anthropic"),
	}, nil
}

// Name implements generation.Completer.
func (c *Completer) Name() string {
	return ProviderName
}

// Complete implements generation.Completer.
func (c *Completer) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	params := sdk.MessageNewParams{
		Model:     sdk.F(sdk.Model(req.Model)),
		MaxTokens: sdk.Int(int64(maxTokens)),
		Messages:  sdk.F(toMessages(req.Conversation())),
	}
	if system := req.SystemPrompt(); system != "" {
		params.System = sdk.F([]sdk.TextBlockParam{sdk.NewTextBlock(system)})
	}
	if req.Temperature != nil {
		params.Temperature = sdk.F(float64(*req.Temperature))
	}

	c.logger.DebugContext(ctx, "calling Anthropic",
		"model", req.Model,
		"max_tokens", maxTokens)

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", generation.NewProviderError(ProviderName, req.Model, statusCode(err), err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		b.WriteString(block.Text)
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", generation.NewProviderError(ProviderName, req.Model, 0, generation.ErrEmptyReply)
	}
	return b.String(), nil
}

func toMessages(conv []generation.Message) []sdk.MessageParam {
	out := make([]sdk.MessageParam, 0, len(conv))
	for _, m := range conv {
		if m.Role == generation.RoleAssistant {
			out = append(out, sdk.NewAssistantMessage(sdk.NewTextBlock(m.Content)))
			continue
		}
		out = append(out, sdk.NewUserMessage(sdk.NewTextBlock(m.Content)))
	}
	return out
}

func statusCode(err error) int {
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
