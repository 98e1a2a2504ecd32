package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/mom-agent/internal/config"
	"github.com/phrazzld/mom-agent/internal/generation"
	"google.golang.org/genai"
)

// ProviderName is the display name used in diagnostics.
const ProviderName = "Gemini"

// Completer sends single chat requests to the Gemini API.
type Completer struct {
	client *genai.Client
	logger *slog.Logger
}

// NewCompleter creates a Completer from the LLM configuration.
func NewCompleter(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Completer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Completer{
		client: client,
		logger: logger.With("component", "gemini"),
	}, nil
}

// Name implements generation.Completer.
func (c *Completer) Name() string {
	return ProviderName
}

// Complete implements generation.Completer.
func (c *Completer) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	contents, genConfig := buildRequest(req)

	c.logger.DebugContext(ctx, "calling Gemini",
		"model", req.Model,
		"max_tokens", req.MaxTokens)

	resp, err := c.client.Models.GenerateContent(ctx, req.Model, contents, genConfig)
	if err != nil {
		return "", generation.NewProviderError(ProviderName, req.Model, 0, err)
	}

	text, err := replyText(resp)
	if err != nil {
		return "", generation.NewProviderError(ProviderName, req.Model, 0, err)
	}
	return text, nil
}

// buildRequest maps a provider-neutral request onto genai contents and
// generation settings.
func buildRequest(req generation.CompletionRequest) ([]*genai.Content, *genai.GenerateContentConfig) {
	conv := req.Conversation()
	contents := make([]*genai.Content, 0, len(conv))
	for _, m := range conv {
		role := "user"
		if m.Role == generation.RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}

	genConfig := &genai.GenerateContentConfig{}
	if system := req.SystemPrompt(); system != "" {
		genConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	if req.MaxTokens > 0 {
		genConfig.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature != nil {
		t := *req.Temperature
		genConfig.Temperature = &t
	}
	return contents, genConfig
}

// replyText extracts the concatenated text of the first candidate.
func replyText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", generation.ErrEmptyReply)
	}
	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", generation.ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content", generation.ErrEmptyReply)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", generation.ErrEmptyReply
	}
	return b.String(), nil
}
