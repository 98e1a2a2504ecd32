package generation

import (
	"context"
	"strings"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a chat completion request.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest is the provider-neutral shape of a single model call.
type CompletionRequest struct {
	Model     string
	Messages  []Message
	MaxTokens int
	// Nil leaves the provider default in place.
	Temperature *float32
}

// SystemPrompt joins the content of all system messages.
func (r CompletionRequest) SystemPrompt() string {
	var parts []string
	for _, m := range r.Messages {
		if m.Role == RoleSystem {
			parts = append(parts, m.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Conversation returns the non-system messages in order.
func (r CompletionRequest) Conversation() []Message {
	out := make([]Message, 0, len(r.Messages))
	for _, m := range r.Messages {
		if m.Role != RoleSystem {
			out = append(out, m)
		}
	}
	return out
}

// Completer sends one chat completion request to a language model provider.
//
// Implementations must issue exactly one request per call, must not retry,
// and must return ErrEmptyReply (possibly wrapped) when the response carries
// no text.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// Name is the human readable provider name used in diagnostics.
	Name() string
}
