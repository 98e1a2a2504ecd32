package anthropic_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/phrazzld/mom-agent/internal/config"
	"github.com/phrazzld/mom-agent/internal/generation"
	"github.com/phrazzld/mom-agent/internal/platform/anthropic"
	"github.com/phrazzld/mom-agent/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ generation.Completer = (*anthropic.Completer)(nil)

const okBody = `{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-5-haiku-latest",
"content":[{"type":"text","text":"**Minutes of Meeting**"}],
"stop_reason":"end_turn","stop_sequence":null,"usage":{"input_tokens":10,"output_tokens":5}}`

type messagesRequest struct {
	Model     string  `json:"model"`
	MaxTokens int     `json:"max_tokens"`
	Temp      float64 `json:"temperature"`
	System    []struct {
		Text string `json:"text"`
	} `json:"system"`
	Messages []struct {
		Role string `json:"role"`
	} `json:"messages"`
}

func newServer(t *testing.T, status int, body string, captured *messagesRequest, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if captured != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newCompleter(t *testing.T, baseURL string) *anthropic.Completer {
	t.Helper()
	l, _ := logger.NewTestLogger(t)
	c, err := anthropic.NewCompleter(l, config.LLMConfig{APIKey: "test-key", BaseURL: baseURL})
	require.NoError(t, err)
	return c
}

func TestNewCompleter_Validation(t *testing.T) {
	l, _ := logger.NewTestLogger(t)

	_, err := anthropic.NewCompleter(l, config.LLMConfig{})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = anthropic.NewCompleter(nil, config.LLMConfig{APIKey: "k"})
	assert.Error(t, err)
}

func TestComplete_Success(t *testing.T) {
	var got messagesRequest
	var calls int32
	srv := newServer(t, http.StatusOK, okBody, &got, &calls)
	c := newCompleter(t, srv.URL)

	temp := float32(0.3)
	reply, err := c.Complete(context.Background(), generation.CompletionRequest{
		Model: "claude-3-5-haiku-latest",
		Messages: []generation.Message{
			{Role: generation.RoleSystem, Content: "sys"},
			{Role: generation.RoleUser, Content: "transcript"},
		},
		MaxTokens:   2000,
		Temperature: &temp,
	})
	require.NoError(t, err)

	assert.Equal(t, "**Minutes of Meeting**", reply)
	assert.EqualValues(t, 1, calls)
	assert.Equal(t, "claude-3-5-haiku-latest", got.Model)
	assert.Equal(t, 2000, got.MaxTokens)
	assert.InDelta(t, 0.3, got.Temp, 1e-6)
	require.Len(t, got.System, 1)
	assert.Equal(t, "sys", got.System[0].Text)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "Anthropic", c.Name())
}

func TestComplete_ErrorsAreNotRetried(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   generation.ErrorKind
	}{
		{"unauthorized", http.StatusUnauthorized, generation.KindAuth},
		{"rate limited", http.StatusTooManyRequests, generation.KindRateLimit},
		{"overloaded", http.StatusServiceUnavailable, generation.KindServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := newServer(t, tt.status,
				`{"type":"error","error":{"type":"api_error","message":"request failed"}}`, nil, &calls)
			c := newCompleter(t, srv.URL)

			_, err := c.Complete(context.Background(), generation.CompletionRequest{
				Model:    "claude-3-5-haiku-latest",
				Messages: []generation.Message{{Role: generation.RoleUser, Content: "hi"}},
			})
			require.Error(t, err)

			var perr *generation.ProviderError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.status, perr.StatusCode)
			assert.Equal(t, tt.kind, generation.ClassifyError(err))
			assert.EqualValues(t, 1, calls)
		})
	}
}

func TestComplete_EmptyContent(t *testing.T) {
	var calls int32
	srv := newServer(t, http.StatusOK,
		`{"id":"msg_1","type":"message","role":"assistant","model":"m","content":[],"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":0}}`,
		nil, &calls)
	c := newCompleter(t, srv.URL)

	_, err := c.Complete(context.Background(), generation.CompletionRequest{
		Model:    "m",
		Messages: []generation.Message{{Role: generation.RoleUser, Content: "hi"}},
	})
	assert.ErrorIs(t, err, generation.ErrEmptyReply)
}
