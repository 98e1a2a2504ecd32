package generation_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/phrazzld/mom-agent/internal/generation"
	"github.com/phrazzld/mom-agent/internal/mocks"
	"github.com/phrazzld/mom-agent/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPrompts = generation.Prompts{System: "system", User: "user"}

func TestNewExecutor_Validation(t *testing.T) {
	l, _ := logger.NewTestLogger(t)

	_, err := generation.NewExecutor(nil, l, 0)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = generation.NewExecutor(&mocks.MockCompleter{}, nil, 0)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = generation.NewExecutor(&mocks.MockCompleter{}, l, -time.Second)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestExecutor_FallsBackInOrder(t *testing.T) {
	l, buf := logger.NewTestLogger(t)
	completer := &mocks.MockCompleter{
		Responses: map[string]mocks.CompletionResponse{
			"A": {Err: errors.New("a down")},
			"B": {Err: generation.NewProviderError("Mock", "B", 429, errors.New("slow down"))},
			"C": {Reply: "X"},
		},
	}
	exec, err := generation.NewExecutor(completer, l, time.Second)
	require.NoError(t, err)

	res, err := exec.Run(context.Background(), testPrompts, []string{"A", "B", "C"})
	require.NoError(t, err)

	assert.True(t, res.Succeeded())
	assert.Equal(t, "X", res.Reply)
	assert.Equal(t, "C", res.Model)
	assert.NoError(t, res.LastErr)
	assert.Equal(t, []string{"A", "B", "C"}, completer.RequestedModels())

	require.Len(t, res.Attempts, 3)
	assert.Equal(t, generation.KindUnknown, res.Attempts[0].Kind)
	assert.Equal(t, generation.KindRateLimit, res.Attempts[1].Kind)
	assert.NoError(t, res.Attempts[2].Err)

	warns, err := buf.EntriesAt(slog.LevelWarn)
	require.NoError(t, err)
	require.Len(t, warns, 2)
	assert.Equal(t, "A", warns[0]["model"])
	assert.EqualValues(t, 1, warns[0]["attempt"])
	assert.Equal(t, "rate_limit", warns[1]["kind"])
}

func TestExecutor_RequestShape(t *testing.T) {
	l, _ := logger.NewTestLogger(t)
	completer := &mocks.MockCompleter{Reply: "ok"}
	exec, err := generation.NewExecutor(completer, l, 0)
	require.NoError(t, err)

	_, err = exec.Run(context.Background(), testPrompts, []string{"m"})
	require.NoError(t, err)

	reqs := completer.Requests()
	require.Len(t, reqs, 1)
	req := reqs[0]
	assert.Equal(t, "m", req.Model)
	assert.Equal(t, generation.MaxTokens, req.MaxTokens)
	require.NotNil(t, req.Temperature)
	assert.InDelta(t, 0.3, *req.Temperature, 1e-6)
	assert.Equal(t, []generation.Message{
		{Role: generation.RoleSystem, Content: "system"},
		{Role: generation.RoleUser, Content: "user"},
	}, req.Messages)
}

func TestExecutor_AllFail(t *testing.T) {
	l, _ := logger.NewTestLogger(t)
	last := errors.New("c down")
	completer := &mocks.MockCompleter{
		Responses: map[string]mocks.CompletionResponse{
			"A": {Err: errors.New("a down")},
			"B": {Err: errors.New("b down")},
			"C": {Err: last},
		},
	}
	exec, err := generation.NewExecutor(completer, l, 0)
	require.NoError(t, err)

	res, err := exec.Run(context.Background(), testPrompts, []string{"A", "B", "C"})
	require.NoError(t, err)

	assert.False(t, res.Succeeded())
	assert.ErrorIs(t, res.LastErr, last)
	assert.Len(t, res.Attempts, 3)
	assert.Empty(t, res.Reply)
}

func TestExecutor_EmptyReplyIsFailure(t *testing.T) {
	l, _ := logger.NewTestLogger(t)
	completer := &mocks.MockCompleter{
		Responses: map[string]mocks.CompletionResponse{
			"A": {Reply: "   \n\t"},
			"B": {Reply: "real"},
		},
	}
	exec, err := generation.NewExecutor(completer, l, 0)
	require.NoError(t, err)

	res, err := exec.Run(context.Background(), testPrompts, []string{"A", "B"})
	require.NoError(t, err)

	assert.Equal(t, "B", res.Model)
	assert.ErrorIs(t, res.Attempts[0].Err, generation.ErrEmptyReply)
	assert.Equal(t, generation.KindEmptyReply, res.Attempts[0].Kind)
}

func TestExecutor_DuplicatesAreTriedTwice(t *testing.T) {
	l, _ := logger.NewTestLogger(t)
	completer := &mocks.MockCompleter{Err: errors.New("down")}
	exec, err := generation.NewExecutor(completer, l, 0)
	require.NoError(t, err)

	res, err := exec.Run(context.Background(), testPrompts, []string{"gpt-4o-mini", "gpt-4o-mini", "gpt-4o"})
	require.NoError(t, err)
	assert.False(t, res.Succeeded())
	assert.Equal(t, []string{"gpt-4o-mini", "gpt-4o-mini", "gpt-4o"}, completer.RequestedModels())
}

func TestExecutor_NoModels(t *testing.T) {
	l, _ := logger.NewTestLogger(t)
	completer := &mocks.MockCompleter{Reply: "ok"}
	exec, err := generation.NewExecutor(completer, l, 0)
	require.NoError(t, err)

	res, err := exec.Run(context.Background(), testPrompts, nil)
	assert.ErrorIs(t, err, generation.ErrNoModels)
	assert.Nil(t, res)
	assert.Zero(t, completer.CallCount())
}

func TestExecutor_AttemptTimeout(t *testing.T) {
	l, _ := logger.NewTestLogger(t)
	completer := &mocks.MockCompleter{
		CompleteFn: func(ctx context.Context, req generation.CompletionRequest) (string, error) {
			if req.Model == "slow" {
				<-ctx.Done()
				return "", ctx.Err()
			}
			return "fast reply", nil
		},
	}
	exec, err := generation.NewExecutor(completer, l, 20*time.Millisecond)
	require.NoError(t, err)

	res, err := exec.Run(context.Background(), testPrompts, []string{"slow", "fast"})
	require.NoError(t, err)

	assert.Equal(t, "fast", res.Model)
	assert.Equal(t, generation.KindTimeout, res.Attempts[0].Kind)
}

func TestExecutor_ParentCancellationStopsLoop(t *testing.T) {
	l, _ := logger.NewTestLogger(t)
	ctx, cancel := context.WithCancel(context.Background())
	completer := &mocks.MockCompleter{
		CompleteFn: func(ctx context.Context, req generation.CompletionRequest) (string, error) {
			cancel()
			return "", errors.New("interrupted")
		},
	}
	exec, err := generation.NewExecutor(completer, l, 0)
	require.NoError(t, err)

	res, err := exec.Run(ctx, testPrompts, []string{"A", "B", "C"})
	require.NoError(t, err)

	assert.False(t, res.Succeeded())
	assert.ErrorIs(t, res.LastErr, context.Canceled)
	assert.Equal(t, []string{"A"}, completer.RequestedModels())
}

func TestExecutor_RedactsLoggedErrors(t *testing.T) {
	l, buf := logger.NewTestLogger(t)
	completer := &mocks.MockCompleter{Err: errors.New("Incorrect API key provided: sk-abcdefghijklmnop1234")}
	exec, err := generation.NewExecutor(completer, l, 0)
	require.NoError(t, err)

	_, err = exec.Run(context.Background(), testPrompts, []string{"A"})
	require.NoError(t, err)

	logger.AssertLogNotContains(t, buf, "sk-abcdefghijklmnop1234")
}
