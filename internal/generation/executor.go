package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/mom-agent/internal/redact"
)

// Fixed request parameters for minutes generation.
const (
	MaxTokens           = 2000
	Temperature float32 = 0.3
)

// Attempt records one model call made by the executor.
type Attempt struct {
	Model    string
	Err      error
	Kind     ErrorKind
	Duration time.Duration
}

// Result is the terminal state of one executor run.
type Result struct {
	// Reply and Model are set on success.
	Reply string
	Model string

	// Attempts lists every call in order, including the successful one.
	Attempts []Attempt

	// LastErr is set when no model produced a reply.
	LastErr error
}

// Succeeded reports whether some model produced a reply.
func (r *Result) Succeeded() bool {
	return r != nil && r.LastErr == nil && r.Model != ""
}

// Executor walks an ordered model sequence, issuing one request per model
// until one returns a non-empty reply.
type Executor struct {
	completer      Completer
	logger         *slog.Logger
	attemptTimeout time.Duration
}

// NewExecutor creates an Executor. A zero attemptTimeout leaves deadlines to
// the caller's context and the transport.
func NewExecutor(completer Completer, logger *slog.Logger, attemptTimeout time.Duration) (*Executor, error) {
	if completer == nil {
		return nil, fmt.Errorf("%w: completer cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", ErrInvalidConfig)
	}
	if attemptTimeout < 0 {
		return nil, fmt.Errorf("%w: attempt timeout cannot be negative", ErrInvalidConfig)
	}
	return &Executor{
		completer:      completer,
		logger:         logger,
		attemptTimeout: attemptTimeout,
	}, nil
}

// Run executes the fallback loop over models. Provider failures never surface
// as an error here; they end up in the returned Result. The only error is
// ErrNoModels for an empty sequence.
func (e *Executor) Run(ctx context.Context, prompts Prompts, models []string) (*Result, error) {
	if len(models) == 0 {
		return nil, ErrNoModels
	}

	res := &Result{Attempts: make([]Attempt, 0, len(models))}
	for i, model := range models {
		if err := ctx.Err(); err != nil {
			e.logger.WarnContext(ctx, "generation stopped before trying remaining models",
				"next_model", model,
				"remaining", len(models)-i,
				"error", err.Error())
			res.LastErr = err
			return res, nil
		}

		start := time.Now()
		reply, err := e.attempt(ctx, model, prompts)
		a := Attempt{Model: model, Err: err, Kind: ClassifyError(err), Duration: time.Since(start)}
		res.Attempts = append(res.Attempts, a)

		if err == nil {
			res.Reply = reply
			res.Model = model
			res.LastErr = nil
			e.logger.DebugContext(ctx, "model attempt succeeded",
				"model", model,
				"attempt", i+1,
				"duration_ms", a.Duration.Milliseconds())
			return res, nil
		}

		res.LastErr = err
		e.logger.WarnContext(ctx, "model attempt failed",
			"model", model,
			"attempt", i+1,
			"of", len(models),
			"kind", string(a.Kind),
			"duration_ms", a.Duration.Milliseconds(),
			"error", redact.Error(err))
	}
	return res, nil
}

func (e *Executor) attempt(ctx context.Context, model string, prompts Prompts) (string, error) {
	if e.attemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.attemptTimeout)
		defer cancel()
	}

	temp := Temperature
	reply, err := e.completer.Complete(ctx, CompletionRequest{
		Model: model,
		Messages: []Message{
			{Role: RoleSystem, Content: prompts.System},
			{Role: RoleUser, Content: prompts.User},
		},
		MaxTokens:   MaxTokens,
		Temperature: &temp,
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(reply) == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}
