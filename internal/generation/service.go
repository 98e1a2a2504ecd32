package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/mom-agent/internal/minutes"
	"github.com/phrazzld/mom-agent/internal/redact"
)

// Connectivity probe parameters.
const (
	ProbePrompt    = "Hello, please respond with 'OK'"
	ProbeMaxTokens = 10
)

// Options configures a Service.
type Options struct {
	PrimaryModel   string
	FallbackModels []string

	// AttemptTimeout bounds each model call. Zero disables the deadline.
	AttemptTimeout time.Duration

	// Now supplies the date written into documents. Defaults to time.Now.
	Now func() time.Time
}

// Service is the entry point for minutes generation and connectivity checks.
// It holds no per-call state and is safe for concurrent use.
type Service struct {
	completer      Completer
	executor       *Executor
	models         []string
	attemptTimeout time.Duration
	now            func() time.Time
	logger         *slog.Logger
}

// NewService validates opts and creates a Service around completer.
func NewService(completer Completer, opts Options, logger *slog.Logger) (*Service, error) {
	if completer == nil {
		return nil, fmt.Errorf("%w: completer cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", ErrInvalidConfig)
	}
	primary := strings.TrimSpace(opts.PrimaryModel)
	if primary == "" {
		return nil, fmt.Errorf("%w: primary model cannot be empty", ErrInvalidConfig)
	}

	logger = logger.With("component", "generation", "provider", completer.Name())

	executor, err := NewExecutor(completer, logger, opts.AttemptTimeout)
	if err != nil {
		return nil, err
	}

	models := make([]string, 0, 1+len(opts.FallbackModels))
	models = append(models, primary)
	models = append(models, opts.FallbackModels...)

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		completer:      completer,
		executor:       executor,
		models:         models,
		attemptTimeout: opts.AttemptTimeout,
		now:            now,
		logger:         logger,
	}, nil
}

// GenerateMoM produces the minutes for transcript. When every model fails the
// returned document is the diagnostic report and err is nil. ErrEmptyTranscript
// is returned, without any request, for a blank transcript.
func (s *Service) GenerateMoM(ctx context.Context, transcript, projectContext, projectName string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", ErrEmptyTranscript
	}

	now := s.now()
	date := now.Format(minutes.DateLayout)
	prompts := BuildPrompts(transcript, projectContext, projectName, now)

	res, err := s.executor.Run(ctx, prompts, s.models)
	if err != nil {
		return "", err
	}

	if res.Succeeded() {
		s.logger.InfoContext(ctx, "minutes generated",
			"model", res.Model,
			"attempts", len(res.Attempts),
			"transcript_chars", len(transcript))
		return minutes.Sanitize(res.Reply, projectName, date), nil
	}

	s.logger.ErrorContext(ctx, "all models failed",
		"models", strings.Join(s.models, ","),
		"attempts", len(res.Attempts),
		"last_error", redact.Error(res.LastErr))
	return DiagnosticDocument(s.completer.Name(), projectName, date, res.LastErr, s.models), nil
}

// TestConnection sends a minimal request to the primary model and reports
// whether any text came back. It never panics and never returns an error.
func (s *Service) TestConnection(ctx context.Context) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "connectivity probe panicked", "panic", fmt.Sprint(r))
			ok = false
		}
	}()

	if s.attemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.attemptTimeout)
		defer cancel()
	}

	reply, err := s.completer.Complete(ctx, CompletionRequest{
		Model:     s.models[0],
		Messages:  []Message{{Role: RoleUser, Content: ProbePrompt}},
		MaxTokens: ProbeMaxTokens,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "connectivity probe failed",
			"model", s.models[0],
			"kind", string(ClassifyError(err)),
			"error", redact.Error(err))
		return false
	}
	return strings.TrimSpace(reply) != ""
}

// Models returns a copy of the ordered model sequence.
func (s *Service) Models() []string {
	return append([]string(nil), s.models...)
}

// Provider returns the display name of the underlying provider.
func (s *Service) Provider() string {
	return s.completer.Name()
}
