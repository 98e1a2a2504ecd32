package generation_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/phrazzld/mom-agent/internal/generation"
	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyError(t *testing.T) {
	provider := func(status int) error {
		return generation.NewProviderError("OpenAI", "gpt-4o", status, errors.New("api failure"))
	}

	tests := []struct {
		name string
		err  error
		want generation.ErrorKind
	}{
		{"nil", nil, ""},
		{"empty reply", fmt.Errorf("wrapped: %w", generation.ErrEmptyReply), generation.KindEmptyReply},
		{"blocked", generation.ErrContentBlocked, generation.KindBadRequest},
		{"deadline", context.DeadlineExceeded, generation.KindTimeout},
		{"canceled", fmt.Errorf("call: %w", context.Canceled), generation.KindCanceled},
		{"401", provider(401), generation.KindAuth},
		{"403", provider(403), generation.KindAuth},
		{"429", provider(429), generation.KindRateLimit},
		{"400", provider(400), generation.KindBadRequest},
		{"404", provider(404), generation.KindBadRequest},
		{"500", provider(500), generation.KindServer},
		{"503", provider(503), generation.KindServer},
		{"504", provider(504), generation.KindTimeout},
		{"net timeout", timeoutErr{}, generation.KindTimeout},
		{"net op", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, generation.KindTransport},
		{"message rate limit", errors.New("Rate limit reached for requests"), generation.KindRateLimit},
		{"message auth", errors.New("Incorrect API key provided"), generation.KindAuth},
		{"message server", errors.New("The server is overloaded"), generation.KindServer},
		{"message transport", errors.New("dial tcp: lookup api.example: no such host"), generation.KindTransport},
		{"unknown", errors.New("something odd"), generation.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, generation.ClassifyError(tt.err))
		})
	}
}

func TestProviderError(t *testing.T) {
	inner := errors.New("bad key")
	err := generation.NewProviderError("Anthropic", "claude", 401, inner)

	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "Anthropic model claude: status 401: bad key", err.Error())

	var perr *generation.ProviderError
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, 401, perr.StatusCode)

	assert.Nil(t, generation.NewProviderError("x", "y", 0, nil))
	assert.Equal(t, "Gemini model g: bad key", generation.NewProviderError("Gemini", "g", 0, inner).Error())
}
