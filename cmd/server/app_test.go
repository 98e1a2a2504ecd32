package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/mom-agent/internal/config"
	"github.com/phrazzld/mom-agent/internal/mocks"
	"github.com/phrazzld/mom-agent/internal/platform/logger"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server:  config.ServerConfig{Port: 8501, LogLevel: "debug", LogFormat: "json"},
		Storage: config.StorageConfig{DataDir: t.TempDir()},
		LLM: config.LLMConfig{
			Provider:              config.ProviderOpenAI,
			APIKey:                "sk-test",
			Model:                 "gpt-4o-mini",
			FallbackModels:        []string{"gpt-4o"},
			AttemptTimeoutSeconds: 5,
		},
	}
}

func TestNewApplication(t *testing.T) {
	l, _ := logger.NewTestLogger(t)

	_, err := newApplication(context.Background(), nil, l)
	assert.Error(t, err)

	app, err := newApplication(context.Background(), testConfig(t), l)
	require.NoError(t, err)
	assert.NotNil(t, app.meetingService)
	provider, models := app.meetingService.GeneratorInfo()
	assert.Equal(t, "OpenAI", provider)
	assert.Equal(t, []string{"gpt-4o-mini", "gpt-4o"}, models)
}

func TestNewApplication_UnknownProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLM.Provider = "mystery"
	_, err := newApplication(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestRouter(t *testing.T) {
	l, _ := logger.NewTestLogger(t)
	gen := &mocks.MockMinutesGenerator{Connected: true, ProviderName: "Mock"}
	app, err := newApplication(context.Background(), testConfig(t), l, withGenerator(gen))
	require.NoError(t, err)
	router := app.setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/projects",
		strings.NewReader(`{"name":"Acme"}`)))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health/llm", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))
}

func TestStartHTTPServer_StopsOnCancel(t *testing.T) {
	l, _ := logger.NewTestLogger(t)
	cfg := testConfig(t)
	cfg.Server.Port = 0
	app, err := newApplication(context.Background(), cfg, l, withGenerator(&mocks.MockMinutesGenerator{}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, app.startHTTPServer(ctx, app.setupRouter()))
}
