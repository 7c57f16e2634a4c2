package usecase_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportsbridge/internal/adapter/outbound/httpexec"
	"sportsbridge/internal/adapter/outbound/reqbuilder"
	"sportsbridge/internal/adapter/outbound/specrepo"
	"sportsbridge/internal/domain"
	"sportsbridge/internal/normalizer"
	"sportsbridge/internal/usecase"
)

// TestPipelineEndToEnd exercises the full dispatch pipeline against an
// httptest upstream: real builder, executor and normalizer, the same wiring
// the provider executables use.
func TestPipelineEndToEnd(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("api_key")
		w.Write([]byte(`{"games":[]}`))
	}))
	defer server.Close()

	provider := domain.ProviderConfig{
		ID:        "mlb",
		BaseURL:   server.URL,
		APIKey:    "test-key",
		AuthStyle: domain.AuthStyleQuery,
	}

	repo := specrepo.New(logger)
	require.NoError(repo.Save(context.Background(), []domain.ToolSpec{{
		Name:         "get_daily_schedule",
		PathTemplate: "/en/games/{year}/{month}/{day}/schedule.json",
		Params: []domain.ParamSpec{
			{Name: "date", Type: domain.ParamDate, Default: "today"},
		},
	}}))

	dispatcher := usecase.NewDispatcher(
		repo,
		reqbuilder.New(),
		httpexec.New(server.Client(), logger),
		normalizer.New(0, logger),
		provider,
		logger,
	)

	result := dispatcher.Dispatch(context.Background(), "get_daily_schedule",
		map[string]any{"date": "2024-07-04"})

	assert.Equal(domain.StatusOK, result.Status)
	assert.Equal("/en/games/2024/07/04/schedule.json", gotPath)
	assert.Equal("test-key", gotKey)
	payload, ok := result.Payload.(map[string]any)
	require.True(ok)
	assert.Equal([]any{}, payload["games"])
}
