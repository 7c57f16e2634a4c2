package configs_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportsbridge/configs"
	"sportsbridge/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	t.Setenv("SPORTSBRIDGE_CONFIG_FILE", "")

	cfg, err := configs.Load()
	require.NoError(err)

	assert.Equal(":8080", cfg.ListenAddr)
	assert.Equal(":8081", cfg.AdminAddr)
	assert.Equal(40000, cfg.MaxPayloadChars)
	assert.Equal(slog.LevelInfo, cfg.ParsedLogLevel())
}

func TestLoadFileThenEnvOverride(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(os.WriteFile(path, []byte(
		"max_payload_chars: 123\nbase_urls:\n  mlb: https://stub.example/mlb\n"), 0644))
	t.Setenv("SPORTSBRIDGE_CONFIG_FILE", path)

	cfg, err := configs.Load()
	require.NoError(err)
	assert.Equal(123, cfg.MaxPayloadChars)
	assert.Equal("https://stub.example/mlb", cfg.BaseURLs["mlb"])

	// Environment wins over the file.
	t.Setenv("SPORTSBRIDGE_MAX_PAYLOAD_CHARS", "456")
	cfg, err = configs.Load()
	require.NoError(err)
	assert.Equal(456, cfg.MaxPayloadChars)
}

func TestParsedLogLevel(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := &configs.Config{LogLevel: tt.in}
		assert.Equal(tt.want, cfg.ParsedLogLevel(), tt.in)
	}
}

func TestResolveProviderRequiresKey(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	t.Setenv("SPORTRADAR_API_KEY", "")

	cfg := &configs.Config{}
	_, err := cfg.ResolveProvider("mlb")
	require.Error(err)

	var confErr *domain.ConfigurationError
	require.ErrorAs(err, &confErr)
	assert.Equal("SPORTRADAR_API_KEY", confErr.Variable)
}

func TestResolveProviderMLB(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	t.Setenv("SPORTRADAR_API_KEY", "sr-key")

	cfg := &configs.Config{}
	provider, err := cfg.ResolveProvider("mlb")
	require.NoError(err)

	assert.Equal("mlb", provider.ID)
	assert.Equal("https://api.sportradar.com/mlb/production/v8", provider.BaseURL)
	assert.Equal("sr-key", provider.APIKey)
	assert.Equal(domain.AuthStyleQuery, provider.AuthStyle)
}

func TestResolveProviderF1NeedsNoKey(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	t.Setenv("SPORTRADAR_API_KEY", "")

	cfg := &configs.Config{}
	provider, err := cfg.ResolveProvider("f1")
	require.NoError(err)

	assert.Equal(domain.AuthStyleNone, provider.AuthStyle)
	assert.Equal("json", provider.DefaultQuery["format"])
}

func TestResolveProviderBaseURLOverride(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	t.Setenv("SPORTRADAR_API_KEY", "sr-key")

	cfg := &configs.Config{BaseURLs: map[string]string{"nba": "https://stub.example/nba/"}}
	provider, err := cfg.ResolveProvider("nba")
	require.NoError(err)
	assert.Equal("https://stub.example/nba", provider.BaseURL, "trailing slash is trimmed")
}

func TestResolveProviderUnknownID(t *testing.T) {
	cfg := &configs.Config{}
	_, err := cfg.ResolveProvider("nhl")
	require.Error(t, err)
}
