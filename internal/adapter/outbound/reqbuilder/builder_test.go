package reqbuilder_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportsbridge/internal/adapter/outbound/reqbuilder"
	"sportsbridge/internal/domain"
)

func queryProvider() domain.ProviderConfig {
	return domain.ProviderConfig{
		ID:        "mlb",
		BaseURL:   "https://api.example.com/mlb/v8",
		APIKey:    "secret-key",
		AuthStyle: domain.AuthStyleQuery,
	}
}

func TestBuildSubstitutesAndEncodes(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	builder := reqbuilder.New()

	req, err := builder.Build(
		"/en/players/{player_id}/profile.json",
		map[string]string{"player_id": "abc 123/x"},
		queryProvider(),
	)
	require.NoError(err)

	parsed, err := url.Parse(req.URL)
	require.NoError(err)
	assert.True(strings.HasPrefix(req.URL, "https://api.example.com/mlb/v8/en/players/"))
	assert.Contains(req.URL, "abc%20123%2Fx", "path values must be percent-encoded")
	assert.Equal("secret-key", parsed.Query().Get("api_key"))
}

func TestBuildAPIKeyExactlyOnce(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	builder := reqbuilder.New()

	// A caller-supplied api_key must not produce a second key on the wire.
	req, err := builder.Build(
		"/en/injuries.json",
		map[string]string{"api_key": "attacker-key"},
		queryProvider(),
	)
	require.NoError(err)

	parsed, err := url.Parse(req.URL)
	require.NoError(err)
	values := parsed.Query()["api_key"]
	require.Len(values, 1)
	assert.Equal("secret-key", values[0])
}

func TestBuildMissingPlaceholdersCollected(t *testing.T) {
	require := require.New(t)
	builder := reqbuilder.New()

	_, err := builder.Build(
		"/en/games/{year}/{month}/{day}/schedule.json",
		map[string]string{"year": "2024"},
		queryProvider(),
	)
	require.Error(err)

	var missing *domain.MissingParameterError
	require.ErrorAs(err, &missing)
	assert.ElementsMatch(t, []string{"month", "day"}, missing.Names)
}

func TestBuildLeftoverParamsGoToQuery(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	builder := reqbuilder.New()

	req, err := builder.Build(
		"/en/seasons/{year}/leaders.json",
		map[string]string{"year": "2024", "limit": "10"},
		queryProvider(),
	)
	require.NoError(err)

	parsed, err := url.Parse(req.URL)
	require.NoError(err)
	assert.Equal("10", parsed.Query().Get("limit"))
	assert.NotContains(parsed.Path, "limit")
}

func TestBuildDefaultQueryAppendedUnlessOverridden(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	builder := reqbuilder.New()
	cfg := domain.ProviderConfig{
		ID:           "f1",
		BaseURL:      "https://api.example.com/ergast/f1",
		AuthStyle:    domain.AuthStyleNone,
		DefaultQuery: map[string]string{"format": "json"},
	}

	req, err := builder.Build("/{year}/races", map[string]string{"year": "2024"}, cfg)
	require.NoError(err)
	parsed, err := url.Parse(req.URL)
	require.NoError(err)
	assert.Equal("json", parsed.Query().Get("format"))

	req, err = builder.Build("/{year}/races", map[string]string{"year": "2024", "format": "xml"}, cfg)
	require.NoError(err)
	parsed, err = url.Parse(req.URL)
	require.NoError(err)
	assert.Equal("xml", parsed.Query().Get("format"))
}

func TestBuildHeaderAuth(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	builder := reqbuilder.New()
	cfg := domain.ProviderConfig{
		ID:        "other",
		BaseURL:   "https://api.example.com",
		APIKey:    "header-key",
		AuthStyle: domain.AuthStyleHeader,
	}

	req, err := builder.Build("/status", map[string]string{}, cfg)
	require.NoError(err)
	assert.Equal("header-key", req.Header.Get("X-API-Key"))
	assert.NotContains(req.URL, "header-key")
}

func TestBuildEmptyValueDropsSegment(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	builder := reqbuilder.New()
	cfg := domain.ProviderConfig{
		ID:        "f1",
		BaseURL:   "https://api.example.com/ergast/f1",
		AuthStyle: domain.AuthStyleNone,
	}

	// Mid-path optional segment.
	req, err := builder.Build(
		"/{year}/{round}/driverstandings",
		map[string]string{"year": "2024", "round": ""},
		cfg,
	)
	require.NoError(err)
	assert.Equal("https://api.example.com/ergast/f1/2024/driverstandings", req.URL)

	// Trailing optional segment.
	req, err = builder.Build(
		"/{year}/drivers/{driver_id}",
		map[string]string{"year": "2024", "driver_id": ""},
		cfg,
	)
	require.NoError(err)
	assert.Equal("https://api.example.com/ergast/f1/2024/drivers", req.URL)
}
