package specrepo_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportsbridge/internal/adapter/outbound/specrepo"
	"sportsbridge/internal/domain"
)

func newTestRepo(t *testing.T) *specrepo.InMemorySpecRepository {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return specrepo.New(logger)
}

func TestSaveAndFindByName(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	repo := newTestRepo(t)

	specs := []domain.ToolSpec{
		{Name: "get_injuries", PathTemplate: "/en/injuries.json"},
		{
			Name:         "get_game_summary",
			PathTemplate: "/en/games/{game_id}/summary.json",
			Params:       []domain.ParamSpec{{Name: "game_id", Type: domain.ParamString, Required: true}},
		},
	}
	require.NoError(repo.Save(ctx, specs))

	spec, err := repo.FindByName(ctx, "get_game_summary")
	require.NoError(err)
	assert.Equal("get_game_summary", spec.Name)

	list, err := repo.List(ctx)
	require.NoError(err)
	assert.Len(list, 2)
}

func TestFindByNameUnknownTool(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.FindByName(context.Background(), "no_such_tool")
	require.ErrorIs(t, err, domain.ErrUnknownTool)
}

func TestSaveRejectsInvalidSpecBatch(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	repo := newTestRepo(t)

	specs := []domain.ToolSpec{
		{Name: "get_injuries", PathTemplate: "/en/injuries.json"},
		{Name: "broken", PathTemplate: "/en/games/{game_id}/summary.json"},
	}
	require.Error(repo.Save(ctx, specs))

	// The valid spec in the batch must not be stored either.
	_, err := repo.FindByName(ctx, "get_injuries")
	assert.ErrorIs(err, domain.ErrUnknownTool)
}
