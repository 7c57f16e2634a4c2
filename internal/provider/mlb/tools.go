// Package mlb declares the tool table for the SportRadar MLB v8 API.
package mlb

import (
	"sportsbridge/internal/domain"
	"sportsbridge/internal/provider/filters"
)

// ProviderID selects the MLB entry of the provider configuration.
const ProviderID = "mlb"

func dateParam(description string) domain.ParamSpec {
	return domain.ParamSpec{
		Name:        "date",
		Type:        domain.ParamDate,
		Description: description,
		Default:     "today",
	}
}

func yearParam() domain.ParamSpec {
	return domain.ParamSpec{
		Name:        "year",
		Type:        domain.ParamInteger,
		Description: "Season year, e.g. 2024. Defaults to the current season.",
		Default:     "current",
	}
}

func gameIDParam() domain.ParamSpec {
	return domain.ParamSpec{
		Name:        "game_id",
		Type:        domain.ParamString,
		Description: "SportRadar game ID (UUID).",
		Required:    true,
	}
}

func playerIDParam() domain.ParamSpec {
	return domain.ParamSpec{
		Name:        "player_id",
		Type:        domain.ParamString,
		Description: "SportRadar player ID (UUID).",
		Required:    true,
	}
}

func teamIDParam() domain.ParamSpec {
	return domain.ParamSpec{
		Name:        "team_id",
		Type:        domain.ParamString,
		Description: "SportRadar team ID (UUID).",
		Required:    true,
	}
}

// filterStandings keeps only the league (AL or NL) the caller asked for.
func filterStandings(body []byte, args map[string]any) ([]byte, error) {
	league := filters.StringArg(args, "league")
	if league == "" {
		return nil, nil
	}
	return filters.KeepArrayElements(body, "standings.leagues", "alias", league)
}

// filterLeaders keeps only the leaderboard entries whose name contains the
// requested category.
func filterLeaders(body []byte, args map[string]any) ([]byte, error) {
	category := filters.StringArg(args, "category")
	if category == "" {
		return nil, nil
	}
	return filters.KeepObjectKeys(body, "leaders", category)
}

// Specs returns the MLB tool table. The slice is rebuilt on each call; specs
// themselves are immutable after registration.
func Specs() []domain.ToolSpec {
	return []domain.ToolSpec{
		{
			Name:         "get_daily_schedule",
			Description:  "Get the MLB game schedule for a specific date (defaults to today).",
			PathTemplate: "/en/games/{year}/{month}/{day}/schedule.json",
			Params: []domain.ParamSpec{
				dateParam("Schedule date in YYYY-MM-DD format. Defaults to today."),
			},
		},
		{
			Name:         "get_game_summary",
			Description:  "Get the summary for a specific MLB game, including scores and key stats.",
			PathTemplate: "/en/games/{game_id}/summary.json",
			Params:       []domain.ParamSpec{gameIDParam()},
		},
		{
			Name:         "get_game_boxscore",
			Description:  "Get the detailed boxscore for a specific MLB game.",
			PathTemplate: "/en/games/{game_id}/boxscore.json",
			Params:       []domain.ParamSpec{gameIDParam()},
		},
		{
			Name:         "get_game_play_by_play",
			Description:  "Get detailed play-by-play data for a specific MLB game.",
			PathTemplate: "/en/games/{game_id}/pbp.json",
			Params:       []domain.ParamSpec{gameIDParam()},
		},
		{
			Name:         "get_game_pitch_metrics",
			Description:  "Get pitch-level metrics and Statcast data for a specific MLB game.",
			PathTemplate: "/en/games/{game_id}/pitch_metrics.json",
			Params:       []domain.ParamSpec{gameIDParam()},
		},
		{
			Name:         "get_standings",
			Description:  "Get MLB standings for a season, optionally filtered by league (AL or NL).",
			PathTemplate: "/en/seasons/{year}/standings.json",
			Params: []domain.ParamSpec{
				yearParam(),
				{
					Name:        "league",
					Type:        domain.ParamString,
					Description: "League filter: AL or NL. Omit for both leagues.",
					Local:       true,
				},
			},
			Transform: filterStandings,
		},
		{
			Name:         "get_league_leaders",
			Description:  "Get MLB statistical leaders for a season, filtered by category (hitting or pitching).",
			PathTemplate: "/en/seasons/{year}/leaders.json",
			Params: []domain.ParamSpec{
				yearParam(),
				{
					Name:        "category",
					Type:        domain.ParamString,
					Description: "Leader category: hitting or pitching.",
					Default:     "hitting",
					Local:       true,
				},
			},
			Transform: filterLeaders,
		},
		{
			Name:         "get_statcast_leaders",
			Description:  "Get MLB Statcast leaderboards for a season, filtered by metric category.",
			PathTemplate: "/en/seasons/{year}/statcast_leaders.json",
			Params: []domain.ParamSpec{
				yearParam(),
				{
					Name:        "category",
					Type:        domain.ParamString,
					Description: "Statcast category, e.g. exit_velocity or barrels.",
					Default:     "exit_velocity",
					Local:       true,
				},
			},
			Transform: filterLeaders,
		},
		{
			Name:         "get_player_profile",
			Description:  "Get the full profile and career statistics for an MLB player.",
			PathTemplate: "/en/players/{player_id}/profile.json",
			Params:       []domain.ParamSpec{playerIDParam()},
		},
		{
			Name:         "get_player_seasonal_stats",
			Description:  "Get seasonal statistics for an MLB player.",
			PathTemplate: "/en/players/{player_id}/seasons/{year}/statistics.json",
			Params:       []domain.ParamSpec{playerIDParam(), yearParam()},
		},
		{
			Name:         "get_seasonal_splits",
			Description:  "Get seasonal splits (home/away, vs left/right, etc.) for an MLB player.",
			PathTemplate: "/en/players/{player_id}/seasons/{year}/splits.json",
			Params:       []domain.ParamSpec{playerIDParam(), yearParam()},
		},
		{
			Name:         "get_seasonal_pitch_metrics",
			Description:  "Get seasonal pitch metrics for an MLB pitcher.",
			PathTemplate: "/en/players/{player_id}/seasons/{year}/pitch_metrics.json",
			Params:       []domain.ParamSpec{playerIDParam(), yearParam()},
		},
		{
			Name:         "get_team_profile",
			Description:  "Get the profile for an MLB team, including venue and franchise details.",
			PathTemplate: "/en/teams/{team_id}/profile.json",
			Params:       []domain.ParamSpec{teamIDParam()},
		},
		{
			Name:         "get_team_roster",
			Description:  "Get the full roster for an MLB team.",
			PathTemplate: "/en/teams/{team_id}/roster.json",
			Params:       []domain.ParamSpec{teamIDParam()},
		},
		{
			Name:         "get_seasonal_statistics",
			Description:  "Get seasonal team statistics for an MLB team.",
			PathTemplate: "/en/seasons/{year}/{season_type}/teams/{team_id}/statistics.json",
			Params: []domain.ParamSpec{
				teamIDParam(),
				yearParam(),
				{
					Name:        "season_type",
					Type:        domain.ParamString,
					Description: "Season type: REG (regular season) or PST (postseason).",
					Default:     "REG",
				},
			},
		},
		{
			Name:         "get_injuries",
			Description:  "Get the current MLB injury report.",
			PathTemplate: "/en/injuries.json",
		},
		{
			Name:         "get_team_hierarchy",
			Description:  "Get the complete MLB team hierarchy with leagues and divisions.",
			PathTemplate: "/en/league/hierarchy.json",
		},
		{
			Name:         "get_transactions",
			Description:  "Get recent MLB transactions (defaults to today's transactions).",
			PathTemplate: "/en/league/{year}/{month}/{day}/transactions.json",
			Params: []domain.ParamSpec{
				dateParam("Transaction date in YYYY-MM-DD format. Defaults to today."),
			},
		},
		{
			Name:         "get_daily_transactions",
			Description:  "Get all MLB transactions for a specific date.",
			PathTemplate: "/en/league/{year}/{month}/{day}/transactions.json",
			Params: []domain.ParamSpec{
				{
					Name:        "date",
					Type:        domain.ParamDate,
					Description: "Transaction date in YYYY-MM-DD format.",
					Required:    true,
				},
			},
		},
		{
			Name:         "get_draft_summary",
			Description:  "Get the MLB draft summary for a specific year.",
			PathTemplate: "/en/league/drafts/{year}/summary.json",
			Params:       []domain.ParamSpec{yearParam()},
		},
	}
}
