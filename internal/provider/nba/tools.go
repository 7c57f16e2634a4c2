// Package nba declares the tool table for the SportRadar NBA v8 API.
package nba

import (
	"encoding/json"
	"strings"

	"sportsbridge/internal/domain"
	"sportsbridge/internal/provider/filters"
)

// ProviderID selects the NBA entry of the provider configuration.
const ProviderID = "nba"

func yearParam() domain.ParamSpec {
	return domain.ParamSpec{
		Name:        "year",
		Type:        domain.ParamInteger,
		Description: "Season year, e.g. 2024 for the 2024-25 season. Defaults to the current season.",
		Default:     "current",
	}
}

func seasonTypeParam() domain.ParamSpec {
	return domain.ParamSpec{
		Name:        "season_type",
		Type:        domain.ParamString,
		Description: "Season type: REG (regular season), PST (postseason) or PRE (preseason).",
		Default:     "REG",
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

// filterStandings keeps only the conference (East or West) the caller asked
// for. Conference names in the payload are full names, so matching is by
// containment: "East" and "Eastern" both select the Eastern Conference.
func filterStandings(body []byte, args map[string]any) ([]byte, error) {
	conference := filters.StringArg(args, "conference")
	if conference == "" {
		return nil, nil
	}
	return filters.KeepArrayElementsContaining(body, "standings.conferences", "name", conference)
}

// filterLeaders keeps only the leaderboard categories whose name contains the
// requested category.
func filterLeaders(body []byte, args map[string]any) ([]byte, error) {
	category := filters.StringArg(args, "category")
	if category == "" {
		return nil, nil
	}
	return filters.KeepObjectKeys(body, "categories", category)
}

type rosterPlayer struct {
	ID              string `json:"id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	FullName        string `json:"full_name"`
	JerseyNumber    string `json:"jersey_number"`
	Position        string `json:"position"`
	PrimaryPosition string `json:"primary_position"`
	Status          string `json:"status"`
}

// rosterFromProfile extracts the roster from a team profile payload and groups
// players by position. The upstream API has no standalone roster endpoint; the
// profile is the canonical source.
func rosterFromProfile(body []byte, _ map[string]any) ([]byte, error) {
	var profile struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Market  string `json:"market"`
		Alias   string `json:"alias"`
		Players []struct {
			ID              string `json:"id"`
			FirstName       string `json:"first_name"`
			LastName        string `json:"last_name"`
			JerseyNumber    string `json:"jersey_number"`
			Position        string `json:"position"`
			PrimaryPosition string `json:"primary_position"`
			Status          string `json:"status"`
		} `json:"players"`
	}
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, err
	}

	groups := map[string][]rosterPlayer{
		"guards":   {},
		"forwards": {},
		"centers":  {},
		"two_way":  {},
		"others":   {},
	}
	for _, p := range profile.Players {
		entry := rosterPlayer{
			ID:              p.ID,
			FirstName:       p.FirstName,
			LastName:        p.LastName,
			FullName:        strings.TrimSpace(p.FirstName + " " + p.LastName),
			JerseyNumber:    p.JerseyNumber,
			Position:        p.Position,
			PrimaryPosition: p.PrimaryPosition,
			Status:          p.Status,
		}
		switch strings.ToUpper(p.PrimaryPosition) {
		case "G", "PG", "SG", "G-F":
			groups["guards"] = append(groups["guards"], entry)
		case "F", "SF", "PF", "F-G", "F-C":
			groups["forwards"] = append(groups["forwards"], entry)
		case "C", "C-F":
			groups["centers"] = append(groups["centers"], entry)
		default:
			if p.Status == "TEN-DAY" || p.Status == "TWO-WAY" {
				groups["two_way"] = append(groups["two_way"], entry)
			} else {
				groups["others"] = append(groups["others"], entry)
			}
		}
	}

	return json.Marshal(map[string]any{
		"team": map[string]string{
			"id":     profile.ID,
			"name":   profile.Name,
			"market": profile.Market,
			"alias":  profile.Alias,
		},
		"players": groups,
	})
}

// Specs returns the NBA tool table.
func Specs() []domain.ToolSpec {
	return []domain.ToolSpec{
		{
			Name:         "get_daily_schedule",
			Description:  "Get the NBA game schedule for a specific date (defaults to today).",
			PathTemplate: "/en/games/{year}/{month}/{day}/schedule.json",
			Params: []domain.ParamSpec{
				{
					Name:        "date",
					Type:        domain.ParamDate,
					Description: "Schedule date in YYYY-MM-DD format. Defaults to today.",
					Default:     "today",
				},
			},
		},
		{
			Name:         "get_game_summary",
			Description:  "Get the summary for a specific NBA game, including scores and team stats.",
			PathTemplate: "/en/games/{game_id}/summary.json",
			Params:       []domain.ParamSpec{gameIDParam()},
		},
		{
			Name:         "get_game_boxscore",
			Description:  "Get the detailed boxscore for a specific NBA game.",
			PathTemplate: "/en/games/{game_id}/boxscore.json",
			Params:       []domain.ParamSpec{gameIDParam()},
		},
		{
			Name:         "get_game_play_by_play",
			Description:  "Get detailed play-by-play data for a specific NBA game.",
			PathTemplate: "/en/games/{game_id}/pbp.json",
			Params:       []domain.ParamSpec{gameIDParam()},
		},
		{
			Name:         "get_standings",
			Description:  "Get NBA standings for a season, optionally filtered by conference (East or West).",
			PathTemplate: "/en/seasons/{year}/standings.json",
			Params: []domain.ParamSpec{
				yearParam(),
				{
					Name:        "conference",
					Type:        domain.ParamString,
					Description: "Conference filter: East or West. Omit for both conferences.",
					Local:       true,
				},
			},
			Transform: filterStandings,
		},
		{
			Name:         "get_league_leaders",
			Description:  "Get NBA statistical leaders for a season, filtered by category (points, rebounds, assists, ...).",
			PathTemplate: "/en/seasons/{year}/leaders.json",
			Params: []domain.ParamSpec{
				yearParam(),
				{
					Name:        "category",
					Type:        domain.ParamString,
					Description: "Leader category, e.g. points, rebounds, assists, steals or blocks.",
					Default:     "points",
					Local:       true,
				},
			},
			Transform: filterLeaders,
		},
		{
			Name:         "get_player_profile",
			Description:  "Get the full profile and career statistics for an NBA player.",
			PathTemplate: "/en/players/{player_id}/profile.json",
			Params:       []domain.ParamSpec{playerIDParam()},
		},
		{
			Name:         "get_player_seasonal_stats",
			Description:  "Get seasonal statistics for an NBA player.",
			PathTemplate: "/en/seasons/{year}/{season_type}/players/{player_id}/statistics.json",
			Params:       []domain.ParamSpec{playerIDParam(), yearParam(), seasonTypeParam()},
		},
		{
			Name:         "get_team_profile",
			Description:  "Get the profile for an NBA team, including venue and franchise details.",
			PathTemplate: "/en/teams/{team_id}/profile.json",
			Params:       []domain.ParamSpec{teamIDParam()},
		},
		{
			Name:         "get_team_roster",
			Description:  "Get the roster for an NBA team, grouped by position.",
			PathTemplate: "/en/teams/{team_id}/profile.json",
			Params:       []domain.ParamSpec{teamIDParam()},
			Transform:    rosterFromProfile,
		},
		{
			Name:         "get_seasonal_statistics",
			Description:  "Get seasonal team statistics for an NBA team.",
			PathTemplate: "/en/seasons/{year}/{season_type}/teams/{team_id}/statistics.json",
			Params:       []domain.ParamSpec{teamIDParam(), yearParam(), seasonTypeParam()},
		},
		{
			Name:         "get_rankings",
			Description:  "Get NBA team rankings for a season.",
			PathTemplate: "/en/seasons/{year}/REG/rankings.json",
			Params:       []domain.ParamSpec{yearParam()},
		},
		{
			Name:         "get_injuries",
			Description:  "Get the current NBA injury report.",
			PathTemplate: "/en/league/injuries.json",
		},
		{
			Name:         "get_team_hierarchy",
			Description:  "Get the complete NBA team hierarchy with conferences and divisions.",
			PathTemplate: "/en/league/hierarchy.json",
		},
		{
			Name:         "get_team_depth_chart",
			Description:  "Get the positional depth chart for an NBA team.",
			PathTemplate: "/en/teams/{team_id}/depth_chart.json",
			Params:       []domain.ParamSpec{teamIDParam()},
		},
	}
}
