// Package f1 declares the tool table for Formula One data served from the
// Jolpica-Ergast API.
package f1

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"sportsbridge/internal/domain"
	"sportsbridge/internal/normalizer"
)

// ProviderID selects the F1 entry of the provider configuration.
const ProviderID = "f1"

func yearParam() domain.ParamSpec {
	return domain.ParamSpec{
		Name:        "year",
		Type:        domain.ParamInteger,
		Description: "Championship season year, e.g. 2024.",
		Required:    true,
	}
}

func roundParam(required bool) domain.ParamSpec {
	description := "Round number within the season, starting at 1."
	if !required {
		description += " Omit for season totals."
	}
	return domain.ParamSpec{
		Name:        "round",
		Type:        domain.ParamInteger,
		Description: description,
		Required:    required,
	}
}

// raceHeader lifts the identifying fields of a race out of an Ergast
// RaceTable entry.
func raceHeader(race gjson.Result) map[string]any {
	return map[string]any{
		"season":    race.Get("season").String(),
		"round":     race.Get("round").String(),
		"race_name": race.Get("raceName").String(),
		"circuit":   race.Get("Circuit.circuitName").String(),
		"date":      race.Get("date").String(),
	}
}

// lapsTable flattens the nested lap/timing structure into a columnar table,
// one row per driver per lap. Bodies without race data pass through
// unchanged.
func lapsTable(body []byte, _ map[string]any) ([]byte, error) {
	races := gjson.GetBytes(body, "MRData.RaceTable.Races")
	if !races.IsArray() || len(races.Array()) == 0 {
		return nil, nil
	}
	race := races.Array()[0]

	var rows []map[string]any
	race.Get("Laps").ForEach(func(_, lap gjson.Result) bool {
		number := lap.Get("number").String()
		lap.Get("Timings").ForEach(func(_, timing gjson.Result) bool {
			rows = append(rows, map[string]any{
				"lap":       number,
				"driver_id": timing.Get("driverId").String(),
				"position":  timing.Get("position").String(),
				"time":      timing.Get("time").String(),
			})
			return true
		})
		return true
	})
	if len(rows) == 0 {
		return nil, nil
	}

	return json.Marshal(map[string]any{
		"race": raceHeader(race),
		"laps": normalizer.Columns(rows),
	})
}

// pitStopsTable converts the pit stop list into a columnar table.
func pitStopsTable(body []byte, _ map[string]any) ([]byte, error) {
	races := gjson.GetBytes(body, "MRData.RaceTable.Races")
	if !races.IsArray() || len(races.Array()) == 0 {
		return nil, nil
	}
	race := races.Array()[0]

	var rows []map[string]any
	race.Get("PitStops").ForEach(func(_, stop gjson.Result) bool {
		rows = append(rows, map[string]any{
			"driver_id": stop.Get("driverId").String(),
			"stop":      stop.Get("stop").String(),
			"lap":       stop.Get("lap").String(),
			"time":      stop.Get("time").String(),
			"duration":  stop.Get("duration").String(),
		})
		return true
	})
	if len(rows) == 0 {
		return nil, nil
	}

	return json.Marshal(map[string]any{
		"race":      raceHeader(race),
		"pit_stops": normalizer.Columns(rows),
	})
}

// Specs returns the F1 tool table.
func Specs() []domain.ToolSpec {
	return []domain.ToolSpec{
		{
			Name:         "get_event_schedule",
			Description:  "Get the Formula One race calendar for a season.",
			PathTemplate: "/{year}/races",
			Params:       []domain.ParamSpec{yearParam()},
		},
		{
			Name:         "get_event_info",
			Description:  "Get circuit and schedule details for a specific Grand Prix.",
			PathTemplate: "/{year}/{round}/races",
			Params:       []domain.ParamSpec{yearParam(), roundParam(true)},
		},
		{
			Name:         "get_race_results",
			Description:  "Get the classified race results for a specific Grand Prix.",
			PathTemplate: "/{year}/{round}/results",
			Params:       []domain.ParamSpec{yearParam(), roundParam(true)},
		},
		{
			Name:         "get_qualifying_results",
			Description:  "Get the qualifying results for a specific Grand Prix.",
			PathTemplate: "/{year}/{round}/qualifying",
			Params:       []domain.ParamSpec{yearParam(), roundParam(true)},
		},
		{
			Name:         "get_driver_info",
			Description:  "Get driver details for a season, or one driver when driver_id is given.",
			PathTemplate: "/{year}/drivers/{driver_id}",
			Params: []domain.ParamSpec{
				yearParam(),
				{
					Name:        "driver_id",
					Type:        domain.ParamString,
					Description: "Ergast driver ID, e.g. hamilton or max_verstappen. Omit for all drivers.",
				},
			},
		},
		{
			Name:         "get_lap_times",
			Description:  "Get lap times for a Grand Prix as a columnar table, optionally for one lap.",
			PathTemplate: "/{year}/{round}/laps/{lap}",
			Params: []domain.ParamSpec{
				yearParam(),
				roundParam(true),
				{
					Name:        "lap",
					Type:        domain.ParamInteger,
					Description: "Lap number. Omit for every lap of the race.",
				},
			},
			Transform: lapsTable,
		},
		{
			Name:         "get_pit_stops",
			Description:  "Get pit stop data for a Grand Prix as a columnar table.",
			PathTemplate: "/{year}/{round}/pitstops",
			Params:       []domain.ParamSpec{yearParam(), roundParam(true)},
			Transform:    pitStopsTable,
		},
		{
			Name:         "get_driver_standings",
			Description:  "Get the drivers' championship standings, optionally as of a specific round.",
			PathTemplate: "/{year}/{round}/driverstandings",
			Params:       []domain.ParamSpec{yearParam(), roundParam(false)},
		},
		{
			Name:         "get_constructor_standings",
			Description:  "Get the constructors' championship standings, optionally as of a specific round.",
			PathTemplate: "/{year}/{round}/constructorstandings",
			Params:       []domain.ParamSpec{yearParam(), roundParam(false)},
		},
	}
}
