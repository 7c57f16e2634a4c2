package f1_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportsbridge/internal/domain"
	"sportsbridge/internal/provider/f1"
)

func specByName(t *testing.T, name string) domain.ToolSpec {
	t.Helper()
	for _, spec := range f1.Specs() {
		if spec.Name == name {
			return spec
		}
	}
	t.Fatalf("no spec named %s", name)
	return domain.ToolSpec{}
}

func TestSpecsAreValidAndUnique(t *testing.T) {
	assert := assert.New(t)

	specs := f1.Specs()
	assert.Len(specs, 9)

	seen := make(map[string]bool)
	for _, spec := range specs {
		assert.NoError(spec.Validate(), "spec %s", spec.Name)
		assert.False(seen[spec.Name], "duplicate tool name %s", spec.Name)
		seen[spec.Name] = true
	}
}

func TestStandingsRoundIsOptional(t *testing.T) {
	assert := assert.New(t)

	for _, name := range []string{"get_driver_standings", "get_constructor_standings"} {
		spec := specByName(t, name)
		round, ok := spec.Param("round")
		assert.True(ok, "%s must declare round", name)
		assert.False(round.Required, "%s round is optional", name)
	}
}

func TestLapsTableFlattensTimings(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	spec := specByName(t, "get_lap_times")
	require.NotNil(spec.Transform)

	body := []byte(`{"MRData":{"RaceTable":{"Races":[{
		"season":"2024","round":"9","raceName":"Canadian Grand Prix",
		"Circuit":{"circuitName":"Circuit Gilles Villeneuve"},
		"date":"2024-06-09",
		"Laps":[
			{"number":"1","Timings":[
				{"driverId":"max_verstappen","position":"1","time":"1:33.101"},
				{"driverId":"norris","position":"2","time":"1:33.994"}
			]},
			{"number":"2","Timings":[
				{"driverId":"max_verstappen","position":"1","time":"1:19.402"}
			]}
		]
	}]}}}`)

	out, err := spec.Transform(body, nil)
	require.NoError(err)
	require.NotNil(out)

	var table struct {
		Race map[string]any   `json:"race"`
		Laps map[string][]any `json:"laps"`
	}
	require.NoError(json.Unmarshal(out, &table))

	assert.Equal("Canadian Grand Prix", table.Race["race_name"])
	assert.Equal("Circuit Gilles Villeneuve", table.Race["circuit"])
	assert.Equal([]any{"1", "1", "2"}, table.Laps["lap"])
	assert.Equal([]any{"max_verstappen", "norris", "max_verstappen"}, table.Laps["driver_id"])
	assert.Equal([]any{"1:33.101", "1:33.994", "1:19.402"}, table.Laps["time"])
}

func TestLapsTablePassesThroughWithoutRaces(t *testing.T) {
	spec := specByName(t, "get_lap_times")

	out, err := spec.Transform([]byte(`{"MRData":{"RaceTable":{"Races":[]}}}`), nil)
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestPitStopsTable(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	spec := specByName(t, "get_pit_stops")
	require.NotNil(spec.Transform)

	body := []byte(`{"MRData":{"RaceTable":{"Races":[{
		"season":"2024","round":"9","raceName":"Canadian Grand Prix",
		"Circuit":{"circuitName":"Circuit Gilles Villeneuve"},
		"date":"2024-06-09",
		"PitStops":[
			{"driverId":"norris","stop":"1","lap":"22","time":"14:32:10","duration":"23.456"},
			{"driverId":"max_verstappen","stop":"1","lap":"25","time":"14:36:55","duration":"22.913"}
		]
	}]}}}`)

	out, err := spec.Transform(body, nil)
	require.NoError(err)
	require.NotNil(out)

	var table struct {
		Race     map[string]any   `json:"race"`
		PitStops map[string][]any `json:"pit_stops"`
	}
	require.NoError(json.Unmarshal(out, &table))

	assert.Equal("2024", table.Race["season"])
	assert.Equal([]any{"norris", "max_verstappen"}, table.PitStops["driver_id"])
	assert.Equal([]any{"23.456", "22.913"}, table.PitStops["duration"])
}
