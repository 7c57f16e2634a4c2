// Command mlb-server serves the SportRadar MLB API as MCP tools.
package main

import (
	"sportsbridge/internal/app"
	"sportsbridge/internal/provider/mlb"
)

func main() {
	app.Run(app.Options{
		ServerName: "sportsbridge-mlb",
		Version:    "0.1.0",
		ProviderID: mlb.ProviderID,
		Specs:      mlb.Specs(),
	})
}
