// Command nba-server serves the SportRadar NBA API as MCP tools.
package main

import (
	"sportsbridge/internal/app"
	"sportsbridge/internal/provider/nba"
)

func main() {
	app.Run(app.Options{
		ServerName: "sportsbridge-nba",
		Version:    "0.1.0",
		ProviderID: nba.ProviderID,
		Specs:      nba.Specs(),
	})
}
