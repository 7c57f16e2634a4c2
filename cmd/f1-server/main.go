// Command f1-server serves Formula One data from the Jolpica-Ergast API as
// MCP tools.
package main

import (
	"sportsbridge/internal/app"
	"sportsbridge/internal/provider/f1"
)

func main() {
	app.Run(app.Options{
		ServerName: "sportsbridge-f1",
		Version:    "0.1.0",
		ProviderID: f1.ProviderID,
		Specs:      f1.Specs(),
	})
}
