package main

import (
	"os"

	// Timezone names from check-ins must resolve on hosts without a zoneinfo
	// database.
	_ "time/tzdata"

	"github.com/ayoisaiah/wellcon/app"
	"github.com/ayoisaiah/wellcon/report"
)

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	err := run(os.Args)
	if err != nil {
		report.Quit(err)
	}
}
