package main

import (
	"os"

	"github.com/rustyeddy/riskbot/cmd/riskbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
