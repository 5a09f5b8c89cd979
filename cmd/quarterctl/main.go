// Package main is the entry point for the quarterctl CLI.
package main

import (
	"os"
	_ "time/tzdata"

	"github.com/jsamuelsen/quarter-service/cmd/quarterctl/cmd"
)

// Version is injected via ldflags.
var Version = "dev"

func main() {
	if err := cmd.Execute(Version); err != nil {
		os.Exit(1)
	}
}
