package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// Build information injected at build time via ldflags
var (
	Commit  = "unknown"
	Version = "dev"
)

const Tagline = "A pomodoro timer for the terminal"

func versionInfo() string {
	return fmt.Sprintf("pomodoro %s (commit: %s)", Version, Commit)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pomodoro"),
		kong.Description(Tagline),
		kong.Vars{
			"version": versionInfo(),
		},
		kong.UsageOnError(),
		kong.Bind(&cli),
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
