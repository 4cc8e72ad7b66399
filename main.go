// Package main is the entry point for the ngsa-app movie service.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/pragmatical/ngsa-app/bootstrap"
	"github.com/pragmatical/ngsa-app/cmd"
)

const banner = `
  _ __   __ _ ___  __ _     __ _ _ __  _ __
 | '_ \ / _` + "`" + ` / __|/ _` + "`" + ` |   / _` + "`" + ` | '_ \| '_ \
 | | | | (_| \__ \ (_| |  | (_| | |_) | |_) |
 |_| |_|\__, |___/\__,_|   \__,_| .__/| .__/
        |___/                   |_|   |_|
`

// printBanner prints the startup banner.
func printBanner() {
	color.New(color.FgCyan, color.Bold).Fprint(os.Stderr, banner)
}

// run initializes and starts the service.
func run() error {
	ctx := context.Background()

	app, err := bootstrap.NewApp(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}

	// The shutdown coordinator owns the rest of the lifecycle: on SIGINT or
	// SIGTERM it stops the server within the configured window and exits.
	app.WaitForShutdown()

	return nil
}

// main is the entry point.
func main() {
	// Check if running as CLI command
	if len(os.Args) > 1 && os.Args[1] == "seed" {
		// Strip "seed" from os.Args since the command already knows it's the seed command
		os.Args = append([]string{os.Args[0]}, os.Args[2:]...)

		seedCmd := cmd.NewSeedCmd()
		if err := seedCmd.Execute(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printBanner()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
