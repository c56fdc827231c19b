package main

import (
	"context"
	"fmt"
	"os"

	"github.com/PratikDhanave/ai-eco-analytics/internal/cli"
)

// Set via ldflags during build.
var version = "dev"

// main runs the api command tree; with no subcommand it serves HTTP.
func main() {
	if err := cli.NewRootCmd(version).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
