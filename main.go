// ABOUTME: Entry point for the Social Pulse 360 CLI, TUI, web UI and MCP server
// ABOUTME: Cancels the command context on SIGINT/SIGTERM so servers shut down cleanly
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/socialpulse/cli"
)

const version = "0.2.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, version); err != nil {
		stop()
		os.Exit(1)
	}
}
