package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/dragonbalance/internal/cli"
)

// Set by -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli.SetVersionInfo(version, commit)
	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
