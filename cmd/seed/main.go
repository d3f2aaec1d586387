// Package main provides a CLI for seeding a local portal database with
// demo client data.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/kingstons-portal/backoffice/internal/platform/config"
	"github.com/kingstons-portal/backoffice/internal/tools/seed"
)

func main() {
	cfg, err := seed.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := seed.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("seed database: %v", err)
	}
}
