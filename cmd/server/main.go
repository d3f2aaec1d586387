// Package main starts the portal HTTP server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kingstons-portal/backoffice/internal/platform/cmd"
	"github.com/kingstons-portal/backoffice/internal/services/portal/app"
)

func main() {
	var cfg app.Config
	if err := cmd.ParseConfig(&cfg); err != nil {
		log.Fatalf("parse config: %v", err)
	}
	log.SetPrefix("[PORTAL] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cmd.RunWithTelemetry(ctx, cmd.ServiceServer, func(ctx context.Context) error {
		server, err := app.New(cfg)
		if err != nil {
			return err
		}
		log.Printf("listening on %s", server.Addr())
		return server.Serve(ctx)
	})
	if err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
