// Package main starts the advisor-assistant MCP server on stdio.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kingstons-portal/backoffice/internal/platform/cmd"
	"github.com/kingstons-portal/backoffice/internal/services/mcp/service"
	portaldomain "github.com/kingstons-portal/backoffice/internal/services/portal/domain"
	"github.com/kingstons-portal/backoffice/internal/services/portal/storage/sqlite"
)

type mcpConfig struct {
	DBPath string `env:"KINGSTONS_PORTAL_DB_PATH" envDefault:"portal.db"`
}

func main() {
	var cfg mcpConfig
	if err := cmd.ParseConfig(&cfg); err != nil {
		log.Fatalf("parse config: %v", err)
	}
	log.SetPrefix("[MCP] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cmd.RunWithTelemetry(ctx, cmd.ServiceMCP, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		server, err := service.New(portaldomain.NewService(store, nil, nil))
		if err != nil {
			return err
		}
		return server.Serve(ctx)
	})
	if err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
