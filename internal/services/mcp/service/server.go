// Package service hosts the advisor-assistant MCP server over portal
// client data.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kingstons-portal/backoffice/internal/services/mcp/domain"
	portaldomain "github.com/kingstons-portal/backoffice/internal/services/portal/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "Kingston's Portal MCP"
	serverVersion = "0.1.0"
)

// Server binds the read-only client lookup tools to an MCP runtime.
type Server struct {
	mcpServer *mcp.Server
}

// New creates a configured MCP server over the portal domain service.
func New(svc *portaldomain.Service) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("portal service is required")
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcp.AddTool(mcpServer, domain.LookupProductOwnerTool(), domain.LookupProductOwnerHandler(svc))
	mcp.AddTool(mcpServer, domain.ListProductOwnersTool(), domain.ListProductOwnersHandler(svc))

	return &Server{mcpServer: mcpServer}, nil
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
