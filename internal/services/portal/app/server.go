// Package app wires the portal service together: config, storage, domain
// service, HTTP API and graceful shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/netutil"

	"github.com/kingstons-portal/backoffice/internal/featureflags"
	"github.com/kingstons-portal/backoffice/internal/notify"
	notifysqlite "github.com/kingstons-portal/backoffice/internal/notify/sqlite"
	"github.com/kingstons-portal/backoffice/internal/services/portal/api"
	"github.com/kingstons-portal/backoffice/internal/services/portal/domain"
	"github.com/kingstons-portal/backoffice/internal/services/portal/grants"
	portalsqlite "github.com/kingstons-portal/backoffice/internal/services/portal/storage/sqlite"
)

const (
	shutdownTimeout    = 10 * time.Second
	maxConcurrentConns = 256
)

// Config holds portal server configuration sourced from the environment.
// FlagDBPath and InboxDBPath are optional: empty paths leave feature flag
// overrides and the advisor inbox disabled.
type Config struct {
	Port         int    `env:"KINGSTONS_PORTAL_PORT"          envDefault:"8080"`
	DBPath       string `env:"KINGSTONS_PORTAL_DB_PATH"       envDefault:"portal.db"`
	FlagDBPath   string `env:"KINGSTONS_PORTAL_FLAG_DB_PATH"`
	InboxDBPath  string `env:"KINGSTONS_PORTAL_INBOX_DB_PATH"`
	AuthDisabled bool   `env:"KINGSTONS_PORTAL_AUTH_DISABLED" envDefault:"false"`
}

// Server hosts the portal HTTP service.
type Server struct {
	listener   net.Listener
	httpServer *http.Server
	store      *portalsqlite.Store
	flagStore  *featureflags.Store
	inboxStore *notifysqlite.Store
}

// New creates a configured portal server listening on the configured port.
func New(cfg Config) (*Server, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", cfg.Port, err)
	}
	listener = netutil.LimitListener(listener, maxConcurrentConns)

	store, err := portalsqlite.Open(cfg.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("open portal store: %w", err)
	}

	closeOnErr := func() {
		_ = listener.Close()
		_ = store.Close()
	}

	var verify api.GrantVerifier
	if !cfg.AuthDisabled {
		verifierCfg, err := grants.LoadVerifierConfigFromEnv(nil)
		if err != nil {
			closeOnErr()
			return nil, fmt.Errorf("load session grant verifier: %w", err)
		}
		verify = func(grant string) (grants.SessionClaims, error) {
			return grants.Validate(grant, verifierCfg)
		}
	}

	server := &Server{listener: listener, store: store}
	options := []api.Option{api.WithFeatureFlags(featureflags.NewResolver(nil))}

	if cfg.FlagDBPath != "" {
		flagStore, err := featureflags.Open(cfg.FlagDBPath)
		if err != nil {
			closeOnErr()
			return nil, fmt.Errorf("open flag store: %w", err)
		}
		server.flagStore = flagStore
		options[0] = api.WithFeatureFlags(featureflags.NewResolver(flagStore))
	}

	if cfg.InboxDBPath != "" {
		inboxStore, err := notifysqlite.Open(cfg.InboxDBPath)
		if err != nil {
			closeOnErr()
			server.closeAuxStores()
			return nil, fmt.Errorf("open inbox store: %w", err)
		}
		server.inboxStore = inboxStore
		options = append(options, api.WithAdvisorInbox(notify.NewInbox(inboxStore, nil, nil)))
	}

	svc := domain.NewService(store, nil, nil)
	handler := api.New(svc, verify, options...)

	server.httpServer = &http.Server{
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server, nil
}

// Addr returns the listener address for the portal server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a portal server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the portal server and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.closeStore()

	log.Printf("portal server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	handleErr := func(err error) error {
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = s.httpServer.Shutdown(shutdownCtx)
		return handleErr(<-serveErr)
	case err := <-serveErr:
		return handleErr(err)
	}
}

func (s *Server) closeStore() {
	if s == nil {
		return
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close portal store: %v", err)
		}
	}
	s.closeAuxStores()
}

func (s *Server) closeAuxStores() {
	if s == nil {
		return
	}
	if s.flagStore != nil {
		if err := s.flagStore.Close(); err != nil {
			log.Printf("close flag store: %v", err)
		}
	}
	if s.inboxStore != nil {
		if err := s.inboxStore.Close(); err != nil {
			log.Printf("close inbox store: %v", err)
		}
	}
}
