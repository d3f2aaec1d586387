// Package api exposes the portal's client-management HTTP surface.
package api

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/kingstons-portal/backoffice/internal/featureflags"
	"github.com/kingstons-portal/backoffice/internal/notify"
	"github.com/kingstons-portal/backoffice/internal/services/portal/domain"
	"github.com/kingstons-portal/backoffice/internal/services/portal/grants"
)

const tracerName = "kingstons-portal/api"

// GrantVerifier verifies advisor session grants on mutating routes.
type GrantVerifier func(grant string) (grants.SessionClaims, error)

// Handler serves the portal JSON API.
type Handler struct {
	svc    *domain.Service
	verify GrantVerifier
	flags  *featureflags.Resolver
	inbox  *notify.Inbox
	tracer trace.Tracer
}

// Option customizes an API handler.
type Option func(*Handler)

// WithFeatureFlags wires the mini year selector flag resolver.
func WithFeatureFlags(flags *featureflags.Resolver) Option {
	return func(h *Handler) {
		h.flags = flags
	}
}

// WithAdvisorInbox wires the advisor notice inbox. Status changes then record
// success notices and the inbox listing route becomes available.
func WithAdvisorInbox(inbox *notify.Inbox) Option {
	return func(h *Handler) {
		h.inbox = inbox
	}
}

// New creates an API handler over the portal domain service. A nil verifier
// leaves mutating routes unauthenticated, which only the tests should do.
func New(svc *domain.Service, verify GrantVerifier, opts ...Option) *Handler {
	h := &Handler{
		svc:    svc,
		verify: verify,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the portal API mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.handleHealthz)

	mux.HandleFunc("GET /api/product_owners", h.traced("ListProductOwners", h.handleListOwners))
	mux.HandleFunc("POST /api/product_owners", h.authenticated(h.traced("CreateProductOwner", h.handleCreateOwner)))
	mux.HandleFunc("GET /api/product_owners/{ownerID}", h.traced("GetClientFile", h.handleGetClientFile))
	mux.HandleFunc("PUT /api/product_owners/{ownerID}/status", h.authenticated(h.traced("SetProductOwnerStatus", h.handleSetOwnerStatus)))

	mux.HandleFunc("GET /api/product_owners/{ownerID}/relationships", h.traced("ListSpecialRelationships", h.handleListRelationships))
	mux.HandleFunc("POST /api/product_owners/{ownerID}/relationships", h.authenticated(h.traced("CreateSpecialRelationship", h.handleCreateRelationship)))
	mux.HandleFunc("PUT /api/relationships/{relationshipID}/status", h.authenticated(h.traced("SetSpecialRelationshipStatus", h.handleSetRelationshipStatus)))

	mux.HandleFunc("GET /api/product_owners/{ownerID}/documents", h.traced("ListLegalDocuments", h.handleListDocuments))
	mux.HandleFunc("POST /api/product_owners/{ownerID}/documents", h.authenticated(h.traced("CreateLegalDocument", h.handleCreateDocument)))
	mux.HandleFunc("PUT /api/documents/{documentID}/status", h.authenticated(h.traced("SetLegalDocumentStatus", h.handleSetDocumentStatus)))

	mux.HandleFunc("GET /api/product_owners/{ownerID}/health_records", h.traced("ListHealthRecords", h.handleListHealthRecords))
	mux.HandleFunc("POST /api/product_owners/{ownerID}/health_records", h.authenticated(h.traced("CreateHealthRecord", h.handleCreateHealthRecord)))
	mux.HandleFunc("PUT /api/health_records/{recordID}/status", h.authenticated(h.traced("SetHealthRecordStatus", h.handleSetHealthRecordStatus)))

	mux.HandleFunc("GET /api/feature_flags/{area}", h.traced("GetFeatureFlag", h.handleGetFeatureFlag))
	if h.inbox != nil {
		mux.HandleFunc("GET /api/advisor/inbox", h.authenticated(h.traced("ListAdvisorInbox", h.handleListAdvisorInbox)))
	}

	return mux
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// traced wraps a handler in an otel span named after the operation.
func (h *Handler) traced(operation string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := h.tracer.Start(r.Context(), operation)
		defer span.End()
		next(w, r.WithContext(ctx))
	}
}
