package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/kingstons-portal/backoffice/internal/platform/errors"
	"github.com/kingstons-portal/backoffice/internal/platform/i18n"
	"github.com/kingstons-portal/backoffice/internal/services/portal/domain"
)

const maxBodyBytes = 1 << 20

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes a JSON body with normalized headers and status.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError renders an error as a JSON payload, mapping the error code to an
// HTTP status and localizing the message via the request's Accept-Language.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.GetCode(err)
	status := code.HTTPStatus()

	// Domain sentinels raised before a coded error is attached.
	switch {
	case errors.Is(err, domain.ErrOwnerIDRequired), errors.Is(err, domain.ErrRecordIDRequired):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	}

	locale := i18n.MatchAcceptLanguage(r.Header.Get("Accept-Language")).String()
	writeJSON(w, status, errorPayload{
		Code:    string(code),
		Message: apperrors.UserMessage(err, locale),
	})
}

// decodeBody decodes a JSON request body into target, rejecting unknown fields.
func decodeBody(r *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

type contextKey string

const advisorIDKey contextKey = "advisor_id"

// advisorID returns the advisor identity attached by the authenticated
// middleware, or "" when the request was not verified.
func advisorID(r *http.Request) string {
	value, _ := r.Context().Value(advisorIDKey).(string)
	return value
}

// authenticated requires a valid advisor session grant before dispatching.
func (h *Handler) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.verify == nil {
			next(w, r)
			return
		}
		grant := bearerToken(r)
		claims, err := h.verify(grant)
		if err != nil {
			writeError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), advisorIDKey, claims.AdvisorID)
		next(w, r.WithContext(ctx))
	}
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
