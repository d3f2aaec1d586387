package api

import (
	"net/http"
	"strconv"
	"strings"

	clients "github.com/kingstons-portal/backoffice/internal/clients/domain"
	"github.com/kingstons-portal/backoffice/internal/notify"
	apperrors "github.com/kingstons-portal/backoffice/internal/platform/errors"
)

type featureFlagPayload struct {
	Area    string `json:"area"`
	Enabled bool   `json:"enabled"`
}

type noticePayload struct {
	ID        string `json:"id"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

type listInboxResponse struct {
	Notices       []noticePayload `json:"notices"`
	NextPageToken string          `json:"next_page_token,omitempty"`
}

func (h *Handler) handleGetFeatureFlag(w http.ResponseWriter, r *http.Request) {
	area := strings.TrimSpace(r.PathValue("area"))
	if area == "" {
		writeError(w, r, apperrors.New(apperrors.CodeBadRequest, "area is required"))
		return
	}

	enabled, err := h.flags.Enabled(r.Context(), area)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, featureFlagPayload{Area: area, Enabled: enabled})
}

func (h *Handler) handleListAdvisorInbox(w http.ResponseWriter, r *http.Request) {
	advisor := advisorID(r)
	if advisor == "" {
		writeError(w, r, apperrors.New(apperrors.CodeGrantInvalid, "advisor identity is required"))
		return
	}

	input := notify.ListInboxInput{
		AdvisorID: advisor,
		PageToken: r.URL.Query().Get("page_token"),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("page_size")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, apperrors.New(apperrors.CodeBadRequest, "page_size must be an integer"))
			return
		}
		input.PageSize = size
	}

	page, err := h.inbox.ListInbox(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response := listInboxResponse{
		Notices:       make([]noticePayload, 0, len(page.Notices)),
		NextPageToken: page.NextPageToken,
	}
	for _, notice := range page.Notices {
		response.Notices = append(response.Notices, noticePayload{
			ID:        notice.ID,
			Severity:  string(notice.Severity),
			Message:   notice.Message,
			CreatedAt: formatTime(notice.CreatedAt),
		})
	}
	writeJSON(w, http.StatusOK, response)
}

// recordOwnerStatusNotice appends a success notice to the acting advisor's
// inbox. Inbox writes are best-effort: a failed notice never fails the status
// change it describes.
func (h *Handler) recordOwnerStatusNotice(r *http.Request, owner clients.ProductOwner) {
	if h.inbox == nil {
		return
	}
	advisor := advisorID(r)
	if advisor == "" {
		return
	}
	_, _ = h.inbox.Record(r.Context(), notify.RecordInput{
		AdvisorID: advisor,
		Severity:  notify.SeveritySuccess,
		Message:   "Product owner " + owner.KnownAs + " is now " + string(owner.Status),
		DedupeKey: owner.ID + ":" + string(owner.Status),
	})
}
