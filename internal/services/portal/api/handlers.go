package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	clients "github.com/kingstons-portal/backoffice/internal/clients/domain"
	apperrors "github.com/kingstons-portal/backoffice/internal/platform/errors"
	"github.com/kingstons-portal/backoffice/internal/services/portal/domain"
)

type ownerPayload struct {
	ID        string `json:"id"`
	KnownAs   string `json:"known_as"`
	Title     string `json:"title,omitempty"`
	Firstname string `json:"firstname,omitempty"`
	Surname   string `json:"surname,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type listOwnersResponse struct {
	ProductOwners []ownerPayload `json:"product_owners"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

type clientFilePayload struct {
	Owner         ownerPayload          `json:"product_owner"`
	Relationships []relationshipPayload `json:"relationships"`
	Documents     []documentPayload     `json:"documents"`
	HealthRecords []healthRecordPayload `json:"health_records"`
}

type createOwnerRequest struct {
	KnownAs   string `json:"known_as"`
	Title     string `json:"title"`
	Firstname string `json:"firstname"`
	Surname   string `json:"surname"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func formatTime(value time.Time) string {
	return value.UTC().Format(time.RFC3339)
}

func toOwnerPayload(owner clients.ProductOwner) ownerPayload {
	return ownerPayload{
		ID:        owner.ID,
		KnownAs:   owner.KnownAs,
		Title:     owner.Title,
		Firstname: owner.Firstname,
		Surname:   owner.Surname,
		Status:    string(owner.Status),
		CreatedAt: formatTime(owner.CreatedAt),
		UpdatedAt: formatTime(owner.UpdatedAt),
	}
}

func (h *Handler) handleListOwners(w http.ResponseWriter, r *http.Request) {
	query := domain.ListOwnersQuery{
		Filter:    r.URL.Query().Get("filter"),
		PageToken: r.URL.Query().Get("page_token"),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("page_size")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, apperrors.New(apperrors.CodeBadRequest, "page_size must be an integer"))
			return
		}
		query.PageSize = size
	}

	page, err := h.svc.ListProductOwners(r.Context(), query)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response := listOwnersResponse{
		ProductOwners: make([]ownerPayload, 0, len(page.Owners)),
		NextPageToken: page.NextPageToken,
	}
	for _, owner := range page.Owners {
		response.ProductOwners = append(response.ProductOwners, toOwnerPayload(owner))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) handleCreateOwner(w http.ResponseWriter, r *http.Request) {
	var req createOwnerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.CodeBadRequest, "invalid request body", err))
		return
	}

	owner, err := h.svc.CreateProductOwner(r.Context(), clients.CreateProductOwnerInput{
		KnownAs:   req.KnownAs,
		Title:     req.Title,
		Firstname: req.Firstname,
		Surname:   req.Surname,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOwnerPayload(owner))
}

func (h *Handler) handleGetClientFile(w http.ResponseWriter, r *http.Request) {
	file, err := h.svc.GetClientFile(r.Context(), r.PathValue("ownerID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	payload := clientFilePayload{
		Owner:         toOwnerPayload(file.Owner),
		Relationships: make([]relationshipPayload, 0, len(file.Relationships)),
		Documents:     make([]documentPayload, 0, len(file.Documents)),
		HealthRecords: make([]healthRecordPayload, 0, len(file.HealthRecords)),
	}
	for _, rel := range file.Relationships {
		payload.Relationships = append(payload.Relationships, toRelationshipPayload(rel))
	}
	for _, doc := range file.Documents {
		payload.Documents = append(payload.Documents, toDocumentPayload(doc))
	}
	for _, record := range file.HealthRecords {
		payload.HealthRecords = append(payload.HealthRecords, toHealthRecordPayload(record))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *Handler) handleSetOwnerStatus(w http.ResponseWriter, r *http.Request) {
	var req setStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.CodeBadRequest, "invalid request body", err))
		return
	}

	owner, err := h.svc.SetProductOwnerStatus(r.Context(), r.PathValue("ownerID"), req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.recordOwnerStatusNotice(r, owner)
	writeJSON(w, http.StatusOK, toOwnerPayload(owner))
}
