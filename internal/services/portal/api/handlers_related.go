package api

import (
	"net/http"

	clients "github.com/kingstons-portal/backoffice/internal/clients/domain"
	apperrors "github.com/kingstons-portal/backoffice/internal/platform/errors"
)

type relationshipPayload struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	Name      string `json:"name"`
	Relation  string `json:"relation,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type documentPayload struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	Kind      string `json:"kind"`
	Notes     string `json:"notes,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type healthRecordPayload struct {
	ID            string `json:"id"`
	OwnerID       string `json:"owner_id"`
	Title         string `json:"title"`
	Vulnerability string `json:"vulnerability,omitempty"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type createRelationshipRequest struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
}

type createDocumentRequest struct {
	Kind  string `json:"kind"`
	Notes string `json:"notes"`
}

type createHealthRecordRequest struct {
	Title         string `json:"title"`
	Vulnerability string `json:"vulnerability"`
}

func toRelationshipPayload(rel clients.SpecialRelationship) relationshipPayload {
	return relationshipPayload{
		ID:        rel.ID,
		OwnerID:   rel.OwnerID,
		Name:      rel.Name,
		Relation:  rel.Relation,
		Status:    string(rel.Status),
		CreatedAt: formatTime(rel.CreatedAt),
		UpdatedAt: formatTime(rel.UpdatedAt),
	}
}

func toDocumentPayload(doc clients.LegalDocument) documentPayload {
	return documentPayload{
		ID:        doc.ID,
		OwnerID:   doc.OwnerID,
		Kind:      doc.Kind,
		Notes:     doc.Notes,
		Status:    string(doc.Status),
		CreatedAt: formatTime(doc.CreatedAt),
		UpdatedAt: formatTime(doc.UpdatedAt),
	}
}

func toHealthRecordPayload(record clients.HealthRecord) healthRecordPayload {
	return healthRecordPayload{
		ID:            record.ID,
		OwnerID:       record.OwnerID,
		Title:         record.Title,
		Vulnerability: record.Vulnerability,
		Status:        string(record.Status),
		CreatedAt:     formatTime(record.CreatedAt),
		UpdatedAt:     formatTime(record.UpdatedAt),
	}
}

func (h *Handler) handleListRelationships(w http.ResponseWriter, r *http.Request) {
	rels, err := h.svc.ListSpecialRelationships(r.Context(), r.PathValue("ownerID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	payload := make([]relationshipPayload, 0, len(rels))
	for _, rel := range rels {
		payload = append(payload, toRelationshipPayload(rel))
	}
	writeJSON(w, http.StatusOK, map[string][]relationshipPayload{"relationships": payload})
}

func (h *Handler) handleCreateRelationship(w http.ResponseWriter, r *http.Request) {
	var req createRelationshipRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.CodeBadRequest, "invalid request body", err))
		return
	}

	rel, err := h.svc.CreateSpecialRelationship(r.Context(), clients.CreateSpecialRelationshipInput{
		OwnerID:  r.PathValue("ownerID"),
		Name:     req.Name,
		Relation: req.Relation,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRelationshipPayload(rel))
}

func (h *Handler) handleSetRelationshipStatus(w http.ResponseWriter, r *http.Request) {
	var req setStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.CodeBadRequest, "invalid request body", err))
		return
	}

	rel, err := h.svc.SetSpecialRelationshipStatus(r.Context(), r.PathValue("relationshipID"), req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRelationshipPayload(rel))
}

func (h *Handler) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.ListLegalDocuments(r.Context(), r.PathValue("ownerID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	payload := make([]documentPayload, 0, len(docs))
	for _, doc := range docs {
		payload = append(payload, toDocumentPayload(doc))
	}
	writeJSON(w, http.StatusOK, map[string][]documentPayload{"documents": payload})
}

func (h *Handler) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.CodeBadRequest, "invalid request body", err))
		return
	}

	doc, err := h.svc.CreateLegalDocument(r.Context(), clients.CreateLegalDocumentInput{
		OwnerID: r.PathValue("ownerID"),
		Kind:    req.Kind,
		Notes:   req.Notes,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDocumentPayload(doc))
}

func (h *Handler) handleSetDocumentStatus(w http.ResponseWriter, r *http.Request) {
	var req setStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.CodeBadRequest, "invalid request body", err))
		return
	}

	doc, err := h.svc.SetLegalDocumentStatus(r.Context(), r.PathValue("documentID"), req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentPayload(doc))
}

func (h *Handler) handleListHealthRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ListHealthRecords(r.Context(), r.PathValue("ownerID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	payload := make([]healthRecordPayload, 0, len(records))
	for _, record := range records {
		payload = append(payload, toHealthRecordPayload(record))
	}
	writeJSON(w, http.StatusOK, map[string][]healthRecordPayload{"health_records": payload})
}

func (h *Handler) handleCreateHealthRecord(w http.ResponseWriter, r *http.Request) {
	var req createHealthRecordRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.CodeBadRequest, "invalid request body", err))
		return
	}

	record, err := h.svc.CreateHealthRecord(r.Context(), clients.CreateHealthRecordInput{
		OwnerID:       r.PathValue("ownerID"),
		Title:         req.Title,
		Vulnerability: req.Vulnerability,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toHealthRecordPayload(record))
}

func (h *Handler) handleSetHealthRecordStatus(w http.ResponseWriter, r *http.Request) {
	var req setStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.CodeBadRequest, "invalid request body", err))
		return
	}

	record, err := h.svc.SetHealthRecordStatus(r.Context(), r.PathValue("recordID"), req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toHealthRecordPayload(record))
}
