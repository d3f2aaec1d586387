package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/kingstons-portal/backoffice/internal/platform/errors"
	"github.com/kingstons-portal/backoffice/internal/platform/id"
)

// DocumentStatus describes the legal document lifecycle label.
type DocumentStatus string

const (
	DocumentStatusUnspecified DocumentStatus = ""
	DocumentStatusRegistered  DocumentStatus = "registered"
	DocumentStatusSigned      DocumentStatus = "signed"
	DocumentStatusLapsed      DocumentStatus = "lapsed"
)

// ParseDocumentStatus canonicalizes a legal document status label.
func ParseDocumentStatus(value string) (DocumentStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "registered":
		return DocumentStatusRegistered, true
	case "signed":
		return DocumentStatusSigned, true
	case "lapsed":
		return DocumentStatusLapsed, true
	default:
		return DocumentStatusUnspecified, false
	}
}

// isDocumentTransitionAllowed enforces the legal document lifecycle.
// Documents start registered, get signed, and may lapse and be re-signed.
func isDocumentTransitionAllowed(from, to DocumentStatus) bool {
	switch from {
	case DocumentStatusRegistered:
		return to == DocumentStatusSigned
	case DocumentStatusSigned:
		return to == DocumentStatusLapsed
	case DocumentStatusLapsed:
		return to == DocumentStatusSigned
	default:
		return false
	}
}

// IsDocumentTransitionAllowed reports whether a document status transition is permitted.
func IsDocumentTransitionAllowed(from, to DocumentStatus) bool {
	return isDocumentTransitionAllowed(from, to)
}

// LegalDocument is a client legal document such as a power of attorney.
type LegalDocument struct {
	ID        string
	OwnerID   string
	Kind      string
	Notes     string
	Status    DocumentStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateLegalDocumentInput describes the data needed to register a document.
type CreateLegalDocumentInput struct {
	OwnerID string
	Kind    string
	Notes   string
}

// CreateLegalDocument registers a new legal document for a product owner.
func CreateLegalDocument(input CreateLegalDocumentInput, now func() time.Time, idGenerator func() (string, error)) (LegalDocument, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	ownerID := strings.TrimSpace(input.OwnerID)
	if ownerID == "" {
		return LegalDocument{}, apperrors.New(apperrors.CodeDocumentEmptyOwnerID, "legal document owner id is required")
	}
	kind := strings.TrimSpace(input.Kind)
	if kind == "" {
		return LegalDocument{}, apperrors.New(apperrors.CodeDocumentEmptyKind, "legal document kind is required")
	}

	documentID, err := idGenerator()
	if err != nil {
		return LegalDocument{}, fmt.Errorf("generate legal document id: %w", err)
	}

	createdAt := now().UTC()
	return LegalDocument{
		ID:        documentID,
		OwnerID:   ownerID,
		Kind:      kind,
		Notes:     strings.TrimSpace(input.Notes),
		Status:    DocumentStatusRegistered,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// WithDocumentStatus returns a copy of the document moved to the target status.
func WithDocumentStatus(doc LegalDocument, target DocumentStatus, now func() time.Time) (LegalDocument, error) {
	if now == nil {
		now = time.Now
	}
	if _, ok := ParseDocumentStatus(string(target)); !ok {
		return LegalDocument{}, apperrors.New(apperrors.CodeDocumentInvalidStatus, "invalid legal document status "+string(target))
	}
	if !isDocumentTransitionAllowed(doc.Status, target) {
		return LegalDocument{}, apperrors.WithMetadata(
			apperrors.CodeDocumentInvalidStatusTransition,
			fmt.Sprintf("legal document transition %s -> %s is not allowed", doc.Status, target),
			map[string]string{"from": string(doc.Status), "to": string(target)},
		)
	}
	doc.Status = target
	doc.UpdatedAt = now().UTC()
	return doc, nil
}
