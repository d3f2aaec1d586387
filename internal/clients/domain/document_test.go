package domain

import (
	"testing"
	"time"

	apperrors "github.com/kingstons-portal/backoffice/internal/platform/errors"
)

func TestCreateLegalDocumentStartsRegistered(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 4, 9, 30, 0, 0, time.UTC)
	doc, err := CreateLegalDocument(CreateLegalDocumentInput{
		OwnerID: "owner-1",
		Kind:    "Lasting Power of Attorney",
		Notes:   " property and affairs ",
	}, fixedClock(now), sequentialIDGenerator("doc-1"))
	if err != nil {
		t.Fatalf("create legal document: %v", err)
	}

	if doc.Status != DocumentStatusRegistered {
		t.Fatalf("expected registered status, got %s", doc.Status)
	}
	if doc.Notes != "property and affairs" {
		t.Fatalf("expected trimmed notes, got %q", doc.Notes)
	}
}

func TestCreateLegalDocumentValidation(t *testing.T) {
	t.Parallel()

	_, err := CreateLegalDocument(CreateLegalDocumentInput{Kind: "Will"}, nil, nil)
	if !apperrors.IsCode(err, apperrors.CodeDocumentEmptyOwnerID) {
		t.Fatalf("expected DOCUMENT_EMPTY_OWNER_ID, got %v", err)
	}

	_, err = CreateLegalDocument(CreateLegalDocumentInput{OwnerID: "owner-1"}, nil, nil)
	if !apperrors.IsCode(err, apperrors.CodeDocumentEmptyKind) {
		t.Fatalf("expected DOCUMENT_EMPTY_KIND, got %v", err)
	}
}

func TestDocumentTransitionGraph(t *testing.T) {
	t.Parallel()

	allowed := [][2]DocumentStatus{
		{DocumentStatusRegistered, DocumentStatusSigned},
		{DocumentStatusSigned, DocumentStatusLapsed},
		{DocumentStatusLapsed, DocumentStatusSigned},
	}
	for _, pair := range allowed {
		if !IsDocumentTransitionAllowed(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s to be allowed", pair[0], pair[1])
		}
	}

	denied := [][2]DocumentStatus{
		{DocumentStatusRegistered, DocumentStatusLapsed},
		{DocumentStatusSigned, DocumentStatusRegistered},
		{DocumentStatusLapsed, DocumentStatusRegistered},
		{DocumentStatusLapsed, DocumentStatusLapsed},
	}
	for _, pair := range denied {
		if IsDocumentTransitionAllowed(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s to be denied", pair[0], pair[1])
		}
	}
}

func TestWithDocumentStatusRejectsIllegalMove(t *testing.T) {
	t.Parallel()

	doc := LegalDocument{ID: "doc-1", OwnerID: "owner-1", Kind: "Will", Status: DocumentStatusRegistered}

	_, err := WithDocumentStatus(doc, DocumentStatusLapsed, nil)
	if !apperrors.IsCode(err, apperrors.CodeDocumentInvalidStatusTransition) {
		t.Fatalf("expected DOCUMENT_INVALID_STATUS_TRANSITION, got %v", err)
	}
}
