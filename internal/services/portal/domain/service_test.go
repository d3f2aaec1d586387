package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	clients "github.com/kingstons-portal/backoffice/internal/clients/domain"
	apperrors "github.com/kingstons-portal/backoffice/internal/platform/errors"
)

func TestCreateProductOwnerPersists(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	svc := NewService(store, fixedClock(now), sequentialIDGenerator("owner-1"))

	owner, err := svc.CreateProductOwner(context.Background(), clients.CreateProductOwnerInput{KnownAs: "Maggie"})
	if err != nil {
		t.Fatalf("create product owner: %v", err)
	}

	stored, err := svc.GetProductOwner(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("get product owner: %v", err)
	}
	if stored.KnownAs != "Maggie" || stored.Status != clients.OwnerStatusActive {
		t.Fatalf("unexpected stored owner %+v", stored)
	}
}

func TestSetProductOwnerStatusHappyPath(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	svc := NewService(store, fixedClock(created), sequentialIDGenerator("owner-1"))

	owner, err := svc.CreateProductOwner(context.Background(), clients.CreateProductOwnerInput{KnownAs: "Maggie"})
	if err != nil {
		t.Fatalf("create product owner: %v", err)
	}

	lapsed, err := svc.SetProductOwnerStatus(context.Background(), owner.ID, "lapsed")
	if err != nil {
		t.Fatalf("lapse owner: %v", err)
	}
	if lapsed.Status != clients.OwnerStatusLapsed {
		t.Fatalf("expected lapsed, got %s", lapsed.Status)
	}

	stored, err := svc.GetProductOwner(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("get owner after lapse: %v", err)
	}
	if stored.Status != clients.OwnerStatusLapsed {
		t.Fatalf("expected persisted lapsed status, got %s", stored.Status)
	}
}

func TestSetProductOwnerStatusRejectsInvalidLabel(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := NewService(store, nil, nil)

	_, err := svc.SetProductOwnerStatus(context.Background(), "owner-1", "retired")
	if !apperrors.IsCode(err, apperrors.CodeOwnerInvalidStatus) {
		t.Fatalf("expected OWNER_INVALID_STATUS, got %v", err)
	}
}

func TestSetProductOwnerStatusRejectsIllegalTransition(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	svc := NewService(store, fixedClock(now), sequentialIDGenerator("owner-1"))

	owner, err := svc.CreateProductOwner(context.Background(), clients.CreateProductOwnerInput{KnownAs: "Maggie"})
	if err != nil {
		t.Fatalf("create product owner: %v", err)
	}
	if _, err := svc.SetProductOwnerStatus(context.Background(), owner.ID, "lapsed"); err != nil {
		t.Fatalf("lapse owner: %v", err)
	}

	_, err = svc.SetProductOwnerStatus(context.Background(), owner.ID, "deceased")
	if !apperrors.IsCode(err, apperrors.CodeOwnerInvalidStatusTransition) {
		t.Fatalf("expected OWNER_INVALID_STATUS_TRANSITION, got %v", err)
	}

	// The stored owner must keep its pre-transition status.
	stored, err := svc.GetProductOwner(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("get owner: %v", err)
	}
	if stored.Status != clients.OwnerStatusLapsed {
		t.Fatalf("expected owner to stay lapsed, got %s", stored.Status)
	}
}

func TestSetProductOwnerStatusMissingOwner(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeStore(), nil, nil)

	_, err := svc.SetProductOwnerStatus(context.Background(), "missing", "lapsed")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListProductOwnersClampsPageSize(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	svc := NewService(store, fixedClock(base), sequentialIDGenerator("owner-1", "owner-2", "owner-3"))

	for range 3 {
		if _, err := svc.CreateProductOwner(context.Background(), clients.CreateProductOwnerInput{KnownAs: "Client"}); err != nil {
			t.Fatalf("create product owner: %v", err)
		}
	}

	page, err := svc.ListProductOwners(context.Background(), ListOwnersQuery{PageSize: 2})
	if err != nil {
		t.Fatalf("list product owners: %v", err)
	}
	if len(page.Owners) != 2 {
		t.Fatalf("expected 2 owners, got %d", len(page.Owners))
	}
}

func TestGetClientFileAggregatesRelatedRecords(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	svc := NewService(store, fixedClock(now), sequentialIDGenerator("owner-1", "rel-1", "doc-1", "health-1"))

	owner, err := svc.CreateProductOwner(context.Background(), clients.CreateProductOwnerInput{KnownAs: "Maggie"})
	if err != nil {
		t.Fatalf("create product owner: %v", err)
	}
	if _, err := svc.CreateSpecialRelationship(context.Background(), clients.CreateSpecialRelationshipInput{OwnerID: owner.ID, Name: "Janet"}); err != nil {
		t.Fatalf("create relationship: %v", err)
	}
	if _, err := svc.CreateLegalDocument(context.Background(), clients.CreateLegalDocumentInput{OwnerID: owner.ID, Kind: "Will"}); err != nil {
		t.Fatalf("create document: %v", err)
	}
	if _, err := svc.CreateHealthRecord(context.Background(), clients.CreateHealthRecordInput{OwnerID: owner.ID, Title: "Hearing impairment"}); err != nil {
		t.Fatalf("create health record: %v", err)
	}

	file, err := svc.GetClientFile(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("get client file: %v", err)
	}
	if file.Owner.ID != owner.ID {
		t.Fatalf("expected owner %s, got %s", owner.ID, file.Owner.ID)
	}
	if len(file.Relationships) != 1 || len(file.Documents) != 1 || len(file.HealthRecords) != 1 {
		t.Fatalf("expected one record per family, got %d/%d/%d",
			len(file.Relationships), len(file.Documents), len(file.HealthRecords))
	}
}

func TestServiceRequiresStore(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, nil, nil)
	if _, err := svc.GetProductOwner(context.Background(), "owner-1"); !errors.Is(err, ErrStoreNotConfigured) {
		t.Fatalf("expected store-not-configured, got %v", err)
	}
}
