package domain

import (
	"testing"
	"time"

	apperrors "github.com/kingstons-portal/backoffice/internal/platform/errors"
)

func TestCreateSpecialRelationshipStartsActive(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 4, 11, 0, 0, 0, time.UTC)
	rel, err := CreateSpecialRelationship(CreateSpecialRelationshipInput{
		OwnerID:  "owner-1",
		Name:     "Janet Kingston",
		Relation: "attorney",
	}, fixedClock(now), sequentialIDGenerator("rel-1"))
	if err != nil {
		t.Fatalf("create special relationship: %v", err)
	}

	if rel.Status != RelationshipStatusActive {
		t.Fatalf("expected active status, got %s", rel.Status)
	}
}

func TestCreateSpecialRelationshipValidation(t *testing.T) {
	t.Parallel()

	_, err := CreateSpecialRelationship(CreateSpecialRelationshipInput{Name: "Janet"}, nil, nil)
	if !apperrors.IsCode(err, apperrors.CodeRelationshipEmptyOwnerID) {
		t.Fatalf("expected RELATIONSHIP_EMPTY_OWNER_ID, got %v", err)
	}

	_, err = CreateSpecialRelationship(CreateSpecialRelationshipInput{OwnerID: "owner-1"}, nil, nil)
	if !apperrors.IsCode(err, apperrors.CodeRelationshipEmptyName) {
		t.Fatalf("expected RELATIONSHIP_EMPTY_NAME, got %v", err)
	}
}

func TestRelationshipTransitionGraph(t *testing.T) {
	t.Parallel()

	if !IsRelationshipTransitionAllowed(RelationshipStatusActive, RelationshipStatusInactive) {
		t.Fatal("expected active -> inactive to be allowed")
	}
	if !IsRelationshipTransitionAllowed(RelationshipStatusInactive, RelationshipStatusActive) {
		t.Fatal("expected inactive -> active to be allowed")
	}
	if IsRelationshipTransitionAllowed(RelationshipStatusActive, RelationshipStatusActive) {
		t.Fatal("expected self transition to be denied")
	}
	if IsRelationshipTransitionAllowed(RelationshipStatusUnspecified, RelationshipStatusActive) {
		t.Fatal("expected unspecified source to be denied")
	}
}

func TestWithRelationshipStatus(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 8, 4, 12, 0, 0, 0, time.UTC)
	rel := SpecialRelationship{ID: "rel-1", OwnerID: "owner-1", Name: "Janet", Status: RelationshipStatusActive}

	inactive, err := WithRelationshipStatus(rel, RelationshipStatusInactive, fixedClock(at))
	if err != nil {
		t.Fatalf("deactivate relationship: %v", err)
	}
	if inactive.Status != RelationshipStatusInactive {
		t.Fatalf("expected inactive, got %s", inactive.Status)
	}

	_, err = WithRelationshipStatus(rel, RelationshipStatus("archived"), nil)
	if !apperrors.IsCode(err, apperrors.CodeRelationshipInvalidStatus) {
		t.Fatalf("expected RELATIONSHIP_INVALID_STATUS, got %v", err)
	}
}
