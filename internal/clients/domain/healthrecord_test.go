package domain

import (
	"testing"
	"time"

	apperrors "github.com/kingstons-portal/backoffice/internal/platform/errors"
)

func TestCreateHealthRecordStartsActive(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 5, 8, 0, 0, 0, time.UTC)
	record, err := CreateHealthRecord(CreateHealthRecordInput{
		OwnerID:       "owner-1",
		Title:         "Hearing impairment",
		Vulnerability: "needs written confirmation of advice",
	}, fixedClock(now), sequentialIDGenerator("health-1"))
	if err != nil {
		t.Fatalf("create health record: %v", err)
	}

	if record.Status != HealthStatusActive {
		t.Fatalf("expected active status, got %s", record.Status)
	}
}

func TestCreateHealthRecordValidation(t *testing.T) {
	t.Parallel()

	_, err := CreateHealthRecord(CreateHealthRecordInput{Title: "Hearing impairment"}, nil, nil)
	if !apperrors.IsCode(err, apperrors.CodeHealthRecordEmptyOwnerID) {
		t.Fatalf("expected HEALTH_RECORD_EMPTY_OWNER_ID, got %v", err)
	}

	_, err = CreateHealthRecord(CreateHealthRecordInput{OwnerID: "owner-1"}, nil, nil)
	if !apperrors.IsCode(err, apperrors.CodeHealthRecordEmptyTitle) {
		t.Fatalf("expected HEALTH_RECORD_EMPTY_TITLE, got %v", err)
	}
}

func TestHealthTransitionGraphDeceasedIsTerminal(t *testing.T) {
	t.Parallel()

	allowed := [][2]HealthStatus{
		{HealthStatusActive, HealthStatusInactive},
		{HealthStatusActive, HealthStatusDeceased},
		{HealthStatusInactive, HealthStatusActive},
	}
	for _, pair := range allowed {
		if !IsHealthTransitionAllowed(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s to be allowed", pair[0], pair[1])
		}
	}

	denied := [][2]HealthStatus{
		{HealthStatusDeceased, HealthStatusActive},
		{HealthStatusDeceased, HealthStatusInactive},
		{HealthStatusInactive, HealthStatusDeceased},
		{HealthStatusActive, HealthStatusActive},
	}
	for _, pair := range denied {
		if IsHealthTransitionAllowed(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s to be denied", pair[0], pair[1])
		}
	}
}

func TestWithHealthStatusRejectsIllegalMove(t *testing.T) {
	t.Parallel()

	record := HealthRecord{ID: "health-1", OwnerID: "owner-1", Title: "note", Status: HealthStatusDeceased}

	_, err := WithHealthStatus(record, HealthStatusActive, nil)
	if !apperrors.IsCode(err, apperrors.CodeHealthRecordInvalidStatusTransition) {
		t.Fatalf("expected HEALTH_RECORD_INVALID_STATUS_TRANSITION, got %v", err)
	}
}

func TestWithHealthStatusRejectsDeceasedFromInactive(t *testing.T) {
	t.Parallel()

	record := HealthRecord{ID: "health-1", OwnerID: "owner-1", Title: "note", Status: HealthStatusInactive}

	_, err := WithHealthStatus(record, HealthStatusDeceased, nil)
	if !apperrors.IsCode(err, apperrors.CodeHealthRecordInvalidStatusTransition) {
		t.Fatalf("expected HEALTH_RECORD_INVALID_STATUS_TRANSITION, got %v", err)
	}
}
