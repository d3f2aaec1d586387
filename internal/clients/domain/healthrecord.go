package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/kingstons-portal/backoffice/internal/platform/errors"
	"github.com/kingstons-portal/backoffice/internal/platform/id"
)

// HealthStatus describes the health and vulnerability record lifecycle label.
type HealthStatus string

const (
	HealthStatusUnspecified HealthStatus = ""
	HealthStatusActive      HealthStatus = "active"
	HealthStatusInactive    HealthStatus = "inactive"
	HealthStatusDeceased    HealthStatus = "deceased"
)

// ParseHealthStatus canonicalizes a health record status label.
func ParseHealthStatus(value string) (HealthStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "active":
		return HealthStatusActive, true
	case "inactive":
		return HealthStatusInactive, true
	case "deceased":
		return HealthStatusDeceased, true
	default:
		return HealthStatusUnspecified, false
	}
}

// isHealthTransitionAllowed enforces the health record lifecycle.
// Deceased is terminal and reachable only from active, mirroring the owner
// graph: a record parked inactive must be reactivated first.
func isHealthTransitionAllowed(from, to HealthStatus) bool {
	switch from {
	case HealthStatusActive:
		return to == HealthStatusInactive || to == HealthStatusDeceased
	case HealthStatusInactive:
		return to == HealthStatusActive
	default:
		return false
	}
}

// IsHealthTransitionAllowed reports whether a health record status transition is permitted.
func IsHealthTransitionAllowed(from, to HealthStatus) bool {
	return isHealthTransitionAllowed(from, to)
}

// HealthRecord captures a health or vulnerability note for a product owner.
type HealthRecord struct {
	ID            string
	OwnerID       string
	Title         string
	Vulnerability string
	Status        HealthStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateHealthRecordInput describes the data needed to record a health note.
type CreateHealthRecordInput struct {
	OwnerID       string
	Title         string
	Vulnerability string
}

// CreateHealthRecord records a new active health record for a product owner.
func CreateHealthRecord(input CreateHealthRecordInput, now func() time.Time, idGenerator func() (string, error)) (HealthRecord, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	ownerID := strings.TrimSpace(input.OwnerID)
	if ownerID == "" {
		return HealthRecord{}, apperrors.New(apperrors.CodeHealthRecordEmptyOwnerID, "health record owner id is required")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return HealthRecord{}, apperrors.New(apperrors.CodeHealthRecordEmptyTitle, "health record title is required")
	}

	recordID, err := idGenerator()
	if err != nil {
		return HealthRecord{}, fmt.Errorf("generate health record id: %w", err)
	}

	createdAt := now().UTC()
	return HealthRecord{
		ID:            recordID,
		OwnerID:       ownerID,
		Title:         title,
		Vulnerability: strings.TrimSpace(input.Vulnerability),
		Status:        HealthStatusActive,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}, nil
}

// WithHealthStatus returns a copy of the health record moved to the target status.
func WithHealthStatus(record HealthRecord, target HealthStatus, now func() time.Time) (HealthRecord, error) {
	if now == nil {
		now = time.Now
	}
	if _, ok := ParseHealthStatus(string(target)); !ok {
		return HealthRecord{}, apperrors.New(apperrors.CodeHealthRecordInvalidStatus, "invalid health record status "+string(target))
	}
	if !isHealthTransitionAllowed(record.Status, target) {
		return HealthRecord{}, apperrors.WithMetadata(
			apperrors.CodeHealthRecordInvalidStatusTransition,
			fmt.Sprintf("health record transition %s -> %s is not allowed", record.Status, target),
			map[string]string{"from": string(record.Status), "to": string(target)},
		)
	}
	record.Status = target
	record.UpdatedAt = now().UTC()
	return record, nil
}
