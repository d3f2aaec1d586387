package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/kingstons-portal/backoffice/internal/platform/errors"
	"github.com/kingstons-portal/backoffice/internal/platform/id"
)

// RelationshipStatus describes the special relationship lifecycle label.
type RelationshipStatus string

const (
	RelationshipStatusUnspecified RelationshipStatus = ""
	RelationshipStatusActive      RelationshipStatus = "active"
	RelationshipStatusInactive    RelationshipStatus = "inactive"
)

// ParseRelationshipStatus canonicalizes a special relationship status label.
func ParseRelationshipStatus(value string) (RelationshipStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "active":
		return RelationshipStatusActive, true
	case "inactive":
		return RelationshipStatusInactive, true
	default:
		return RelationshipStatusUnspecified, false
	}
}

// isRelationshipTransitionAllowed enforces the special relationship lifecycle.
func isRelationshipTransitionAllowed(from, to RelationshipStatus) bool {
	switch from {
	case RelationshipStatusActive:
		return to == RelationshipStatusInactive
	case RelationshipStatusInactive:
		return to == RelationshipStatusActive
	default:
		return false
	}
}

// IsRelationshipTransitionAllowed reports whether a relationship status transition is permitted.
func IsRelationshipTransitionAllowed(from, to RelationshipStatus) bool {
	return isRelationshipTransitionAllowed(from, to)
}

// SpecialRelationship links a product owner to a named third party, such as
// an attorney, dependant, or professional contact.
type SpecialRelationship struct {
	ID        string
	OwnerID   string
	Name      string
	Relation  string
	Status    RelationshipStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateSpecialRelationshipInput describes the data needed to record a relationship.
type CreateSpecialRelationshipInput struct {
	OwnerID  string
	Name     string
	Relation string
}

// CreateSpecialRelationship records a new active relationship for a product owner.
func CreateSpecialRelationship(input CreateSpecialRelationshipInput, now func() time.Time, idGenerator func() (string, error)) (SpecialRelationship, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	ownerID := strings.TrimSpace(input.OwnerID)
	if ownerID == "" {
		return SpecialRelationship{}, apperrors.New(apperrors.CodeRelationshipEmptyOwnerID, "special relationship owner id is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return SpecialRelationship{}, apperrors.New(apperrors.CodeRelationshipEmptyName, "special relationship name is required")
	}

	relationshipID, err := idGenerator()
	if err != nil {
		return SpecialRelationship{}, fmt.Errorf("generate special relationship id: %w", err)
	}

	createdAt := now().UTC()
	return SpecialRelationship{
		ID:        relationshipID,
		OwnerID:   ownerID,
		Name:      name,
		Relation:  strings.TrimSpace(input.Relation),
		Status:    RelationshipStatusActive,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// WithRelationshipStatus returns a copy of the relationship moved to the target status.
func WithRelationshipStatus(rel SpecialRelationship, target RelationshipStatus, now func() time.Time) (SpecialRelationship, error) {
	if now == nil {
		now = time.Now
	}
	if _, ok := ParseRelationshipStatus(string(target)); !ok {
		return SpecialRelationship{}, apperrors.New(apperrors.CodeRelationshipInvalidStatus, "invalid special relationship status "+string(target))
	}
	if !isRelationshipTransitionAllowed(rel.Status, target) {
		return SpecialRelationship{}, apperrors.WithMetadata(
			apperrors.CodeRelationshipInvalidStatusTransition,
			fmt.Sprintf("special relationship transition %s -> %s is not allowed", rel.Status, target),
			map[string]string{"from": string(rel.Status), "to": string(target)},
		)
	}
	rel.Status = target
	rel.UpdatedAt = now().UTC()
	return rel, nil
}
