package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/kingstons-portal/backoffice/internal/platform/errors"
	"github.com/kingstons-portal/backoffice/internal/platform/id"
)

// OwnerStatus describes the product owner lifecycle label.
type OwnerStatus string

const (
	OwnerStatusUnspecified OwnerStatus = ""
	OwnerStatusActive      OwnerStatus = "active"
	OwnerStatusLapsed      OwnerStatus = "lapsed"
	OwnerStatusDeceased    OwnerStatus = "deceased"
)

// ParseOwnerStatus canonicalizes a product owner status label.
func ParseOwnerStatus(value string) (OwnerStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "active":
		return OwnerStatusActive, true
	case "lapsed":
		return OwnerStatusLapsed, true
	case "deceased":
		return OwnerStatusDeceased, true
	default:
		return OwnerStatusUnspecified, false
	}
}

// isOwnerTransitionAllowed enforces the product owner lifecycle.
//
// Lapsed and deceased owners must pass back through active before taking the
// other inactive label; there is deliberately no lapsed<->deceased edge.
func isOwnerTransitionAllowed(from, to OwnerStatus) bool {
	switch from {
	case OwnerStatusActive:
		return to == OwnerStatusLapsed || to == OwnerStatusDeceased
	case OwnerStatusLapsed:
		return to == OwnerStatusActive
	case OwnerStatusDeceased:
		return to == OwnerStatusActive
	default:
		return false
	}
}

// IsOwnerTransitionAllowed reports whether a product owner status transition is permitted.
func IsOwnerTransitionAllowed(from, to OwnerStatus) bool {
	return isOwnerTransitionAllowed(from, to)
}

// ProductOwner is a client record that can hold financial products.
type ProductOwner struct {
	ID        string
	KnownAs   string
	Title     string
	Firstname string
	Surname   string
	Status    OwnerStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateProductOwnerInput describes the data needed to create a product owner.
type CreateProductOwnerInput struct {
	KnownAs   string
	Title     string
	Firstname string
	Surname   string
}

// NormalizeCreateProductOwnerInput trims and validates creation input.
func NormalizeCreateProductOwnerInput(input CreateProductOwnerInput) (CreateProductOwnerInput, error) {
	knownAs := strings.TrimSpace(input.KnownAs)
	if knownAs == "" {
		return CreateProductOwnerInput{}, apperrors.New(apperrors.CodeOwnerEmptyKnownAs, "product owner known-as name is required")
	}
	return CreateProductOwnerInput{
		KnownAs:   knownAs,
		Title:     strings.TrimSpace(input.Title),
		Firstname: strings.TrimSpace(input.Firstname),
		Surname:   strings.TrimSpace(input.Surname),
	}, nil
}

// CreateProductOwner creates a new active product owner with a generated ID.
func CreateProductOwner(input CreateProductOwnerInput, now func() time.Time, idGenerator func() (string, error)) (ProductOwner, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateProductOwnerInput(input)
	if err != nil {
		return ProductOwner{}, err
	}

	ownerID, err := idGenerator()
	if err != nil {
		return ProductOwner{}, fmt.Errorf("generate product owner id: %w", err)
	}

	createdAt := now().UTC()
	return ProductOwner{
		ID:        ownerID,
		KnownAs:   normalized.KnownAs,
		Title:     normalized.Title,
		Firstname: normalized.Firstname,
		Surname:   normalized.Surname,
		Status:    OwnerStatusActive,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// WithOwnerStatus returns a copy of the owner moved to the target status.
// It rejects transitions outside the lifecycle graph.
func WithOwnerStatus(owner ProductOwner, target OwnerStatus, now func() time.Time) (ProductOwner, error) {
	if now == nil {
		now = time.Now
	}
	if _, ok := ParseOwnerStatus(string(target)); !ok {
		return ProductOwner{}, apperrors.New(apperrors.CodeOwnerInvalidStatus, "invalid product owner status "+string(target))
	}
	if !isOwnerTransitionAllowed(owner.Status, target) {
		return ProductOwner{}, apperrors.WithMetadata(
			apperrors.CodeOwnerInvalidStatusTransition,
			fmt.Sprintf("product owner transition %s -> %s is not allowed", owner.Status, target),
			map[string]string{"from": string(owner.Status), "to": string(target)},
		)
	}
	owner.Status = target
	owner.UpdatedAt = now().UTC()
	return owner, nil
}
