// Package domain orchestrates the client-management use-cases for the portal
// service: product owners and their related records, each guarded by its
// family's status lifecycle.
package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	clients "github.com/kingstons-portal/backoffice/internal/clients/domain"
	apperrors "github.com/kingstons-portal/backoffice/internal/platform/errors"
	"github.com/kingstons-portal/backoffice/internal/platform/id"
)

var (
	// ErrStoreNotConfigured indicates the service is missing persistence wiring.
	ErrStoreNotConfigured = errors.New("portal store is not configured")
	// ErrOwnerIDRequired indicates a product owner id is required.
	ErrOwnerIDRequired = errors.New("product owner id is required")
	// ErrRecordIDRequired indicates a related record id is required.
	ErrRecordIDRequired = errors.New("record id is required")
	// ErrNotFound indicates the requested record was not found.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// ListOwnersQuery configures product owner listing.
type ListOwnersQuery struct {
	// Filter is an AIP-160 expression over status, known_as and created_at.
	Filter    string
	PageSize  int
	PageToken string
}

// OwnerPage is a paged product owner listing.
type OwnerPage struct {
	Owners        []clients.ProductOwner
	NextPageToken string
}

// ClientFile aggregates everything the portal shows for one product owner.
type ClientFile struct {
	Owner         clients.ProductOwner
	Relationships []clients.SpecialRelationship
	Documents     []clients.LegalDocument
	HealthRecords []clients.HealthRecord
}

// Store is the domain persistence boundary for client-management state.
type Store interface {
	PutProductOwner(ctx context.Context, owner clients.ProductOwner) error
	GetProductOwner(ctx context.Context, ownerID string) (clients.ProductOwner, error)
	ListProductOwners(ctx context.Context, query ListOwnersQuery) (OwnerPage, error)

	PutSpecialRelationship(ctx context.Context, rel clients.SpecialRelationship) error
	GetSpecialRelationship(ctx context.Context, relationshipID string) (clients.SpecialRelationship, error)
	ListSpecialRelationshipsByOwner(ctx context.Context, ownerID string) ([]clients.SpecialRelationship, error)

	PutLegalDocument(ctx context.Context, doc clients.LegalDocument) error
	GetLegalDocument(ctx context.Context, documentID string) (clients.LegalDocument, error)
	ListLegalDocumentsByOwner(ctx context.Context, ownerID string) ([]clients.LegalDocument, error)

	PutHealthRecord(ctx context.Context, record clients.HealthRecord) error
	GetHealthRecord(ctx context.Context, recordID string) (clients.HealthRecord, error)
	ListHealthRecordsByOwner(ctx context.Context, ownerID string) ([]clients.HealthRecord, error)
}

// Service orchestrates client-management use-cases.
type Service struct {
	store Store
	clock func() time.Time
	newID func() (string, error)
}

// NewService constructs portal domain use-cases.
func NewService(store Store, clock func() time.Time, newID func() (string, error)) *Service {
	if clock == nil {
		clock = time.Now
	}
	if newID == nil {
		newID = id.NewID
	}
	return &Service{
		store: store,
		clock: clock,
		newID: newID,
	}
}

// CreateProductOwner creates and persists a new active product owner.
func (s *Service) CreateProductOwner(ctx context.Context, input clients.CreateProductOwnerInput) (clients.ProductOwner, error) {
	if s == nil || s.store == nil {
		return clients.ProductOwner{}, ErrStoreNotConfigured
	}
	owner, err := clients.CreateProductOwner(input, s.clock, s.newID)
	if err != nil {
		return clients.ProductOwner{}, err
	}
	if err := s.store.PutProductOwner(ctx, owner); err != nil {
		return clients.ProductOwner{}, err
	}
	return owner, nil
}

// GetProductOwner loads one product owner.
func (s *Service) GetProductOwner(ctx context.Context, ownerID string) (clients.ProductOwner, error) {
	if s == nil || s.store == nil {
		return clients.ProductOwner{}, ErrStoreNotConfigured
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return clients.ProductOwner{}, ErrOwnerIDRequired
	}
	return s.store.GetProductOwner(ctx, ownerID)
}

// ListProductOwners returns a filtered page of product owners, newest first.
func (s *Service) ListProductOwners(ctx context.Context, query ListOwnersQuery) (OwnerPage, error) {
	if s == nil || s.store == nil {
		return OwnerPage{}, ErrStoreNotConfigured
	}
	if query.PageSize <= 0 {
		query.PageSize = defaultPageSize
	}
	if query.PageSize > maxPageSize {
		query.PageSize = maxPageSize
	}
	query.Filter = strings.TrimSpace(query.Filter)
	query.PageToken = strings.TrimSpace(query.PageToken)
	return s.store.ListProductOwners(ctx, query)
}

// SetProductOwnerStatus moves a product owner through its lifecycle graph and
// persists the result. The transition rules are owned by the clients domain;
// invalid moves surface as OWNER_INVALID_STATUS_TRANSITION.
func (s *Service) SetProductOwnerStatus(ctx context.Context, ownerID string, statusLabel string) (clients.ProductOwner, error) {
	if s == nil || s.store == nil {
		return clients.ProductOwner{}, ErrStoreNotConfigured
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return clients.ProductOwner{}, ErrOwnerIDRequired
	}
	target, ok := clients.ParseOwnerStatus(statusLabel)
	if !ok {
		return clients.ProductOwner{}, apperrors.New(apperrors.CodeOwnerInvalidStatus, "invalid product owner status "+statusLabel)
	}

	owner, err := s.store.GetProductOwner(ctx, ownerID)
	if err != nil {
		return clients.ProductOwner{}, err
	}
	updated, err := clients.WithOwnerStatus(owner, target, s.clock)
	if err != nil {
		return clients.ProductOwner{}, err
	}
	if err := s.store.PutProductOwner(ctx, updated); err != nil {
		return clients.ProductOwner{}, err
	}
	return updated, nil
}

// GetClientFile loads a product owner together with all related records.
func (s *Service) GetClientFile(ctx context.Context, ownerID string) (ClientFile, error) {
	if s == nil || s.store == nil {
		return ClientFile{}, ErrStoreNotConfigured
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return ClientFile{}, ErrOwnerIDRequired
	}

	owner, err := s.store.GetProductOwner(ctx, ownerID)
	if err != nil {
		return ClientFile{}, err
	}
	relationships, err := s.store.ListSpecialRelationshipsByOwner(ctx, ownerID)
	if err != nil {
		return ClientFile{}, err
	}
	documents, err := s.store.ListLegalDocumentsByOwner(ctx, ownerID)
	if err != nil {
		return ClientFile{}, err
	}
	healthRecords, err := s.store.ListHealthRecordsByOwner(ctx, ownerID)
	if err != nil {
		return ClientFile{}, err
	}
	return ClientFile{
		Owner:         owner,
		Relationships: relationships,
		Documents:     documents,
		HealthRecords: healthRecords,
	}, nil
}
