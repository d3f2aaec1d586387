package domain

import (
	"context"
	"strings"

	clients "github.com/kingstons-portal/backoffice/internal/clients/domain"
	apperrors "github.com/kingstons-portal/backoffice/internal/platform/errors"
)

// requireOwner loads the product owner a related record attaches to so that
// related records can never be created against a missing client.
func (s *Service) requireOwner(ctx context.Context, ownerID string) (clients.ProductOwner, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return clients.ProductOwner{}, ErrOwnerIDRequired
	}
	return s.store.GetProductOwner(ctx, ownerID)
}

// CreateSpecialRelationship records a relationship for an existing product owner.
func (s *Service) CreateSpecialRelationship(ctx context.Context, input clients.CreateSpecialRelationshipInput) (clients.SpecialRelationship, error) {
	if s == nil || s.store == nil {
		return clients.SpecialRelationship{}, ErrStoreNotConfigured
	}
	owner, err := s.requireOwner(ctx, input.OwnerID)
	if err != nil {
		return clients.SpecialRelationship{}, err
	}
	input.OwnerID = owner.ID

	rel, err := clients.CreateSpecialRelationship(input, s.clock, s.newID)
	if err != nil {
		return clients.SpecialRelationship{}, err
	}
	if err := s.store.PutSpecialRelationship(ctx, rel); err != nil {
		return clients.SpecialRelationship{}, err
	}
	return rel, nil
}

// ListSpecialRelationships returns all relationships for one product owner.
func (s *Service) ListSpecialRelationships(ctx context.Context, ownerID string) ([]clients.SpecialRelationship, error) {
	if s == nil || s.store == nil {
		return nil, ErrStoreNotConfigured
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrOwnerIDRequired
	}
	return s.store.ListSpecialRelationshipsByOwner(ctx, ownerID)
}

// SetSpecialRelationshipStatus toggles a relationship between active and inactive.
func (s *Service) SetSpecialRelationshipStatus(ctx context.Context, relationshipID string, statusLabel string) (clients.SpecialRelationship, error) {
	if s == nil || s.store == nil {
		return clients.SpecialRelationship{}, ErrStoreNotConfigured
	}
	relationshipID = strings.TrimSpace(relationshipID)
	if relationshipID == "" {
		return clients.SpecialRelationship{}, ErrRecordIDRequired
	}
	target, ok := clients.ParseRelationshipStatus(statusLabel)
	if !ok {
		return clients.SpecialRelationship{}, apperrors.New(apperrors.CodeRelationshipInvalidStatus, "invalid special relationship status "+statusLabel)
	}

	rel, err := s.store.GetSpecialRelationship(ctx, relationshipID)
	if err != nil {
		return clients.SpecialRelationship{}, err
	}
	updated, err := clients.WithRelationshipStatus(rel, target, s.clock)
	if err != nil {
		return clients.SpecialRelationship{}, err
	}
	if err := s.store.PutSpecialRelationship(ctx, updated); err != nil {
		return clients.SpecialRelationship{}, err
	}
	return updated, nil
}

// CreateLegalDocument registers a legal document for an existing product owner.
func (s *Service) CreateLegalDocument(ctx context.Context, input clients.CreateLegalDocumentInput) (clients.LegalDocument, error) {
	if s == nil || s.store == nil {
		return clients.LegalDocument{}, ErrStoreNotConfigured
	}
	owner, err := s.requireOwner(ctx, input.OwnerID)
	if err != nil {
		return clients.LegalDocument{}, err
	}
	input.OwnerID = owner.ID

	doc, err := clients.CreateLegalDocument(input, s.clock, s.newID)
	if err != nil {
		return clients.LegalDocument{}, err
	}
	if err := s.store.PutLegalDocument(ctx, doc); err != nil {
		return clients.LegalDocument{}, err
	}
	return doc, nil
}

// ListLegalDocuments returns all legal documents for one product owner.
func (s *Service) ListLegalDocuments(ctx context.Context, ownerID string) ([]clients.LegalDocument, error) {
	if s == nil || s.store == nil {
		return nil, ErrStoreNotConfigured
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrOwnerIDRequired
	}
	return s.store.ListLegalDocumentsByOwner(ctx, ownerID)
}

// SetLegalDocumentStatus moves a legal document through its lifecycle graph.
func (s *Service) SetLegalDocumentStatus(ctx context.Context, documentID string, statusLabel string) (clients.LegalDocument, error) {
	if s == nil || s.store == nil {
		return clients.LegalDocument{}, ErrStoreNotConfigured
	}
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return clients.LegalDocument{}, ErrRecordIDRequired
	}
	target, ok := clients.ParseDocumentStatus(statusLabel)
	if !ok {
		return clients.LegalDocument{}, apperrors.New(apperrors.CodeDocumentInvalidStatus, "invalid legal document status "+statusLabel)
	}

	doc, err := s.store.GetLegalDocument(ctx, documentID)
	if err != nil {
		return clients.LegalDocument{}, err
	}
	updated, err := clients.WithDocumentStatus(doc, target, s.clock)
	if err != nil {
		return clients.LegalDocument{}, err
	}
	if err := s.store.PutLegalDocument(ctx, updated); err != nil {
		return clients.LegalDocument{}, err
	}
	return updated, nil
}

// CreateHealthRecord records a health note for an existing product owner.
func (s *Service) CreateHealthRecord(ctx context.Context, input clients.CreateHealthRecordInput) (clients.HealthRecord, error) {
	if s == nil || s.store == nil {
		return clients.HealthRecord{}, ErrStoreNotConfigured
	}
	owner, err := s.requireOwner(ctx, input.OwnerID)
	if err != nil {
		return clients.HealthRecord{}, err
	}
	input.OwnerID = owner.ID

	record, err := clients.CreateHealthRecord(input, s.clock, s.newID)
	if err != nil {
		return clients.HealthRecord{}, err
	}
	if err := s.store.PutHealthRecord(ctx, record); err != nil {
		return clients.HealthRecord{}, err
	}
	return record, nil
}

// ListHealthRecords returns all health records for one product owner.
func (s *Service) ListHealthRecords(ctx context.Context, ownerID string) ([]clients.HealthRecord, error) {
	if s == nil || s.store == nil {
		return nil, ErrStoreNotConfigured
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrOwnerIDRequired
	}
	return s.store.ListHealthRecordsByOwner(ctx, ownerID)
}

// SetHealthRecordStatus moves a health record through its lifecycle graph.
func (s *Service) SetHealthRecordStatus(ctx context.Context, recordID string, statusLabel string) (clients.HealthRecord, error) {
	if s == nil || s.store == nil {
		return clients.HealthRecord{}, ErrStoreNotConfigured
	}
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return clients.HealthRecord{}, ErrRecordIDRequired
	}
	target, ok := clients.ParseHealthStatus(statusLabel)
	if !ok {
		return clients.HealthRecord{}, apperrors.New(apperrors.CodeHealthRecordInvalidStatus, "invalid health record status "+statusLabel)
	}

	record, err := s.store.GetHealthRecord(ctx, recordID)
	if err != nil {
		return clients.HealthRecord{}, err
	}
	updated, err := clients.WithHealthStatus(record, target, s.clock)
	if err != nil {
		return clients.HealthRecord{}, err
	}
	if err := s.store.PutHealthRecord(ctx, updated); err != nil {
		return clients.HealthRecord{}, err
	}
	return updated, nil
}
