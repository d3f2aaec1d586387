// Package portalfakes provides lightweight in-memory portal store fakes for tests.
package portalfakes

import (
	"context"
	"sort"
	"sync"

	clients "github.com/kingstons-portal/backoffice/internal/clients/domain"
	"github.com/kingstons-portal/backoffice/internal/services/portal/domain"
)

// Store is an in-memory domain.Store fake for tests.
type Store struct {
	mu            sync.Mutex
	Owners        map[string]clients.ProductOwner
	Relationships map[string]clients.SpecialRelationship
	Documents     map[string]clients.LegalDocument
	HealthRecords map[string]clients.HealthRecord
}

// NewStore constructs a Store fake with initialized state maps.
func NewStore() *Store {
	return &Store{
		Owners:        make(map[string]clients.ProductOwner),
		Relationships: make(map[string]clients.SpecialRelationship),
		Documents:     make(map[string]clients.LegalDocument),
		HealthRecords: make(map[string]clients.HealthRecord),
	}
}

func (s *Store) PutProductOwner(_ context.Context, owner clients.ProductOwner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Owners[owner.ID] = owner
	return nil
}

func (s *Store) GetProductOwner(_ context.Context, ownerID string) (clients.ProductOwner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	owner, ok := s.Owners[ownerID]
	if !ok {
		return clients.ProductOwner{}, domain.ErrNotFound
	}
	return owner, nil
}

// ListProductOwners pages owners newest first; the filter expression is ignored,
// which matches what these fakes are for: exercising handler plumbing, not queries.
func (s *Store) ListProductOwners(_ context.Context, query domain.ListOwnersQuery) (domain.OwnerPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owners := make([]clients.ProductOwner, 0, len(s.Owners))
	for _, owner := range s.Owners {
		owners = append(owners, owner)
	}
	sort.Slice(owners, func(i, j int) bool {
		if owners[i].CreatedAt.Equal(owners[j].CreatedAt) {
			return owners[i].ID > owners[j].ID
		}
		return owners[i].CreatedAt.After(owners[j].CreatedAt)
	})

	page := domain.OwnerPage{}
	skipping := query.PageToken != ""
	for _, owner := range owners {
		if skipping {
			if owner.ID == query.PageToken {
				skipping = false
			}
			continue
		}
		if query.PageSize > 0 && len(page.Owners) == query.PageSize {
			page.NextPageToken = page.Owners[len(page.Owners)-1].ID
			break
		}
		page.Owners = append(page.Owners, owner)
	}
	return page, nil
}

func (s *Store) PutSpecialRelationship(_ context.Context, rel clients.SpecialRelationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Relationships[rel.ID] = rel
	return nil
}

func (s *Store) GetSpecialRelationship(_ context.Context, relationshipID string) (clients.SpecialRelationship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rel, ok := s.Relationships[relationshipID]
	if !ok {
		return clients.SpecialRelationship{}, domain.ErrNotFound
	}
	return rel, nil
}

func (s *Store) ListSpecialRelationshipsByOwner(_ context.Context, ownerID string) ([]clients.SpecialRelationship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rels []clients.SpecialRelationship
	for _, rel := range s.Relationships {
		if rel.OwnerID == ownerID {
			rels = append(rels, rel)
		}
	}
	sort.Slice(rels, func(i, j int) bool { return rels[i].ID < rels[j].ID })
	return rels, nil
}

func (s *Store) PutLegalDocument(_ context.Context, doc clients.LegalDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Documents[doc.ID] = doc
	return nil
}

func (s *Store) GetLegalDocument(_ context.Context, documentID string) (clients.LegalDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.Documents[documentID]
	if !ok {
		return clients.LegalDocument{}, domain.ErrNotFound
	}
	return doc, nil
}

func (s *Store) ListLegalDocumentsByOwner(_ context.Context, ownerID string) ([]clients.LegalDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var docs []clients.LegalDocument
	for _, doc := range s.Documents {
		if doc.OwnerID == ownerID {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

func (s *Store) PutHealthRecord(_ context.Context, record clients.HealthRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.HealthRecords[record.ID] = record
	return nil
}

func (s *Store) GetHealthRecord(_ context.Context, recordID string) (clients.HealthRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.HealthRecords[recordID]
	if !ok {
		return clients.HealthRecord{}, domain.ErrNotFound
	}
	return record, nil
}

func (s *Store) ListHealthRecordsByOwner(_ context.Context, ownerID string) ([]clients.HealthRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var records []clients.HealthRecord
	for _, record := range s.HealthRecords {
		if record.OwnerID == ownerID {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

var _ domain.Store = (*Store)(nil)
