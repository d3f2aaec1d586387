package domain

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	clients "github.com/kingstons-portal/backoffice/internal/clients/domain"
)

// fakeStore is an in-memory Store for domain tests.
type fakeStore struct {
	mu            sync.Mutex
	owners        map[string]clients.ProductOwner
	relationships map[string]clients.SpecialRelationship
	documents     map[string]clients.LegalDocument
	healthRecords map[string]clients.HealthRecord
	failPut       error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		owners:        map[string]clients.ProductOwner{},
		relationships: map[string]clients.SpecialRelationship{},
		documents:     map[string]clients.LegalDocument{},
		healthRecords: map[string]clients.HealthRecord{},
	}
}

func (f *fakeStore) PutProductOwner(_ context.Context, owner clients.ProductOwner) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPut != nil {
		return f.failPut
	}
	f.owners[owner.ID] = owner
	return nil
}

func (f *fakeStore) GetProductOwner(_ context.Context, ownerID string) (clients.ProductOwner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner, ok := f.owners[ownerID]
	if !ok {
		return clients.ProductOwner{}, ErrNotFound
	}
	return owner, nil
}

func (f *fakeStore) ListProductOwners(_ context.Context, query ListOwnersQuery) (OwnerPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	owners := make([]clients.ProductOwner, 0, len(f.owners))
	for _, owner := range f.owners {
		owners = append(owners, owner)
	}
	sort.Slice(owners, func(i, j int) bool {
		if owners[i].CreatedAt.Equal(owners[j].CreatedAt) {
			return owners[i].ID > owners[j].ID
		}
		return owners[i].CreatedAt.After(owners[j].CreatedAt)
	})
	if query.PageSize > 0 && len(owners) > query.PageSize {
		owners = owners[:query.PageSize]
	}
	return OwnerPage{Owners: owners}, nil
}

func (f *fakeStore) PutSpecialRelationship(_ context.Context, rel clients.SpecialRelationship) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.relationships[rel.ID] = rel
	return nil
}

func (f *fakeStore) GetSpecialRelationship(_ context.Context, relationshipID string) (clients.SpecialRelationship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rel, ok := f.relationships[relationshipID]
	if !ok {
		return clients.SpecialRelationship{}, ErrNotFound
	}
	return rel, nil
}

func (f *fakeStore) ListSpecialRelationshipsByOwner(_ context.Context, ownerID string) ([]clients.SpecialRelationship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []clients.SpecialRelationship
	for _, rel := range f.relationships {
		if rel.OwnerID == ownerID {
			out = append(out, rel)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) PutLegalDocument(_ context.Context, doc clients.LegalDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.documents[doc.ID] = doc
	return nil
}

func (f *fakeStore) GetLegalDocument(_ context.Context, documentID string) (clients.LegalDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.documents[documentID]
	if !ok {
		return clients.LegalDocument{}, ErrNotFound
	}
	return doc, nil
}

func (f *fakeStore) ListLegalDocumentsByOwner(_ context.Context, ownerID string) ([]clients.LegalDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []clients.LegalDocument
	for _, doc := range f.documents {
		if doc.OwnerID == ownerID {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) PutHealthRecord(_ context.Context, record clients.HealthRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.healthRecords[record.ID] = record
	return nil
}

func (f *fakeStore) GetHealthRecord(_ context.Context, recordID string) (clients.HealthRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.healthRecords[recordID]
	if !ok {
		return clients.HealthRecord{}, ErrNotFound
	}
	return record, nil
}

func (f *fakeStore) ListHealthRecordsByOwner(_ context.Context, ownerID string) ([]clients.HealthRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []clients.HealthRecord
	for _, record := range f.healthRecords {
		if record.OwnerID == ownerID {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func sequentialIDGenerator(ids ...string) func() (string, error) {
	index := 0
	return func() (string, error) {
		if index >= len(ids) {
			return "", errors.New("id generator exhausted")
		}
		next := ids[index]
		index++
		return next, nil
	}
}
