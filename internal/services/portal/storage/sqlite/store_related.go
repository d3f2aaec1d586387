package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	clients "github.com/kingstons-portal/backoffice/internal/clients/domain"
	"github.com/kingstons-portal/backoffice/internal/services/portal/domain"
)

// PutSpecialRelationship inserts or replaces one special relationship record.
func (s *Store) PutSpecialRelationship(ctx context.Context, rel clients.SpecialRelationship) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(rel.ID) == "" {
		return fmt.Errorf("relationship id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO special_relationships (
		   id, owner_id, name, relation, status, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   relation = excluded.relation,
		   status = excluded.status,
		   updated_at = excluded.updated_at`,
		rel.ID,
		rel.OwnerID,
		rel.Name,
		rel.Relation,
		string(rel.Status),
		toMillis(rel.CreatedAt),
		toMillis(rel.UpdatedAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("put special relationship: %w", err)
	}
	return nil
}

// GetSpecialRelationship returns one special relationship by ID.
func (s *Store) GetSpecialRelationship(ctx context.Context, relationshipID string) (clients.SpecialRelationship, error) {
	if err := s.ready(ctx); err != nil {
		return clients.SpecialRelationship{}, err
	}
	relationshipID = strings.TrimSpace(relationshipID)
	if relationshipID == "" {
		return clients.SpecialRelationship{}, fmt.Errorf("relationship id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, owner_id, name, relation, status, created_at, updated_at
		   FROM special_relationships
		  WHERE id = ?`,
		relationshipID,
	)
	var rel clients.SpecialRelationship
	var status string
	var createdAt, updatedAt int64
	err := row.Scan(&rel.ID, &rel.OwnerID, &rel.Name, &rel.Relation, &status, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return clients.SpecialRelationship{}, domain.ErrNotFound
		}
		return clients.SpecialRelationship{}, fmt.Errorf("get special relationship: %w", err)
	}
	rel.Status = clients.RelationshipStatus(status)
	rel.CreatedAt = fromMillis(createdAt)
	rel.UpdatedAt = fromMillis(updatedAt)
	return rel, nil
}

// ListSpecialRelationshipsByOwner returns all relationships for one owner,
// newest first.
func (s *Store) ListSpecialRelationshipsByOwner(ctx context.Context, ownerID string) ([]clients.SpecialRelationship, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, owner_id, name, relation, status, created_at, updated_at
		   FROM special_relationships
		  WHERE owner_id = ?
		  ORDER BY created_at DESC, id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list special relationships: %w", err)
	}
	defer rows.Close()

	var rels []clients.SpecialRelationship
	for rows.Next() {
		var rel clients.SpecialRelationship
		var status string
		var createdAt, updatedAt int64
		if err := rows.Scan(&rel.ID, &rel.OwnerID, &rel.Name, &rel.Relation, &status, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("list special relationships: %w", err)
		}
		rel.Status = clients.RelationshipStatus(status)
		rel.CreatedAt = fromMillis(createdAt)
		rel.UpdatedAt = fromMillis(updatedAt)
		rels = append(rels, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list special relationships: %w", err)
	}
	return rels, nil
}

// PutLegalDocument inserts or replaces one legal document record.
func (s *Store) PutLegalDocument(ctx context.Context, doc clients.LegalDocument) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(doc.ID) == "" {
		return fmt.Errorf("document id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO legal_documents (
		   id, owner_id, kind, notes, status, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   kind = excluded.kind,
		   notes = excluded.notes,
		   status = excluded.status,
		   updated_at = excluded.updated_at`,
		doc.ID,
		doc.OwnerID,
		doc.Kind,
		doc.Notes,
		string(doc.Status),
		toMillis(doc.CreatedAt),
		toMillis(doc.UpdatedAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("put legal document: %w", err)
	}
	return nil
}

// GetLegalDocument returns one legal document by ID.
func (s *Store) GetLegalDocument(ctx context.Context, documentID string) (clients.LegalDocument, error) {
	if err := s.ready(ctx); err != nil {
		return clients.LegalDocument{}, err
	}
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return clients.LegalDocument{}, fmt.Errorf("document id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, owner_id, kind, notes, status, created_at, updated_at
		   FROM legal_documents
		  WHERE id = ?`,
		documentID,
	)
	var doc clients.LegalDocument
	var status string
	var createdAt, updatedAt int64
	err := row.Scan(&doc.ID, &doc.OwnerID, &doc.Kind, &doc.Notes, &status, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return clients.LegalDocument{}, domain.ErrNotFound
		}
		return clients.LegalDocument{}, fmt.Errorf("get legal document: %w", err)
	}
	doc.Status = clients.DocumentStatus(status)
	doc.CreatedAt = fromMillis(createdAt)
	doc.UpdatedAt = fromMillis(updatedAt)
	return doc, nil
}

// ListLegalDocumentsByOwner returns all legal documents for one owner,
// newest first.
func (s *Store) ListLegalDocumentsByOwner(ctx context.Context, ownerID string) ([]clients.LegalDocument, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, owner_id, kind, notes, status, created_at, updated_at
		   FROM legal_documents
		  WHERE owner_id = ?
		  ORDER BY created_at DESC, id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list legal documents: %w", err)
	}
	defer rows.Close()

	var docs []clients.LegalDocument
	for rows.Next() {
		var doc clients.LegalDocument
		var status string
		var createdAt, updatedAt int64
		if err := rows.Scan(&doc.ID, &doc.OwnerID, &doc.Kind, &doc.Notes, &status, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("list legal documents: %w", err)
		}
		doc.Status = clients.DocumentStatus(status)
		doc.CreatedAt = fromMillis(createdAt)
		doc.UpdatedAt = fromMillis(updatedAt)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list legal documents: %w", err)
	}
	return docs, nil
}

// PutHealthRecord inserts or replaces one health and vulnerability record.
func (s *Store) PutHealthRecord(ctx context.Context, record clients.HealthRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("health record id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO health_records (
		   id, owner_id, title, vulnerability, status, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title = excluded.title,
		   vulnerability = excluded.vulnerability,
		   status = excluded.status,
		   updated_at = excluded.updated_at`,
		record.ID,
		record.OwnerID,
		record.Title,
		record.Vulnerability,
		string(record.Status),
		toMillis(record.CreatedAt),
		toMillis(record.UpdatedAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("put health record: %w", err)
	}
	return nil
}

// GetHealthRecord returns one health and vulnerability record by ID.
func (s *Store) GetHealthRecord(ctx context.Context, recordID string) (clients.HealthRecord, error) {
	if err := s.ready(ctx); err != nil {
		return clients.HealthRecord{}, err
	}
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return clients.HealthRecord{}, fmt.Errorf("health record id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, owner_id, title, vulnerability, status, created_at, updated_at
		   FROM health_records
		  WHERE id = ?`,
		recordID,
	)
	var record clients.HealthRecord
	var status string
	var createdAt, updatedAt int64
	err := row.Scan(&record.ID, &record.OwnerID, &record.Title, &record.Vulnerability, &status, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return clients.HealthRecord{}, domain.ErrNotFound
		}
		return clients.HealthRecord{}, fmt.Errorf("get health record: %w", err)
	}
	record.Status = clients.HealthStatus(status)
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)
	return record, nil
}

// ListHealthRecordsByOwner returns all health records for one owner,
// newest first.
func (s *Store) ListHealthRecordsByOwner(ctx context.Context, ownerID string) ([]clients.HealthRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, owner_id, title, vulnerability, status, created_at, updated_at
		   FROM health_records
		  WHERE owner_id = ?
		  ORDER BY created_at DESC, id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list health records: %w", err)
	}
	defer rows.Close()

	var records []clients.HealthRecord
	for rows.Next() {
		var record clients.HealthRecord
		var status string
		var createdAt, updatedAt int64
		if err := rows.Scan(&record.ID, &record.OwnerID, &record.Title, &record.Vulnerability, &status, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("list health records: %w", err)
		}
		record.Status = clients.HealthStatus(status)
		record.CreatedAt = fromMillis(createdAt)
		record.UpdatedAt = fromMillis(updatedAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list health records: %w", err)
	}
	return records, nil
}
