// Package sqlite provides a SQLite-backed portal storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	clients "github.com/kingstons-portal/backoffice/internal/clients/domain"
	apperrors "github.com/kingstons-portal/backoffice/internal/platform/errors"
	"github.com/kingstons-portal/backoffice/internal/platform/storage/cursor"
	sqlitemigrate "github.com/kingstons-portal/backoffice/internal/platform/storage/sqlitemigrate"
	"github.com/kingstons-portal/backoffice/internal/services/portal/domain"
	"github.com/kingstons-portal/backoffice/internal/services/portal/storage/filter"
	"github.com/kingstons-portal/backoffice/internal/services/portal/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists client-management state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite portal store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// PutProductOwner inserts or replaces one product owner record.
func (s *Store) PutProductOwner(ctx context.Context, owner clients.ProductOwner) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(owner.ID) == "" {
		return fmt.Errorf("product owner id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO product_owners (
		   id, known_as, title, firstname, surname, status, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   known_as = excluded.known_as,
		   title = excluded.title,
		   firstname = excluded.firstname,
		   surname = excluded.surname,
		   status = excluded.status,
		   updated_at = excluded.updated_at`,
		owner.ID,
		owner.KnownAs,
		owner.Title,
		owner.Firstname,
		owner.Surname,
		string(owner.Status),
		toMillis(owner.CreatedAt),
		toMillis(owner.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put product owner: %w", err)
	}
	return nil
}

// GetProductOwner returns one product owner by ID.
func (s *Store) GetProductOwner(ctx context.Context, ownerID string) (clients.ProductOwner, error) {
	if err := s.ready(ctx); err != nil {
		return clients.ProductOwner{}, err
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return clients.ProductOwner{}, fmt.Errorf("product owner id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, known_as, title, firstname, surname, status, created_at, updated_at
		   FROM product_owners
		  WHERE id = ?`,
		ownerID,
	)
	owner, err := scanOwner(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return clients.ProductOwner{}, domain.ErrNotFound
		}
		return clients.ProductOwner{}, fmt.Errorf("get product owner: %w", err)
	}
	return owner, nil
}

// ListProductOwners returns one page of product owners matching the query
// filter, newest first. Ties on created_at break on ID so pages are stable.
func (s *Store) ListProductOwners(ctx context.Context, query domain.ListOwnersQuery) (domain.OwnerPage, error) {
	if err := s.ready(ctx); err != nil {
		return domain.OwnerPage{}, err
	}
	if query.PageSize <= 0 {
		return domain.OwnerPage{}, fmt.Errorf("page size must be greater than zero")
	}

	cond, err := filter.ParseOwnerFilter(query.Filter)
	if err != nil {
		return domain.OwnerPage{}, apperrors.Wrap(apperrors.CodeListInvalidFilter, "invalid list filter", err)
	}

	var clauses []string
	var params []any
	if cond.Clause != "" {
		clauses = append(clauses, cond.Clause)
		params = append(params, cond.Params...)
	}

	pageToken := strings.TrimSpace(query.PageToken)
	if pageToken != "" {
		c, err := cursor.Decode(pageToken)
		if err != nil {
			return domain.OwnerPage{}, apperrors.Wrap(apperrors.CodeListInvalidPageToken, "invalid page token", err)
		}
		if err := cursor.ValidateFilterHash(c, query.Filter); err != nil {
			return domain.OwnerPage{}, apperrors.Wrap(apperrors.CodeListInvalidPageToken, "invalid page token", err)
		}
		clauses = append(clauses, "(created_at < ? OR (created_at = ? AND id < ?))")
		params = append(params, c.LastCreatedAt, c.LastCreatedAt, c.LastID)
	}

	querySQL := `SELECT id, known_as, title, firstname, surname, status, created_at, updated_at
	   FROM product_owners`
	if len(clauses) > 0 {
		querySQL += " WHERE " + strings.Join(clauses, " AND ")
	}
	querySQL += " ORDER BY created_at DESC, id DESC LIMIT ?"
	params = append(params, query.PageSize+1)

	rows, err := s.sqlDB.QueryContext(ctx, querySQL, params...)
	if err != nil {
		return domain.OwnerPage{}, fmt.Errorf("list product owners: %w", err)
	}
	defer rows.Close()

	page := domain.OwnerPage{
		Owners: make([]clients.ProductOwner, 0, query.PageSize),
	}
	for rows.Next() {
		owner, err := scanOwner(rows)
		if err != nil {
			return domain.OwnerPage{}, fmt.Errorf("list product owners: %w", err)
		}
		page.Owners = append(page.Owners, owner)
	}
	if err := rows.Err(); err != nil {
		return domain.OwnerPage{}, fmt.Errorf("list product owners: %w", err)
	}
	if len(page.Owners) > query.PageSize {
		page.Owners = page.Owners[:query.PageSize]
		last := page.Owners[query.PageSize-1]
		token, err := cursor.Encode(cursor.New(last.ID, toMillis(last.CreatedAt), query.Filter))
		if err != nil {
			return domain.OwnerPage{}, fmt.Errorf("encode page token: %w", err)
		}
		page.NextPageToken = token
	}

	return page, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOwner(row rowScanner) (clients.ProductOwner, error) {
	var owner clients.ProductOwner
	var status string
	var createdAt int64
	var updatedAt int64
	err := row.Scan(
		&owner.ID,
		&owner.KnownAs,
		&owner.Title,
		&owner.Firstname,
		&owner.Surname,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return clients.ProductOwner{}, err
	}
	owner.Status = clients.OwnerStatus(status)
	owner.CreatedAt = fromMillis(createdAt)
	owner.UpdatedAt = fromMillis(updatedAt)
	return owner, nil
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY, sqlite3lib.SQLITE_CONSTRAINT:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed")
}

var _ domain.Store = (*Store)(nil)
