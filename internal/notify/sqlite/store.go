// Package sqlite provides a SQLite-backed advisor inbox store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kingstons-portal/backoffice/internal/notify"
	"github.com/kingstons-portal/backoffice/internal/notify/sqlite/migrations"
	sqlitemigrate "github.com/kingstons-portal/backoffice/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store persists advisor inbox notices in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ notify.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite inbox store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
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

// PutNotice inserts or replaces one notice row.
func (s *Store) PutNotice(ctx context.Context, notice notify.Notice) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(notice.ID) == "" {
		return fmt.Errorf("notice id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO notices (id, advisor_id, severity, message, dedupe_key, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	advisor_id = excluded.advisor_id,
	severity = excluded.severity,
	message = excluded.message,
	dedupe_key = excluded.dedupe_key,
	updated_at = excluded.updated_at
`,
		notice.ID,
		notice.AdvisorID,
		string(notice.Severity),
		notice.Message,
		notice.DedupeKey,
		toMillis(notice.CreatedAt),
		toMillis(notice.UpdatedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return notify.ErrConflict
		}
		return fmt.Errorf("put notice: %w", err)
	}
	return nil
}

// GetNoticeByAdvisorAndDedupeKey loads one advisor notice by dedupe key.
func (s *Store) GetNoticeByAdvisorAndDedupeKey(ctx context.Context, advisorID string, dedupeKey string) (notify.Notice, error) {
	if err := s.ready(ctx); err != nil {
		return notify.Notice{}, err
	}
	advisorID = strings.TrimSpace(advisorID)
	dedupeKey = strings.TrimSpace(dedupeKey)
	if advisorID == "" {
		return notify.Notice{}, fmt.Errorf("advisor id is required")
	}
	if dedupeKey == "" {
		return notify.Notice{}, notify.ErrNotFound
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, advisor_id, severity, message, dedupe_key, created_at, updated_at
FROM notices
WHERE advisor_id = ? AND dedupe_key = ?
`, advisorID, dedupeKey)
	notice, err := scanNotice(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notify.Notice{}, notify.ErrNotFound
		}
		return notify.Notice{}, fmt.Errorf("get notice by dedupe key: %w", err)
	}
	return notice, nil
}

// ListNoticesByAdvisor lists one advisor inbox newest-first with cursor pagination.
func (s *Store) ListNoticesByAdvisor(ctx context.Context, advisorID string, pageSize int, pageToken string) (notify.NoticePage, error) {
	if err := s.ready(ctx); err != nil {
		return notify.NoticePage{}, err
	}
	advisorID = strings.TrimSpace(advisorID)
	pageToken = strings.TrimSpace(pageToken)
	if advisorID == "" {
		return notify.NoticePage{}, fmt.Errorf("advisor id is required")
	}
	if pageSize <= 0 {
		return notify.NoticePage{}, fmt.Errorf("page size must be greater than zero")
	}

	limit := pageSize + 1
	if pageToken == "" {
		rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, advisor_id, severity, message, dedupe_key, created_at, updated_at
FROM notices
WHERE advisor_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?
`, advisorID, limit)
		if err != nil {
			return notify.NoticePage{}, fmt.Errorf("list notices: %w", err)
		}
		defer rows.Close()
		return collectNoticePage(rows, pageSize)
	}

	tokenCreatedAt, err := s.noticeCreatedAtByID(ctx, advisorID, pageToken)
	if err != nil {
		if errors.Is(err, notify.ErrNotFound) {
			return notify.NoticePage{}, nil
		}
		return notify.NoticePage{}, err
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, advisor_id, severity, message, dedupe_key, created_at, updated_at
FROM notices
WHERE advisor_id = ?
  AND (created_at < ? OR (created_at = ? AND id < ?))
ORDER BY created_at DESC, id DESC
LIMIT ?
`, advisorID, toMillis(tokenCreatedAt), toMillis(tokenCreatedAt), pageToken, limit)
	if err != nil {
		return notify.NoticePage{}, fmt.Errorf("list notices with token: %w", err)
	}
	defer rows.Close()
	return collectNoticePage(rows, pageSize)
}

func (s *Store) noticeCreatedAtByID(ctx context.Context, advisorID string, noticeID string) (time.Time, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT created_at
FROM notices
WHERE advisor_id = ? AND id = ?
`, advisorID, noticeID)
	var createdAtMillis int64
	if err := row.Scan(&createdAtMillis); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, notify.ErrNotFound
		}
		return time.Time{}, fmt.Errorf("lookup notice cursor: %w", err)
	}
	return fromMillis(createdAtMillis), nil
}

type scanner func(dest ...any) error

func scanNotice(scan scanner) (notify.Notice, error) {
	var notice notify.Notice
	var severity string
	var createdAt int64
	var updatedAt int64
	if err := scan(
		&notice.ID,
		&notice.AdvisorID,
		&severity,
		&notice.Message,
		&notice.DedupeKey,
		&createdAt,
		&updatedAt,
	); err != nil {
		return notify.Notice{}, err
	}
	notice.Severity = notify.Severity(severity)
	notice.CreatedAt = fromMillis(createdAt)
	notice.UpdatedAt = fromMillis(updatedAt)
	return notice, nil
}

func collectNoticePage(rows *sql.Rows, pageSize int) (notify.NoticePage, error) {
	page := notify.NoticePage{
		Notices: make([]notify.Notice, 0, pageSize),
	}
	for rows.Next() {
		notice, err := scanNotice(rows.Scan)
		if err != nil {
			return notify.NoticePage{}, fmt.Errorf("scan notice row: %w", err)
		}
		page.Notices = append(page.Notices, notice)
	}
	if err := rows.Err(); err != nil {
		return notify.NoticePage{}, fmt.Errorf("iterate notice rows: %w", err)
	}
	if len(page.Notices) > pageSize {
		page.NextPageToken = page.Notices[pageSize-1].ID
		page.Notices = page.Notices[:pageSize]
	}
	return page, nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
