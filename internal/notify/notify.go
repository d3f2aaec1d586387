// Package notify records status-change notices into a store-backed advisor
// inbox. Controllers talk to it through the statusflow.Notifier contract.
package notify

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a notice record was not found.
	ErrNotFound = errors.New("notice not found")
	// ErrConflict indicates a write conflicted with existing uniqueness constraints.
	ErrConflict = errors.New("notice conflict")
	// ErrStoreNotConfigured indicates the inbox is missing persistence wiring.
	ErrStoreNotConfigured = errors.New("notice store is not configured")
	// ErrAdvisorIDRequired indicates advisor identity is required.
	ErrAdvisorIDRequired = errors.New("advisor id is required")
	// ErrMessageRequired indicates a notice message is required.
	ErrMessageRequired = errors.New("notice message is required")
)

// Severity classifies one inbox notice.
type Severity string

// Notice severities.
const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notice captures one advisor-targeted inbox item.
type Notice struct {
	ID        string
	AdvisorID string
	Severity  Severity
	Message   string
	DedupeKey string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoticePage is a paged advisor inbox view.
type NoticePage struct {
	Notices       []Notice
	NextPageToken string
}

// RecordInput describes one notice to append.
type RecordInput struct {
	AdvisorID string
	Severity  Severity
	Message   string
	DedupeKey string
}

// ListInboxInput configures advisor inbox listing.
type ListInboxInput struct {
	AdvisorID string
	PageSize  int
	PageToken string
}

// Store is the persistence boundary for advisor inbox notices.
type Store interface {
	GetNoticeByAdvisorAndDedupeKey(ctx context.Context, advisorID string, dedupeKey string) (Notice, error)
	PutNotice(ctx context.Context, notice Notice) error
	ListNoticesByAdvisor(ctx context.Context, advisorID string, pageSize int, pageToken string) (NoticePage, error)
}
