package notify

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kingstons-portal/backoffice/internal/platform/id"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Inbox orchestrates advisor inbox lifecycle behavior.
type Inbox struct {
	store Store
	clock func() time.Time
	newID func() (string, error)
}

// NewInbox constructs advisor inbox use-cases.
func NewInbox(store Store, clock func() time.Time, newID func() (string, error)) *Inbox {
	if clock == nil {
		clock = time.Now
	}
	if newID == nil {
		newID = id.NewID
	}
	return &Inbox{
		store: store,
		clock: clock,
		newID: newID,
	}
}

// Record appends one notice and de-duplicates by advisor+dedupe key.
func (i *Inbox) Record(ctx context.Context, input RecordInput) (Notice, error) {
	if i == nil || i.store == nil {
		return Notice{}, ErrStoreNotConfigured
	}
	advisorID := strings.TrimSpace(input.AdvisorID)
	if advisorID == "" {
		return Notice{}, ErrAdvisorIDRequired
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return Notice{}, ErrMessageRequired
	}
	severity := input.Severity
	if severity != SeverityError {
		severity = SeveritySuccess
	}
	dedupeKey := strings.TrimSpace(input.DedupeKey)
	if dedupeKey != "" {
		existing, err := i.store.GetNoticeByAdvisorAndDedupeKey(ctx, advisorID, dedupeKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Notice{}, err
		}
	}

	noticeID, err := i.newID()
	if err != nil {
		return Notice{}, err
	}
	now := i.nowUTC()
	notice := Notice{
		ID:        noticeID,
		AdvisorID: advisorID,
		Severity:  severity,
		Message:   message,
		DedupeKey: dedupeKey,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := i.store.PutNotice(ctx, notice); err != nil {
		if dedupeKey != "" && errors.Is(err, ErrConflict) {
			existing, lookupErr := i.store.GetNoticeByAdvisorAndDedupeKey(ctx, advisorID, dedupeKey)
			if lookupErr == nil {
				return existing, nil
			}
			if errors.Is(lookupErr, ErrNotFound) {
				return Notice{}, err
			}
			return Notice{}, lookupErr
		}
		return Notice{}, err
	}
	return notice, nil
}

// ListInbox lists advisor inbox notices newest first.
func (i *Inbox) ListInbox(ctx context.Context, input ListInboxInput) (NoticePage, error) {
	if i == nil || i.store == nil {
		return NoticePage{}, ErrStoreNotConfigured
	}
	advisorID := strings.TrimSpace(input.AdvisorID)
	if advisorID == "" {
		return NoticePage{}, ErrAdvisorIDRequired
	}
	pageSize := input.PageSize
	switch {
	case pageSize <= 0:
		pageSize = defaultPageSize
	case pageSize > maxPageSize:
		pageSize = maxPageSize
	}
	return i.store.ListNoticesByAdvisor(ctx, advisorID, pageSize, strings.TrimSpace(input.PageToken))
}

func (i *Inbox) nowUTC() time.Time {
	if i.clock == nil {
		return time.Now().UTC()
	}
	return i.clock().UTC()
}
