package notify

import (
	"context"
	"time"

	"github.com/kingstons-portal/backoffice/internal/clients/statusflow"
)

const recordTimeout = 5 * time.Second

// InboxSink forwards controller notices into one advisor inbox. Notices for
// the same entity with the same message collapse onto one inbox item.
type InboxSink struct {
	inbox     *Inbox
	advisorID string
	entityID  string
	onErr     func(error)
}

var _ statusflow.Notifier = (*InboxSink)(nil)

// SinkOption customizes an InboxSink.
type SinkOption func(*InboxSink)

// WithRecordErrorHandler installs a callback for failed inbox writes.
// Without one, failed writes are dropped.
func WithRecordErrorHandler(handler func(error)) SinkOption {
	return func(s *InboxSink) {
		s.onErr = handler
	}
}

// NewInboxSink builds a sink that records notices for one advisor about one
// entity.
func NewInboxSink(inbox *Inbox, advisorID string, entityID string, opts ...SinkOption) *InboxSink {
	sink := &InboxSink{
		inbox:     inbox,
		advisorID: advisorID,
		entityID:  entityID,
	}
	for _, opt := range opts {
		opt(sink)
	}
	return sink
}

// Success records a success notice.
func (s *InboxSink) Success(message string) {
	s.record(SeveritySuccess, message)
}

// Error records an error notice.
func (s *InboxSink) Error(message string) {
	s.record(SeverityError, message)
}

func (s *InboxSink) record(severity Severity, message string) {
	if s == nil || s.inbox == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	_, err := s.inbox.Record(ctx, RecordInput{
		AdvisorID: s.advisorID,
		Severity:  severity,
		Message:   message,
		DedupeKey: s.entityID + ":" + string(severity) + ":" + message,
	})
	if err != nil && s.onErr != nil {
		s.onErr(err)
	}
}
