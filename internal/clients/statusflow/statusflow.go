// Package statusflow drives the status action buttons for one rendered
// status-bearing record: which actions a status offers, the in-flight guard
// that prevents double submits, and the success/error reporting contract.
package statusflow

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Status is the generalized lifecycle label the controller operates on.
// Entity families with differently spelled enums adapt to these values at
// the StatusUpdater boundary.
type Status string

const (
	StatusActive   Status = "active"
	StatusLapsed   Status = "lapsed"
	StatusDeceased Status = "deceased"
)

// Action identifies one status action button.
type Action string

const (
	ActionLapse        Action = "lapse"
	ActionMakeDeceased Action = "makeDeceased"
	ActionReactivate   Action = "reactivate"
	ActionDelete       Action = "delete"
)

// Fixed user-facing copy for action outcomes.
const (
	msgLapsed       = "Product owner lapsed successfully"
	msgDeceased     = "Product owner marked as deceased successfully"
	msgReactivated  = "Product owner reactivated successfully"
	msgDeleteStub   = "Delete functionality not yet implemented"
	msgUpdateFailed = "Failed to update status"
	labelLoading    = "Loading..."
)

var (
	// ErrActionNotOffered indicates the action is not offered for the current status.
	ErrActionNotOffered = errors.New("action is not offered for the current status")
	// ErrActionInFlight indicates the action's guard group already has a call outstanding.
	ErrActionInFlight = errors.New("another action in the guard group is in flight")
	// ErrUpdaterRequired indicates the controller is missing its persistence collaborator.
	ErrUpdaterRequired = errors.New("status updater is required")
	// ErrEntityIDRequired indicates the controller was built without an entity id.
	ErrEntityIDRequired = errors.New("entity id is required")
)

// Result is the outcome of a StatusUpdater call. A failed update is a normal
// branch of the flow, not an exceptional one; the controller never sees a
// panic or an error value cross this boundary.
type Result struct {
	failed  bool
	message string
}

// OK returns a successful update result.
func OK() Result {
	return Result{}
}

// Failed returns a failed update result carrying an optional human-readable message.
func Failed(message string) Result {
	return Result{failed: true, message: strings.TrimSpace(message)}
}

// Failed reports whether the update failed.
func (r Result) Failed() bool { return r.failed }

// Message returns the collaborator-supplied failure message, if any.
func (r Result) Message() string { return r.message }

// StatusUpdater persists a status change for one entity.
type StatusUpdater interface {
	SetStatus(ctx context.Context, entityID string, status Status) Result
}

// Notifier receives user-visible success and error reports. Calls are
// fire-and-forget; the controller never consumes a return value.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Config wires one controller instance to its collaborators.
type Config struct {
	EntityID string
	Status   Status
	Updater  StatusUpdater
	Notifier Notifier
	// OnStatusChange, when set, is invoked with no arguments exactly once
	// after each successful persisted transition so the host can re-fetch
	// the entity. It is never invoked for failures or the delete placeholder.
	OnStatusChange func()
}

// Controller governs the status actions for one rendered entity instance.
// The in-flight flags are private per-instance state; they are not persisted
// and carry no identity beyond this instance's lifetime.
type Controller struct {
	entityID       string
	status         Status
	updater        StatusUpdater
	notifier       Notifier
	onStatusChange func()

	mu              sync.Mutex
	lapsing         bool
	markingDeceased bool
	reactivating    bool
	deleting        bool
}

// New builds a controller for one entity. The initial status is whatever the
// entity holds when the controller is created; the controller never advances
// its own copy and relies on SyncStatus after a host refresh.
func New(cfg Config) (*Controller, error) {
	entityID := strings.TrimSpace(cfg.EntityID)
	if entityID == "" {
		return nil, ErrEntityIDRequired
	}
	if cfg.Updater == nil {
		return nil, ErrUpdaterRequired
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Controller{
		entityID:       entityID,
		status:         cfg.Status,
		updater:        cfg.Updater,
		notifier:       notifier,
		onStatusChange: cfg.OnStatusChange,
	}, nil
}

// OfferedActions returns the actions offered for a status, in render order.
func OfferedActions(status Status) []Action {
	switch status {
	case StatusActive:
		return []Action{ActionLapse, ActionMakeDeceased}
	case StatusLapsed, StatusDeceased:
		return []Action{ActionReactivate, ActionDelete}
	default:
		return nil
	}
}

// TargetStatus returns the status an action persists. Delete has no target;
// the second return reports whether the action maps to one.
func TargetStatus(action Action) (Status, bool) {
	switch action {
	case ActionLapse:
		return StatusLapsed, true
	case ActionMakeDeceased:
		return StatusDeceased, true
	case ActionReactivate:
		return StatusActive, true
	default:
		return "", false
	}
}

// Offered returns the actions offered for the controller's current status.
func (c *Controller) Offered() []Action {
	c.mu.Lock()
	defer c.mu.Unlock()
	return OfferedActions(c.status)
}

// Status returns the controller's last-synced status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// SyncStatus records the authoritative status after a host refresh.
func (c *Controller) SyncStatus(status Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
}

// Disabled reports whether an action's button is disabled because any action
// in its guard group is in flight.
func (c *Controller) Disabled(action Action) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.groupBusyLocked(action)
}

// Label returns the button label for an action, replaced by loading copy
// while that action's own call is outstanding.
func (c *Controller) Label(action Action) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlightLocked(action) {
		return labelLoading
	}
	switch action {
	case ActionLapse:
		return "Lapse"
	case ActionMakeDeceased:
		return "Mark Deceased"
	case ActionReactivate:
		return "Reactivate"
	case ActionDelete:
		return "Delete"
	default:
		return string(action)
	}
}

// Perform executes one status action exactly once.
//
// Out-of-contract invocations (an action the current status does not offer,
// or a click while the guard group is busy) return an error without touching
// any collaborator. Transport failures from the updater are fully absorbed:
// they surface only through the Notifier and the flag's return to false,
// never as a returned error.
func (c *Controller) Perform(ctx context.Context, action Action) error {
	c.mu.Lock()
	if !actionOfferedLocked(c.status, action) {
		c.mu.Unlock()
		return ErrActionNotOffered
	}
	if c.groupBusyLocked(action) {
		c.mu.Unlock()
		return ErrActionInFlight
	}
	c.setInFlightLocked(action, true)
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.setInFlightLocked(action, false)
		c.mu.Unlock()
	}()

	if action == ActionDelete {
		// Placeholder: the delete endpoint is not final yet. Report the fixed
		// copy and perform no mutation so nothing silently claims deletion
		// occurred. Must move to the guarded SetStatus pattern once real.
		c.notifier.Success(msgDeleteStub)
		return nil
	}

	target, ok := TargetStatus(action)
	if !ok {
		return ErrActionNotOffered
	}

	result := c.updater.SetStatus(ctx, c.entityID, target)
	if result.Failed() {
		message := result.Message()
		if message == "" {
			message = msgUpdateFailed
		}
		c.notifier.Error(message)
		return nil
	}

	c.notifier.Success(successMessage(action))
	if c.onStatusChange != nil {
		c.onStatusChange()
	}
	return nil
}

func successMessage(action Action) string {
	switch action {
	case ActionLapse:
		return msgLapsed
	case ActionMakeDeceased:
		return msgDeceased
	case ActionReactivate:
		return msgReactivated
	default:
		return msgDeleteStub
	}
}

func actionOfferedLocked(status Status, action Action) bool {
	for _, offered := range OfferedActions(status) {
		if offered == action {
			return true
		}
	}
	return false
}

// guardGroup partitions actions into the two mutually exclusive button rows.
func guardGroup(action Action) []Action {
	switch action {
	case ActionLapse, ActionMakeDeceased:
		return []Action{ActionLapse, ActionMakeDeceased}
	default:
		return []Action{ActionReactivate, ActionDelete}
	}
}

func (c *Controller) groupBusyLocked(action Action) bool {
	for _, member := range guardGroup(action) {
		if c.inFlightLocked(member) {
			return true
		}
	}
	return false
}

func (c *Controller) inFlightLocked(action Action) bool {
	switch action {
	case ActionLapse:
		return c.lapsing
	case ActionMakeDeceased:
		return c.markingDeceased
	case ActionReactivate:
		return c.reactivating
	case ActionDelete:
		return c.deleting
	default:
		return false
	}
}

func (c *Controller) setInFlightLocked(action Action, value bool) {
	switch action {
	case ActionLapse:
		c.lapsing = value
	case ActionMakeDeceased:
		c.markingDeceased = value
	case ActionReactivate:
		c.reactivating = value
	case ActionDelete:
		c.deleting = value
	}
}

type noopNotifier struct{}

func (noopNotifier) Success(string) {}
func (noopNotifier) Error(string)   {}
