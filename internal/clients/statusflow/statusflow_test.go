package statusflow

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

type updaterCall struct {
	entityID string
	status   Status
}

// fakeUpdater records SetStatus calls and can be made to block so tests can
// observe the in-flight window.
type fakeUpdater struct {
	mu      sync.Mutex
	calls   []updaterCall
	result  Result
	started chan struct{}
	release chan struct{}
}

func newFakeUpdater(result Result) *fakeUpdater {
	return &fakeUpdater{result: result}
}

func (f *fakeUpdater) blockNextCall() {
	f.started = make(chan struct{})
	f.release = make(chan struct{})
}

func (f *fakeUpdater) SetStatus(_ context.Context, entityID string, status Status) Result {
	f.mu.Lock()
	f.calls = append(f.calls, updaterCall{entityID: entityID, status: status})
	started, release := f.started, f.release
	f.mu.Unlock()

	if started != nil {
		close(started)
		<-release
	}
	return f.result
}

func (f *fakeUpdater) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeUpdater) lastCall() updaterCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return updaterCall{}
	}
	return f.calls[len(f.calls)-1]
}

// recordingNotifier captures every notification in order.
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (r *recordingNotifier) Success(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, message)
}

func (r *recordingNotifier) Error(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, message)
}

func (r *recordingNotifier) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.successes), len(r.errors)
}

func newController(t *testing.T, status Status, updater StatusUpdater, notifier Notifier, onStatusChange func()) *Controller {
	t.Helper()
	controller, err := New(Config{
		EntityID:       "owner-1",
		Status:         status,
		Updater:        updater,
		Notifier:       notifier,
		OnStatusChange: onStatusChange,
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return controller
}

func TestNewValidatesConfig(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Status: StatusActive, Updater: newFakeUpdater(OK())})
	if !errors.Is(err, ErrEntityIDRequired) {
		t.Fatalf("expected entity id error, got %v", err)
	}

	_, err = New(Config{EntityID: "owner-1", Status: StatusActive})
	if !errors.Is(err, ErrUpdaterRequired) {
		t.Fatalf("expected updater error, got %v", err)
	}
}

func TestOfferedActionsPerStatus(t *testing.T) {
	t.Parallel()

	active := OfferedActions(StatusActive)
	if len(active) != 2 || active[0] != ActionLapse || active[1] != ActionMakeDeceased {
		t.Fatalf("expected active to offer lapse and makeDeceased, got %v", active)
	}

	for _, status := range []Status{StatusLapsed, StatusDeceased} {
		offered := OfferedActions(status)
		if len(offered) != 2 || offered[0] != ActionReactivate || offered[1] != ActionDelete {
			t.Fatalf("expected %s to offer reactivate and delete, got %v", status, offered)
		}
	}

	if got := OfferedActions(Status("archived")); got != nil {
		t.Fatalf("expected no actions for unknown status, got %v", got)
	}
}

func TestLapseCallsUpdaterOnceAndRefreshes(t *testing.T) {
	t.Parallel()

	updater := newFakeUpdater(OK())
	notifier := &recordingNotifier{}
	refreshes := 0
	controller := newController(t, StatusActive, updater, notifier, func() { refreshes++ })

	if err := controller.Perform(context.Background(), ActionLapse); err != nil {
		t.Fatalf("perform lapse: %v", err)
	}

	if updater.callCount() != 1 {
		t.Fatalf("expected exactly one updater call, got %d", updater.callCount())
	}
	call := updater.lastCall()
	if call.entityID != "owner-1" || call.status != StatusLapsed {
		t.Fatalf("expected SetStatus(owner-1, lapsed), got %+v", call)
	}
	if refreshes != 1 {
		t.Fatalf("expected exactly one refresh, got %d", refreshes)
	}
	successes, errs := notifier.counts()
	if successes != 1 || errs != 0 {
		t.Fatalf("expected one success and no errors, got %d/%d", successes, errs)
	}
	if !strings.Contains(notifier.successes[0], "lapsed") {
		t.Fatalf("expected success message to mention lapsed, got %q", notifier.successes[0])
	}
}

func TestMakeDeceasedTargetsDeceased(t *testing.T) {
	t.Parallel()

	updater := newFakeUpdater(OK())
	controller := newController(t, StatusActive, updater, &recordingNotifier{}, nil)

	if err := controller.Perform(context.Background(), ActionMakeDeceased); err != nil {
		t.Fatalf("perform makeDeceased: %v", err)
	}
	if call := updater.lastCall(); call.status != StatusDeceased {
		t.Fatalf("expected target deceased, got %s", call.status)
	}
}

func TestGuardGroupDisabledWhileInFlight(t *testing.T) {
	t.Parallel()

	updater := newFakeUpdater(OK())
	updater.blockNextCall()
	controller := newController(t, StatusActive, updater, &recordingNotifier{}, nil)

	done := make(chan error, 1)
	go func() {
		done <- controller.Perform(context.Background(), ActionLapse)
	}()
	<-updater.started

	if !controller.Disabled(ActionLapse) {
		t.Fatal("expected lapse to be disabled while in flight")
	}
	if !controller.Disabled(ActionMakeDeceased) {
		t.Fatal("expected sibling makeDeceased to be disabled while lapse is in flight")
	}
	if got := controller.Label(ActionLapse); got != "Loading..." {
		t.Fatalf("expected loading label, got %q", got)
	}
	if got := controller.Label(ActionMakeDeceased); got == "Loading..." {
		t.Fatal("expected sibling label to stay unchanged")
	}
	if err := controller.Perform(context.Background(), ActionMakeDeceased); !errors.Is(err, ErrActionInFlight) {
		t.Fatalf("expected in-flight rejection, got %v", err)
	}

	close(updater.release)
	if err := <-done; err != nil {
		t.Fatalf("perform lapse: %v", err)
	}

	if controller.Disabled(ActionLapse) || controller.Disabled(ActionMakeDeceased) {
		t.Fatal("expected guard group to be re-enabled after settle")
	}
	if got := controller.Label(ActionLapse); got != "Lapse" {
		t.Fatalf("expected label restored, got %q", got)
	}
}

func TestFailureUsesCollaboratorMessageVerbatim(t *testing.T) {
	t.Parallel()

	updater := newFakeUpdater(Failed("Network unreachable"))
	notifier := &recordingNotifier{}
	refreshes := 0
	controller := newController(t, StatusLapsed, updater, notifier, func() { refreshes++ })

	if err := controller.Perform(context.Background(), ActionReactivate); err != nil {
		t.Fatalf("expected failure to be absorbed, got %v", err)
	}

	successes, errs := notifier.counts()
	if successes != 0 || errs != 1 {
		t.Fatalf("expected exactly one error notification, got %d/%d", successes, errs)
	}
	if notifier.errors[0] != "Network unreachable" {
		t.Fatalf("expected verbatim collaborator message, got %q", notifier.errors[0])
	}
	if refreshes != 0 {
		t.Fatalf("expected no refresh after failure, got %d", refreshes)
	}
	if controller.Disabled(ActionReactivate) {
		t.Fatal("expected flag cleared after failure")
	}
}

func TestFailureFallsBackToGenericMessage(t *testing.T) {
	t.Parallel()

	updater := newFakeUpdater(Failed(""))
	notifier := &recordingNotifier{}
	controller := newController(t, StatusDeceased, updater, notifier, nil)

	if err := controller.Perform(context.Background(), ActionReactivate); err != nil {
		t.Fatalf("expected failure to be absorbed, got %v", err)
	}
	if notifier.errors[0] != "Failed to update status" {
		t.Fatalf("expected generic fallback, got %q", notifier.errors[0])
	}
}

func TestDeletePlaceholderNeverCallsUpdater(t *testing.T) {
	t.Parallel()

	updater := newFakeUpdater(OK())
	notifier := &recordingNotifier{}
	refreshes := 0
	controller := newController(t, StatusLapsed, updater, notifier, func() { refreshes++ })

	if err := controller.Perform(context.Background(), ActionDelete); err != nil {
		t.Fatalf("perform delete: %v", err)
	}

	if updater.callCount() != 0 {
		t.Fatalf("expected no updater calls for placeholder delete, got %d", updater.callCount())
	}
	if refreshes != 0 {
		t.Fatalf("expected no refresh for placeholder delete, got %d", refreshes)
	}
	successes, errs := notifier.counts()
	if successes != 1 || errs != 0 {
		t.Fatalf("expected one success notification, got %d/%d", successes, errs)
	}
	if notifier.successes[0] != "Delete functionality not yet implemented" {
		t.Fatalf("unexpected placeholder message %q", notifier.successes[0])
	}
	if controller.Disabled(ActionDelete) {
		t.Fatal("expected delete flag cleared after placeholder run")
	}
}

func TestActionNotOfferedRejected(t *testing.T) {
	t.Parallel()

	updater := newFakeUpdater(OK())
	controller := newController(t, StatusActive, updater, &recordingNotifier{}, nil)

	if err := controller.Perform(context.Background(), ActionReactivate); !errors.Is(err, ErrActionNotOffered) {
		t.Fatalf("expected not-offered rejection, got %v", err)
	}
	if updater.callCount() != 0 {
		t.Fatal("expected no updater call for out-of-contract action")
	}
}

func TestSequentialReactivatesEachRefreshOnce(t *testing.T) {
	t.Parallel()

	updater := newFakeUpdater(OK())
	notifier := &recordingNotifier{}
	refreshes := 0
	controller := newController(t, StatusLapsed, updater, notifier, func() { refreshes++ })

	if err := controller.Perform(context.Background(), ActionReactivate); err != nil {
		t.Fatalf("first reactivate: %v", err)
	}
	// Host refreshed, owner lapsed again later, host synced the new status.
	controller.SyncStatus(StatusLapsed)
	if err := controller.Perform(context.Background(), ActionReactivate); err != nil {
		t.Fatalf("second reactivate: %v", err)
	}

	if updater.callCount() != 2 {
		t.Fatalf("expected two updater calls, got %d", updater.callCount())
	}
	if refreshes != 2 {
		t.Fatalf("expected one refresh per call, got %d", refreshes)
	}
}

func TestControllerDoesNotAdvanceLocalStatus(t *testing.T) {
	t.Parallel()

	controller := newController(t, StatusActive, newFakeUpdater(OK()), &recordingNotifier{}, nil)

	if err := controller.Perform(context.Background(), ActionLapse); err != nil {
		t.Fatalf("perform lapse: %v", err)
	}
	// The displayed button set stays stale until the host syncs.
	if controller.Status() != StatusActive {
		t.Fatalf("expected local status to stay active, got %s", controller.Status())
	}
	controller.SyncStatus(StatusLapsed)
	if controller.Status() != StatusLapsed {
		t.Fatalf("expected synced status lapsed, got %s", controller.Status())
	}
}
