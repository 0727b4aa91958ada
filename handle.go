package promreg

import "sync/atomic"

// noCopy, embedded by value, causes `go vet` to flag accidental copies of a
// [Handle], mirroring the stdlib's own sync.WaitGroup idiom for discouraging
// copies of a type that must not be copied.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Handle is a scoped, non-copyable registration for one in-flight promise.
// [ThreadRegistry.NewHandle] inserts the underlying [Record] into the
// registry; [Handle.Close] marks it for deletion. A zero-value Handle (never
// attached) is safe, and Close on it is a no-op — this models the
// instrumentation opting out of tracking at runtime.
type Handle struct {
	_      noCopy
	record *Record
	closed atomic.Bool
}

// ID returns the underlying record's opaque identity, or 0 if the handle is
// empty (never attached to a record).
func (h *Handle) ID() uint64 {
	if h == nil || h.record == nil {
		return 0
	}
	return h.record.ID()
}

// SetAsyncWaiter records that another promise, identified by id, is waiting
// on this one.
func (h *Handle) SetAsyncWaiter(id uint64) {
	if h == nil || h.record == nil {
		return
	}
	h.record.setWaiter(AsyncWaiter(id))
}

// SetSyncWaiter records that a thread is parked synchronously awaiting this
// promise.
func (h *Handle) SetSyncWaiter(t ThreadInfo) {
	if h == nil || h.record == nil {
		return
	}
	h.record.setWaiter(SyncWaiter(t))
}

// ClearWaiter resets the waiter to [WaiterNone].
func (h *Handle) ClearWaiter() {
	if h == nil || h.record == nil {
		return
	}
	h.record.setWaiter(noWaiter)
}

// UpdateSourceLocationLine atomically updates the current line. File and
// function are immutable for the record's lifetime.
func (h *Handle) UpdateSourceLocationLine(line int) {
	if h == nil || h.record == nil {
		return
	}
	h.record.updateLine(line)
}

// UpdateState atomically updates the record's state. Running and Suspended
// may alternate freely, but storing an earlier state into a Resolved or
// Deleted record is a fatal [ContractViolation] ("state-regression"). The
// check and the store are not one CAS, since all writers agree on the
// successor state for any given lifetime moment.
func (h *Handle) UpdateState(s State) {
	if h == nil || h.record == nil {
		return
	}
	h.record.updateState(s)
}

// Close marks the underlying record for deletion via
// [ThreadRegistry.MarkForDeletion]. Safe to call multiple times and safe on
// an empty handle. Instrumentation should defer Close when the instrumented
// coroutine's frame is constructed.
func (h *Handle) Close() {
	if h == nil || h.record == nil {
		return
	}
	if !h.closed.CompareAndSwap(false, true) {
		return
	}
	h.record.registry.MarkForDeletion(h.record)
}
