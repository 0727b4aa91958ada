package promreg

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/windtunnel-io/promreg/threadid"
)

// State is the lifecycle state of a [Record]. Transitions only advance:
// Running -> Suspended <-> Running -> Resolved -> Deleted. Deleted is
// terminal, set exactly once by [ThreadRegistry.MarkForDeletion].
type State uint32

const (
	// Running indicates the promise's coroutine is actively executing.
	Running State = iota
	// Suspended indicates the coroutine is parked at a suspension point.
	Suspended
	// Resolved indicates the promise has produced its result.
	Resolved
	// Deleted is the terminal state, set at mark-for-deletion.
	Deleted
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Suspended:
		return "Suspended"
	case Resolved:
		return "Resolved"
	case Deleted:
		return "Deleted"
	default:
		return "Unknown"
	}
}

// WaiterKind discriminates the alternatives of [Waiter].
type WaiterKind uint8

const (
	// WaiterNone means nothing is currently waiting on this promise.
	WaiterNone WaiterKind = iota
	// WaiterAsync means another promise, identified by AsyncID, is waiting.
	WaiterAsync
	// WaiterSync means a thread is parked synchronously awaiting this promise.
	WaiterSync
)

// Waiter is a tagged union of the entity that will be notified when a
// promise resolves: none, another async promise, or a synchronously parked
// thread. Values are immutable once constructed; a [Record]'s waiter field
// is updated by atomically swapping the pointer, so a concurrent [Snapshot]
// never observes a torn value.
type Waiter struct {
	Kind       WaiterKind
	AsyncID    uint64
	SyncThread ThreadInfo
}

// noWaiter is the shared value used for [WaiterNone].
var noWaiter = &Waiter{Kind: WaiterNone}

// AsyncWaiter constructs a Waiter referencing another promise by id.
func AsyncWaiter(id uint64) *Waiter {
	return &Waiter{Kind: WaiterAsync, AsyncID: id}
}

// SyncWaiter constructs a Waiter referencing a synchronously parked thread.
func SyncWaiter(t ThreadInfo) *Waiter {
	return &Waiter{Kind: WaiterSync, SyncThread: t}
}

// ThreadInfo names the owner of a [ThreadRegistry]: a caller-supplied
// logical name plus the OS thread id captured at registry construction
// (display-only; see package threadid).
type ThreadInfo struct {
	Name       string
	PlatformID int64
}

// SourceLocation names a call site. FileName and FunctionName are captured
// once, at [ThreadRegistry.NewHandle] time, and are immutable stable string
// references for the record's lifetime; Line is mutated as the coroutine
// crosses suspension points.
type SourceLocation struct {
	FileName     string
	FunctionName string
	Line         int
}

// Snapshot is a by-value, per-field-consistent (but not cross-field
// consistent) capture of a [Record], taken by [Record.Snapshot] during
// [ThreadRegistry.ForEach]. This is intentional: inspectors tolerate a
// plausible-but-not-linearizable view.
type Snapshot struct {
	ID             uint64
	Thread         ThreadInfo
	SourceLocation SourceLocation
	Waiter         Waiter
	State          State
}

// Record is the intrusive node tracked by a [ThreadRegistry]: a promise's
// identity, owning thread, mutable source location, mutable waiter
// reference, mutable state, and the linked-list pointers used by the
// registry's lock-free protocol.
//
// Record is never copied; it is always heap-allocated and referenced by
// pointer (its address is also its serializable [Record.ID]).
type Record struct {
	thread       ThreadInfo
	fileName     string
	functionName string
	line         atomic.Uint32
	waiter       atomic.Pointer[Waiter]
	state        atomic.Uint32

	registry *ThreadRegistry

	// next is mutable by the owner thread only (see ThreadRegistry.add and
	// ThreadRegistry.GarbageCollect); exposed as an atomic pointer purely so
	// that ForEach, which may run on any goroutine, observes it without a
	// data race, per the registry's documented happens-before chain.
	next atomic.Pointer[Record]

	// previous is the back-pointer to the record in front of this one in the
	// live list. add sets it when it links a new predecessor in front of this
	// record, and unlink rewrites it (back to nil if this record becomes the
	// head) when that predecessor is reclaimed; see ThreadRegistry.unlink for
	// why GarbageCollect never observes it stale.
	previous atomic.Pointer[Record]

	// nextToFree links this record onto the registry's free list. Mutable
	// only by the thread that wins the CAS race to link it on, and then
	// only read by GarbageCollect.
	nextToFree atomic.Pointer[Record]
}

// ID returns the record's opaque, stable identity: its own address, cast to
// an integer. This is the natural choice in a language with no other notion
// of object identity to hang a serializable id off of.
func (r *Record) ID() uint64 {
	return uint64(uintptr(unsafe.Pointer(r)))
}

// Thread returns the owning thread's captured identity.
func (r *Record) Thread() ThreadInfo {
	return r.thread
}

// State atomically loads the current state.
func (r *Record) State() State {
	return State(r.state.Load())
}

// Line atomically loads the current source line.
func (r *Record) Line() int {
	return int(r.line.Load())
}

// Waiter atomically loads the current waiter.
func (r *Record) Waiter() Waiter {
	w := r.waiter.Load()
	if w == nil {
		return Waiter{Kind: WaiterNone}
	}
	return *w
}

// Snapshot reads the state, waiter, and line atomic cells with acquire
// semantics and returns a by-value, per-field-consistent [Snapshot]. It is
// explicitly not consistent across fields: an inspector may see a Running
// state alongside a waiter or line set moments later or earlier. This
// matches the registry's documented tolerance model.
func (r *Record) Snapshot() Snapshot {
	return Snapshot{
		ID:     r.ID(),
		Thread: r.thread,
		SourceLocation: SourceLocation{
			FileName:     r.fileName,
			FunctionName: r.functionName,
			Line:         r.Line(),
		},
		Waiter: r.Waiter(),
		State:  r.State(),
	}
}

// updateState atomically stores a new state. Moving a Resolved or Deleted
// record back to an earlier state is a fatal "state-regression"
// [ContractViolation]; see [Handle.UpdateState] for the conventional entry
// point.
func (r *Record) updateState(s State) {
	if old := r.State(); old >= Resolved && s < old {
		fatal("state-regression", fmt.Sprintf("record %d: %s -> %s", r.ID(), old, s))
	}
	r.state.Store(uint32(s))
}

// updateLine atomically stores the current line (file/function are
// immutable for the record's lifetime).
func (r *Record) updateLine(line int) {
	r.line.Store(uint32(line))
}

// setWaiter atomically replaces the waiter.
func (r *Record) setWaiter(w *Waiter) {
	if w == nil {
		w = noWaiter
	}
	r.waiter.Store(w)
}

// captureThreadInfo builds a ThreadInfo for a newly constructed
// ThreadRegistry, using the logical name supplied by the caller and the
// platform thread id observed at that moment.
func captureThreadInfo(name string) ThreadInfo {
	return ThreadInfo{Name: name, PlatformID: threadid.Capture()}
}
