package promreg

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ThreadRegistry is a per-owner-thread container of [Record] values. It
// implements a wait-free insertion and mark-for-deletion protocol,
// lock-bounded iteration, and owner-driven garbage collection with an
// explicit, documented happens-before chain.
//
//   - NewHandle (insertion via add): owner goroutine only.
//   - MarkForDeletion: any goroutine.
//   - ForEach: any goroutine (excludes concurrent GarbageCollect via mu).
//   - GarbageCollect: owner goroutine only, except the final pass once
//     refcount has reached zero (then any goroutine holding the last
//     reference may run it).
type ThreadRegistry struct {
	owner            ThreadInfo
	ownerGoroutineID uint64

	liveHead atomic.Pointer[Record]
	freeHead atomic.Pointer[Record]

	// refcount counts two classes of holder: the Directory (at most one)
	// and each live Record. It reaching zero triggers a final
	// GarbageCollect pass and renders the registry eligible for ordinary Go
	// garbage collection.
	refcount atomic.Int64

	// mu serializes ForEach against GarbageCollect only; it does not guard
	// Add or MarkForDeletion.
	mu sync.Mutex

	pool       *recordPool
	gcInterval time.Duration
}

// NewThreadRegistry creates a registry owned by the calling goroutine. The
// owner is captured once, at construction, and is immutable for the
// registry's lifetime.
func NewThreadRegistry(name string, opts ...RegistryOption) *ThreadRegistry {
	cfg := resolveRegistryOptions(opts)
	return &ThreadRegistry{
		owner:            captureThreadInfo(name),
		ownerGoroutineID: currentGoroutineID(),
		pool:             newRecordPool(cfg.maxRecords),
		gcInterval:       cfg.gcInterval,
	}
}

// Owner returns the captured identity of the registry's owner thread.
func (tr *ThreadRegistry) Owner() ThreadInfo {
	return tr.owner
}

// RefCount returns the current reference count, for diagnostics and metrics.
func (tr *ThreadRegistry) RefCount() int64 {
	return tr.refcount.Load()
}

func (tr *ThreadRegistry) assertOwner(rule string) {
	if currentGoroutineID() != tr.ownerGoroutineID {
		fatal(rule, fmt.Sprintf("registry owned by %q", tr.owner.Name))
	}
}

// NewHandle allocates a Record and inserts it into the registry, returning a
// [Handle] scoped to it. Precondition: called on the owner goroutine
// (violation is fatal). Returns [ErrAllocationFailed] if the registry's
// record pool has reached its configured capacity (see [WithMaxRecords]);
// the registry never partially inserts a record.
func (tr *ThreadRegistry) NewHandle(loc SourceLocation) (*Handle, error) {
	tr.assertOwner("wrong-owner-insert")

	rec, err := tr.pool.acquire()
	if err != nil {
		return nil, err
	}

	rec.thread = tr.owner
	rec.fileName = loc.FileName
	rec.functionName = loc.FunctionName
	rec.line.Store(uint32(loc.Line))
	rec.state.Store(uint32(Running))
	rec.waiter.Store(noWaiter)

	tr.add(rec)

	return &Handle{record: rec}, nil
}

// add links rec in as the new live-list head. Precondition: caller is the
// owner goroutine.
func (tr *ThreadRegistry) add(rec *Record) {
	rec.registry = tr

	oldHead := tr.liveHead.Load()
	rec.next.Store(oldHead)
	if oldHead != nil {
		oldHead.previous.Store(rec)
	}
	tr.liveHead.Store(rec) // release-publish; observed by ForEach's load.

	tr.refcount.Add(1)
}

// MarkForDeletion sets rec's state to [Deleted] and links it onto the free
// list via a CAS loop, ready for the next [ThreadRegistry.GarbageCollect]
// pass. May be called from any goroutine. Precondition: rec was allocated by
// this registry (violation is fatal).
//
// State is set to Deleted before the free-list CAS runs, so a snapshot
// racing with this call sees either
// the pre-deletion state still on the live list, or Deleted still on the
// live list — never a record that is Deleted yet already off the list from
// this goroutine's perspective.
func (tr *ThreadRegistry) MarkForDeletion(rec *Record) {
	if rec.registry != tr {
		fatal("foreign-registry-mark", fmt.Sprintf("record %d", rec.ID()))
	}

	rec.updateState(Deleted)

	for {
		old := tr.freeHead.Load()
		rec.nextToFree.Store(old)
		if tr.freeHead.CompareAndSwap(old, rec) {
			break
		}
	}

	tr.decRef()
}

// ForEach acquires the registry's internal lock and walks the live list from
// head to tail, invoking f for each record. The lock excludes concurrent
// GarbageCollect, so no record is unlinked or freed during the walk, even
// though next is owner-written: the owner cannot be running GarbageCollect
// and calling ForEach at the same moment, because ForEach itself holds mu.
func (tr *ThreadRegistry) ForEach(f func(*Record)) {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	for r := tr.liveHead.Load(); r != nil; r = r.next.Load() {
		f(r)
	}
}

// GarbageCollect unlinks and frees every record currently on the free list.
// Precondition: caller is the owner goroutine, or the registry's refcount
// has reached zero (the final-cleanup path, reachable from any goroutine
// holding the last reference). Violating this precondition is fatal.
func (tr *ThreadRegistry) GarbageCollect() {
	if currentGoroutineID() != tr.ownerGoroutineID && tr.refcount.Load() != 0 {
		fatal("non-owner-gc", fmt.Sprintf("registry owned by %q", tr.owner.Name))
	}

	chain := tr.freeHead.Swap(nil) // acquire-exchange; pairs with MarkForDeletion's release CAS.
	if chain == nil {
		return
	}

	tr.mu.Lock()
	reclaimed := 0
	for rec := chain; rec != nil; {
		nxt := rec.nextToFree.Load()
		tr.unlink(rec)
		tr.pool.release()
		reclaimed++
		rec = nxt
	}
	tr.mu.Unlock()

	logGCPass(tr.owner.Name, reclaimed)
}

// unlink removes rec from the live list using its previous back-pointer.
// Must be called with mu held.
//
// Go's sync/atomic operations are sequentially consistent, so unlike a
// relaxed/release-acquire memory model, previous is never observed stale
// here: add and GarbageCollect both run on the single owner goroutine
// (except the final pass, by which point no concurrent add can occur).
// unlink therefore has no stale-previous fallback: every record on the free
// chain is unlinked in the same pass that takes the chain.
func (tr *ThreadRegistry) unlink(rec *Record) {
	prev := rec.previous.Load()
	next := rec.next.Load()

	if prev == nil {
		tr.liveHead.Store(next)
	} else {
		prev.next.Store(next)
	}
	if next != nil {
		next.previous.Store(prev)
	}
}

// decRef decrements the reference count, running a final GarbageCollect pass
// when it reaches zero.
func (tr *ThreadRegistry) decRef() {
	if tr.refcount.Add(-1) == 0 {
		tr.GarbageCollect()
	}
}

// IncRef increments the reference count. Used by [Directory.Register].
func (tr *ThreadRegistry) IncRef() {
	tr.refcount.Add(1)
}

// DecRef decrements the reference count. Used by [Directory.Unregister].
func (tr *ThreadRegistry) DecRef() {
	tr.decRef()
}
