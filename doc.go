// Package promreg implements a concurrent, per-goroutine-owner registry of
// in-flight asynchronous operations ("promises"), so operators can snapshot
// and inspect what every worker in a long-running server is currently doing.
//
// # Architecture
//
// A [ThreadRegistry] is a lock-free singly-linked list of [Record] values,
// owned by exactly one goroutine (the "owner"). The owner is the only
// goroutine permitted to call [ThreadRegistry.NewHandle] or
// [ThreadRegistry.GarbageCollect]; any goroutine may call
// [ThreadRegistry.MarkForDeletion] (via [Handle.Close]) or
// [ThreadRegistry.ForEach]. A [Directory] tracks every live ThreadRegistry in
// the process so an inspector can walk all of them.
//
// # Usage
//
//	dir := promreg.NewDirectory()
//
//	reg := promreg.NewThreadRegistry("worker-7")
//	dir.Register(reg)
//	defer func() {
//	    reg.GarbageCollect()
//	    dir.Unregister(reg)
//	}()
//
//	h, err := reg.NewHandle(promreg.SourceLocation{
//	    FileName:     "worker.go",
//	    FunctionName: "handleRequest",
//	    Line:         42,
//	})
//	if err != nil {
//	    // resource exhaustion; proceed without instrumentation
//	}
//	defer h.Close()
//
//	h.UpdateState(promreg.Suspended)
//
// # Thread Safety
//
//   - [ThreadRegistry.NewHandle] and [ThreadRegistry.GarbageCollect]: owner
//     goroutine only (GarbageCollect is also permitted from any goroutine
//     that observes the registry's refcount reach zero).
//   - [ThreadRegistry.MarkForDeletion], [ThreadRegistry.ForEach],
//     [Handle] mutators: any goroutine.
//   - [Directory]: safe for concurrent use from any goroutine.
//
// # Error Types
//
//   - [ContractViolation]: a programmer error in instrumentation (wrong
//     owner, foreign registry, GC from a non-owner, state regression). Fatal:
//     logged then the
//     process aborts.
//   - [ErrAllocationFailed]: resource exhaustion constructing a [Handle];
//     recoverable, propagated to the caller.
package promreg
