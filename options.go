package promreg

import "time"

// newTicker is overridable in tests, following catrate's timeNewTicker idiom
// for making time-driven behavior deterministic to test.
var newTicker = time.NewTicker

// registryOptions holds configuration for [NewThreadRegistry], following the
// same functional-options shape as eventloop's loopOptions/LoopOption.
type registryOptions struct {
	maxRecords int
	gcInterval time.Duration
}

// RegistryOption configures a [ThreadRegistry].
type RegistryOption interface {
	applyRegistry(*registryOptions)
}

type registryOptionFunc func(*registryOptions)

func (f registryOptionFunc) applyRegistry(o *registryOptions) { f(o) }

// WithMaxRecords bounds how many records a registry's pool will allocate at
// once before [ThreadRegistry.NewHandle] returns [ErrAllocationFailed]. Zero
// (the default) means unbounded, matching ordinary Go heap behavior.
func WithMaxRecords(max int) RegistryOption {
	return registryOptionFunc(func(o *registryOptions) {
		o.maxRecords = max
	})
}

// WithGCInterval sets the suggested interval a caller-managed ticker should
// use to periodically invoke [ThreadRegistry.GarbageCollect]. The registry
// does not start a ticker itself — it has no internal scheduler — this
// option just carries the value for callers that want one configuration
// surface. See [RunPeriodicGC].
func WithGCInterval(d time.Duration) RegistryOption {
	return registryOptionFunc(func(o *registryOptions) {
		o.gcInterval = d
	})
}

func resolveRegistryOptions(opts []RegistryOption) *registryOptions {
	cfg := &registryOptions{gcInterval: 30 * time.Second}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyRegistry(cfg)
	}
	return cfg
}

// GCInterval returns the registry's configured garbage-collection interval
// (see [WithGCInterval]).
func (tr *ThreadRegistry) GCInterval() time.Duration {
	return tr.gcInterval
}

// RunPeriodicGC runs [ThreadRegistry.GarbageCollect] on tr every
// tr.GCInterval() until ctxDone is closed. It must be called from the
// registry's owner goroutine, and is meant to be run in that goroutine's own
// idle loop (e.g. a select alongside the goroutine's normal work), not
// spawned onto a separate goroutine, since GarbageCollect is owner-only.
func RunPeriodicGC(tr *ThreadRegistry, ctxDone <-chan struct{}) {
	ticker := newTicker(tr.GCInterval())
	defer ticker.Stop()
	for {
		select {
		case <-ctxDone:
			return
		case <-ticker.C:
			tr.GarbageCollect()
		}
	}
}
