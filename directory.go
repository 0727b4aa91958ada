package promreg

import "sync"

// Directory is a process-wide, thread-safe collection of strong references
// to every live [ThreadRegistry], so an external inspector can enumerate all
// of them.
type Directory struct {
	mu   sync.Mutex
	regs map[*ThreadRegistry]struct{}
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{regs: make(map[*ThreadRegistry]struct{})}
}

// Register adds reg to the directory, taking a strong reference (+1 refcount).
func (d *Directory) Register(reg *ThreadRegistry) {
	d.mu.Lock()
	d.regs[reg] = struct{}{}
	d.mu.Unlock()

	reg.IncRef()
	logDirectoryChange("register", reg.Owner().Name)
}

// Unregister drops the directory's strong reference to reg (-1 refcount),
// which may trigger reg's final garbage-collection pass if nothing else
// holds a reference.
func (d *Directory) Unregister(reg *ThreadRegistry) {
	d.mu.Lock()
	_, ok := d.regs[reg]
	delete(d.regs, reg)
	d.mu.Unlock()

	if !ok {
		return
	}

	logDirectoryChange("unregister", reg.Owner().Name)
	reg.DecRef()
}

// ForEach snapshots the current set of registries under the directory lock,
// then invokes f on each outside the lock. Because each registry is already
// held by a strong reference for the duration of the snapshot, none can be
// destroyed mid-iteration from this call's perspective.
func (d *Directory) ForEach(f func(*ThreadRegistry)) {
	d.mu.Lock()
	snapshot := make([]*ThreadRegistry, 0, len(d.regs))
	for reg := range d.regs {
		snapshot = append(snapshot, reg)
	}
	d.mu.Unlock()

	for _, reg := range snapshot {
		f(reg)
	}
}

// Len returns the number of currently registered registries.
func (d *Directory) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.regs)
}
