package promreg

import "sync/atomic"

// recordPool allocates *Record values. It is not a sync.Pool: every acquire
// allocates a fresh Record and Record memory is never reused. It counts live
// records and supports an optional capacity limit so that the
// allocation-failure path (resource exhaustion on insert, propagated to the
// caller) is deterministically testable instead of only theoretical.
type recordPool struct {
	live atomic.Int64
	max  int64 // 0 means unbounded
}

func newRecordPool(max int) *recordPool {
	return &recordPool{max: int64(max)}
}

// acquire returns a freshly allocated Record, or (nil, ErrAllocationFailed)
// if the pool's capacity (if any) has been reached.
func (p *recordPool) acquire() (*Record, error) {
	if p.max > 0 {
		for {
			cur := p.live.Load()
			if cur >= p.max {
				return nil, ErrAllocationFailed
			}
			if p.live.CompareAndSwap(cur, cur+1) {
				break
			}
		}
	} else {
		p.live.Add(1)
	}
	return &Record{}, nil
}

// release returns a slot to the pool's capacity accounting. It does not
// reuse the Record's memory (Go's GC reclaims it); it exists purely to keep
// the live count in sync with the bounded-capacity mode.
func (p *recordPool) release() {
	p.live.Add(-1)
}
