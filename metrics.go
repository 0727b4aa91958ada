package promreg

import "github.com/prometheus/client_golang/prometheus"

// Metrics wires a [Directory]'s registries up to Prometheus gauges/counters,
// grounded on distribution-distribution's pairing of a registry-shaped
// component with client_golang collectors. It computes sizes by walking
// each registry with the already-locked ForEach; it never touches the
// lock-free list itself, and GC passes are counted only through ObserveGC.
type Metrics struct {
	dir *Directory

	registries  prometheus.Gauge
	liveRecords *prometheus.GaugeVec
	gcPasses    *prometheus.CounterVec
}

// NewMetrics creates a Metrics collector for dir and registers it with reg.
func NewMetrics(dir *Directory, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		dir: dir,
		registries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "promreg",
			Name:      "registries",
			Help:      "Number of ThreadRegistry instances currently registered with the Directory.",
		}),
		liveRecords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "promreg",
			Name:      "live_records",
			Help:      "Number of live promise records per owning thread.",
		}, []string{"owner"}),
		gcPasses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "promreg",
			Name:      "gc_passes_total",
			Help:      "Number of garbage-collection passes observed per owning thread.",
		}, []string{"owner"}),
	}

	for _, c := range []prometheus.Collector{m.registries, m.liveRecords, m.gcPasses} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Collect walks the directory and refreshes the gauges. It is safe to call
// from any goroutine; it only calls Directory.ForEach and
// ThreadRegistry.ForEach, the same read-only interface any inspector uses.
func (m *Metrics) Collect() {
	count := 0
	m.dir.ForEach(func(tr *ThreadRegistry) {
		count++
		live := 0
		tr.ForEach(func(*Record) { live++ })
		m.liveRecords.WithLabelValues(tr.Owner().Name).Set(float64(live))
	})
	m.registries.Set(float64(count))
}

// ObserveGC increments the GC-pass counter for an owner. Callers that call
// GarbageCollect themselves may call this after each pass; it is not wired
// automatically so that Metrics stays a pure consumer of the public
// ForEach/Owner interface rather than a hidden hook inside the core.
func (m *Metrics) ObserveGC(ownerName string) {
	m.gcPasses.WithLabelValues(ownerName).Inc()
}
