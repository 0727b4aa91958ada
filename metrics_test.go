package promreg_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windtunnel-io/promreg"
)

func TestMetricsCollectReflectsLiveRecords(t *testing.T) {
	dir := promreg.NewDirectory()
	tr := promreg.NewThreadRegistry("worker-1")
	dir.Register(tr)

	reg := prometheus.NewRegistry()
	m, err := promreg.NewMetrics(dir, reg)
	require.NoError(t, err)

	h1, err := tr.NewHandle(promreg.SourceLocation{FileName: "f.go", Line: 1})
	require.NoError(t, err)
	h2, err := tr.NewHandle(promreg.SourceLocation{FileName: "f.go", Line: 2})
	require.NoError(t, err)

	m.Collect()

	families, err := reg.Gather()
	require.NoError(t, err)

	var liveRecords, registries *dto.MetricFamily
	for _, f := range families {
		switch f.GetName() {
		case "promreg_live_records":
			liveRecords = f
		case "promreg_registries":
			registries = f
		}
	}
	require.NotNil(t, liveRecords)
	require.NotNil(t, registries)

	assert.EqualValues(t, 1, registries.GetMetric()[0].GetGauge().GetValue())
	require.Len(t, liveRecords.GetMetric(), 1)
	assert.EqualValues(t, 2, liveRecords.GetMetric()[0].GetGauge().GetValue())

	h1.Close()
	h2.Close()
	tr.GarbageCollect()
	m.Collect()

	families, err = reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == "promreg_live_records" {
			assert.EqualValues(t, 0, f.GetMetric()[0].GetGauge().GetValue())
		}
	}
}

func TestMetricsObserveGC(t *testing.T) {
	dir := promreg.NewDirectory()
	reg := prometheus.NewRegistry()
	m, err := promreg.NewMetrics(dir, reg)
	require.NoError(t, err)

	m.ObserveGC("worker-1")
	m.ObserveGC("worker-1")

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, f := range families {
		if f.GetName() == "promreg_gc_passes_total" {
			require.Len(t, f.GetMetric(), 1)
			assert.EqualValues(t, 2, f.GetMetric()[0].GetCounter().GetValue())
		}
	}
}
