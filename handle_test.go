package promreg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windtunnel-io/promreg"
)

func TestZeroValueHandleIsNoOp(t *testing.T) {
	var h promreg.Handle
	assert.Zero(t, h.ID())
	assert.NotPanics(t, func() {
		h.SetAsyncWaiter(1)
		h.SetSyncWaiter(promreg.ThreadInfo{Name: "x"})
		h.ClearWaiter()
		h.UpdateSourceLocationLine(2)
		h.UpdateState(promreg.Resolved)
		h.Close()
	})
}

func TestHandleCloseIsIdempotent(t *testing.T) {
	tr := promreg.NewThreadRegistry("owner")
	h, err := tr.NewHandle(promreg.SourceLocation{FileName: "f.go", Line: 1})
	require.NoError(t, err)

	h.Close()
	assert.NotPanics(t, func() {
		h.Close()
		h.Close()
	})

	tr.GarbageCollect()
	count := 0
	tr.ForEach(func(*promreg.Record) { count++ })
	assert.Zero(t, count)
}

func TestHandleLineAndStateProgress(t *testing.T) {
	tr := promreg.NewThreadRegistry("owner")
	h, err := tr.NewHandle(promreg.SourceLocation{FileName: "f.go", Line: 1})
	require.NoError(t, err)
	defer h.Close()

	var rec *promreg.Record
	tr.ForEach(func(r *promreg.Record) { rec = r })
	require.NotNil(t, rec)

	assert.Equal(t, promreg.Running, rec.State())
	assert.Equal(t, 1, rec.Line())

	h.UpdateSourceLocationLine(5)
	assert.Equal(t, 5, rec.Line())

	h.UpdateState(promreg.Suspended)
	assert.Equal(t, promreg.Suspended, rec.State())

	h.UpdateState(promreg.Running)
	assert.Equal(t, promreg.Running, rec.State())

	h.UpdateState(promreg.Resolved)
	assert.Equal(t, promreg.Resolved, rec.State())
}
