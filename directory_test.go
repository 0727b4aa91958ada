package promreg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windtunnel-io/promreg"
)

func TestDirectoryRegisterUnregister(t *testing.T) {
	dir := promreg.NewDirectory()
	assert.Zero(t, dir.Len())

	trA := promreg.NewThreadRegistry("a")
	trB := promreg.NewThreadRegistry("b")

	dir.Register(trA)
	dir.Register(trB)
	assert.Equal(t, 2, dir.Len())
	assert.EqualValues(t, 1, trA.RefCount())

	var names []string
	dir.ForEach(func(tr *promreg.ThreadRegistry) { names = append(names, tr.Owner().Name) })
	assert.ElementsMatch(t, []string{"a", "b"}, names)

	dir.Unregister(trA)
	assert.Equal(t, 1, dir.Len())
	assert.EqualValues(t, 0, trA.RefCount())

	// Unregistering something not present is a no-op.
	dir.Unregister(trA)
	assert.Equal(t, 1, dir.Len())
}

func TestDirectoryForEachWalksLiveRecords(t *testing.T) {
	dir := promreg.NewDirectory()
	tr := promreg.NewThreadRegistry("owner")
	dir.Register(tr)

	h, err := tr.NewHandle(promreg.SourceLocation{FileName: "f.go", Line: 1})
	require.NoError(t, err)
	defer h.Close()

	total := 0
	dir.ForEach(func(tr *promreg.ThreadRegistry) {
		tr.ForEach(func(*promreg.Record) { total++ })
	})
	assert.Equal(t, 1, total)
}
