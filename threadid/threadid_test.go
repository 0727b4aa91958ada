package threadid_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/windtunnel-io/promreg/threadid"
)

func TestCaptureIsStable(t *testing.T) {
	// Capture is display-only and not guaranteed portable, and the runtime may
	// move a goroutine between OS threads, so the goroutine is pinned to its
	// thread; two back-to-back calls on that thread must then agree.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	a := threadid.Capture()
	b := threadid.Capture()
	assert.Equal(t, a, b)
}
