package promreg

import (
	"bytes"
	"runtime"
	"strconv"
)

// currentGoroutineID returns the numeric id of the calling goroutine.
//
// Go deliberately exposes no public API for this (the id is not meant to be
// used for scheduling decisions), but parsing it out of a short runtime.Stack
// dump is a well-known, widely used idiom for diagnostics and ownership
// assertions such as this package's "owner goroutine" contract. It is used
// here purely as a label: a mismatch triggers a fatal [ContractViolation],
// never a scheduling decision.
func currentGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]

	const prefix = "goroutine "
	b = bytes.TrimPrefix(b, []byte(prefix))

	i := bytes.IndexByte(b, ' ')
	if i < 0 {
		return 0
	}

	id, err := strconv.ParseUint(string(b[:i]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
