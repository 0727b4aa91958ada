// Package threadid captures a best-effort, display-only identifier for the
// OS thread a goroutine happens to be running on at the moment of capture.
//
// It exists purely to populate the "platform id" field of a promise record's
// owning-thread label (a thread's name and platform id); nothing in this
// module's concurrency protocol depends on the value being stable, since
// Go's runtime freely migrates goroutines across OS threads.
package threadid

// Capture returns the current OS thread id on Linux; on other platforms,
// which have no cheap syscall for it from pure Go, it returns the process id.
func Capture() int64 {
	return capture()
}
