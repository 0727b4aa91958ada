//go:build !linux

package threadid

import "os"

// capture falls back to the process id on platforms with no cheap, pure-Go
// OS-thread-id syscall: platform-specific behavior lives behind build tags,
// with a portable fallback where no syscall is available without cgo.
func capture() int64 {
	return int64(os.Getpid())
}
