//go:build linux

package threadid

import "golang.org/x/sys/unix"

// capture uses gettid(2) via golang.org/x/sys/unix.
func capture() int64 {
	return int64(unix.Gettid())
}
