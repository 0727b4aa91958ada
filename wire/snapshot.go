// Package wire serializes [promreg.Snapshot] values into a logical,
// language-neutral wire format for diagnostic tooling. Serialization is
// explicitly out of scope for the registry core itself; this package is the
// one concrete implementation of that external interface.
package wire

import (
	"encoding/json"

	"github.com/windtunnel-io/promreg"
)

// Thread mirrors promreg.ThreadInfo for wire purposes.
type Thread struct {
	Name string `json:"name"`
	ID   int64  `json:"id"`
}

// SourceLocation mirrors promreg.SourceLocation for wire purposes.
type SourceLocation struct {
	FileName     string `json:"file_name"`
	FunctionName string `json:"function_name"`
	Line         int    `json:"line"`
}

// Waiter mirrors promreg.Waiter as a one-of{none | {async} | {sync}} shape.
type Waiter struct {
	Async *uint64 `json:"async,omitempty"`
	Sync  *Thread `json:"sync,omitempty"`
}

// Promise is the wire representation of one promreg.Snapshot.
type Promise struct {
	OwningThread   Thread         `json:"owning_thread"`
	SourceLocation SourceLocation `json:"source_location"`
	ID             uint64         `json:"id"`
	Waiter         Waiter         `json:"waiter"`
	State          string         `json:"state"`
}

// FromSnapshot converts a promreg.Snapshot into its wire representation.
func FromSnapshot(s promreg.Snapshot) Promise {
	p := Promise{
		OwningThread: Thread{Name: s.Thread.Name, ID: s.Thread.PlatformID},
		SourceLocation: SourceLocation{
			FileName:     s.SourceLocation.FileName,
			FunctionName: s.SourceLocation.FunctionName,
			Line:         s.SourceLocation.Line,
		},
		ID:    s.ID,
		State: s.State.String(),
	}

	switch s.Waiter.Kind {
	case promreg.WaiterAsync:
		id := s.Waiter.AsyncID
		p.Waiter.Async = &id
	case promreg.WaiterSync:
		t := s.Waiter.SyncThread
		p.Waiter.Sync = &Thread{Name: t.Name, ID: t.PlatformID}
	}

	return p
}

// MarshalJSON encodes a slice of snapshots as a JSON array, matching the
// shape the inspection endpoint (package httpapi) returns.
func MarshalJSON(snapshots []promreg.Snapshot) ([]byte, error) {
	out := make([]Promise, len(snapshots))
	for i, s := range snapshots {
		out[i] = FromSnapshot(s)
	}
	return json.Marshal(out)
}
