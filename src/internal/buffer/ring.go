// Package buffer holds the bounded in-memory store of recent log entries.
package buffer

import "vibelog/src/internal/core"

// Ring is a bounded FIFO of log entries. When an append would exceed
// capacity the single oldest entry is dropped first, so after any number
// of appends the ring holds exactly the most recent entries in original
// order. Capacity zero or below means "retain nothing": appends become
// no-ops, not errors.
//
// Ring is not internally synchronized. The owning Logger serializes all
// access under its mutex, the same discipline that covers the file sink,
// so both stores always observe the same entry sequence.
type Ring struct {
	capacity int
	entries  []core.LogEntry
}

// New creates a ring holding at most capacity entries.
func New(capacity int) *Ring {
	r := &Ring{capacity: capacity}
	if capacity > 0 {
		r.entries = make([]core.LogEntry, 0, capacity)
	}
	return r
}

// Append inserts one entry, evicting the oldest first when full.
func (r *Ring) Append(e core.LogEntry) {
	if r.capacity <= 0 {
		return
	}
	if len(r.entries) >= r.capacity {
		// Shift in place so the backing array never grows past capacity.
		copy(r.entries, r.entries[1:])
		r.entries = r.entries[:r.capacity-1]
	}
	r.entries = append(r.entries, e)
}

// AppendAll bulk-loads entries in order under the same eviction rule, so
// loading more entries than the ring holds keeps the last ones in order.
func (r *Ring) AppendAll(entries []core.LogEntry) {
	for _, e := range entries {
		r.Append(e)
	}
}

// Clear empties the ring unconditionally.
func (r *Ring) Clear() {
	r.entries = r.entries[:0]
}

// Len returns the number of buffered entries.
func (r *Ring) Len() int {
	return len(r.entries)
}

// Snapshot returns a copy of the buffered entries in append order.
func (r *Ring) Snapshot() []core.LogEntry {
	out := make([]core.LogEntry, len(r.entries))
	copy(out, r.entries)
	return out
}
