// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcm

import "time"

// reassemblyKey identifies one in-flight fragmented message by sender and
// sequence number, per spec.md 3's fragment reassembly table.
type reassemblyKey struct {
	addr string
	seq  uint32
}

// reassemblySlot holds the state of one in-flight fragmented message.
type reassemblySlot struct {
	channel   string
	total     uint32
	data      []byte
	pending   int
	updatedAt time.Time
}

// reassemblyTable is a process-wide (per Client) mapping from
// (sender, sequence) to reassembly state. It is exclusively mutated from
// the client's single event-loop goroutine, so it needs no lock of its own.
type reassemblyTable struct {
	slots map[reassemblyKey]*reassemblySlot
}

func newReassemblyTable() *reassemblyTable {
	return &reassemblyTable{slots: make(map[reassemblyKey]*reassemblySlot)}
}

// begin creates (or replaces) the slot for key with a freshly allocated
// buffer of size total and totalFragments pending chunks, per spec.md
// 4.6: "If no slot exists, or an existing slot's declared total size
// differs, drop the previous slot and create a new one."
func (t *reassemblyTable) begin(key reassemblyKey, total uint32, totalFragments int) *reassemblySlot {
	slot := &reassemblySlot{
		total:     total,
		data:      make([]byte, total),
		pending:   totalFragments,
		updatedAt: time.Now(),
	}
	t.slots[key] = slot
	return slot
}

// lookup returns the existing slot for key, or nil if none exists or it
// was evicted for a declared-size mismatch.
func (t *reassemblyTable) lookup(key reassemblyKey, declaredTotal uint32) *reassemblySlot {
	slot, ok := t.slots[key]
	if !ok {
		return nil
	}
	if slot.total != declaredTotal {
		delete(t.slots, key)
		return nil
	}
	return slot
}

func (t *reassemblyTable) drop(key reassemblyKey) {
	delete(t.slots, key)
}

func (t *reassemblyTable) complete(key reassemblyKey) {
	delete(t.slots, key)
}

// clear empties the table, used by Close per spec.md 9's open question:
// in-flight reassembly state is dropped without notifying subscribers.
func (t *reassemblyTable) clear() {
	t.slots = make(map[reassemblyKey]*reassemblySlot)
}

// evictStale removes every slot whose last update is older than idle,
// an opt-in extension enabled by WithReassemblyIdleTimeout; the reference
// implementation never does this (spec.md 9).
func (t *reassemblyTable) evictStale(idle time.Duration) {
	if idle <= 0 {
		return
	}
	cutoff := time.Now().Add(-idle)
	for k, slot := range t.slots {
		if slot.updatedAt.Before(cutoff) {
			delete(t.slots, k)
		}
	}
}
