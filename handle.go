// Copyright 2024 The javaserial Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package javaserial

// baseHandle is the wire value of the first handle assigned in any stream
// (spec §3). Subsequent handles increment by one.
const baseHandle int32 = 0x7E0000

// handleTable is the append-only vector mapping wire handles to the
// entities that own them. It never shrinks (TC_RESET, which would clear
// it, is out of scope — spec §9).
type handleTable struct {
	entries []interface{}
}

// allocate reserves the next handle and records obj as its owner,
// returning the handle assigned. Used where the node's pointer exists
// before its remaining fields are read (String, ClassDescriptor before its
// info, Array before its elements); BlockData takes no handle.
func (h *handleTable) allocate(obj interface{}) int32 {
	handle := baseHandle + int32(len(h.entries))
	h.entries = append(h.entries, obj)
	return handle
}

// reserve appends a placeholder slot and returns both the handle assigned
// and a setter to fill the slot once the entity exists. newObject (before
// class data is read) and newEnum (before the constant is read) use it, so
// that back-references encountered while reading those parts resolve to
// the right identity (spec §4.3, "allocate a handle immediately").
func (h *handleTable) reserve() (handle int32, set func(obj interface{})) {
	idx := len(h.entries)
	handle = baseHandle + int32(idx)
	h.entries = append(h.entries, nil)
	return handle, func(obj interface{}) { h.entries[idx] = obj }
}

// resolve looks up the entity for a wire handle. BadHandleError is
// returned for any handle outside the allocated range (spec invariant I2).
func (h *handleTable) resolve(handle int32) (interface{}, error) {
	idx := int(handle - baseHandle)
	if idx < 0 || idx >= len(h.entries) {
		return nil, &BadHandleError{Handle: handle}
	}
	return h.entries[idx], nil
}

// len reports the table's current high-water mark, used by property tests
// to assert handle monotonicity (spec P1).
func (h *handleTable) len() int { return len(h.entries) }
