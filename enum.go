// Copyright 2024 The javaserial Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package javaserial

// newEnum implements the TC_ENUM production (spec §4.3). The tag byte has
// already been consumed by the caller.
func (d *decoder) newEnum() (*Enum, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	desc, err := d.readClassDesc()
	if err != nil {
		return nil, wrap("enum class desc", err)
	}

	// The handle is reserved before the constant is read, matching the
	// "allocate immediately" rule applied to every other handle-bearing
	// production in spec §4.3, though an enum constant's own text never
	// contains a back-reference to the enum itself in practice.
	handle, set := d.handles.reserve()
	e := &Enum{Handle: handle, Description: desc}
	set(e)

	constant, err := d.newString()
	if err != nil {
		return nil, wrap("enum constant", err)
	}
	e.Constant = constant

	return e, nil
}
