// Copyright 2024 The javaserial Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package javaserial

import "fmt"

// newArray implements the TC_ARRAY production (spec §4.3). The tag byte
// has already been consumed by the caller.
func (d *decoder) newArray() (*Array, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	desc, err := d.readClassDesc()
	if err != nil {
		return nil, wrap("array class desc", err)
	}
	if desc == nil {
		return nil, fmt.Errorf("javaserial: array with null class descriptor")
	}

	arr := &Array{Description: desc}
	arr.Handle = d.handles.allocate(arr)

	size, err := d.bs.ReadI32BE()
	if err != nil {
		return nil, wrap("array size", err)
	}
	if size < 0 {
		return nil, fmt.Errorf("javaserial: negative array size %d", size)
	}
	if d.opts.MaxArrayLength > 0 && uint32(size) > d.opts.MaxArrayLength {
		return nil, fmt.Errorf("javaserial: array size %d exceeds configured limit", size)
	}

	name, err := desc.Name.Text()
	if err != nil {
		return nil, wrap("array class name", err)
	}
	if len(name) < 2 || name[0] != '[' {
		return nil, fmt.Errorf("javaserial: malformed array class name %q", name)
	}
	elemType := name[1]

	arr.Values = make([]FieldValue, size)
	for i := int32(0); i < size; i++ {
		v, err := d.readFieldValue(elemType)
		if err != nil {
			return nil, wrap("array element", err)
		}
		arr.Values[i] = v
	}

	return arr, nil
}
