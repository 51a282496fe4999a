// Copyright 2024 The javaserial Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package javaserial

// classDataState is the per-level state machine of spec §4.3: which flag
// combination is legal, and whether it implies Fields, an annotation,
// both, or neither.
type classDataState int

const (
	stateFail classDataState = iota
	stateFieldsOnly
	stateFieldsThenAnnotation
	stateBlockOnlyThenAnnotation
)

// classifyFlags maps a class descriptor's flag byte to the state machine
// transition spec §4.3 prescribes, surfacing the exact failure reason
// (BadFlagsError or ErrUnsupportedExternalV1) when the combination is
// illegal.
func classifyFlags(flags uint8) (classDataState, error) {
	serializable := flags&scSerializable != 0
	externalizable := flags&scExternalizable != 0
	writeMethod := flags&scWriteMethod != 0
	blockData := flags&scBlockData != 0

	switch {
	case serializable && !writeMethod:
		return stateFieldsOnly, nil
	case serializable && writeMethod:
		return stateFieldsThenAnnotation, nil
	case externalizable && blockData:
		return stateBlockOnlyThenAnnotation, nil
	case externalizable && !blockData:
		return stateFail, ErrUnsupportedExternalV1
	default:
		return stateFail, &BadFlagsError{Flags: flags}
	}
}

// newObject implements the TC_OBJECT production (spec §4.3). The tag byte
// has already been consumed by the caller.
func (d *decoder) newObject() (*Object, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	desc, err := d.readClassDesc()
	if err != nil {
		return nil, wrap("object class desc", err)
	}

	obj := &Object{Description: desc}
	// The handle must exist before class data is read so that
	// back-references from within that data resolve to this object
	// (spec §4.3 step 3).
	handle, set := d.handles.reserve()
	obj.Handle = handle
	set(obj)

	chain := desc.Chain()
	obj.ClassData = make([]*ClassData, len(chain))
	// Walk the descriptor chain top-of-hierarchy first (spec §4.3 step
	// 4): chain is most-derived-first, so iterate it in reverse, and
	// store root-first so ClassData[len(chain)-1] belongs to desc itself
	// — the layout DataFor assumes (entity.go).
	for i := len(chain) - 1; i >= 0; i-- {
		level := chain[i]
		cd, err := d.readClassDataLevel(level)
		if err != nil {
			return nil, wrap("class data", err)
		}
		obj.ClassData[len(chain)-1-i] = cd
	}

	return obj, nil
}

// readClassDataLevel reads one hierarchy level's worth of field values
// and/or annotation, per the state machine of spec §4.3.
func (d *decoder) readClassDataLevel(desc *ClassDescriptor) (*ClassData, error) {
	state, err := classifyFlags(desc.Info.Flags)
	if err != nil {
		return nil, err
	}

	cd := newClassData()

	if state == stateFieldsOnly || state == stateFieldsThenAnnotation {
		for _, field := range desc.Info.Fields {
			name, err := field.Name.Text()
			if err != nil {
				return nil, wrap("field name", err)
			}
			v, err := d.readFieldValue(field.TypeCode)
			if err != nil {
				return nil, wrap("field "+name, err)
			}
			cd.set(name, v)
		}
	}

	if state == stateFieldsThenAnnotation || state == stateBlockOnlyThenAnnotation {
		anns, err := d.readAnnotation()
		if err != nil {
			return nil, wrap("object annotation", err)
		}
		cd.Annotation = anns
	}

	return cd, nil
}
