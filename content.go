// Copyright 2024 The javaserial Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package javaserial

// Wire tag bytes (spec §4.3, §6). TC_CLASS, TC_RESET and TC_EXCEPTION are
// named here for completeness only: no dispatcher accepts them, so each is
// rejected with the BadTypeCodeError of the production that met it, the
// same as any other unknown tag. Implementing them is a declared Non-goal
// (spec §1).
const (
	tcNull            byte = 0x70
	tcReference       byte = 0x71
	tcClassDesc       byte = 0x72
	tcObject          byte = 0x73
	tcString          byte = 0x74
	tcArray           byte = 0x75
	tcClass           byte = 0x76
	tcBlockData       byte = 0x77
	tcEndBlockData    byte = 0x78
	tcReset           byte = 0x79
	tcBlockDataLong   byte = 0x7A
	tcException       byte = 0x7B
	tcLongString      byte = 0x7C
	tcProxyClassDesc  byte = 0x7D
	tcEnum            byte = 0x7E
)

// decoder holds the mutable state threaded through one ReadAll call: the
// byte source, the handle table, configured limits, and the current
// recursion depth. It is the unexported engine behind the public
// ObjectInputStream, the same split the teacher uses between the
// exported *pe.File and its unexported per-directory parse helpers.
type decoder struct {
	bs      ByteSource
	handles handleTable
	opts    Options
	depth   int
}

// enter/leave bound recursive descent depth, guarding against a crafted
// stream forcing unbounded Go-stack recursion through nested arrays or
// class hierarchies — the same attacker-controlled-count concern the
// teacher's Options.MaxCOFFSymbolsCount / MaxRelocEntriesCount address for
// PE symbol and relocation counts (file.go).
func (d *decoder) enter() error {
	d.depth++
	if d.opts.MaxNestingDepth > 0 && d.depth > d.opts.MaxNestingDepth {
		return ErrNestingTooDeep
	}
	return nil
}

func (d *decoder) leave() { d.depth-- }

// readContent implements the top-level `content` production (spec §4.3):
// peek one byte and dispatch. This is also the sub-grammar used for class
// and object annotations. Unlike the teacher's funcMaps dispatch table in
// pe.go (keyed by a small closed enum of data-directory indices), the
// dispatch here is keyed by the wire tag byte directly, since the
// permitted tag set differs by call site (top level vs object field vs
// array field) and a shared map would hide that.
func (d *decoder) readContent() (Content, error) {
	tag, err := d.bs.Peek()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tcObject:
		d.bs.Skip(1) //nolint:errcheck
		return d.newObject()
	case tcString:
		d.bs.Skip(1) //nolint:errcheck
		return d.newString16()
	case tcLongString:
		d.bs.Skip(1) //nolint:errcheck
		return d.newString64()
	case tcBlockData:
		d.bs.Skip(1) //nolint:errcheck
		return d.readBlockShort()
	case tcBlockDataLong:
		d.bs.Skip(1) //nolint:errcheck
		return d.readBlockLong()
	case tcReference:
		d.bs.Skip(1) //nolint:errcheck
		return d.readReference()
	default:
		return nil, &BadTypeCodeError{Context: "content", Code: tag}
	}
}

// readReference implements the "Previous object" production: consume the
// tag (already done by the caller), read the handle, and return a copy of
// the resolved entity for Object/Array so that the current decode path's
// further writes (annotations still to be read) land in independent
// ClassData containers (spec §3, §4.3, §9). cloneContent describes how
// deep that copy goes.
func (d *decoder) readReference() (Content, error) {
	handle, err := d.bs.ReadI32BE()
	if err != nil {
		return nil, wrap("reference handle", err)
	}
	entity, err := d.handles.resolve(handle)
	if err != nil {
		return nil, err
	}
	content, ok := entity.(Content)
	if !ok {
		return nil, &BadHandleError{Handle: handle}
	}
	return cloneContent(content), nil
}

// newString implements the newString production used wherever a string is
// read outside the top-level content set — FieldDesc.ClassName1 and
// Enum.Constant: TC_STRING, TC_LONGSTRING or TC_REFERENCE to a *String.
func (d *decoder) newString() (*String, error) {
	tag, err := d.bs.Peek()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tcString:
		d.bs.Skip(1) //nolint:errcheck
		return d.newString16()
	case tcLongString:
		d.bs.Skip(1) //nolint:errcheck
		return d.newString64()
	case tcReference:
		d.bs.Skip(1) //nolint:errcheck
		handle, err := d.bs.ReadI32BE()
		if err != nil {
			return nil, wrap("string reference handle", err)
		}
		entity, err := d.handles.resolve(handle)
		if err != nil {
			return nil, err
		}
		s, ok := entity.(*String)
		if !ok {
			return nil, &BadTypeCodeError{Context: "string reference", Code: tag}
		}
		return s, nil
	default:
		return nil, &BadTypeCodeError{Context: "newString", Code: tag}
	}
}

// readObjectField implements read_object_field: the value of an 'L'
// field, accepting {TC_NULL, TC_OBJECT, TC_STRING, TC_LONGSTRING,
// TC_REFERENCE, TC_ENUM}.
func (d *decoder) readObjectField() (FieldValue, error) {
	tag, err := d.bs.Peek()
	if err != nil {
		return FieldValue{}, err
	}
	switch tag {
	case tcNull:
		d.bs.Skip(1) //nolint:errcheck
		return refValue(nil), nil
	case tcObject:
		d.bs.Skip(1) //nolint:errcheck
		obj, err := d.newObject()
		if err != nil {
			return FieldValue{}, err
		}
		return refValue(obj), nil
	case tcString:
		d.bs.Skip(1) //nolint:errcheck
		s, err := d.newString16()
		if err != nil {
			return FieldValue{}, err
		}
		return refValue(s), nil
	case tcLongString:
		d.bs.Skip(1) //nolint:errcheck
		s, err := d.newString64()
		if err != nil {
			return FieldValue{}, err
		}
		return refValue(s), nil
	case tcEnum:
		d.bs.Skip(1) //nolint:errcheck
		e, err := d.newEnum()
		if err != nil {
			return FieldValue{}, err
		}
		return refValue(e), nil
	case tcReference:
		d.bs.Skip(1) //nolint:errcheck
		c, err := d.readReference()
		if err != nil {
			return FieldValue{}, err
		}
		return refValue(c), nil
	default:
		return FieldValue{}, &BadTypeCodeError{Context: "object field", Code: tag}
	}
}

// readArrayField implements read_array_field: the value of a '[' field,
// accepting {TC_NULL, TC_ARRAY, TC_REFERENCE}.
func (d *decoder) readArrayField() (FieldValue, error) {
	tag, err := d.bs.Peek()
	if err != nil {
		return FieldValue{}, err
	}
	switch tag {
	case tcNull:
		d.bs.Skip(1) //nolint:errcheck
		return refValue(nil), nil
	case tcArray:
		d.bs.Skip(1) //nolint:errcheck
		arr, err := d.newArray()
		if err != nil {
			return FieldValue{}, err
		}
		return refValue(arr), nil
	case tcReference:
		d.bs.Skip(1) //nolint:errcheck
		c, err := d.readReference()
		if err != nil {
			return FieldValue{}, err
		}
		return refValue(c), nil
	default:
		return FieldValue{}, &BadTypeCodeError{Context: "array field", Code: tag}
	}
}

// readFieldValue reads the scalar value for a declared field whose
// type code is one of B,C,D,F,I,J,S,Z, or dispatches to the array/object
// field productions for '[' and 'L' (spec §4.3 "Field values").
func (d *decoder) readFieldValue(typeCode byte) (FieldValue, error) {
	switch typeCode {
	case 'B':
		v, err := d.bs.ReadI8()
		return byteValue(v), err
	case 'C':
		v, err := d.bs.ReadU16BE()
		return charValue(v), err
	case 'D':
		v, err := d.bs.ReadF64BE()
		return doubleValue(v), err
	case 'F':
		v, err := d.bs.ReadF32BE()
		return floatValue(v), err
	case 'I':
		v, err := d.bs.ReadI32BE()
		return intValue(v), err
	case 'J':
		v, err := d.bs.ReadI64BE()
		return longValue(v), err
	case 'S':
		v, err := d.bs.ReadI16BE()
		return shortValue(v), err
	case 'Z':
		v, err := d.bs.ReadBool()
		return boolValue(v), err
	case '[':
		return d.readArrayField()
	case 'L':
		return d.readObjectField()
	default:
		return FieldValue{}, &BadFieldTypeError{Code: typeCode}
	}
}
