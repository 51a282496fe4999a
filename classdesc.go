// Copyright 2024 The javaserial Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package javaserial

// readClassDesc implements the classDesc production (spec §4.3):
// TC_NULL → nil, TC_CLASSDESC → a new descriptor, TC_PROXYCLASSDESC →
// ErrUnsupportedProxyClassDesc, TC_REFERENCE → resolve. It never returns a
// non-nil error together with a non-nil descriptor.
func (d *decoder) readClassDesc() (*ClassDescriptor, error) {
	tag, err := d.bs.Peek()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tcNull:
		d.bs.Skip(1) //nolint:errcheck
		return nil, nil
	case tcClassDesc:
		d.bs.Skip(1) //nolint:errcheck
		return d.newClassDesc()
	case tcProxyClassDesc:
		return nil, ErrUnsupportedProxyClassDesc
	case tcReference:
		d.bs.Skip(1) //nolint:errcheck
		handle, err := d.bs.ReadI32BE()
		if err != nil {
			return nil, wrap("class desc reference handle", err)
		}
		entity, err := d.handles.resolve(handle)
		if err != nil {
			return nil, err
		}
		desc, ok := entity.(*ClassDescriptor)
		if !ok {
			return nil, &BadTypeCodeError{Context: "class desc reference", Code: tag}
		}
		return desc, nil
	default:
		return nil, &BadTypeCodeError{Context: "class desc", Code: tag}
	}
}

// newClassDesc implements the TC_CLASSDESC production. The tag byte has
// already been consumed by the caller.
func (d *decoder) newClassDesc() (*ClassDescriptor, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	name, err := readRawUTF16(d.bs)
	if err != nil {
		return nil, wrap("class name", err)
	}
	uid, err := d.bs.ReadI64BE()
	if err != nil {
		return nil, wrap("serialVersionUID", err)
	}

	desc := &ClassDescriptor{Name: name, SerialUID: uid}
	// The handle must exist before Info is read: field-descriptor
	// sub-reads (class_name1) or the super chain may contain references
	// targeting this very descriptor (spec §4.3 step 4).
	desc.Handle = d.handles.allocate(desc)

	info, err := d.readClassDescInfo()
	if err != nil {
		return nil, wrap("class desc info", err)
	}
	desc.Info = info
	return desc, nil
}

func (d *decoder) readClassDescInfo() (ClassDescInfo, error) {
	var info ClassDescInfo

	flags, err := d.bs.ReadU8()
	if err != nil {
		return info, wrap("flags", err)
	}
	info.Flags = flags

	fieldCount, err := d.bs.ReadU16BE()
	if err != nil {
		return info, wrap("field count", err)
	}
	info.Fields = make([]FieldDesc, 0, fieldCount)
	for i := 0; i < int(fieldCount); i++ {
		f, err := d.readFieldDesc()
		if err != nil {
			return info, wrap("field desc", err)
		}
		info.Fields = append(info.Fields, f)
	}

	annotation, err := d.readAnnotation()
	if err != nil {
		return info, wrap("class annotation", err)
	}
	info.Annotation = annotation

	super, err := d.readClassDesc()
	if err != nil {
		return info, wrap("super class desc", err)
	}
	info.Super = super

	return info, nil
}

// readFieldDesc reads a single FieldDesc: type code, 16-bit-length UTF
// name, and — for '[' or 'L' fields only — a class name following the
// newString production.
func (d *decoder) readFieldDesc() (FieldDesc, error) {
	var f FieldDesc
	typeCode, err := d.bs.ReadU8()
	if err != nil {
		return f, wrap("field type code", err)
	}
	f.TypeCode = typeCode

	name, err := readRawUTF16(d.bs)
	if err != nil {
		return f, wrap("field name", err)
	}
	f.Name = name

	if f.TypeCode == '[' || f.TypeCode == 'L' {
		className, err := d.newString()
		if err != nil {
			return f, wrap("field class name", err)
		}
		f.ClassName1 = className
	} else if !isPrimitiveTypeCode(f.TypeCode) {
		return f, &BadFieldTypeError{Code: f.TypeCode}
	}

	return f, nil
}

func isPrimitiveTypeCode(c byte) bool {
	switch c {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		return true
	}
	return false
}

// readAnnotation reads a content list terminated by TC_ENDBLOCKDATA — the
// shared sub-grammar used for class annotations (spec §4.3) and object
// annotations (spec §4.3, per-level state machine).
func (d *decoder) readAnnotation() ([]Content, error) {
	var anns []Content
	for {
		tag, err := d.bs.Peek()
		if err != nil {
			return nil, err
		}
		if tag == tcEndBlockData {
			d.bs.Skip(1) //nolint:errcheck
			return anns, nil
		}
		c, err := d.readContent()
		if err != nil {
			return nil, err
		}
		anns = append(anns, c)
	}
}
