// Copyright 2024 The javaserial Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package javaserial

// Content is the interface implemented by every node the decoder can
// produce as a top-level record, an annotation entry, or the value of an
// 'L'/'[' field: a String, a ClassDescriptor, an Object, an Array, an Enum,
// or a BlockData (top level and annotations only). A nil Content denotes
// TC_NULL.
type Content interface {
	// ContentKind identifies the concrete variant without a type switch,
	// in the spirit of the teacher's small derived-accessor methods (e.g.
	// ImageDirectoryEntry.String in pe.go).
	ContentKind() ContentKind
}

// ContentKind discriminates the Content variants.
type ContentKind int

const (
	KindString ContentKind = iota
	KindClassDescriptor
	KindObject
	KindArray
	KindEnum
	KindBlockData
)

// String is a decoded String16 or String64. Long reports which wire
// variant produced it. Raw holds the undecoded modified-UTF-8 payload
// bytes verbatim, per spec §3's byte-exact preservation requirement; Text
// decodes them on demand.
type String struct {
	Handle int32
	Long   bool
	Raw    []byte
}

func (*String) ContentKind() ContentKind { return KindString }

// Text decodes the raw modified-UTF-8 payload into a native Go string.
// See string.go for the decoding algorithm.
func (s *String) Text() (string, error) {
	return decodeModifiedUTF8(s.Raw)
}

// FieldDesc describes one field of a class: its primitive or reference
// type code, its name, and — for array ('[') or object ('L') fields only
// — the field's declared class name.
type FieldDesc struct {
	TypeCode   byte
	Name       *String
	ClassName1 Content // *String when present; nil otherwise
}

// IsReference reports whether the field holds an array or object
// reference rather than a primitive scalar.
func (f FieldDesc) IsReference() bool {
	return f.TypeCode == '[' || f.TypeCode == 'L'
}

// ClassDescInfo is the flags/fields/annotation/super bundle read for a new
// class descriptor (spec §3's ClassDescInfo).
type ClassDescInfo struct {
	Flags      uint8
	Fields     []FieldDesc
	Annotation []Content
	Super      *ClassDescriptor
}

// Class descriptor flag bits (spec §4.3).
const (
	scWriteMethod   uint8 = 1 << 0 // SC_WRITE_METHOD
	scBlockData     uint8 = 1 << 3
	scSerializable  uint8 = 1 << 1
	scExternalizable uint8 = 1 << 2
	scEnum          uint8 = 1 << 4
)

// ClassDescriptor is a decoded class descriptor: name, serialVersionUID,
// flags/fields/annotation/super, and occupies a handle assigned after name
// and serialVersionUID but before Info is read (spec §4.3).
type ClassDescriptor struct {
	Handle    int32
	Name      *String
	SerialUID int64
	Info      ClassDescInfo
}

func (*ClassDescriptor) ContentKind() ContentKind { return KindClassDescriptor }

// IsEnum reports whether SC_ENUM is set.
func (c *ClassDescriptor) IsEnum() bool { return c.Info.Flags&scEnum != 0 }

// Chain returns the descriptor and its superclasses from most-derived to
// least-derived (the order they appear textually in the stream).
func (c *ClassDescriptor) Chain() []*ClassDescriptor {
	var chain []*ClassDescriptor
	for d := c; d != nil; d = d.Info.Super {
		chain = append(chain, d)
	}
	return chain
}

// Fields returns the field descriptors declared directly on this
// descriptor (not including superclasses).
func (c *ClassDescriptor) Fields() []FieldDesc { return c.Info.Fields }

// ClassData is one hierarchy level's worth of decoded object content: the
// declared field values in declaration order, plus an optional writer
// annotation. Values and its insertion order are kept separate so the
// "ordered map" of spec §3 is preserved without relying on Go map
// iteration order.
type ClassData struct {
	Order      []string
	Values     map[string]FieldValue
	Annotation []Content
}

func newClassData() *ClassData {
	return &ClassData{Values: make(map[string]FieldValue)}
}

func (c *ClassData) set(name string, v FieldValue) {
	if _, exists := c.Values[name]; !exists {
		c.Order = append(c.Order, name)
	}
	c.Values[name] = v
}

// Get looks up a field value by name.
func (c *ClassData) Get(name string) (FieldValue, bool) {
	v, ok := c.Values[name]
	return v, ok
}

// Object is a decoded instance: its class descriptor plus one ClassData
// per level of the descriptor's superclass chain, ordered root-first (the
// order spec §4.3 reads them in). ClassData is owned by the Object, never
// by the shared ClassDescriptor — see spec §3's Lifecycle note and §9's
// descriptor-sharing hazard.
type Object struct {
	Handle      int32
	Description *ClassDescriptor
	ClassData   []*ClassData // indexed root-first; ClassData[len-1] belongs to Description itself
}

func (*Object) ContentKind() ContentKind { return KindObject }

// DataFor returns the ClassData belonging to the given descriptor level of
// this object's hierarchy, or nil if desc is neither its Description nor
// one of its superclasses.
func (o *Object) DataFor(desc *ClassDescriptor) *ClassData {
	chain := o.Description.Chain()
	for i, d := range chain {
		if d == desc {
			// chain is most-derived-first; ClassData is root-first.
			return o.ClassData[len(chain)-1-i]
		}
	}
	return nil
}

func (o *Object) clone() *Object {
	clone := &Object{Handle: o.Handle, Description: o.Description}
	clone.ClassData = make([]*ClassData, len(o.ClassData))
	for i, cd := range o.ClassData {
		if cd == nil {
			continue
		}
		nc := &ClassData{
			Order:      append([]string(nil), cd.Order...),
			Values:     make(map[string]FieldValue, len(cd.Values)),
			Annotation: append([]Content(nil), cd.Annotation...),
		}
		for k, v := range cd.Values {
			nc.Values[k] = v
		}
		clone.ClassData[i] = nc
	}
	return clone
}

// Array is a decoded primitive or reference array: its class descriptor
// (whose Name is e.g. "[B" or "[Ljava.lang.String;") and its elements in
// order.
type Array struct {
	Handle      int32
	Description *ClassDescriptor
	Values      []FieldValue
}

func (*Array) ContentKind() ContentKind { return KindArray }

func (a *Array) clone() *Array {
	return &Array{
		Handle:      a.Handle,
		Description: a.Description,
		Values:      append([]FieldValue(nil), a.Values...),
	}
}

// Enum is a decoded enum constant: its declaring class descriptor and the
// constant's name.
type Enum struct {
	Handle      int32
	Description *ClassDescriptor
	Constant    *String
}

func (*Enum) ContentKind() ContentKind { return KindEnum }

// BlockData is raw opaque bytes framed by either an 8-bit unsigned length
// (TC_BLOCKDATA) or a 32-bit signed length (TC_BLOCKDATALONG). It never
// occupies a handle.
type BlockData struct {
	Long bool
	Data []byte
}

// cloneContent returns a copy of c when c is an Object or Array (the only
// variants whose ClassData may still be written into by downstream levels
// of the *current* decode path — see spec §3, §4.3 "Previous object" and
// §9). The copy is one level deep: an Object gets fresh ClassData structs,
// Values maps, Order and Annotation slices, and an Array a fresh Values
// slice, but the nodes that field values and annotation entries refer to
// are shared with the original, not copied. Strings, class descriptors
// and enums are returned as-is: they are value-semantically stable once
// constructed.
func cloneContent(c Content) Content {
	switch v := c.(type) {
	case *Object:
		return v.clone()
	case *Array:
		return v.clone()
	default:
		return c
	}
}
