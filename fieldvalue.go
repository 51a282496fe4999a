// Copyright 2024 The javaserial Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package javaserial

// FieldValueKind discriminates the primitive and reference variants a
// FieldValue may hold (spec §3's FieldValue).
type FieldValueKind int

const (
	FVByte FieldValueKind = iota
	FVChar
	FVDouble
	FVFloat
	FVInt
	FVLong
	FVShort
	FVBool
	FVRef // Ref holds a Content (String, Object, Array, Enum) or nil for TC_NULL.
)

// FieldValue is a tagged union of the eight Java primitive scalar kinds
// plus a reference slot for strings, objects, arrays and enums (spec §3).
// Only the field matching Kind is meaningful.
type FieldValue struct {
	Kind FieldValueKind
	i8   int8
	u16  uint16
	f64  float64
	f32  float32
	i32  int32
	i64  int64
	i16  int16
	b    bool
	ref  Content
}

func byteValue(v int8) FieldValue    { return FieldValue{Kind: FVByte, i8: v} }
func charValue(v uint16) FieldValue  { return FieldValue{Kind: FVChar, u16: v} }
func doubleValue(v float64) FieldValue { return FieldValue{Kind: FVDouble, f64: v} }
func floatValue(v float32) FieldValue  { return FieldValue{Kind: FVFloat, f32: v} }
func intValue(v int32) FieldValue    { return FieldValue{Kind: FVInt, i32: v} }
func longValue(v int64) FieldValue   { return FieldValue{Kind: FVLong, i64: v} }
func shortValue(v int16) FieldValue  { return FieldValue{Kind: FVShort, i16: v} }
func boolValue(v bool) FieldValue    { return FieldValue{Kind: FVBool, b: v} }
func refValue(v Content) FieldValue  { return FieldValue{Kind: FVRef, ref: v} }

// Byte returns the value as an int8; valid only when Kind == FVByte.
func (f FieldValue) Byte() int8 { return f.i8 }

// Char returns the value as a UTF-16 code unit; valid only when Kind ==
// FVChar.
func (f FieldValue) Char() uint16 { return f.u16 }

// Double returns the value as a float64; valid only when Kind == FVDouble.
func (f FieldValue) Double() float64 { return f.f64 }

// Float returns the value as a float32; valid only when Kind == FVFloat.
func (f FieldValue) Float() float32 { return f.f32 }

// Int returns the value as an int32; valid only when Kind == FVInt.
func (f FieldValue) Int() int32 { return f.i32 }

// Long returns the value as an int64; valid only when Kind == FVLong.
func (f FieldValue) Long() int64 { return f.i64 }

// Short returns the value as an int16; valid only when Kind == FVShort.
func (f FieldValue) Short() int16 { return f.i16 }

// Bool returns the value as a bool; valid only when Kind == FVBool.
func (f FieldValue) Bool() bool { return f.b }

// Ref returns the referenced Content (nil for TC_NULL); valid only when
// Kind == FVRef.
func (f FieldValue) Ref() Content { return f.ref }
