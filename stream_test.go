// Copyright 2024 The javaserial Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package javaserial

import "testing"

func TestNewRejectsBadHeader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated", []byte{0xAC}},
		{"wrong magic", []byte{0x00, 0x00, 0x00, 0x05}},
		{"wrong version", []byte{0xAC, 0xED, 0x00, 0x04}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(FromBytes(tt.data), Options{}); err != ErrBadHeader {
				t.Fatalf("New() error = %v; want ErrBadHeader", err)
			}
		})
	}
}

func TestReadAllEmptyStream(t *testing.T) {
	data := newBuilder().header().bytesResult()
	ois, err := New(FromBytes(data), Options{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	contents, err := ois.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	if len(contents) != 0 {
		t.Fatalf("ReadAll() = %v; want empty", contents)
	}
}

func TestReadAllRejectsTopLevelNull(t *testing.T) {
	data := newBuilder().header().u8(tcNull).bytesResult()
	ois, err := New(FromBytes(data), Options{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if _, err := ois.ReadAll(); err == nil {
		t.Fatal("ReadAll() with top-level TC_NULL succeeded; want BadTypeCodeError")
	}
}

func TestReadAllShortBlockData(t *testing.T) {
	data := newBuilder().header().u8(tcBlockData).u8(2).u8(0x11).u8(0x22).bytesResult()
	ois, err := New(FromBytes(data), Options{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	contents, err := ois.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	if len(contents) != 1 || contents[0].ContentKind() != KindBlockData {
		t.Fatalf("ReadAll() = %v; want one BlockData", contents)
	}
}

func TestReadAllMinimalObject(t *testing.T) {
	var b streamBuilder
	b.header()
	b.u8(tcObject)
	b.simpleSerializableClassDesc("Point", 'I', "x")
	b.i32(99)
	data := b.bytesResult()

	ois, err := New(FromBytes(data), Options{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	contents, err := ois.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("len(contents) = %d; want 1", len(contents))
	}
	obj, ok := contents[0].(*Object)
	if !ok {
		t.Fatalf("contents[0] = %T; want *Object", contents[0])
	}
	v, ok := obj.ClassData[0].Get("x")
	if !ok || v.Int() != 99 {
		t.Fatalf("field x = %+v, ok=%v; want 99, true", v, ok)
	}
	if ois.HandleCount() != 2 { // class descriptor + object
		t.Fatalf("HandleCount() = %d; want 2", ois.HandleCount())
	}
}

func TestReadAllStringBackReference(t *testing.T) {
	var b streamBuilder
	b.header().
		u8(tcString).utf("shared").
		u8(tcReference).i32(baseHandle)
	data := b.bytesResult()

	ois, err := New(FromBytes(data), Options{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	contents, err := ois.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	if len(contents) != 2 {
		t.Fatalf("len(contents) = %d; want 2", len(contents))
	}
	first := contents[0].(*String)
	second := contents[1].(*String)
	if first != second {
		t.Fatalf("back-reference resolved to a distinct *String; want identical pointer")
	}
}

func TestReadAllTooManyContents(t *testing.T) {
	var b streamBuilder
	b.header()
	for i := 0; i < 3; i++ {
		b.u8(tcBlockData).u8(0)
	}
	data := b.bytesResult()

	ois, err := New(FromBytes(data), Options{MaxTopLevelContents: 2})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if _, err := ois.ReadAll(); err != ErrTooManyContents {
		t.Fatalf("ReadAll() error = %v; want ErrTooManyContents", err)
	}
}

func TestPrimitivePassThroughs(t *testing.T) {
	data := newBuilder().header().
		u8(0x01). // ReadBoolean
		i32(5).    // ReadInt
		bytesResult()

	ois, err := New(FromBytes(data), Options{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if v, err := ois.ReadBoolean(); err != nil || !v {
		t.Fatalf("ReadBoolean() = %v, %v; want true, nil", v, err)
	}
	if v, err := ois.ReadInt(); err != nil || v != 5 {
		t.Fatalf("ReadInt() = %v, %v; want 5, nil", v, err)
	}
}

func TestReadUTFAndReadLongUTF(t *testing.T) {
	data := newBuilder().header().
		utf("short").
		i64(4).bytesOf([]byte("long")).
		bytesResult()

	ois, err := New(FromBytes(data), Options{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	s, err := ois.ReadUTF()
	if err != nil || s != "short" {
		t.Fatalf("ReadUTF() = %q, %v; want \"short\", nil", s, err)
	}
	l, err := ois.ReadLongUTF()
	if err != nil || l != "long" {
		t.Fatalf("ReadLongUTF() = %q, %v; want \"long\", nil", l, err)
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	got := Options{}.withDefaults()
	if got.MaxNestingDepth != DefaultMaxNestingDepth {
		t.Fatalf("MaxNestingDepth = %d; want %d", got.MaxNestingDepth, DefaultMaxNestingDepth)
	}
	if got.MaxTopLevelContents != DefaultMaxTopLevelContents {
		t.Fatalf("MaxTopLevelContents = %d; want %d", got.MaxTopLevelContents, DefaultMaxTopLevelContents)
	}

	disabled := Options{MaxNestingDepth: -1, MaxTopLevelContents: -1}.withDefaults()
	if disabled.MaxNestingDepth != 0 || disabled.MaxTopLevelContents != 0 {
		t.Fatalf("negative options not treated as disabled: %+v", disabled)
	}
}
