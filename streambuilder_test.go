// Copyright 2024 The javaserial Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package javaserial

import (
	"bytes"
	"encoding/binary"
	"math"
)

// streamBuilder assembles hand-crafted wire streams byte by byte for the
// table-driven tests in this package, the same role the teacher's
// getAbsoluteFilePath + fixture files play in pe_test.go — except the
// fixtures here are built inline since the format under test is a stream
// protocol, not a file format with binary samples already on disk.
type streamBuilder struct {
	buf bytes.Buffer
}

func newBuilder() *streamBuilder { return &streamBuilder{} }

func (b *streamBuilder) raw(v ...byte) *streamBuilder {
	b.buf.Write(v)
	return b
}

func (b *streamBuilder) u8(v byte) *streamBuilder { return b.raw(v) }

func (b *streamBuilder) u16(v uint16) *streamBuilder {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	b.buf.Write(tmp[:])
	return b
}

func (b *streamBuilder) i32(v int32) *streamBuilder {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(v))
	b.buf.Write(tmp[:])
	return b
}

func (b *streamBuilder) i64(v int64) *streamBuilder {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], uint64(v))
	b.buf.Write(tmp[:])
	return b
}

func (b *streamBuilder) f32(v float32) *streamBuilder {
	return b.i32(int32(math.Float32bits(v)))
}

func (b *streamBuilder) f64(v float64) *streamBuilder {
	return b.i64(int64(math.Float64bits(v)))
}

func (b *streamBuilder) bytesOf(v []byte) *streamBuilder {
	b.buf.Write(v)
	return b
}

// utf appends a 16-bit-length-prefixed ASCII payload — sufficient for all
// class and field names exercised by this package's tests, which never
// need the full modified-UTF-8 surrogate machinery.
func (b *streamBuilder) utf(s string) *streamBuilder {
	b.u16(uint16(len(s)))
	b.buf.WriteString(s)
	return b
}

func (b *streamBuilder) header() *streamBuilder {
	return b.u16(uint16(streamMagic)).u16(uint16(streamVersion))
}

// nullClassDesc appends TC_NULL where a classDesc production is expected.
func (b *streamBuilder) nullClassDesc() *streamBuilder { return b.u8(tcNull) }

// emptyAnnotation appends TC_ENDBLOCKDATA, the wire form of an empty
// content list terminator used for both class and object annotations.
func (b *streamBuilder) emptyAnnotation() *streamBuilder { return b.u8(tcEndBlockData) }

func (b *streamBuilder) bytesResult() []byte {
	return append([]byte(nil), b.buf.Bytes()...)
}

// simpleSerializableClassDesc appends a TC_CLASSDESC for a class named
// name with exactly one declared field (typeCode, fieldName), flagged
// SC_SERIALIZABLE with no custom writeObject method, no superclass — the
// minimal descriptor shape spec §4.3's S5 scenario describes.
func (b *streamBuilder) simpleSerializableClassDesc(name string, typeCode byte, fieldName string) *streamBuilder {
	b.u8(tcClassDesc)
	b.utf(name)
	b.i64(0) // serialVersionUID
	b.u8(scSerializable)
	b.u16(1) // field count
	b.u8(typeCode)
	b.utf(fieldName)
	b.emptyAnnotation()
	b.nullClassDesc() // no superclass
	return b
}
