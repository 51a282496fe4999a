// Copyright 2024 The javaserial Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package javaserial

import (
	"bytes"
	"testing"
)

func TestReadBlockShort(t *testing.T) {
	data := newBuilder().u8(3).bytesOf([]byte{1, 2, 3}).bytesResult()
	d := &decoder{bs: FromBytes(data)}

	bd, err := d.readBlockShort()
	if err != nil {
		t.Fatalf("readBlockShort() failed: %v", err)
	}
	if bd.Long {
		t.Fatal("Long = true; want false")
	}
	if !bytes.Equal(bd.Data, []byte{1, 2, 3}) {
		t.Fatalf("Data = %v; want [1 2 3]", bd.Data)
	}
}

func TestReadBlockShortUnsignedLength(t *testing.T) {
	// Length byte 0xFF must be read as 255, not -1 (spec §9 Open Question).
	payload := make([]byte, 255)
	data := newBuilder().u8(0xFF).bytesOf(payload).bytesResult()
	d := &decoder{bs: FromBytes(data)}

	bd, err := d.readBlockShort()
	if err != nil {
		t.Fatalf("readBlockShort() failed: %v", err)
	}
	if len(bd.Data) != 255 {
		t.Fatalf("len(Data) = %d; want 255", len(bd.Data))
	}
}

func TestReadBlockLong(t *testing.T) {
	data := newBuilder().i32(2).bytesOf([]byte{9, 8}).bytesResult()
	d := &decoder{bs: FromBytes(data)}

	bd, err := d.readBlockLong()
	if err != nil {
		t.Fatalf("readBlockLong() failed: %v", err)
	}
	if !bd.Long {
		t.Fatal("Long = false; want true")
	}
	if !bytes.Equal(bd.Data, []byte{9, 8}) {
		t.Fatalf("Data = %v; want [9 8]", bd.Data)
	}
}

func TestReadBlockLongNegativeSize(t *testing.T) {
	data := newBuilder().i32(-1).bytesResult()
	d := &decoder{bs: FromBytes(data)}

	if _, err := d.readBlockLong(); err != ErrBadBlockSize {
		t.Fatalf("readBlockLong() error = %v; want ErrBadBlockSize", err)
	}
}

func TestReadBlockLongExceedsLimit(t *testing.T) {
	data := newBuilder().i32(10).bytesResult()
	d := &decoder{bs: FromBytes(data), opts: Options{MaxBlockDataSize: 5}}

	if _, err := d.readBlockLong(); err != ErrBadBlockSize {
		t.Fatalf("readBlockLong() error = %v; want ErrBadBlockSize", err)
	}
}
