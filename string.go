// Copyright 2024 The javaserial Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package javaserial

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
)

// readRawUTF16 reads the 16-bit-length-prefixed payload used for
// ClassDescriptor names and FieldDesc names — an inline UTF field, not a
// handle-bearing String entity (spec §4.3's FieldDesc production).
func readRawUTF16(bs ByteSource) (*String, error) {
	n, err := bs.ReadU16BE()
	if err != nil {
		return nil, wrap("utf length", err)
	}
	raw, err := bs.Read(int(n))
	if err != nil {
		return nil, wrap("utf payload", err)
	}
	return &String{Raw: raw}, nil
}

// newString16 implements the TC_STRING production: allocate a handle,
// then read a 16-bit-length-prefixed payload.
func (d *decoder) newString16() (*String, error) {
	s := &String{}
	s.Handle = d.handles.allocate(s)
	raw, err := readRawUTF16(d.bs)
	if err != nil {
		return nil, err
	}
	s.Raw = raw.Raw
	return s, nil
}

// newString64 implements the TC_LONGSTRING production: allocate a handle,
// then read a 64-bit-length-prefixed payload (treated as non-negative per
// spec §3).
func (d *decoder) newString64() (*String, error) {
	s := &String{Long: true}
	s.Handle = d.handles.allocate(s)
	n, err := d.bs.ReadI64BE()
	if err != nil {
		return nil, wrap("long utf length", err)
	}
	if n < 0 {
		return nil, fmt.Errorf("javaserial: negative long string length %d", n)
	}
	raw, err := d.bs.Read(int(n))
	if err != nil {
		return nil, wrap("long utf payload", err)
	}
	s.Raw = raw
	return s, nil
}

// decodeModifiedUTF8 decodes Java's modified UTF-8 encoding (JVM spec
// §4.4.7): U+0000 is encoded as the two bytes C0 80 instead of a literal
// NUL, and any code point above U+FFFF is encoded as a surrogate pair of
// two three-byte sequences (CESU-8-style) rather than as a standard 4-byte
// UTF-8 sequence. Neither variant is accepted by encoding/utf8, so this
// first walks the byte stream by hand to recover the UTF-16 code unit
// sequence the JVM would have produced, then hands that sequence to
// golang.org/x/text/encoding/unicode's UTF-16 decoder to produce the final
// Go string — the same two-step "decode to UTF-16 units, then let x/text
// assemble the string" shape the teacher's DecodeUTF16String (helper.go)
// uses for VS_VERSION_INFO strings, adapted from little-endian UTF-16 input
// to a modified-UTF-8 input.
func decodeModifiedUTF8(raw []byte) (string, error) {
	units, err := modifiedUTF8ToUTF16(raw)
	if err != nil {
		return "", err
	}
	buf := make([]byte, len(units)*2)
	for i, u := range units {
		buf[2*i] = byte(u >> 8)
		buf[2*i+1] = byte(u)
	}
	decoder := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := decoder.Bytes(buf)
	if err != nil {
		return "", fmt.Errorf("javaserial: decoding modified utf-8: %w", err)
	}
	return string(out), nil
}

// modifiedUTF8ToUTF16 walks raw byte-by-byte and returns the UTF-16 code
// unit sequence it encodes.
func modifiedUTF8ToUTF16(raw []byte) ([]uint16, error) {
	var units []uint16
	i := 0
	for i < len(raw) {
		b0 := raw[i]
		switch {
		case b0&0x80 == 0:
			units = append(units, uint16(b0))
			i++
		case b0&0xE0 == 0xC0:
			if i+1 >= len(raw) {
				return nil, io.ErrUnexpectedEOF
			}
			b1 := raw[i+1]
			cp := (uint16(b0&0x1F) << 6) | uint16(b1&0x3F)
			units = append(units, cp)
			i += 2
		case b0&0xF0 == 0xE0:
			if i+2 >= len(raw) {
				return nil, io.ErrUnexpectedEOF
			}
			b1, b2 := raw[i+1], raw[i+2]
			cp := (uint16(b0&0x0F) << 12) | (uint16(b1&0x3F) << 6) | uint16(b2&0x3F)
			units = append(units, cp)
			i += 3
		default:
			return nil, fmt.Errorf("javaserial: invalid modified utf-8 lead byte %#x", b0)
		}
	}
	return units, nil
}
