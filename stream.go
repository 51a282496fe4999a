// Copyright 2024 The javaserial Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package javaserial

// streamMagic and streamVersion are the only accepted stream header
// values (spec §4.3, §6): AC ED 00 05. Any other magic or version is
// ErrBadHeader.
const (
	streamMagic   uint16 = 0xACED
	streamVersion uint16 = 5
)

// Default limits applied when the corresponding Options field is left at
// its zero value, mirroring the teacher's MaxDefaultCOFFSymbolsCount /
// MaxDefaultRelocEntriesCount defaults (file.go) against attacker
// controlled counts.
const (
	DefaultMaxNestingDepth     = 1000
	DefaultMaxTopLevelContents = 1 << 20
)

// Options configures an ObjectInputStream's tolerance for
// attacker-controlled or corrupt size fields. The zero value is usable:
// New fills in the defaults below the way the teacher's New/NewBytes
// populate an unset Options (file.go).
type Options struct {
	// MaxNestingDepth bounds recursive descent through nested class
	// hierarchies, arrays-of-arrays, and object graphs. 0 means
	// DefaultMaxNestingDepth; negative disables the guard entirely.
	MaxNestingDepth int

	// MaxTopLevelContents bounds how many top-level records ReadAll will
	// accumulate before failing with ErrTooManyContents. 0 means
	// DefaultMaxTopLevelContents; negative disables the guard.
	MaxTopLevelContents int

	// MaxBlockDataSize bounds a single TC_BLOCKDATALONG payload. 0
	// disables the guard (TC_BLOCKDATA is inherently bounded to 255
	// bytes by its 8-bit length).
	MaxBlockDataSize uint32

	// MaxArrayLength bounds a single TC_ARRAY element count. 0 disables
	// the guard.
	MaxArrayLength uint32
}

func (o Options) withDefaults() Options {
	if o.MaxNestingDepth == 0 {
		o.MaxNestingDepth = DefaultMaxNestingDepth
	} else if o.MaxNestingDepth < 0 {
		o.MaxNestingDepth = 0
	}
	if o.MaxTopLevelContents == 0 {
		o.MaxTopLevelContents = DefaultMaxTopLevelContents
	} else if o.MaxTopLevelContents < 0 {
		o.MaxTopLevelContents = 0
	}
	return o
}

// ObjectInputStream is the public entry point: it validates the stream
// header on construction and decodes top-level contents on ReadAll, the
// same two-phase shape as the teacher's File — New/NewBytes open and set
// up, Parse does the work that can fail (file.go).
type ObjectInputStream struct {
	d *decoder
}

// New validates the stream header read from bs and returns a ready
// ObjectInputStream. opts configures recursion and size guards; the zero
// value is a safe default.
func New(bs ByteSource, opts Options) (*ObjectInputStream, error) {
	d := &decoder{bs: bs, opts: opts.withDefaults()}
	if err := d.readHeader(); err != nil {
		return nil, err
	}
	return &ObjectInputStream{d: d}, nil
}

func (d *decoder) readHeader() error {
	magic, err := d.bs.ReadU16BE()
	if err != nil {
		return ErrBadHeader
	}
	if magic != streamMagic {
		return ErrBadHeader
	}
	version, err := d.bs.ReadU16BE()
	if err != nil {
		return ErrBadHeader
	}
	if version != streamVersion {
		return ErrBadHeader
	}
	return nil
}

// ReadAll decodes top-level contents until the byte source is exhausted.
// Any error aborts decoding: ReadAll returns either a complete slice or a
// nil slice and a non-nil error, never a partial result (spec §7
// Propagation).
func (ois *ObjectInputStream) ReadAll() ([]Content, error) {
	var contents []Content
	for ois.d.bs.HasDataLeft() {
		if ois.d.opts.MaxTopLevelContents > 0 && len(contents) >= ois.d.opts.MaxTopLevelContents {
			return nil, ErrTooManyContents
		}
		c, err := ois.d.readContent()
		if err != nil {
			return nil, err
		}
		contents = append(contents, c)
	}
	return contents, nil
}

// HandleCount reports the number of entities currently occupying a handle,
// exposed so callers (and this package's own property tests) can assert
// handle monotonicity (spec P1) without reaching into unexported state.
func (ois *ObjectInputStream) HandleCount() int {
	return ois.d.handles.len()
}

// The following are thin pass-throughs to the underlying ByteSource,
// exposed so that callers walking the decoded tree can reinterpret opaque
// BlockData payloads (spec §6) — the same role the teacher's
// ReadBytesAtOffset / structUnpack (helper.go) play for PE data outside
// any structured field the library itself modeled.

func (ois *ObjectInputStream) ReadBoolean() (bool, error) { return ois.d.bs.ReadBool() }
func (ois *ObjectInputStream) ReadByte() (int8, error)    { return ois.d.bs.ReadI8() }

func (ois *ObjectInputStream) ReadChar() (uint16, error) { return ois.d.bs.ReadU16BE() }
func (ois *ObjectInputStream) ReadDouble() (float64, error) { return ois.d.bs.ReadF64BE() }
func (ois *ObjectInputStream) ReadFloat() (float32, error)  { return ois.d.bs.ReadF32BE() }
func (ois *ObjectInputStream) ReadInt() (int32, error)      { return ois.d.bs.ReadI32BE() }
func (ois *ObjectInputStream) ReadLong() (int64, error)     { return ois.d.bs.ReadI64BE() }
func (ois *ObjectInputStream) ReadShort() (int16, error)    { return ois.d.bs.ReadI16BE() }

func (ois *ObjectInputStream) ReadUnsignedByte() (uint8, error) { return ois.d.bs.ReadU8() }
func (ois *ObjectInputStream) ReadUnsignedShort() (uint16, error) {
	return ois.d.bs.ReadU16BE()
}

// ReadUTF reads a 16-bit-length-prefixed modified-UTF-8 string directly
// from the byte source, without allocating a handle — useful for
// reinterpreting a BlockData payload that itself contains length-prefixed
// text written by a custom writeObject method.
func (ois *ObjectInputStream) ReadUTF() (string, error) {
	raw, err := readRawUTF16(ois.d.bs)
	if err != nil {
		return "", err
	}
	return raw.Text()
}

// ReadLongUTF is the 64-bit-length counterpart of ReadUTF.
func (ois *ObjectInputStream) ReadLongUTF() (string, error) {
	n, err := ois.d.bs.ReadI64BE()
	if err != nil {
		return "", wrap("long utf length", err)
	}
	if n < 0 {
		return "", ErrBadBlockSize
	}
	raw, err := ois.d.bs.Read(int(n))
	if err != nil {
		return "", wrap("long utf payload", err)
	}
	return decodeModifiedUTF8(raw)
}
