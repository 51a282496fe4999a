// Copyright 2024 The javaserial Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package javaserial

func (*BlockData) ContentKind() ContentKind { return KindBlockData }

// readBlockShort implements TC_BLOCKDATA: an 8-bit *unsigned* length
// followed by that many bytes. Spec §9's first Open Question pins this
// down explicitly against the source's inconsistent signed/unsigned
// reads — this module always treats it as unsigned.
func (d *decoder) readBlockShort() (*BlockData, error) {
	n, err := d.bs.ReadU8()
	if err != nil {
		return nil, wrap("block data size", err)
	}
	data, err := d.bs.Read(int(n))
	if err != nil {
		return nil, wrap("block data payload", err)
	}
	return &BlockData{Data: data}, nil
}

// readBlockLong implements TC_BLOCKDATALONG: a 32-bit *signed* length
// followed by that many bytes.
func (d *decoder) readBlockLong() (*BlockData, error) {
	n, err := d.bs.ReadI32BE()
	if err != nil {
		return nil, wrap("block data long size", err)
	}
	if n < 0 {
		return nil, ErrBadBlockSize
	}
	if d.opts.MaxBlockDataSize > 0 && uint32(n) > d.opts.MaxBlockDataSize {
		return nil, ErrBadBlockSize
	}
	data, err := d.bs.Read(int(n))
	if err != nil {
		return nil, wrap("block data long payload", err)
	}
	return &BlockData{Long: true, Data: data}, nil
}
