// Copyright 2024 The javaserial Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package javaserial

// Fuzz is a go-fuzz entry point, grounded on the teacher's fuzz.go: build
// from raw bytes, run the full decode, and report whether it succeeded.
func Fuzz(data []byte) int {
	ois, err := New(FromBytes(data), Options{})
	if err != nil {
		return 0
	}
	if _, err := ois.ReadAll(); err != nil {
		return 0
	}
	return 1
}
