// Copyright 2024 The javaserial Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package javaserial

import (
	"errors"
	"fmt"
)

// Sentinel errors for the no-payload failure cases.
var (
	// ErrUnexpectedEOF is returned when the byte source is exhausted mid
	// production.
	ErrUnexpectedEOF = errors.New("javaserial: unexpected end of stream")

	// ErrBadHeader is returned when the stream magic or version does not
	// match AC ED 00 05.
	ErrBadHeader = errors.New("javaserial: bad stream header")

	// ErrUnsupportedExternalV1 is returned for an Externalizable class
	// descriptor without SC_BLOCKDATA, i.e. protocol version 1 external
	// contents.
	ErrUnsupportedExternalV1 = errors.New("javaserial: unsupported protocol version 1 externalizable contents")

	// ErrUnsupportedProxyClassDesc is returned when TC_PROXYCLASSDESC is
	// encountered; dynamic proxy class descriptors are out of scope.
	ErrUnsupportedProxyClassDesc = errors.New("javaserial: proxy class descriptors are not supported")

	// ErrBadBlockSize is returned for a negative TC_BLOCKDATALONG length,
	// one above Options.MaxBlockDataSize, and a negative ReadLongUTF
	// length.
	ErrBadBlockSize = errors.New("javaserial: negative or overlong block data size")

	// ErrTooManyContents is returned when ReadAll accumulates more than
	// Options.MaxTopLevelContents top-level records.
	ErrTooManyContents = errors.New("javaserial: too many top-level contents")

	// ErrNestingTooDeep is returned when recursive descent exceeds
	// Options.MaxNestingDepth, guarding against stack exhaustion on a
	// maliciously deep class hierarchy or array-of-array nesting.
	ErrNestingTooDeep = errors.New("javaserial: nesting too deep")
)

// BadTypeCodeError reports a tag byte that is not a member of the allowed
// set for the current grammar production (spec §7 BadTypeCode(ctx, code)).
type BadTypeCodeError struct {
	Context string
	Code    byte
}

func (e *BadTypeCodeError) Error() string {
	return fmt.Sprintf("javaserial: %s: unexpected type code %#x", e.Context, e.Code)
}

// BadHandleError reports a TC_REFERENCE whose handle falls outside the
// allocated range of the handle table.
type BadHandleError struct {
	Handle int32
}

func (e *BadHandleError) Error() string {
	return fmt.Sprintf("javaserial: reference to unallocated handle %#x", e.Handle)
}

// BadFlagsError reports a class descriptor flag byte outside the permitted
// combinations of spec §4.3's table.
type BadFlagsError struct {
	Flags uint8
}

func (e *BadFlagsError) Error() string {
	return fmt.Sprintf("javaserial: bad class descriptor flags %#x", e.Flags)
}

// BadFieldTypeError reports an unrecognized field type code.
type BadFieldTypeError struct {
	Code byte
}

func (e *BadFieldTypeError) Error() string {
	return fmt.Sprintf("javaserial: unknown field type code %q", e.Code)
}

// wrap attaches call-site context to err, the way the teacher's
// errors.Wrap(err, "...") calls do, expressed with the standard library's
// %w instead of github.com/pkg/errors since this module does not import it.
func wrap(ctx string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", ctx, err)
}
