// Copyright 2026 The jvmlet Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions that carry no extra context.
var (
	// ErrUnexpectedEndOfStream is returned when fewer bytes remain in the
	// input than a primitive read requires.
	ErrUnexpectedEndOfStream = errors.New("classfile: unexpected end of stream")

	// ErrNotAClassFile is returned when the leading magic number is not
	// 0xCAFEBABE.
	ErrNotAClassFile = errors.New("classfile: not a class file (bad magic)")

	// ErrConstantValidationFailed is returned when Validate finds a
	// cross-reference pointing at a constant of the wrong tag.
	ErrConstantValidationFailed = errors.New("classfile: constant pool failed validation")

	// ErrConstantIsReservedHole is returned by a lookup landing on the slot
	// immediately after a Long or Double.
	ErrConstantIsReservedHole = errors.New("classfile: constant index is a reserved hole")

	// ErrAttributeLengthMismatch is returned when a well-known attribute's
	// declared length does not match the bytes its body decoder consumed.
	ErrAttributeLengthMismatch = errors.New("classfile: attribute length mismatch")
)

// MalformedConstantPoolError reports a constant pool tag byte that does not
// match any known variant.
type MalformedConstantPoolError struct {
	Tag   uint8
	Index int
}

func (e *MalformedConstantPoolError) Error() string {
	return fmt.Sprintf("classfile: malformed constant pool: unknown tag %d at index %d", e.Tag, e.Index)
}

// ConstantIndexOutOfRangeError reports a lookup index outside [1, count-1].
type ConstantIndexOutOfRangeError struct {
	Index int
	Count int
}

func (e *ConstantIndexOutOfRangeError) Error() string {
	return fmt.Sprintf("classfile: constant index %d out of range [1, %d]", e.Index, e.Count-1)
}

// ConstantTypeMismatchError reports a typed lookup (Utf8, ClassName,
// NameAndType, Methodref, ...) against a constant whose tag does not match
// the requested variant.
type ConstantTypeMismatchError struct {
	Index    int
	Expected Tag
	Actual   Tag
}

func (e *ConstantTypeMismatchError) Error() string {
	return fmt.Sprintf("classfile: constant %d has tag %s, expected %s", e.Index, e.Actual, e.Expected)
}

// MemberIndexOutOfRangeError reports an out-of-range field/method lookup.
type MemberIndexOutOfRangeError struct {
	Index int
	Count int
}

func (e *MemberIndexOutOfRangeError) Error() string {
	return fmt.Sprintf("classfile: member index %d out of range [0, %d)", e.Index, e.Count)
}

// AttributeNotFoundError reports a lookup-by-name miss in an attribute pool.
type AttributeNotFoundError struct {
	Name string
}

func (e *AttributeNotFoundError) Error() string {
	return fmt.Sprintf("classfile: no attribute named %q", e.Name)
}
