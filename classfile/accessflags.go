// Copyright 2026 The jvmlet Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// AccessFlags is a raw access_flags bitmask. Its predicates are pure bit
// tests; they never validate that a flag combination is legal for the
// member kind it was read from (ClassMember.cpp's AccessFlags does the
// same — legality checking belongs to a verifier, out of this interpreter's
// scope).
type AccessFlags uint16

// Flag bits shared across classes, fields and methods. Not every bit is
// meaningful for every kind (ACC_SUPER and ACC_SYNCHRONIZED share 0x0020,
// for instance); callers interpret the bits in the context of what they
// parsed the flags from.
const (
	AccPublic       AccessFlags = 0x0001
	AccPrivate      AccessFlags = 0x0002
	AccProtected    AccessFlags = 0x0004
	AccStatic       AccessFlags = 0x0008
	AccFinal        AccessFlags = 0x0010
	AccSuper        AccessFlags = 0x0020
	AccSynchronized AccessFlags = 0x0020
	AccVolatile     AccessFlags = 0x0040
	AccBridge       AccessFlags = 0x0040
	AccTransient    AccessFlags = 0x0080
	AccVarargs      AccessFlags = 0x0080
	AccNative       AccessFlags = 0x0100
	AccInterface    AccessFlags = 0x0200
	AccAbstract     AccessFlags = 0x0400
	AccStrict       AccessFlags = 0x0800
	AccSynthetic    AccessFlags = 0x1000
	AccAnnotation   AccessFlags = 0x2000
	AccEnum         AccessFlags = 0x4000
)

func (f AccessFlags) has(bit AccessFlags) bool { return f&bit != 0 }

func (f AccessFlags) IsPublic() bool       { return f.has(AccPublic) }
func (f AccessFlags) IsPrivate() bool      { return f.has(AccPrivate) }
func (f AccessFlags) IsProtected() bool    { return f.has(AccProtected) }
func (f AccessFlags) IsStatic() bool       { return f.has(AccStatic) }
func (f AccessFlags) IsFinal() bool        { return f.has(AccFinal) }
func (f AccessFlags) IsSuper() bool        { return f.has(AccSuper) }
func (f AccessFlags) IsSynchronized() bool { return f.has(AccSynchronized) }
func (f AccessFlags) IsVolatile() bool     { return f.has(AccVolatile) }
func (f AccessFlags) IsBridge() bool       { return f.has(AccBridge) }
func (f AccessFlags) IsTransient() bool    { return f.has(AccTransient) }
func (f AccessFlags) IsVarargs() bool      { return f.has(AccVarargs) }
func (f AccessFlags) IsNative() bool       { return f.has(AccNative) }
func (f AccessFlags) IsInterface() bool    { return f.has(AccInterface) }
func (f AccessFlags) IsAbstract() bool     { return f.has(AccAbstract) }
func (f AccessFlags) IsStrict() bool       { return f.has(AccStrict) }
func (f AccessFlags) IsSynthetic() bool    { return f.has(AccSynthetic) }
func (f AccessFlags) IsAnnotation() bool   { return f.has(AccAnnotation) }
func (f AccessFlags) IsEnum() bool         { return f.has(AccEnum) }

// ParseAccessFlags reads a raw u2 access_flags field.
func ParseAccessFlags(r *Reader) (AccessFlags, error) {
	v, err := r.U2()
	return AccessFlags(v), err
}
