// Copyright 2026 The jvmlet Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"fmt"
	"math"
)

// Tag identifies the variant of a constant pool entry.
type Tag uint8

// Constant pool tags, per the classfile format.
const (
	TagUtf8               Tag = 1
	TagInteger            Tag = 3
	TagFloat              Tag = 4
	TagLong               Tag = 5
	TagDouble             Tag = 6
	TagClass              Tag = 7
	TagString             Tag = 8
	TagFieldref           Tag = 9
	TagMethodref          Tag = 10
	TagInterfaceMethodref Tag = 11
	TagNameAndType        Tag = 12
	TagMethodHandle       Tag = 15
	TagMethodType         Tag = 16
	TagDynamic            Tag = 17
	TagInvokeDynamic      Tag = 18
)

func (t Tag) String() string {
	switch t {
	case TagUtf8:
		return "Utf8"
	case TagInteger:
		return "Integer"
	case TagFloat:
		return "Float"
	case TagLong:
		return "Long"
	case TagDouble:
		return "Double"
	case TagClass:
		return "Class"
	case TagString:
		return "String"
	case TagFieldref:
		return "Fieldref"
	case TagMethodref:
		return "Methodref"
	case TagInterfaceMethodref:
		return "InterfaceMethodref"
	case TagNameAndType:
		return "NameAndType"
	case TagMethodHandle:
		return "MethodHandle"
	case TagMethodType:
		return "MethodType"
	case TagDynamic:
		return "Dynamic"
	case TagInvokeDynamic:
		return "InvokeDynamic"
	case 0:
		return "ReservedHole"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

// Constant is implemented by every constant pool entry variant.
type Constant interface {
	Tag() Tag
}

// ConstantUtf8 holds a modified-UTF-8-decoded string.
type ConstantUtf8 struct{ Value string }

func (ConstantUtf8) Tag() Tag { return TagUtf8 }

// ConstantInteger holds a 32-bit signed integer constant.
type ConstantInteger struct{ Value int32 }

func (ConstantInteger) Tag() Tag { return TagInteger }

// ConstantFloat holds a 32-bit IEEE 754 float constant.
type ConstantFloat struct{ Value float32 }

func (ConstantFloat) Tag() Tag { return TagFloat }

// ConstantLong holds a 64-bit signed integer constant. It occupies its own
// index plus the reserved hole immediately after it.
type ConstantLong struct{ Value int64 }

func (ConstantLong) Tag() Tag { return TagLong }

// ConstantDouble holds a 64-bit IEEE 754 double constant. Like Long, it
// reserves the slot after it.
type ConstantDouble struct{ Value float64 }

func (ConstantDouble) Tag() Tag { return TagDouble }

// ConstantClass references a Utf8 entry holding a (possibly array)
// internal class name.
type ConstantClass struct{ NameIndex uint16 }

func (ConstantClass) Tag() Tag { return TagClass }

// ConstantString references a Utf8 entry holding the string's contents.
type ConstantString struct{ StringIndex uint16 }

func (ConstantString) Tag() Tag { return TagString }

// ConstantFieldref references an owning class and a NameAndType.
type ConstantFieldref struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (ConstantFieldref) Tag() Tag { return TagFieldref }

// ConstantMethodref references an owning class and a NameAndType.
type ConstantMethodref struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (ConstantMethodref) Tag() Tag { return TagMethodref }

// ConstantInterfaceMethodref references an owning interface and a
// NameAndType.
type ConstantInterfaceMethodref struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (ConstantInterfaceMethodref) Tag() Tag { return TagInterfaceMethodref }

// ConstantNameAndType pairs a name and a descriptor, both Utf8 references.
type ConstantNameAndType struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (ConstantNameAndType) Tag() Tag { return TagNameAndType }

// ConstantMethodHandle is carried structurally but not resolved; no
// opcode in this interpreter's scope consumes it (invokedynamic
// resolution is out of scope).
type ConstantMethodHandle struct {
	ReferenceKind  uint8
	ReferenceIndex uint16
}

func (ConstantMethodHandle) Tag() Tag { return TagMethodHandle }

// ConstantMethodType is carried structurally, unresolved.
type ConstantMethodType struct{ DescriptorIndex uint16 }

func (ConstantMethodType) Tag() Tag { return TagMethodType }

// ConstantDynamic is carried structurally, unresolved.
type ConstantDynamic struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (ConstantDynamic) Tag() Tag { return TagDynamic }

// ConstantInvokeDynamic is carried structurally, unresolved.
type ConstantInvokeDynamic struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (ConstantInvokeDynamic) Tag() Tag { return TagInvokeDynamic }

// ConstantPool is the class file's 1-indexed constant table. Index 0 is
// unused; the slot immediately after a Long or Double entry is a
// reserved hole (nil).
type ConstantPool struct {
	entries []Constant // entries[0] is always nil
}

// Count returns the declared constant_pool_count (entries[0] included).
func (cp *ConstantPool) Count() int { return len(cp.entries) }

// ParseConstantPool reads constant_pool_count followed by that many
// (minus one) entries, honoring the Long/Double double-slot convention.
func ParseConstantPool(r *Reader) (*ConstantPool, error) {
	count, err := r.U2()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading constant_pool_count: %w", err)
	}
	entries := make([]Constant, count)
	for i := 1; i < int(count); i++ {
		tag, err := r.U1()
		if err != nil {
			return nil, fmt.Errorf("classfile: reading constant tag at index %d: %w", i, err)
		}
		c, err := parseOneConstant(r, Tag(tag))
		if err != nil {
			if err == errUnknownTag {
				return nil, &MalformedConstantPoolError{Tag: tag, Index: i}
			}
			return nil, fmt.Errorf("classfile: reading constant at index %d: %w", i, err)
		}
		entries[i] = c
		switch c.(type) {
		case ConstantLong, ConstantDouble:
			i++ // reserved hole, per the Long/Double double-slot rule
		}
	}
	return &ConstantPool{entries: entries}, nil
}

var errUnknownTag = fmt.Errorf("unknown constant pool tag")

func parseOneConstant(r *Reader, tag Tag) (Constant, error) {
	switch tag {
	case TagUtf8:
		length, err := r.U2()
		if err != nil {
			return nil, err
		}
		raw, err := r.Bytes(int(length))
		if err != nil {
			return nil, err
		}
		s, err := decodeModifiedUTF8(raw)
		if err != nil {
			return nil, err
		}
		return ConstantUtf8{Value: s}, nil
	case TagInteger:
		v, err := r.I4()
		return ConstantInteger{Value: v}, err
	case TagFloat:
		v, err := r.U4()
		return ConstantFloat{Value: math.Float32frombits(v)}, err
	case TagLong:
		v, err := r.I8()
		return ConstantLong{Value: v}, err
	case TagDouble:
		v, err := r.U8()
		return ConstantDouble{Value: math.Float64frombits(v)}, err
	case TagClass:
		v, err := r.U2()
		return ConstantClass{NameIndex: v}, err
	case TagString:
		v, err := r.U2()
		return ConstantString{StringIndex: v}, err
	case TagFieldref:
		classIdx, err := r.U2()
		if err != nil {
			return nil, err
		}
		natIdx, err := r.U2()
		return ConstantFieldref{ClassIndex: classIdx, NameAndTypeIndex: natIdx}, err
	case TagMethodref:
		classIdx, err := r.U2()
		if err != nil {
			return nil, err
		}
		natIdx, err := r.U2()
		return ConstantMethodref{ClassIndex: classIdx, NameAndTypeIndex: natIdx}, err
	case TagInterfaceMethodref:
		classIdx, err := r.U2()
		if err != nil {
			return nil, err
		}
		natIdx, err := r.U2()
		return ConstantInterfaceMethodref{ClassIndex: classIdx, NameAndTypeIndex: natIdx}, err
	case TagNameAndType:
		nameIdx, err := r.U2()
		if err != nil {
			return nil, err
		}
		descIdx, err := r.U2()
		return ConstantNameAndType{NameIndex: nameIdx, DescriptorIndex: descIdx}, err
	case TagMethodHandle:
		kind, err := r.U1()
		if err != nil {
			return nil, err
		}
		refIdx, err := r.U2()
		return ConstantMethodHandle{ReferenceKind: kind, ReferenceIndex: refIdx}, err
	case TagMethodType:
		descIdx, err := r.U2()
		return ConstantMethodType{DescriptorIndex: descIdx}, err
	case TagDynamic:
		bsmIdx, err := r.U2()
		if err != nil {
			return nil, err
		}
		natIdx, err := r.U2()
		return ConstantDynamic{BootstrapMethodAttrIndex: bsmIdx, NameAndTypeIndex: natIdx}, err
	case TagInvokeDynamic:
		bsmIdx, err := r.U2()
		if err != nil {
			return nil, err
		}
		natIdx, err := r.U2()
		return ConstantInvokeDynamic{BootstrapMethodAttrIndex: bsmIdx, NameAndTypeIndex: natIdx}, err
	default:
		return nil, errUnknownTag
	}
}

// At returns the raw entry at index, or an error if index is out of range
// or lands on a reserved hole.
func (cp *ConstantPool) At(index uint16) (Constant, error) {
	i := int(index)
	if i <= 0 || i >= len(cp.entries) {
		return nil, &ConstantIndexOutOfRangeError{Index: i, Count: len(cp.entries)}
	}
	c := cp.entries[i]
	if c == nil {
		return nil, ErrConstantIsReservedHole
	}
	return c, nil
}

// Utf8 resolves index to a Utf8 constant's string value.
func (cp *ConstantPool) Utf8(index uint16) (string, error) {
	c, err := cp.At(index)
	if err != nil {
		return "", err
	}
	u, ok := c.(ConstantUtf8)
	if !ok {
		return "", &ConstantTypeMismatchError{Index: int(index), Expected: TagUtf8, Actual: c.Tag()}
	}
	return u.Value, nil
}

// ClassName resolves a Class constant at index to its internal name.
func (cp *ConstantPool) ClassName(index uint16) (string, error) {
	c, err := cp.At(index)
	if err != nil {
		return "", err
	}
	cls, ok := c.(ConstantClass)
	if !ok {
		return "", &ConstantTypeMismatchError{Index: int(index), Expected: TagClass, Actual: c.Tag()}
	}
	return cp.Utf8(cls.NameIndex)
}

// NameAndType resolves index and returns the (name, descriptor) pair.
func (cp *ConstantPool) NameAndType(index uint16) (name, descriptor string, err error) {
	c, err := cp.At(index)
	if err != nil {
		return "", "", err
	}
	nat, ok := c.(ConstantNameAndType)
	if !ok {
		return "", "", &ConstantTypeMismatchError{Index: int(index), Expected: TagNameAndType, Actual: c.Tag()}
	}
	name, err = cp.Utf8(nat.NameIndex)
	if err != nil {
		return "", "", err
	}
	descriptor, err = cp.Utf8(nat.DescriptorIndex)
	return name, descriptor, err
}

// MemberRef is the resolved (owning class, name, descriptor) triple
// shared by Fieldref, Methodref and InterfaceMethodref lookups.
type MemberRef struct {
	ClassName  string
	Name       string
	Descriptor string
}

// Fieldref resolves a Fieldref constant.
func (cp *ConstantPool) Fieldref(index uint16) (MemberRef, error) {
	c, err := cp.At(index)
	if err != nil {
		return MemberRef{}, err
	}
	fr, ok := c.(ConstantFieldref)
	if !ok {
		return MemberRef{}, &ConstantTypeMismatchError{Index: int(index), Expected: TagFieldref, Actual: c.Tag()}
	}
	return cp.resolveMemberRef(fr.ClassIndex, fr.NameAndTypeIndex)
}

// Methodref resolves a Methodref constant.
func (cp *ConstantPool) Methodref(index uint16) (MemberRef, error) {
	c, err := cp.At(index)
	if err != nil {
		return MemberRef{}, err
	}
	mr, ok := c.(ConstantMethodref)
	if !ok {
		return MemberRef{}, &ConstantTypeMismatchError{Index: int(index), Expected: TagMethodref, Actual: c.Tag()}
	}
	return cp.resolveMemberRef(mr.ClassIndex, mr.NameAndTypeIndex)
}

// InterfaceMethodref resolves an InterfaceMethodref constant.
func (cp *ConstantPool) InterfaceMethodref(index uint16) (MemberRef, error) {
	c, err := cp.At(index)
	if err != nil {
		return MemberRef{}, err
	}
	mr, ok := c.(ConstantInterfaceMethodref)
	if !ok {
		return MemberRef{}, &ConstantTypeMismatchError{Index: int(index), Expected: TagInterfaceMethodref, Actual: c.Tag()}
	}
	return cp.resolveMemberRef(mr.ClassIndex, mr.NameAndTypeIndex)
}

func (cp *ConstantPool) resolveMemberRef(classIndex, natIndex uint16) (MemberRef, error) {
	className, err := cp.ClassName(classIndex)
	if err != nil {
		return MemberRef{}, err
	}
	name, descriptor, err := cp.NameAndType(natIndex)
	if err != nil {
		return MemberRef{}, err
	}
	return MemberRef{ClassName: className, Name: name, Descriptor: descriptor}, nil
}

// String resolves a String constant to its backing Utf8 value.
func (cp *ConstantPool) String(index uint16) (string, error) {
	c, err := cp.At(index)
	if err != nil {
		return "", err
	}
	s, ok := c.(ConstantString)
	if !ok {
		return "", &ConstantTypeMismatchError{Index: int(index), Expected: TagString, Actual: c.Tag()}
	}
	return cp.Utf8(s.StringIndex)
}

// Validate walks every entry that carries an index into the pool and
// confirms it resolves to an existing constant of the expected tag.
// Entries that are only ever consumed lazily (e.g. MethodHandle's
// reference, which this interpreter never dereferences) are not
// exhaustively checked, matching the original decoder's scope.
func (cp *ConstantPool) Validate() error {
	for i := 1; i < len(cp.entries); i++ {
		c := cp.entries[i]
		if c == nil {
			continue
		}
		var err error
		switch e := c.(type) {
		case ConstantClass:
			_, err = cp.Utf8(e.NameIndex)
		case ConstantString:
			_, err = cp.Utf8(e.StringIndex)
		case ConstantFieldref:
			_, err = cp.resolveMemberRef(e.ClassIndex, e.NameAndTypeIndex)
		case ConstantMethodref:
			_, err = cp.resolveMemberRef(e.ClassIndex, e.NameAndTypeIndex)
		case ConstantInterfaceMethodref:
			_, err = cp.resolveMemberRef(e.ClassIndex, e.NameAndTypeIndex)
		case ConstantNameAndType:
			_, err = cp.Utf8(e.NameIndex)
			if err == nil {
				_, err = cp.Utf8(e.DescriptorIndex)
			}
		case ConstantMethodType:
			_, err = cp.Utf8(e.DescriptorIndex)
		case ConstantDynamic:
			_, _, err = cp.NameAndType(e.NameAndTypeIndex)
		case ConstantInvokeDynamic:
			_, _, err = cp.NameAndType(e.NameAndTypeIndex)
		}
		if err != nil {
			return fmt.Errorf("classfile: validating constant %d: %w: %v", i, ErrConstantValidationFailed, err)
		}
	}
	return nil
}
