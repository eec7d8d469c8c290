// Copyright 2026 The jvmlet Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"fmt"
	"io"
)

// MagicNumber is the fixed 4-byte value every class file begins with.
const MagicNumber uint32 = 0xCAFEBABE

// ClassFile is a fully decoded class file. Parse fills every field in
// the strict top-to-bottom order the format defines; ClassFile.cpp's
// constructor initializer list (magic, versions, constant pool, access
// flags, this/super class, interfaces, fields, methods, attributes) is
// followed exactly.
type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	Constants    *ConstantPool
	AccessFlags  AccessFlags
	ThisClass    string
	SuperClass   string // empty for java/lang/Object
	Interfaces   []string
	Fields       []Member
	Methods      []Member
	Attributes   *AttributePool

	// ClinitIndex is the index into Methods of the class's <clinit>
	// method, or -1 if it has none. ClassFile.cpp's constructor performs
	// this same scan eagerly rather than leaving it to a later lookup.
	ClinitIndex int
}

// Parse decodes a class file from r. r is read forward-only and is
// never seeked or retained past the call.
func Parse(r io.Reader) (*ClassFile, error) {
	br := NewReader(r)

	magic, err := br.U4()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading magic: %w", err)
	}
	if magic != MagicNumber {
		return nil, ErrNotAClassFile
	}

	minor, err := br.U2()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading minor_version: %w", err)
	}
	major, err := br.U2()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading major_version: %w", err)
	}

	cp, err := ParseConstantPool(br)
	if err != nil {
		return nil, err
	}
	if err := cp.Validate(); err != nil {
		return nil, err
	}

	accessFlags, err := ParseAccessFlags(br)
	if err != nil {
		return nil, fmt.Errorf("classfile: reading access_flags: %w", err)
	}

	thisClassIdx, err := br.U2()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading this_class: %w", err)
	}
	thisClass, err := cp.ClassName(thisClassIdx)
	if err != nil {
		return nil, fmt.Errorf("classfile: resolving this_class: %w", err)
	}

	superClassIdx, err := br.U2()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading super_class: %w", err)
	}
	var superClass string
	if superClassIdx != 0 {
		superClass, err = cp.ClassName(superClassIdx)
		if err != nil {
			return nil, fmt.Errorf("classfile: resolving super_class: %w", err)
		}
	}

	interfaces, err := parseInterfaces(br, cp)
	if err != nil {
		return nil, err
	}

	fields, err := parseMembers(br, cp, "field")
	if err != nil {
		return nil, err
	}

	methods, err := parseMembers(br, cp, "method")
	if err != nil {
		return nil, err
	}

	attrs, err := ParseAttributePool(br, cp)
	if err != nil {
		return nil, fmt.Errorf("classfile: reading class attributes: %w", err)
	}

	clinitIndex := -1
	for i := range methods {
		if methods[i].Name == "<clinit>" {
			clinitIndex = i
			break
		}
	}

	return &ClassFile{
		MinorVersion: minor,
		MajorVersion: major,
		Constants:    cp,
		AccessFlags:  accessFlags,
		ThisClass:    thisClass,
		SuperClass:   superClass,
		Interfaces:   interfaces,
		Fields:       fields,
		Methods:      methods,
		Attributes:   attrs,
		ClinitIndex:  clinitIndex,
	}, nil
}

func parseInterfaces(r *Reader, cp *ConstantPool) ([]string, error) {
	count, err := r.U2()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading interfaces_count: %w", err)
	}
	names := make([]string, count)
	for i := 0; i < int(count); i++ {
		idx, err := r.U2()
		if err != nil {
			return nil, fmt.Errorf("classfile: reading interface %d: %w", i, err)
		}
		name, err := cp.ClassName(idx)
		if err != nil {
			return nil, fmt.Errorf("classfile: resolving interface %d: %w", i, err)
		}
		names[i] = name
	}
	return names, nil
}

// ReferencedClassNames returns the internal name of every class this
// class file's constant pool mentions, with array markers and the
// surrounding L...; wrapper of object-array element types stripped, for
// the loader's transitive-loading scan (spec.md §4.G; ClassFile.cpp's
// initialize()).
func (cf *ClassFile) ReferencedClassNames() ([]string, error) {
	var names []string
	for i := 1; i < cf.Constants.Count(); i++ {
		c, err := cf.Constants.At(uint16(i))
		if err != nil {
			if err == ErrConstantIsReservedHole {
				continue
			}
			return nil, err
		}
		cls, ok := c.(ConstantClass)
		if !ok {
			continue
		}
		raw, err := cf.Constants.Utf8(cls.NameIndex)
		if err != nil {
			return nil, err
		}
		if name, ok := stripArrayMarkers(raw); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// stripArrayMarkers strips leading '[' array-dimension markers. If what
// remains still looks like an object array element descriptor (starts
// with 'L' and ends with ';'), those wrapper characters are stripped
// too. ok is false when nothing nameable remains: primitive array
// element types (B C D F I J S Z) have no class to load, matching
// ClassFile.cpp's initialize(), which only recurses when the
// stripped name is non-empty and not a primitive type descriptor.
func stripArrayMarkers(raw string) (name string, ok bool) {
	isArray := false
	for len(raw) > 0 && raw[0] == '[' {
		raw = raw[1:]
		isArray = true
	}
	if len(raw) >= 2 && raw[0] == 'L' && raw[len(raw)-1] == ';' {
		raw = raw[1 : len(raw)-1]
	}
	if raw == "" || (isArray && isPrimitiveDescriptor(raw)) {
		return "", false
	}
	return raw, true
}

// isPrimitiveDescriptor reports whether s is one of the single-character
// primitive type descriptors (B C D F I J S Z).
func isPrimitiveDescriptor(s string) bool {
	if len(s) != 1 {
		return false
	}
	switch s[0] {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		return true
	}
	return false
}
