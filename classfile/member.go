// Copyright 2026 The jvmlet Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "fmt"

// Member is a field_info or method_info structure; the two share an
// identical on-disk layout (access flags, name, descriptor, attributes),
// so one type serves both, distinguished only by which slice of the
// ClassFile they live in.
type Member struct {
	AccessFlags AccessFlags
	Name        string
	Descriptor  string
	Attributes  *AttributePool
}

// parseMembers reads a field_info[] or method_info[] table: a u2 count
// followed by that many identically-shaped entries.
func parseMembers(r *Reader, cp *ConstantPool, kind string) ([]Member, error) {
	count, err := r.U2()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading %s count: %w", kind, err)
	}
	members := make([]Member, count)
	for i := 0; i < int(count); i++ {
		flags, err := ParseAccessFlags(r)
		if err != nil {
			return nil, fmt.Errorf("classfile: reading %s %d access flags: %w", kind, i, err)
		}
		nameIndex, err := r.U2()
		if err != nil {
			return nil, fmt.Errorf("classfile: reading %s %d name index: %w", kind, i, err)
		}
		name, err := cp.Utf8(nameIndex)
		if err != nil {
			return nil, fmt.Errorf("classfile: resolving %s %d name: %w", kind, i, err)
		}
		descIndex, err := r.U2()
		if err != nil {
			return nil, fmt.Errorf("classfile: reading %s %d descriptor index: %w", kind, i, err)
		}
		descriptor, err := cp.Utf8(descIndex)
		if err != nil {
			return nil, fmt.Errorf("classfile: resolving %s %d descriptor: %w", kind, i, err)
		}
		attrs, err := ParseAttributePool(r, cp)
		if err != nil {
			return nil, fmt.Errorf("classfile: reading %s %d (%s%s) attributes: %w", kind, i, name, descriptor, err)
		}
		members[i] = Member{AccessFlags: flags, Name: name, Descriptor: descriptor, Attributes: attrs}
	}
	return members, nil
}

// FindMethod returns the first method with the given name and
// descriptor, mirroring the linear lookups the interpreter's invoke
// handling needs.
func FindMethod(methods []Member, name, descriptor string) (*Member, bool) {
	for i := range methods {
		if methods[i].Name == name && methods[i].Descriptor == descriptor {
			return &methods[i], true
		}
	}
	return nil, false
}

// MemberAt returns the member at index, bounds-checked against the
// member pool's declared count.
func MemberAt(members []Member, index int) (*Member, error) {
	if index < 0 || index >= len(members) {
		return nil, &MemberIndexOutOfRangeError{Index: index, Count: len(members)}
	}
	return &members[index], nil
}
