// Copyright 2026 The jvmlet Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"encoding/binary"
	"fmt"
)

// Attribute is one raw attribute_info entry: a resolved name and its
// info bytes, exactly as AttributePool.cpp's buildAttribute keeps every
// attribute it doesn't specifically recognize as an opaque blob.
type Attribute struct {
	Name string
	Info []byte
}

// AttributePool is an ordered, name-addressable collection of
// attributes. The format does not forbid repeated names (spec Open
// Question #1); Lookup returns the first match, mirroring
// AttributePool.cpp's linear-scan getAttribute.
type AttributePool struct {
	attributes []Attribute
}

// ParseAttributePool reads attributes_count followed by that many
// attribute_info structures.
func ParseAttributePool(r *Reader, cp *ConstantPool) (*AttributePool, error) {
	count, err := r.U2()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading attributes_count: %w", err)
	}
	attrs := make([]Attribute, 0, count)
	for i := 0; i < int(count); i++ {
		nameIndex, err := r.U2()
		if err != nil {
			return nil, fmt.Errorf("classfile: reading attribute %d name index: %w", i, err)
		}
		name, err := cp.Utf8(nameIndex)
		if err != nil {
			return nil, fmt.Errorf("classfile: resolving attribute %d name: %w", i, err)
		}
		length, err := r.U4()
		if err != nil {
			return nil, fmt.Errorf("classfile: reading attribute %d (%s) length: %w", i, name, err)
		}
		info, err := r.Bytes(int(length))
		if err != nil {
			return nil, fmt.Errorf("classfile: reading attribute %d (%s) body: %w", i, name, err)
		}
		attrs = append(attrs, Attribute{Name: name, Info: info})
	}
	return &AttributePool{attributes: attrs}, nil
}

// Len reports how many attributes the pool holds.
func (ap *AttributePool) Len() int { return len(ap.attributes) }

// All returns the pool's attributes in declaration order.
func (ap *AttributePool) All() []Attribute { return ap.attributes }

// Lookup returns the first attribute named name, per the first-match
// contract (spec Open Question #1).
func (ap *AttributePool) Lookup(name string) (Attribute, bool) {
	for _, a := range ap.attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// Contains reports whether any attribute named name is present.
func (ap *AttributePool) Contains(name string) bool {
	_, ok := ap.Lookup(name)
	return ok
}

// ConstantValueIndex decodes a "ConstantValue" attribute's 2-byte body
// into the constant pool index it points at. AttributePool.cpp's
// ConstantValueAttribute stores exactly this: a length (always 2) and a
// constantvalue_index.
func (ap *AttributePool) ConstantValueIndex() (uint16, error) {
	a, ok := ap.Lookup("ConstantValue")
	if !ok {
		return 0, &AttributeNotFoundError{Name: "ConstantValue"}
	}
	if len(a.Info) != 2 {
		return 0, fmt.Errorf("classfile: ConstantValue attribute: %w", ErrAttributeLengthMismatch)
	}
	return binary.BigEndian.Uint16(a.Info), nil
}
