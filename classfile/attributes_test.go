// Copyright 2026 The jvmlet Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"bytes"
	"errors"
	"testing"
)

func buildAttributePool(t *testing.T, cp *ConstantPool, entries ...struct {
	nameIndex uint16
	info      []byte
}) *AttributePool {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(u2b(uint16(len(entries))))
	for _, e := range entries {
		buf.Write(u2b(e.nameIndex))
		buf.Write(u4b(uint32(len(e.info))))
		buf.Write(e.info)
	}
	ap, err := ParseAttributePool(NewReader(&buf), cp)
	if err != nil {
		t.Fatalf("ParseAttributePool: %v", err)
	}
	return ap
}

func constantPoolWithNames(t *testing.T, names ...string) *ConstantPool {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(u2b(uint16(len(names) + 1)))
	for _, n := range names {
		buf.Write(utf8Entry(n))
	}
	cp, err := ParseConstantPool(NewReader(&buf))
	if err != nil {
		t.Fatalf("ParseConstantPool: %v", err)
	}
	return cp
}

func TestAttributePoolFirstMatchOnDuplicateNames(t *testing.T) {
	cp := constantPoolWithNames(t, "Dup")
	ap := buildAttributePool(t, cp,
		struct {
			nameIndex uint16
			info      []byte
		}{1, []byte{0xAA}},
		struct {
			nameIndex uint16
			info      []byte
		}{1, []byte{0xBB}},
	)
	a, ok := ap.Lookup("Dup")
	if !ok {
		t.Fatalf("Lookup(Dup) not found")
	}
	if !bytes.Equal(a.Info, []byte{0xAA}) {
		t.Fatalf("Lookup(Dup).Info = % x, want aa (first match)", a.Info)
	}
}

func TestConstantValueIndex(t *testing.T) {
	cp := constantPoolWithNames(t, "ConstantValue")
	ap := buildAttributePool(t, cp, struct {
		nameIndex uint16
		info      []byte
	}{1, u2b(7)})
	idx, err := ap.ConstantValueIndex()
	if err != nil {
		t.Fatalf("ConstantValueIndex: %v", err)
	}
	if idx != 7 {
		t.Fatalf("ConstantValueIndex = %d, want 7", idx)
	}
}

func TestConstantValueIndexAbsent(t *testing.T) {
	cp := constantPoolWithNames(t, "Other")
	ap := buildAttributePool(t, cp)
	_, err := ap.ConstantValueIndex()
	var notFound *AttributeNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want *AttributeNotFoundError", err)
	}
}
