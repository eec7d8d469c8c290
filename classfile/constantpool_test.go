// Copyright 2026 The jvmlet Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"bytes"
	"errors"
	"testing"
)

func u2b(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }
func u4b(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func utf8Entry(s string) []byte {
	enc := encodeModifiedUTF8(s)
	out := append([]byte{byte(TagUtf8)}, u2b(uint16(len(enc)))...)
	return append(out, enc...)
}

func TestParseConstantPoolHole(t *testing.T) {
	// count=3: index 1 is a Long (consumes slot 2 as a reserved hole).
	var buf bytes.Buffer
	buf.Write(u2b(3))
	buf.WriteByte(byte(TagLong))
	buf.Write([]byte{0, 0, 0, 0, 0, 0, 0, 42})

	cp, err := ParseConstantPool(NewReader(&buf))
	if err != nil {
		t.Fatalf("ParseConstantPool: %v", err)
	}
	if cp.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", cp.Count())
	}
	c, err := cp.At(1)
	if err != nil {
		t.Fatalf("At(1): %v", err)
	}
	if l, ok := c.(ConstantLong); !ok || l.Value != 42 {
		t.Fatalf("At(1) = %#v, want ConstantLong{42}", c)
	}
	if _, err := cp.At(2); !errors.Is(err, ErrConstantIsReservedHole) {
		t.Fatalf("At(2) err = %v, want ErrConstantIsReservedHole", err)
	}
}

func TestParseConstantPoolUnknownTag(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(u2b(2))
	buf.WriteByte(99)

	_, err := ParseConstantPool(NewReader(&buf))
	var malformed *MalformedConstantPoolError
	if !errors.As(err, &malformed) {
		t.Fatalf("err = %v, want *MalformedConstantPoolError", err)
	}
	if malformed.Tag != 99 || malformed.Index != 1 {
		t.Fatalf("err = %+v, want Tag=99 Index=1", malformed)
	}
}

func TestConstantPoolResolveMethodref(t *testing.T) {
	// 1: Utf8 "Foo"  2: Class->1  3: Utf8 "bar"  4: Utf8 "()V"
	// 5: NameAndType(3,4)  6: Methodref(2,5)
	var buf bytes.Buffer
	buf.Write(u2b(7))
	buf.Write(utf8Entry("Foo"))
	buf.WriteByte(byte(TagClass))
	buf.Write(u2b(1))
	buf.Write(utf8Entry("bar"))
	buf.Write(utf8Entry("()V"))
	buf.WriteByte(byte(TagNameAndType))
	buf.Write(u2b(3))
	buf.Write(u2b(4))
	buf.WriteByte(byte(TagMethodref))
	buf.Write(u2b(2))
	buf.Write(u2b(5))

	cp, err := ParseConstantPool(NewReader(&buf))
	if err != nil {
		t.Fatalf("ParseConstantPool: %v", err)
	}
	if err := cp.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	ref, err := cp.Methodref(6)
	if err != nil {
		t.Fatalf("Methodref(6): %v", err)
	}
	want := MemberRef{ClassName: "Foo", Name: "bar", Descriptor: "()V"}
	if ref != want {
		t.Fatalf("Methodref(6) = %+v, want %+v", ref, want)
	}
}

func TestValidateRejectsBadMethodTypeDescriptor(t *testing.T) {
	// 1: Utf8 "Foo"  2: Class->1 (wrong tag for a descriptor)
	// 3: MethodType -> 2
	var buf bytes.Buffer
	buf.Write(u2b(4))
	buf.Write(utf8Entry("Foo"))
	buf.WriteByte(byte(TagClass))
	buf.Write(u2b(1))
	buf.WriteByte(byte(TagMethodType))
	buf.Write(u2b(2))

	cp, err := ParseConstantPool(NewReader(&buf))
	if err != nil {
		t.Fatalf("ParseConstantPool: %v", err)
	}
	if err := cp.Validate(); !errors.Is(err, ErrConstantValidationFailed) {
		t.Fatalf("Validate: err = %v, want ErrConstantValidationFailed", err)
	}
}

func TestValidateRejectsBadInvokeDynamicNameAndType(t *testing.T) {
	// 1: Utf8 "Foo"  2: Class->1 (wrong tag for a NameAndType)
	// 3: InvokeDynamic{bsm=0, nameAndType->2}
	var buf bytes.Buffer
	buf.Write(u2b(4))
	buf.Write(utf8Entry("Foo"))
	buf.WriteByte(byte(TagClass))
	buf.Write(u2b(1))
	buf.WriteByte(byte(TagInvokeDynamic))
	buf.Write(u2b(0))
	buf.Write(u2b(2))

	cp, err := ParseConstantPool(NewReader(&buf))
	if err != nil {
		t.Fatalf("ParseConstantPool: %v", err)
	}
	if err := cp.Validate(); !errors.Is(err, ErrConstantValidationFailed) {
		t.Fatalf("Validate: err = %v, want ErrConstantValidationFailed", err)
	}
}

func TestValidateAcceptsGoodMethodTypeAndInvokeDynamic(t *testing.T) {
	// 1: Utf8 "(I)V"  2: MethodType -> 1
	// 3: Utf8 "bar"  4: Utf8 "()V"  5: NameAndType(3,4)  6: InvokeDynamic{0, 5}
	var buf bytes.Buffer
	buf.Write(u2b(7))
	buf.Write(utf8Entry("(I)V"))
	buf.WriteByte(byte(TagMethodType))
	buf.Write(u2b(1))
	buf.Write(utf8Entry("bar"))
	buf.Write(utf8Entry("()V"))
	buf.WriteByte(byte(TagNameAndType))
	buf.Write(u2b(3))
	buf.Write(u2b(4))
	buf.WriteByte(byte(TagInvokeDynamic))
	buf.Write(u2b(0))
	buf.Write(u2b(5))

	cp, err := ParseConstantPool(NewReader(&buf))
	if err != nil {
		t.Fatalf("ParseConstantPool: %v", err)
	}
	if err := cp.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestConstantPoolTypeMismatch(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(u2b(2))
	buf.Write(utf8Entry("not a class"))

	cp, err := ParseConstantPool(NewReader(&buf))
	if err != nil {
		t.Fatalf("ParseConstantPool: %v", err)
	}
	_, err = cp.ClassName(1)
	var mismatch *ConstantTypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want *ConstantTypeMismatchError", err)
	}
	if mismatch.Expected != TagClass || mismatch.Actual != TagUtf8 {
		t.Fatalf("err = %+v, want Expected=Class Actual=Utf8", mismatch)
	}
}

func TestDecodeModifiedUTF8RoundTrip(t *testing.T) {
	cases := []string{"", "hello", "café", "\U0001F600", "a\x00b"}
	for _, s := range cases {
		enc := encodeModifiedUTF8(s)
		got, err := decodeModifiedUTF8(enc)
		if err != nil {
			t.Fatalf("decodeModifiedUTF8(%q): %v", s, err)
		}
		if got != s {
			t.Fatalf("round-trip %q -> %x -> %q", s, enc, got)
		}
	}
}

func TestDecodeModifiedUTF8NulEncoding(t *testing.T) {
	// NUL must be the two-byte sequence 0xC0 0x80, never a single 0x00.
	enc := encodeModifiedUTF8("\x00")
	if !bytes.Equal(enc, []byte{0xC0, 0x80}) {
		t.Fatalf("encodeModifiedUTF8(NUL) = % x, want c0 80", enc)
	}
}
