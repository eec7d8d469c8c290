// Copyright 2026 The jvmlet Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package vm

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/jvmlet/jvm/classfile"
)

func u2(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }
func u4(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func utf8Const(s string) []byte {
	out := append([]byte{1}, u2(uint16(len(s)))...)
	return append(out, s...)
}

func newTestFrame(code []byte, maxLocals int) *Frame {
	return &Frame{
		vm:     &VM{heap: newHeap(), statics: make(map[string][]uint32)},
		cf:     &classfile.ClassFile{},
		code:   code,
		locals: make([]uint32, maxLocals),
		stack:  make([]uint32, 0, 16),
	}
}

func TestIadd(t *testing.T) {
	f := newTestFrame([]byte{byte(opReturn)}, 0)
	f.pushInt(2)
	f.pushInt(3)
	_, _, err := f.step(opIadd, 0)
	if err != nil {
		t.Fatalf("iadd: %v", err)
	}
	if got := f.popInt(); got != 5 {
		t.Fatalf("2+3 = %d, want 5", got)
	}
}

func TestIdivByZeroIsFatal(t *testing.T) {
	f := newTestFrame(nil, 0)
	f.pushInt(10)
	f.pushInt(0)
	_, _, err := f.step(opIdiv, 7)
	var arithErr *ArithmeticError
	if !errors.As(err, &arithErr) {
		t.Fatalf("err = %v, want *ArithmeticError", err)
	}
	if arithErr.Op != "idiv" || arithErr.PC != 7 {
		t.Fatalf("err = %+v, want Op=idiv PC=7", arithErr)
	}
}

func TestShiftsAreMasked(t *testing.T) {
	f := newTestFrame(nil, 0)
	f.pushInt(1)
	f.pushInt(33) // masked to 1 for a 32-bit shift
	if _, _, err := f.step(opIshl, 0); err != nil {
		t.Fatalf("ishl: %v", err)
	}
	if got := f.popInt(); got != 2 {
		t.Fatalf("1<<33 masked = %d, want 2", got)
	}
}

func TestFcmplFcmpgDivergeOnNaN(t *testing.T) {
	nan := float32(math.NaN())

	f := newTestFrame(nil, 0)
	f.pushFloat(1)
	f.pushFloat(nan)
	if _, _, err := f.step(opFcmpl, 0); err != nil {
		t.Fatalf("fcmpl: %v", err)
	}
	if got := f.popInt(); got != -1 {
		t.Fatalf("fcmpl with NaN = %d, want -1", got)
	}

	f2 := newTestFrame(nil, 0)
	f2.pushFloat(1)
	f2.pushFloat(nan)
	if _, _, err := f2.step(opFcmpg, 0); err != nil {
		t.Fatalf("fcmpg: %v", err)
	}
	if got := f2.popInt(); got != 1 {
		t.Fatalf("fcmpg with NaN = %d, want 1", got)
	}
}

func TestLongPushPopRoundTrip(t *testing.T) {
	f := newTestFrame(nil, 0)
	f.pushLong(-123456789012345)
	if got := f.popLong(); got != -123456789012345 {
		t.Fatalf("long round-trip = %d, want -123456789012345", got)
	}
}

func TestIincDirect(t *testing.T) {
	f := newTestFrame([]byte{0x00, 0xFF}, 1) // index=0, delta=-1
	f.locals[0] = 10
	f.pc = 0
	if _, _, err := f.step(opIinc, 0); err != nil {
		t.Fatalf("iinc: %v", err)
	}
	if int32(f.locals[0]) != 9 {
		t.Fatalf("locals[0] = %d, want 9", int32(f.locals[0]))
	}
}

func TestConditionalBranchTaken(t *testing.T) {
	// ifeq branches to opStart+offset when the popped int is zero.
	code := []byte{0x00, 0x05} // offset = 5
	f := newTestFrame(code, 0)
	f.pc = 0
	f.pushInt(0)
	if _, _, err := f.step(opIfeq, 0); err != nil {
		t.Fatalf("ifeq: %v", err)
	}
	if f.pc != 5 {
		t.Fatalf("pc = %d, want 5 (branch taken)", f.pc)
	}
}

func TestConditionalBranchNotTaken(t *testing.T) {
	code := []byte{0x00, 0x05}
	f := newTestFrame(code, 0)
	f.pc = 0
	f.pushInt(1)
	if _, _, err := f.step(opIfeq, 0); err != nil {
		t.Fatalf("ifeq: %v", err)
	}
	if f.pc != 2 {
		t.Fatalf("pc = %d, want 2 (branch not taken, pc past the 2-byte operand)", f.pc)
	}
}

func TestArrayStoreLoadRoundTrip(t *testing.T) {
	f := newTestFrame(nil, 0)
	ref := f.vm.Heap().NewArray(ArrayInt, 3)
	f.pushRef(ref)
	f.pushInt(1)
	f.pushInt(42)
	if err := f.arrayStore(0); err != nil {
		t.Fatalf("arrayStore: %v", err)
	}
	f.pushRef(ref)
	f.pushInt(1)
	if err := f.arrayLoad(0); err != nil {
		t.Fatalf("arrayLoad: %v", err)
	}
	if got := f.popInt(); got != 42 {
		t.Fatalf("array[1] = %d, want 42", got)
	}
}

func TestArrayLoadNullReference(t *testing.T) {
	f := newTestFrame(nil, 0)
	f.pushRef(0)
	f.pushInt(0)
	err := f.arrayLoad(3)
	var nullErr *NullReferenceError
	if !errors.As(err, &nullErr) {
		t.Fatalf("err = %v, want *NullReferenceError", err)
	}
	if nullErr.PC != 3 {
		t.Fatalf("PC = %d, want 3", nullErr.PC)
	}
}

func TestLdcUnsupportedKind(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(u4(0xCAFEBABE))
	buf.Write(u2(0))
	buf.Write(u2(52))
	buf.Write(u2(3))
	buf.Write(utf8Const("hi"))
	buf.WriteByte(8) // String -> index 1
	buf.Write(u2(1))
	buf.Write(u2(0)) // access_flags
	buf.Write(u2(0)) // this_class (invalid but unused by this test)
	buf.Write(u2(0))
	buf.Write(u2(0))
	buf.Write(u2(0))
	buf.Write(u2(0))
	buf.Write(u2(0))

	// Build a ClassFile by hand instead of via classfile.Parse, since
	// this_class is deliberately left unresolved above.
	cp, err := classfile.ParseConstantPool(classfile.NewReader(bytes.NewReader(buf.Bytes()[8:])))
	if err != nil {
		t.Fatalf("ParseConstantPool: %v", err)
	}

	f := newTestFrame(nil, 0)
	f.cf = &classfile.ClassFile{Constants: cp}
	err = f.ldc(2)
	var unsupported *UnsupportedLdcKind
	if !errors.As(err, &unsupported) {
		t.Fatalf("err = %v, want *UnsupportedLdcKind", err)
	}
}
