// Copyright 2026 The jvmlet Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package vm

import (
	"math"

	"github.com/jvmlet/jvm/classfile"
)

// Frame is one method invocation: its own operand stack and local
// variable array, both arrays of 32-bit slots (a long or double value
// occupies two adjacent slots, high half first), plus a program counter
// into its method's bytecode. A fresh Frame is built per invocation;
// none of its state outlives the call, matching Frame.h's per-call
// Frame/stack/local-variable trio.
type Frame struct {
	vm     *VM
	cf     *classfile.ClassFile
	method *classfile.Member
	code   []byte
	locals []uint32
	stack  []uint32
	pc     int
}

func (f *Frame) pushRaw(v uint32) { f.stack = append(f.stack, v) }

func (f *Frame) popRaw() uint32 {
	v := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	return v
}

func (f *Frame) popSlots(n int) []uint32 {
	vals := make([]uint32, n)
	copy(vals, f.stack[len(f.stack)-n:])
	f.stack = f.stack[:len(f.stack)-n]
	return vals
}

func (f *Frame) pushSlots(vals []uint32) { f.stack = append(f.stack, vals...) }

func (f *Frame) pushInt(v int32)     { f.pushRaw(uint32(v)) }
func (f *Frame) popInt() int32       { return int32(f.popRaw()) }
func (f *Frame) pushFloat(v float32) { f.pushRaw(math.Float32bits(v)) }
func (f *Frame) popFloat() float32   { return math.Float32frombits(f.popRaw()) }
func (f *Frame) pushRef(r Ref)       { f.pushRaw(uint32(r)) }
func (f *Frame) popRef() Ref         { return Ref(f.popRaw()) }

// pushLong pushes the high 32 bits then the low 32 bits, so the low
// half ends up on top — Frame.h's pushLong does the same (l>>32, then l).
func (f *Frame) pushLong(v int64) {
	f.pushRaw(uint32(uint64(v) >> 32))
	f.pushRaw(uint32(v))
}

func (f *Frame) popLong() int64 {
	low := f.popRaw()
	high := f.popRaw()
	return int64(uint64(high)<<32 | uint64(low))
}

func (f *Frame) pushDouble(v float64) { f.pushLong(int64(math.Float64bits(v))) }
func (f *Frame) popDouble() float64   { return math.Float64frombits(uint64(f.popLong())) }

func (f *Frame) loadLocalLong(index int) int64 {
	return int64(uint64(f.locals[index])<<32 | uint64(f.locals[index+1]))
}

func (f *Frame) storeLocalLong(index int, v int64) {
	f.locals[index] = uint32(uint64(v) >> 32)
	f.locals[index+1] = uint32(v)
}

func (f *Frame) loadLocalDouble(index int) float64 {
	return math.Float64frombits(uint64(f.loadLocalLong(index)))
}

func (f *Frame) storeLocalDouble(index int, v float64) {
	f.storeLocalLong(index, int64(math.Float64bits(v)))
}

// u1/u2 read immediate operands from the code array, advancing pc.
func (f *Frame) u1() uint8 {
	v := f.code[f.pc]
	f.pc++
	return v
}

func (f *Frame) u2() uint16 {
	v := uint16(f.code[f.pc])<<8 | uint16(f.code[f.pc+1])
	f.pc += 2
	return v
}

func (f *Frame) s1() int8  { return int8(f.u1()) }
func (f *Frame) s2() int16 { return int16(f.u2()) }

// Run executes this frame's bytecode from pc=0 until a return
// instruction, yielding the return value's slots (0, 1 or 2 of them).
func (f *Frame) Run() ([]uint32, error) {
	for {
		opStart := f.pc
		op := Opcode(f.u1())
		if f.vm.cfg.Trace {
			f.vm.logger.Infof("pc=%d opcode=0x%02x", opStart, uint8(op))
		}
		result, done, err := f.step(op, opStart)
		if err != nil {
			return nil, err
		}
		if done {
			return result, nil
		}
	}
}

// step executes one instruction. done is true once a return instruction
// has produced the frame's result.
func (f *Frame) step(op Opcode, opStart int) (result []uint32, done bool, err error) {
	switch op {
	case opNop:
		// no-op
	case opAconstNull:
		f.pushRef(0)
	case opIconstM1, opIconst0, opIconst1, opIconst2, opIconst3, opIconst4, opIconst5:
		f.pushInt(int32(op) - int32(opIconst0))
	case opLconst0:
		f.pushLong(0)
	case opLconst1:
		f.pushLong(1)
	case opFconst0:
		f.pushFloat(0)
	case opFconst1:
		f.pushFloat(1)
	case opFconst2:
		f.pushFloat(2)
	case opDconst0:
		f.pushDouble(0)
	case opDconst1:
		f.pushDouble(1)
	case opBipush:
		f.pushInt(int32(f.s1()))
	case opSipush:
		f.pushInt(int32(f.s2()))
	case opLdc:
		return nil, false, f.ldc(int(f.u1()))
	case opLdcW:
		return nil, false, f.ldc(int(f.u2()))
	case opLdc2W:
		return nil, false, f.ldc2w(int(f.u2()))

	case opIload:
		f.pushRaw(f.locals[f.u1()])
	case opFload:
		f.pushRaw(f.locals[f.u1()])
	case opAload:
		f.pushRaw(f.locals[f.u1()])
	case opLload:
		f.pushLong(f.loadLocalLong(int(f.u1())))
	case opDload:
		f.pushDouble(f.loadLocalDouble(int(f.u1())))
	case opIload0, opFload0, opAload0:
		f.pushRaw(f.locals[0])
	case opIload1, opFload1, opAload1:
		f.pushRaw(f.locals[1])
	case opIload2, opFload2, opAload2:
		f.pushRaw(f.locals[2])
	case opIload3, opFload3, opAload3:
		f.pushRaw(f.locals[3])
	case opLload0:
		f.pushLong(f.loadLocalLong(0))
	case opLload1:
		f.pushLong(f.loadLocalLong(1))
	case opLload2:
		f.pushLong(f.loadLocalLong(2))
	case opLload3:
		f.pushLong(f.loadLocalLong(3))
	case opDload0:
		f.pushDouble(f.loadLocalDouble(0))
	case opDload1:
		f.pushDouble(f.loadLocalDouble(1))
	case opDload2:
		f.pushDouble(f.loadLocalDouble(2))
	case opDload3:
		f.pushDouble(f.loadLocalDouble(3))

	case opIstore, opFstore, opAstore:
		f.locals[f.u1()] = f.popRaw()
	case opLstore:
		f.storeLocalLong(int(f.u1()), f.popLong())
	case opDstore:
		f.storeLocalDouble(int(f.u1()), f.popDouble())
	case opIstore0, opFstore0, opAstore0:
		f.locals[0] = f.popRaw()
	case opIstore1, opFstore1, opAstore1:
		f.locals[1] = f.popRaw()
	case opIstore2, opFstore2, opAstore2:
		f.locals[2] = f.popRaw()
	case opIstore3, opFstore3, opAstore3:
		f.locals[3] = f.popRaw()
	case opLstore0:
		f.storeLocalLong(0, f.popLong())
	case opLstore1:
		f.storeLocalLong(1, f.popLong())
	case opLstore2:
		f.storeLocalLong(2, f.popLong())
	case opLstore3:
		f.storeLocalLong(3, f.popLong())
	case opDstore0:
		f.storeLocalDouble(0, f.popDouble())
	case opDstore1:
		f.storeLocalDouble(1, f.popDouble())
	case opDstore2:
		f.storeLocalDouble(2, f.popDouble())
	case opDstore3:
		f.storeLocalDouble(3, f.popDouble())

	case opIaload, opFaload, opAaload, opBaload, opCaload, opSaload:
		return nil, false, f.arrayLoad(opStart)
	case opLaload, opDaload:
		return nil, false, f.arrayLoadWide(opStart)
	case opIastore, opFastore, opAastore, opBastore, opCastore, opSastore:
		return nil, false, f.arrayStore(opStart)
	case opLastore, opDastore:
		return nil, false, f.arrayStoreWide(opStart)

	case opPop:
		f.popRaw()
	case opPop2:
		f.popRaw()
		f.popRaw()
	case opDup:
		v := f.stack[len(f.stack)-1]
		f.pushRaw(v)
	case opDupX1:
		v1, v2 := f.popRaw(), f.popRaw()
		f.pushRaw(v1)
		f.pushRaw(v2)
		f.pushRaw(v1)
	case opDupX2:
		v1, v2, v3 := f.popRaw(), f.popRaw(), f.popRaw()
		f.pushRaw(v1)
		f.pushRaw(v3)
		f.pushRaw(v2)
		f.pushRaw(v1)
	case opDup2:
		v1, v2 := f.popRaw(), f.popRaw()
		f.pushRaw(v2)
		f.pushRaw(v1)
		f.pushRaw(v2)
		f.pushRaw(v1)
	case opDup2X1:
		v1, v2, v3 := f.popRaw(), f.popRaw(), f.popRaw()
		f.pushRaw(v2)
		f.pushRaw(v1)
		f.pushRaw(v3)
		f.pushRaw(v2)
		f.pushRaw(v1)
	case opDup2X2:
		v1, v2, v3, v4 := f.popRaw(), f.popRaw(), f.popRaw(), f.popRaw()
		f.pushRaw(v2)
		f.pushRaw(v1)
		f.pushRaw(v4)
		f.pushRaw(v3)
		f.pushRaw(v2)
		f.pushRaw(v1)
	case opSwap:
		v1, v2 := f.popRaw(), f.popRaw()
		f.pushRaw(v1)
		f.pushRaw(v2)

	case opIadd:
		b, a := f.popInt(), f.popInt()
		f.pushInt(a + b)
	case opIsub:
		b, a := f.popInt(), f.popInt()
		f.pushInt(a - b)
	case opImul:
		b, a := f.popInt(), f.popInt()
		f.pushInt(a * b)
	case opIdiv:
		b, a := f.popInt(), f.popInt()
		if b == 0 {
			return nil, false, &ArithmeticError{Op: "idiv", PC: opStart}
		}
		f.pushInt(a / b)
	case opIrem:
		b, a := f.popInt(), f.popInt()
		if b == 0 {
			return nil, false, &ArithmeticError{Op: "irem", PC: opStart}
		}
		f.pushInt(a % b)
	case opIneg:
		f.pushInt(-f.popInt())

	case opLadd:
		b, a := f.popLong(), f.popLong()
		f.pushLong(a + b)
	case opLsub:
		b, a := f.popLong(), f.popLong()
		f.pushLong(a - b)
	case opLmul:
		b, a := f.popLong(), f.popLong()
		f.pushLong(a * b)
	case opLdiv:
		b, a := f.popLong(), f.popLong()
		if b == 0 {
			return nil, false, &ArithmeticError{Op: "ldiv", PC: opStart}
		}
		f.pushLong(a / b)
	case opLrem:
		b, a := f.popLong(), f.popLong()
		if b == 0 {
			return nil, false, &ArithmeticError{Op: "lrem", PC: opStart}
		}
		f.pushLong(a % b)
	case opLneg:
		f.pushLong(-f.popLong())

	case opFadd:
		b, a := f.popFloat(), f.popFloat()
		f.pushFloat(a + b)
	case opFsub:
		b, a := f.popFloat(), f.popFloat()
		f.pushFloat(a - b)
	case opFmul:
		b, a := f.popFloat(), f.popFloat()
		f.pushFloat(a * b)
	case opFdiv:
		b, a := f.popFloat(), f.popFloat()
		f.pushFloat(a / b)
	case opFrem:
		b, a := f.popFloat(), f.popFloat()
		f.pushFloat(float32(math.Mod(float64(a), float64(b))))
	case opFneg:
		f.pushFloat(-f.popFloat())

	case opDadd:
		b, a := f.popDouble(), f.popDouble()
		f.pushDouble(a + b)
	case opDsub:
		b, a := f.popDouble(), f.popDouble()
		f.pushDouble(a - b)
	case opDmul:
		b, a := f.popDouble(), f.popDouble()
		f.pushDouble(a * b)
	case opDdiv:
		b, a := f.popDouble(), f.popDouble()
		f.pushDouble(a / b)
	case opDrem:
		b, a := f.popDouble(), f.popDouble()
		f.pushDouble(math.Mod(a, b))
	case opDneg:
		f.pushDouble(-f.popDouble())

	case opIshl:
		b, a := f.popInt(), f.popInt()
		f.pushInt(a << (uint32(b) & 0x1F))
	case opIshr:
		b, a := f.popInt(), f.popInt()
		f.pushInt(a >> (uint32(b) & 0x1F))
	case opIushr:
		b, a := f.popInt(), f.popInt()
		f.pushInt(int32(uint32(a) >> (uint32(b) & 0x1F)))
	case opLshl:
		b, a := f.popInt(), f.popLong()
		f.pushLong(a << (uint32(b) & 0x3F))
	case opLshr:
		b, a := f.popInt(), f.popLong()
		f.pushLong(a >> (uint32(b) & 0x3F))
	case opLushr:
		b, a := f.popInt(), f.popLong()
		f.pushLong(int64(uint64(a) >> (uint32(b) & 0x3F)))
	case opIand:
		b, a := f.popInt(), f.popInt()
		f.pushInt(a & b)
	case opIor:
		b, a := f.popInt(), f.popInt()
		f.pushInt(a | b)
	case opIxor:
		b, a := f.popInt(), f.popInt()
		f.pushInt(a ^ b)
	case opLand:
		b, a := f.popLong(), f.popLong()
		f.pushLong(a & b)
	case opLor:
		b, a := f.popLong(), f.popLong()
		f.pushLong(a | b)
	case opLxor:
		b, a := f.popLong(), f.popLong()
		f.pushLong(a ^ b)

	case opIinc:
		index := int(f.u1())
		delta := int32(f.s1())
		f.locals[index] = uint32(int32(f.locals[index]) + delta)

	case opI2l:
		f.pushLong(int64(f.popInt()))
	case opI2f:
		f.pushFloat(float32(f.popInt()))
	case opI2d:
		f.pushDouble(float64(f.popInt()))
	case opL2i:
		f.pushInt(int32(f.popLong()))
	case opL2f:
		f.pushFloat(float32(f.popLong()))
	case opL2d:
		f.pushDouble(float64(f.popLong()))
	case opF2i:
		f.pushInt(floatToInt32(f.popFloat()))
	case opF2l:
		f.pushLong(floatToInt64(f.popFloat()))
	case opF2d:
		f.pushDouble(float64(f.popFloat()))
	case opD2i:
		f.pushInt(doubleToInt32(f.popDouble()))
	case opD2l:
		f.pushLong(doubleToInt64(f.popDouble()))
	case opD2f:
		f.pushFloat(float32(f.popDouble()))
	case opI2b:
		f.pushInt(int32(int8(f.popInt())))
	case opI2c:
		f.pushInt(int32(uint16(f.popInt())))
	case opI2s:
		f.pushInt(int32(int16(f.popInt())))

	case opLcmp:
		b, a := f.popLong(), f.popLong()
		f.pushInt(cmp64(a, b))
	case opFcmpl:
		b, a := f.popFloat(), f.popFloat()
		f.pushInt(fcmp(float64(a), float64(b), -1))
	case opFcmpg:
		b, a := f.popFloat(), f.popFloat()
		f.pushInt(fcmp(float64(a), float64(b), 1))
	case opDcmpl:
		b, a := f.popDouble(), f.popDouble()
		f.pushInt(fcmp(a, b, -1))
	case opDcmpg:
		b, a := f.popDouble(), f.popDouble()
		f.pushInt(fcmp(a, b, 1))

	case opIfeq:
		return nil, false, f.branchIf(opStart, f.popInt() == 0)
	case opIfne:
		return nil, false, f.branchIf(opStart, f.popInt() != 0)
	case opIflt:
		return nil, false, f.branchIf(opStart, f.popInt() < 0)
	case opIfge:
		return nil, false, f.branchIf(opStart, f.popInt() >= 0)
	case opIfgt:
		return nil, false, f.branchIf(opStart, f.popInt() > 0)
	case opIfle:
		return nil, false, f.branchIf(opStart, f.popInt() <= 0)
	case opIfIcmpeq:
		b, a := f.popInt(), f.popInt()
		return nil, false, f.branchIf(opStart, a == b)
	case opIfIcmpne:
		b, a := f.popInt(), f.popInt()
		return nil, false, f.branchIf(opStart, a != b)
	case opIfIcmplt:
		b, a := f.popInt(), f.popInt()
		return nil, false, f.branchIf(opStart, a < b)
	case opIfIcmpge:
		b, a := f.popInt(), f.popInt()
		return nil, false, f.branchIf(opStart, a >= b)
	case opIfIcmpgt:
		b, a := f.popInt(), f.popInt()
		return nil, false, f.branchIf(opStart, a > b)
	case opIfIcmple:
		b, a := f.popInt(), f.popInt()
		return nil, false, f.branchIf(opStart, a <= b)
	case opIfAcmpeq:
		b, a := f.popRef(), f.popRef()
		return nil, false, f.branchIf(opStart, a == b)
	case opIfAcmpne:
		b, a := f.popRef(), f.popRef()
		return nil, false, f.branchIf(opStart, a != b)
	case opIfnull:
		return nil, false, f.branchIf(opStart, f.popRef() == 0)
	case opIfnonnull:
		return nil, false, f.branchIf(opStart, f.popRef() != 0)

	case opGoto:
		offset := int(f.s2())
		f.pc = opStart + offset
	case opJsr:
		offset := int(f.s2())
		f.pushInt(int32(f.pc))
		f.pc = opStart + offset
	case opRet:
		index := int(f.u1())
		f.pc = int(f.locals[index])

	case opTableswitch:
		return nil, false, &UnimplementedOpcode{Name: "tableswitch", PC: opStart}
	case opLookupswitch:
		return nil, false, &UnimplementedOpcode{Name: "lookupswitch", PC: opStart}

	case opIreturn, opFreturn, opAreturn:
		return []uint32{f.popRaw()}, true, nil
	case opLreturn, opDreturn:
		v := f.popLong()
		return []uint32{uint32(uint64(v) >> 32), uint32(v)}, true, nil
	case opReturn:
		return nil, true, nil

	case opGetstatic:
		return nil, false, f.getstatic(int(f.u2()))
	case opPutstatic:
		return nil, false, f.putstatic(int(f.u2()))
	case opGetfield:
		return nil, false, f.getfield(int(f.u2()), opStart)
	case opPutfield:
		return nil, false, f.putfield(int(f.u2()), opStart)

	case opInvokevirtual, opInvokespecial:
		return nil, false, f.invoke(int(f.u2()), true)
	case opInvokestatic:
		return nil, false, f.invoke(int(f.u2()), false)
	case opInvokeinterface:
		index := int(f.u2())
		f.u1() // count, unused: argument slot count is derived from the descriptor
		f.u1() // reserved, must be zero
		return nil, false, f.invoke(index, true)
	case opInvokedynamic:
		return nil, false, &UnimplementedOpcode{Name: "invokedynamic", PC: opStart}

	case opNew:
		return nil, false, f.new_(int(f.u2()))
	case opNewarray:
		return nil, false, f.newarray(ArrayKind(f.u1()))
	case opAnewarray:
		f.u2() // component type class index: every object-array element starts null, the type is not checked further
		length := f.popInt()
		f.pushRef(f.vm.Heap().NewArray(ArrayRef, length))
	case opArraylength:
		return nil, false, f.arraylength(opStart)
	case opAthrow:
		return nil, false, &UnimplementedOpcode{Name: "athrow", PC: opStart}
	case opCheckcast:
		f.u2() // not verified: no class hierarchy check is performed
	case opInstanceof:
		f.u2()
		r := f.popRef()
		if r == 0 {
			f.pushInt(0)
		} else {
			f.pushInt(1)
		}

	default:
		return nil, false, &UnknownOpcode{Byte: uint8(op), PC: opStart}
	}
	return nil, false, nil
}

func (f *Frame) branchIf(opStart int, taken bool) error {
	offset := int(f.s2())
	if taken {
		f.pc = opStart + offset
	}
	return nil
}

func floatToInt32(v float32) int32 {
	if math.IsNaN(float64(v)) {
		return 0
	}
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	if v <= math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}

func floatToInt64(v float32) int64 {
	if math.IsNaN(float64(v)) {
		return 0
	}
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	if v <= math.MinInt64 {
		return math.MinInt64
	}
	return int64(v)
}

func doubleToInt32(v float64) int32 {
	if math.IsNaN(v) {
		return 0
	}
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	if v <= math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}

func doubleToInt64(v float64) int64 {
	if math.IsNaN(v) {
		return 0
	}
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	if v <= math.MinInt64 {
		return math.MinInt64
	}
	return int64(v)
}

func cmp64(a, b int64) int32 {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

// fcmp implements fcmpl/fcmpg/dcmpl/dcmpg: nanResult is the pushed value
// when either operand is NaN (-1 for the *l variants, 1 for *g), the one
// place those two opcodes diverge. Frame.cpp collapses all four into one
// NaN-blind comparison; spec.md requires the divergence instead.
func fcmp(a, b float64, nanResult int32) int32 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return nanResult
	}
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}
