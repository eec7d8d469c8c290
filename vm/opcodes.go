// Copyright 2026 The jvmlet Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package vm

// Opcode is one bytecode instruction's leading byte.
type Opcode uint8

// Instruction set, per the JVM specification. Names follow the
// specification's own mnemonics.
const (
	opNop         Opcode = 0x00
	opAconstNull  Opcode = 0x01
	opIconstM1    Opcode = 0x02
	opIconst0     Opcode = 0x03
	opIconst1     Opcode = 0x04
	opIconst2     Opcode = 0x05
	opIconst3     Opcode = 0x06
	opIconst4     Opcode = 0x07
	opIconst5     Opcode = 0x08
	opLconst0     Opcode = 0x09
	opLconst1     Opcode = 0x0A
	opFconst0     Opcode = 0x0B
	opFconst1     Opcode = 0x0C
	opFconst2     Opcode = 0x0D
	opDconst0     Opcode = 0x0E
	opDconst1     Opcode = 0x0F
	opBipush      Opcode = 0x10
	opSipush      Opcode = 0x11
	opLdc         Opcode = 0x12
	opLdcW        Opcode = 0x13
	opLdc2W       Opcode = 0x14
	opIload       Opcode = 0x15
	opLload       Opcode = 0x16
	opFload       Opcode = 0x17
	opDload       Opcode = 0x18
	opAload       Opcode = 0x19
	opIload0      Opcode = 0x1A
	opIload1      Opcode = 0x1B
	opIload2      Opcode = 0x1C
	opIload3      Opcode = 0x1D
	opLload0      Opcode = 0x1E
	opLload1      Opcode = 0x1F
	opLload2      Opcode = 0x20
	opLload3      Opcode = 0x21
	opFload0      Opcode = 0x22
	opFload1      Opcode = 0x23
	opFload2      Opcode = 0x24
	opFload3      Opcode = 0x25
	opDload0      Opcode = 0x26
	opDload1      Opcode = 0x27
	opDload2      Opcode = 0x28
	opDload3      Opcode = 0x29
	opAload0      Opcode = 0x2A
	opAload1      Opcode = 0x2B
	opAload2      Opcode = 0x2C
	opAload3      Opcode = 0x2D
	opIaload      Opcode = 0x2E
	opLaload      Opcode = 0x2F
	opFaload      Opcode = 0x30
	opDaload      Opcode = 0x31
	opAaload      Opcode = 0x32
	opBaload      Opcode = 0x33
	opCaload      Opcode = 0x34
	opSaload      Opcode = 0x35
	opIstore      Opcode = 0x36
	opLstore      Opcode = 0x37
	opFstore      Opcode = 0x38
	opDstore      Opcode = 0x39
	opAstore      Opcode = 0x3A
	opIstore0     Opcode = 0x3B
	opIstore1     Opcode = 0x3C
	opIstore2     Opcode = 0x3D
	opIstore3     Opcode = 0x3E
	opLstore0     Opcode = 0x3F
	opLstore1     Opcode = 0x40
	opLstore2     Opcode = 0x41
	opLstore3     Opcode = 0x42
	opFstore0     Opcode = 0x43
	opFstore1     Opcode = 0x44
	opFstore2     Opcode = 0x45
	opFstore3     Opcode = 0x46
	opDstore0     Opcode = 0x47
	opDstore1     Opcode = 0x48
	opDstore2     Opcode = 0x49
	opDstore3     Opcode = 0x4A
	opAstore0     Opcode = 0x4B
	opAstore1     Opcode = 0x4C
	opAstore2     Opcode = 0x4D
	opAstore3     Opcode = 0x4E
	opIastore     Opcode = 0x4F
	opLastore     Opcode = 0x50
	opFastore     Opcode = 0x51
	opDastore     Opcode = 0x52
	opAastore     Opcode = 0x53
	opBastore     Opcode = 0x54
	opCastore     Opcode = 0x55
	opSastore     Opcode = 0x56
	opPop         Opcode = 0x57
	opPop2        Opcode = 0x58
	opDup         Opcode = 0x59
	opDupX1       Opcode = 0x5A
	opDupX2       Opcode = 0x5B
	opDup2        Opcode = 0x5C
	opDup2X1      Opcode = 0x5D
	opDup2X2      Opcode = 0x5E
	opSwap        Opcode = 0x5F
	opIadd        Opcode = 0x60
	opLadd        Opcode = 0x61
	opFadd        Opcode = 0x62
	opDadd        Opcode = 0x63
	opIsub        Opcode = 0x64
	opLsub        Opcode = 0x65
	opFsub        Opcode = 0x66
	opDsub        Opcode = 0x67
	opImul        Opcode = 0x68
	opLmul        Opcode = 0x69
	opFmul        Opcode = 0x6A
	opDmul        Opcode = 0x6B
	opIdiv        Opcode = 0x6C
	opLdiv        Opcode = 0x6D
	opFdiv        Opcode = 0x6E
	opDdiv        Opcode = 0x6F
	opIrem        Opcode = 0x70
	opLrem        Opcode = 0x71
	opFrem        Opcode = 0x72
	opDrem        Opcode = 0x73
	opIneg        Opcode = 0x74
	opLneg        Opcode = 0x75
	opFneg        Opcode = 0x76
	opDneg        Opcode = 0x77
	opIshl        Opcode = 0x78
	opLshl        Opcode = 0x79
	opIshr        Opcode = 0x7A
	opLshr        Opcode = 0x7B
	opIushr       Opcode = 0x7C
	opLushr       Opcode = 0x7D
	opIand        Opcode = 0x7E
	opLand        Opcode = 0x7F
	opIor         Opcode = 0x80
	opLor         Opcode = 0x81
	opIxor        Opcode = 0x82
	opLxor        Opcode = 0x83
	opIinc        Opcode = 0x84
	opI2l         Opcode = 0x85
	opI2f         Opcode = 0x86
	opI2d         Opcode = 0x87
	opL2i         Opcode = 0x88
	opL2f         Opcode = 0x89
	opL2d         Opcode = 0x8A
	opF2i         Opcode = 0x8B
	opF2l         Opcode = 0x8C
	opF2d         Opcode = 0x8D
	opD2i         Opcode = 0x8E
	opD2l         Opcode = 0x8F
	opD2f         Opcode = 0x90
	opI2b         Opcode = 0x91
	opI2c         Opcode = 0x92
	opI2s         Opcode = 0x93
	opLcmp        Opcode = 0x94
	opFcmpl       Opcode = 0x95
	opFcmpg       Opcode = 0x96
	opDcmpl       Opcode = 0x97
	opDcmpg       Opcode = 0x98
	opIfeq        Opcode = 0x99
	opIfne        Opcode = 0x9A
	opIflt        Opcode = 0x9B
	opIfge        Opcode = 0x9C
	opIfgt        Opcode = 0x9D
	opIfle        Opcode = 0x9E
	opIfIcmpeq    Opcode = 0x9F
	opIfIcmpne    Opcode = 0xA0
	opIfIcmplt    Opcode = 0xA1
	opIfIcmpge    Opcode = 0xA2
	opIfIcmpgt    Opcode = 0xA3
	opIfIcmple    Opcode = 0xA4
	opIfAcmpeq    Opcode = 0xA5
	opIfAcmpne    Opcode = 0xA6
	opGoto        Opcode = 0xA7
	opJsr         Opcode = 0xA8
	opRet         Opcode = 0xA9
	opTableswitch Opcode = 0xAA
	opLookupswitch Opcode = 0xAB
	opIreturn     Opcode = 0xAC
	opLreturn     Opcode = 0xAD
	opFreturn     Opcode = 0xAE
	opDreturn     Opcode = 0xAF
	opAreturn     Opcode = 0xB0
	opReturn      Opcode = 0xB1
	opGetstatic   Opcode = 0xB2
	opPutstatic   Opcode = 0xB3
	opGetfield    Opcode = 0xB4
	opPutfield    Opcode = 0xB5
	opInvokevirtual   Opcode = 0xB6
	opInvokespecial   Opcode = 0xB7
	opInvokestatic    Opcode = 0xB8
	opInvokeinterface Opcode = 0xB9
	opInvokedynamic   Opcode = 0xBA
	opNew         Opcode = 0xBB
	opNewarray    Opcode = 0xBC
	opAnewarray   Opcode = 0xBD
	opArraylength Opcode = 0xBE
	opAthrow      Opcode = 0xBF
	opCheckcast   Opcode = 0xC0
	opInstanceof  Opcode = 0xC1
	opIfnull      Opcode = 0xC6
	opIfnonnull   Opcode = 0xC7
)
