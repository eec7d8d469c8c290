// Copyright 2026 The jvmlet Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package vm

import (
	"fmt"

	"github.com/jvmlet/jvm/classfile"
)

// ldc resolves a one-byte-indexed constant. Only Integer and Float are
// implemented, matching Frame.cpp's ldc exactly ("i don't like yer
// constant" for everything else) — spec.md names String, Class,
// MethodType and MethodHandle as legal but unimplemented kinds.
func (f *Frame) ldc(index int) error {
	c, err := f.cf.Constants.At(uint16(index))
	if err != nil {
		return err
	}
	switch v := c.(type) {
	case classfile.ConstantInteger:
		f.pushInt(v.Value)
	case classfile.ConstantFloat:
		f.pushFloat(v.Value)
	default:
		return &UnsupportedLdcKind{Tag: c.Tag().String()}
	}
	return nil
}

// ldc2w resolves a two-byte-indexed wide constant (Long or Double).
func (f *Frame) ldc2w(index int) error {
	c, err := f.cf.Constants.At(uint16(index))
	if err != nil {
		return err
	}
	switch v := c.(type) {
	case classfile.ConstantLong:
		f.pushLong(v.Value)
	case classfile.ConstantDouble:
		f.pushDouble(v.Value)
	default:
		return &UnsupportedLdcKind{Tag: c.Tag().String()}
	}
	return nil
}

func (f *Frame) arrayLoad(opStart int) error {
	index := f.popInt()
	ref := f.popRef()
	arr, ok := f.vm.Heap().ArrayOf(ref)
	if !ok {
		return &NullReferenceError{Op: "array load", PC: opStart}
	}
	if index < 0 || int(index) >= len(arr.Elements) {
		return fmt.Errorf("vm: array index %d out of bounds for length %d at pc=%d", index, len(arr.Elements), opStart)
	}
	f.pushRaw(arr.Elements[index])
	return nil
}

func (f *Frame) arrayLoadWide(opStart int) error {
	index := f.popInt()
	ref := f.popRef()
	arr, ok := f.vm.Heap().ArrayOf(ref)
	if !ok {
		return &NullReferenceError{Op: "array load", PC: opStart}
	}
	i := int(index) * 2
	if index < 0 || i+1 >= len(arr.Elements) {
		return fmt.Errorf("vm: array index %d out of bounds at pc=%d", index, opStart)
	}
	f.pushRaw(arr.Elements[i])
	f.pushRaw(arr.Elements[i+1])
	return nil
}

func (f *Frame) arrayStore(opStart int) error {
	value := f.popRaw()
	index := f.popInt()
	ref := f.popRef()
	arr, ok := f.vm.Heap().ArrayOf(ref)
	if !ok {
		return &NullReferenceError{Op: "array store", PC: opStart}
	}
	if index < 0 || int(index) >= len(arr.Elements) {
		return fmt.Errorf("vm: array index %d out of bounds for length %d at pc=%d", index, len(arr.Elements), opStart)
	}
	arr.Elements[index] = value
	return nil
}

func (f *Frame) arrayStoreWide(opStart int) error {
	low := f.popRaw()
	high := f.popRaw()
	index := f.popInt()
	ref := f.popRef()
	arr, ok := f.vm.Heap().ArrayOf(ref)
	if !ok {
		return &NullReferenceError{Op: "array store", PC: opStart}
	}
	i := int(index) * 2
	if index < 0 || i+1 >= len(arr.Elements) {
		return fmt.Errorf("vm: array index %d out of bounds at pc=%d", index, opStart)
	}
	arr.Elements[i] = high
	arr.Elements[i+1] = low
	return nil
}

func (f *Frame) arraylength(opStart int) error {
	ref := f.popRef()
	arr, ok := f.vm.Heap().ArrayOf(ref)
	if !ok {
		return &NullReferenceError{Op: "arraylength", PC: opStart}
	}
	length := len(arr.Elements)
	if arr.Kind == ArrayLong || arr.Kind == ArrayDouble {
		length /= 2
	}
	f.pushInt(int32(length))
	return nil
}

func (f *Frame) getstatic(index int) error {
	ref, err := f.cf.Constants.Fieldref(uint16(index))
	if err != nil {
		return err
	}
	slots := fieldSlotCount(ref.Descriptor)
	f.pushSlots(f.vm.getStatic(ref.ClassName, ref.Name, slots))
	return nil
}

func (f *Frame) putstatic(index int) error {
	ref, err := f.cf.Constants.Fieldref(uint16(index))
	if err != nil {
		return err
	}
	slots := fieldSlotCount(ref.Descriptor)
	f.vm.putStatic(ref.ClassName, ref.Name, f.popSlots(slots))
	return nil
}

func (f *Frame) getfield(index int, opStart int) error {
	ref, err := f.cf.Constants.Fieldref(uint16(index))
	if err != nil {
		return err
	}
	objRef := f.popRef()
	inst, ok := f.vm.Heap().Instance(objRef)
	if !ok {
		return &NullReferenceError{Op: "getfield", PC: opStart}
	}
	slots, ok := inst.Fields[ref.Name]
	if !ok {
		return &FieldNotFoundError{Class: ref.ClassName, Name: ref.Name}
	}
	f.pushSlots(slots)
	return nil
}

func (f *Frame) putfield(index int, opStart int) error {
	ref, err := f.cf.Constants.Fieldref(uint16(index))
	if err != nil {
		return err
	}
	slotCount := fieldSlotCount(ref.Descriptor)
	values := f.popSlots(slotCount)
	objRef := f.popRef()
	inst, ok := f.vm.Heap().Instance(objRef)
	if !ok {
		return &NullReferenceError{Op: "putfield", PC: opStart}
	}
	if _, ok := inst.Fields[ref.Name]; !ok {
		return &FieldNotFoundError{Class: ref.ClassName, Name: ref.Name}
	}
	inst.Fields[ref.Name] = values
	return nil
}

// invoke resolves a Methodref/InterfaceMethodref and runs it in a nested
// Frame. withReceiver is true for invokevirtual/invokespecial/
// invokeinterface (an implicit "this" precedes the declared arguments on
// the stack) and false for invokestatic.
func (f *Frame) invoke(index int, withReceiver bool) error {
	ref, err := f.resolveInvoke(index)
	if err != nil {
		return err
	}
	sig, err := parseMethodDescriptor(ref.Descriptor)
	if err != nil {
		return err
	}
	argSlots := sig.ArgSlots
	if withReceiver {
		argSlots++
	}
	args := f.popSlots(argSlots)

	result, err := f.vm.Invoke(ref.ClassName, ref.Name, ref.Descriptor, args)
	if err != nil {
		return fmt.Errorf("vm: invoking %s.%s%s: %w", ref.ClassName, ref.Name, ref.Descriptor, err)
	}
	f.pushSlots(result)
	return nil
}

func (f *Frame) resolveInvoke(index int) (classfile.MemberRef, error) {
	c, err := f.cf.Constants.At(uint16(index))
	if err != nil {
		return classfile.MemberRef{}, err
	}
	switch c.(type) {
	case classfile.ConstantInterfaceMethodref:
		return f.cf.Constants.InterfaceMethodref(uint16(index))
	default:
		return f.cf.Constants.Methodref(uint16(index))
	}
}

func (f *Frame) new_(index int) error {
	className, err := f.cf.Constants.ClassName(uint16(index))
	if err != nil {
		return err
	}
	cf, err := f.vm.registry.Get(className)
	if err != nil {
		return err
	}
	f.pushRef(f.vm.Heap().NewInstance(cf))
	return nil
}

func (f *Frame) newarray(kind ArrayKind) error {
	length := f.popInt()
	f.pushRef(f.vm.Heap().NewArray(kind, length))
	return nil
}
