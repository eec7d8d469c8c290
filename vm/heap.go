// Copyright 2026 The jvmlet Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package vm

import (
	"strings"
	"sync"

	"github.com/jvmlet/jvm/classfile"
)

// Ref is an object or array handle as stored on the operand stack and in
// locals: a single 32-bit slot indexing into the VM's instance/array
// tables, never a Go pointer directly. This mirrors VirtualMachine.h's
// id-keyed instances/arrays maps rather than embedding Go pointers in
// stack slots. 0 is the null reference.
type Ref uint32

// Instance is a heap object: the class it was instantiated from plus one
// slot per declared instance field, zero-initialized in declaration
// order at creation time (VirtualMachine.cpp's instantiate).
type Instance struct {
	Class  *classfile.ClassFile
	Fields map[string][]uint32 // one slot for most kinds, two for long/double
}

// ArrayKind identifies the element type of an Array, as produced by
// newarray's atype operand or, for anewarray, ArrayRef.
type ArrayKind uint8

const (
	ArrayBoolean ArrayKind = 4
	ArrayChar    ArrayKind = 5
	ArrayFloat   ArrayKind = 6
	ArrayDouble  ArrayKind = 7
	ArrayByte    ArrayKind = 8
	ArrayShort   ArrayKind = 9
	ArrayInt     ArrayKind = 10
	ArrayLong    ArrayKind = 11
	ArrayRef     ArrayKind = 12 // object/array element type
)

// Array is a heap array: one 32-bit slot per element for every kind
// except long and double, whose elements each take two adjacent
// Elements entries (high half first), matching the operand stack's own
// two-slot-per-wide-value convention.
type Array struct {
	Kind     ArrayKind
	Elements []uint32
}

// Heap owns the VM's instance and array tables, both id-keyed exactly as
// VirtualMachine.h's `instances`/`arrays` maps.
type Heap struct {
	mu        sync.Mutex
	nextID    uint32
	instances map[uint32]*Instance
	arrays    map[uint32]*Array
}

func newHeap() *Heap {
	return &Heap{instances: make(map[uint32]*Instance), arrays: make(map[uint32]*Array)}
}

// NewInstance allocates an object of class cf with every declared
// instance field zero-initialized in declaration order, per
// VirtualMachine.cpp's instantiate.
func (h *Heap) NewInstance(cf *classfile.ClassFile) Ref {
	fields := make(map[string][]uint32, len(cf.Fields))
	for _, f := range cf.Fields {
		if f.AccessFlags.IsStatic() {
			continue
		}
		fields[f.Name] = make([]uint32, fieldSlotCount(f.Descriptor))
	}
	inst := &Instance{Class: cf, Fields: fields}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.instances[id] = inst
	return Ref(id)
}

// NewArray allocates an array of the given kind and length, every
// element zero-initialized.
func (h *Heap) NewArray(kind ArrayKind, length int32) Ref {
	slotCount := length
	if kind == ArrayLong || kind == ArrayDouble {
		slotCount *= 2
	}
	arr := &Array{Kind: kind, Elements: make([]uint32, slotCount)}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.arrays[id] = arr
	return Ref(id)
}

// Instance looks up a previously allocated object; ok is false for a
// null reference or an unknown handle.
func (h *Heap) Instance(r Ref) (*Instance, bool) {
	if r == 0 {
		return nil, false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	inst, ok := h.instances[uint32(r)]
	return inst, ok
}

// ArrayOf looks up a previously allocated array; ok is false for a null
// reference or an unknown handle.
func (h *Heap) ArrayOf(r Ref) (*Array, bool) {
	if r == 0 {
		return nil, false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	arr, ok := h.arrays[uint32(r)]
	return arr, ok
}

// fieldKeyForStatic namespaces a static field's storage key by its
// declaring class, since statics live in the VM's global table rather
// than in any one Instance.
func fieldKeyForStatic(className, fieldName string) string {
	var sb strings.Builder
	sb.WriteString(className)
	sb.WriteByte('.')
	sb.WriteString(fieldName)
	return sb.String()
}

// fieldSlotCount reports how many 32-bit slots a field descriptor needs:
// 2 for J/D, 1 for everything else.
func fieldSlotCount(descriptor string) int {
	if descriptor == "J" || descriptor == "D" {
		return 2
	}
	return 1
}
