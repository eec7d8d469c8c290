// Copyright 2026 The jvmlet Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package vm

import (
	"bytes"
	"fmt"

	"github.com/jvmlet/jvm/classfile"
)

// codeAttribute is the decoded body of a method's "Code" attribute.
// Exception tables and nested attributes (LineNumberTable and the like)
// are skipped rather than retained: exception unwinding is out of this
// interpreter's scope, and debug metadata has no interpreter use.
type codeAttribute struct {
	MaxStack  uint16
	MaxLocals uint16
	Code      []byte
}

func parseCodeAttribute(info []byte) (*codeAttribute, error) {
	r := classfile.NewReader(bytes.NewReader(info))

	maxStack, err := r.U2()
	if err != nil {
		return nil, fmt.Errorf("vm: reading Code.max_stack: %w", err)
	}
	maxLocals, err := r.U2()
	if err != nil {
		return nil, fmt.Errorf("vm: reading Code.max_locals: %w", err)
	}
	codeLength, err := r.U4()
	if err != nil {
		return nil, fmt.Errorf("vm: reading Code.code_length: %w", err)
	}
	code, err := r.Bytes(int(codeLength))
	if err != nil {
		return nil, fmt.Errorf("vm: reading Code.code: %w", err)
	}

	excTableLen, err := r.U2()
	if err != nil {
		return nil, fmt.Errorf("vm: reading Code.exception_table_length: %w", err)
	}
	for i := 0; i < int(excTableLen); i++ {
		if _, err := r.Bytes(8); err != nil {
			return nil, fmt.Errorf("vm: reading Code.exception_table[%d]: %w", i, err)
		}
	}

	attrCount, err := r.U2()
	if err != nil {
		return nil, fmt.Errorf("vm: reading Code.attributes_count: %w", err)
	}
	for i := 0; i < int(attrCount); i++ {
		if _, err := r.U2(); err != nil { // name index, unresolved: unused
			return nil, fmt.Errorf("vm: reading Code attribute %d name index: %w", i, err)
		}
		length, err := r.U4()
		if err != nil {
			return nil, fmt.Errorf("vm: reading Code attribute %d length: %w", i, err)
		}
		if _, err := r.Bytes(int(length)); err != nil {
			return nil, fmt.Errorf("vm: reading Code attribute %d body: %w", i, err)
		}
	}

	return &codeAttribute{MaxStack: maxStack, MaxLocals: maxLocals, Code: code}, nil
}
