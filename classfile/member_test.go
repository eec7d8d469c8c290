// Copyright 2026 The jvmlet Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"errors"
	"testing"
)

func TestMemberAtInRange(t *testing.T) {
	members := []Member{{Name: "a"}, {Name: "b"}}
	m, err := MemberAt(members, 1)
	if err != nil {
		t.Fatalf("MemberAt: %v", err)
	}
	if m.Name != "b" {
		t.Fatalf("MemberAt(1).Name = %q, want b", m.Name)
	}
}

func TestMemberAtOutOfRange(t *testing.T) {
	members := []Member{{Name: "a"}}
	_, err := MemberAt(members, 1)
	var rangeErr *MemberIndexOutOfRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("err = %v, want *MemberIndexOutOfRangeError", err)
	}
	if rangeErr.Index != 1 || rangeErr.Count != 1 {
		t.Fatalf("err = %+v, want Index=1 Count=1", rangeErr)
	}
}

func TestFindMethodMatchesNameAndDescriptor(t *testing.T) {
	methods := []Member{
		{Name: "add", Descriptor: "(II)I"},
		{Name: "add", Descriptor: "(DD)D"},
	}
	m, ok := FindMethod(methods, "add", "(DD)D")
	if !ok || m.Descriptor != "(DD)D" {
		t.Fatalf("FindMethod = %+v, %v, want the (DD)D overload", m, ok)
	}
	if _, ok := FindMethod(methods, "sub", "(II)I"); ok {
		t.Fatal("FindMethod found a method that doesn't exist")
	}
}
