// Copyright 2026 The jvmlet Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "bytes"

// Fuzz is the legacy go-fuzz entry point: it returns 1 when data decodes
// into a well-formed class file, 0 otherwise (malformed input, including
// panics recovered by the fuzzing driver itself, counts as uninteresting).
func Fuzz(data []byte) int {
	cf, err := Parse(bytes.NewReader(data))
	if err != nil {
		return 0
	}
	if _, err := cf.ReferencedClassNames(); err != nil {
		return 0
	}
	return 1
}
