// Copyright 2026 The jvmlet Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Compile-time check that MultiSource satisfies Source: a missing
// method here fails the build, not just a test.
var _ Source = (*MultiSource)(nil)

func writeTestZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.jar")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, contents := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip Create(%s): %v", name, err)
		}
		if _, err := w.Write([]byte(contents)); err != nil {
			t.Fatalf("zip Write(%s): %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip Close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("file Close: %v", err)
	}
	return path
}

func TestZipSourceOpenHitAndMiss(t *testing.T) {
	path := writeTestZip(t, map[string]string{"java/lang/Object.class": "bytes"})
	src, err := OpenZip(path)
	if err != nil {
		t.Fatalf("OpenZip: %v", err)
	}
	defer src.Close()

	data, found, err := src.Open("java/lang/Object")
	if err != nil || !found {
		t.Fatalf("Open(Object) = %v, %v, %v", data, found, err)
	}
	if string(data) != "bytes" {
		t.Fatalf("data = %q, want bytes", data)
	}

	_, found, err = src.Open("java/lang/DoesNotExist")
	if err != nil {
		t.Fatalf("Open(missing): %v", err)
	}
	if found {
		t.Fatalf("Open(missing) found = true, want false")
	}
}

func TestMultiSourceFirstHitWins(t *testing.T) {
	rt := writeTestZip(t, map[string]string{"java/lang/Object.class": "from-rt"})
	jce := writeTestZip(t, map[string]string{"java/lang/Object.class": "from-jce", "javax/crypto/Cipher.class": "cipher"})

	rtSrc, err := OpenZip(rt)
	if err != nil {
		t.Fatalf("OpenZip(rt): %v", err)
	}
	defer rtSrc.Close()
	jceSrc, err := OpenZip(jce)
	if err != nil {
		t.Fatalf("OpenZip(jce): %v", err)
	}
	defer jceSrc.Close()

	multi := NewMultiSource(rtSrc, jceSrc)

	data, found, err := multi.Open("java/lang/Object")
	if err != nil || !found || string(data) != "from-rt" {
		t.Fatalf("Open(Object) = %q, %v, %v, want from-rt/true/nil", data, found, err)
	}

	data, found, err = multi.Open("javax/crypto/Cipher")
	if err != nil || !found || string(data) != "cipher" {
		t.Fatalf("Open(Cipher) = %q, %v, %v, want cipher/true/nil", data, found, err)
	}

	_, found, err = multi.Open("nowhere/At/All")
	if err != nil || found {
		t.Fatalf("Open(missing) = found=%v err=%v, want false/nil", found, err)
	}

	path := multi.Path()
	if !strings.Contains(path, rt) || !strings.Contains(path, jce) {
		t.Fatalf("Path() = %q, want it to mention both %q and %q", path, rt, jce)
	}
}
