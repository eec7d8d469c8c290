// Copyright 2026 The jvmlet Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package archive provides the class-archive reading collaborator
// spec.md §1 declares out of scope for the decoder/loader/interpreter
// proper: given an internal class name, find and return its class file
// bytes from one of a set of ordered backing jar-style zip archives.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	mmap "github.com/edsrzf/mmap-go"
)

// Source looks up a single internal class name (e.g. "java/lang/Object")
// within one archive, returning its class file bytes.
type Source interface {
	// Open returns the class file contents for internalName, or
	// found=false if this source does not contain it.
	Open(internalName string) (data []byte, found bool, err error)
	// Path reports the archive's backing path, for logging.
	Path() string
	Close() error
}

// ZipSource is a Source backed by a memory-mapped zip archive, mirroring
// saferwall/pe's file.go: the whole archive is mapped once at
// construction (mmap.Map) rather than read fully into memory or
// re-opened per lookup.
type ZipSource struct {
	path string
	f    *os.File
	data mmap.MMap
	zr   *zip.Reader
}

// OpenZip memory-maps the zip archive at path and prepares it for
// repeated internal-name lookups.
func OpenZip(path string) (*ZipSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("archive: opening %s: %w", path, err)
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("archive: mapping %s: %w", path, err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		data.Unmap()
		f.Close()
		return nil, fmt.Errorf("archive: reading zip directory of %s: %w", path, err)
	}
	return &ZipSource{path: path, f: f, data: data, zr: zr}, nil
}

func (s *ZipSource) Path() string { return s.path }

// Open looks up internalName+".class" as a zip entry.
func (s *ZipSource) Open(internalName string) ([]byte, bool, error) {
	entryName := internalName + ".class"
	zf, err := s.zr.Open(entryName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		// archive/zip reports a missing entry as a generic error, not
		// necessarily satisfying os.IsNotExist; treat any Open failure
		// here as a miss, matching VirtualMachine.cpp's "try the next
		// archive" behavior on any failed zip_fopen.
		return nil, false, nil
	}
	defer zf.Close()
	data, err := io.ReadAll(zf)
	if err != nil {
		return nil, false, fmt.Errorf("archive: reading %s from %s: %w", entryName, s.path, err)
	}
	return data, true, nil
}

func (s *ZipSource) Close() error {
	unmapErr := s.data.Unmap()
	closeErr := s.f.Close()
	if unmapErr != nil {
		return unmapErr
	}
	return closeErr
}

// MultiSource probes an ordered list of Sources and returns the first
// hit, mirroring VirtualMachine.cpp's getClass: rt.jar, then jce.jar,
// then jsse.jar, in that exact order.
type MultiSource struct {
	sources []Source
}

// NewMultiSource wraps sources in probe order.
func NewMultiSource(sources ...Source) *MultiSource {
	return &MultiSource{sources: sources}
}

// Path joins every backing source's path, for logging; MultiSource
// itself isn't backed by a single archive.
func (m *MultiSource) Path() string {
	paths := make([]string, len(m.sources))
	for i, s := range m.sources {
		paths[i] = s.Path()
	}
	return strings.Join(paths, ", ")
}

// Open probes each source in order and returns the first hit.
func (m *MultiSource) Open(internalName string) (data []byte, found bool, err error) {
	for _, s := range m.sources {
		data, found, err = s.Open(internalName)
		if err != nil {
			return nil, false, err
		}
		if found {
			return data, true, nil
		}
	}
	return nil, false, nil
}

// Close closes every backing source, returning the first error
// encountered (and still attempting to close the rest).
func (m *MultiSource) Close() error {
	var first error
	for _, s := range m.sources {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
