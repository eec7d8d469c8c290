// Copyright 2026 The jvmlet Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package loader implements the class registry: lazy, deduplicating,
// transitive loading of classfile.ClassFile values from an archive.Source,
// keyed by internal class name.
package loader

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/jvmlet/jvm/archive"
	"github.com/jvmlet/jvm/classfile"
)

// ClassNotFoundError reports a name no configured archive source
// contains.
type ClassNotFoundError struct {
	Name string
}

func (e *ClassNotFoundError) Error() string {
	return fmt.Sprintf("loader: class not found: %s", e.Name)
}

// Registry is the VM's class table: a name-keyed, lazily-populated cache
// of decoded class files, backed by an ordered archive.Source. It
// mirrors VirtualMachine.cpp's classes map and getClass: registration
// into the cache happens before a class's transitive references are
// loaded, so a cycle in the reference graph terminates on the second
// visit instead of recursing forever.
type Registry struct {
	source archive.Source
	logger *log.Helper

	mu      sync.Mutex
	classes map[string]*classfile.ClassFile
}

// New builds a Registry over source. A nil logger discards all output.
func New(source archive.Source, logger log.Logger) *Registry {
	if logger == nil {
		logger = log.NewStdLogger(nopWriter{})
	}
	return &Registry{
		source:  source,
		logger:  log.NewHelper(log.NewFilter(logger, log.FilterLevel(log.LevelInfo))),
		classes: make(map[string]*classfile.ClassFile),
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

// Get returns the decoded class file named name, loading it (and
// transitively, every class its constant pool references) if this is
// the first request for it.
func (r *Registry) Get(name string) (*classfile.ClassFile, error) {
	r.mu.Lock()
	if cf, ok := r.classes[name]; ok {
		r.mu.Unlock()
		return cf, nil
	}
	r.mu.Unlock()
	return r.load(name)
}

// load decodes name from the archive, registers it into the cache
// before recursing into its references (breaking cycles), then loads
// every class it transitively references. Any failure, including a
// transitively referenced class failing to load, is fatal: spec.md §7
// treats unresolved references as fatal rather than recoverable.
func (r *Registry) load(name string) (*classfile.ClassFile, error) {
	r.mu.Lock()
	if cf, ok := r.classes[name]; ok {
		r.mu.Unlock()
		return cf, nil
	}
	r.mu.Unlock()

	data, found, err := r.source.Open(name)
	if err != nil {
		return nil, fmt.Errorf("loader: opening %s: %w", name, err)
	}
	if !found {
		return nil, &ClassNotFoundError{Name: name}
	}

	cf, err := classfile.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("loader: parsing %s: %w", name, err)
	}

	r.mu.Lock()
	if existing, ok := r.classes[name]; ok {
		// Lost a race against a concurrent load of the same name; the
		// winner's result is authoritative.
		r.mu.Unlock()
		return existing, nil
	}
	r.classes[name] = cf
	r.mu.Unlock()

	r.logger.Infof("loaded class %s", name)

	refs, err := cf.ReferencedClassNames()
	if err != nil {
		return nil, fmt.Errorf("loader: scanning references of %s: %w", name, err)
	}
	for _, ref := range refs {
		if ref == name {
			continue
		}
		if _, err := r.Get(ref); err != nil {
			return nil, fmt.Errorf("loader: loading %s (referenced by %s): %w", ref, name, err)
		}
	}

	return cf, nil
}

// Len reports how many classes are currently registered.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.classes)
}
