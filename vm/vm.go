// Copyright 2026 The jvmlet Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package vm implements the frame-per-invocation bytecode interpreter
// and the VM root that owns class loading, the heap and static field
// storage.
package vm

import (
	"fmt"
	"sync"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/jvmlet/jvm/archive"
	"github.com/jvmlet/jvm/classfile"
	"github.com/jvmlet/jvm/loader"
)

// Config configures a VM. Nothing in this package reads global or
// process state directly (no JAVA_HOME lookup, no ambient archive
// opening): callers build Config explicitly, per spec.md §9's
// config-struct-over-globals design note.
type Config struct {
	// ArchivePaths are probed in order; the first archive containing a
	// requested class wins.
	ArchivePaths []string

	// MainClass is the internal name of the class to load as the
	// program entry point. Defaults to "java/lang/Object".
	MainClass string

	// Trace enables opcode-level logging of every instruction executed.
	Trace bool

	// Logger receives class-load and (if Trace) opcode trace events.
	// A nil Logger discards all output.
	Logger log.Logger
}

// VM is the interpreter root: class registry, heap and static field
// table, plus the configuration it was built from.
type VM struct {
	cfg      Config
	registry *loader.Registry
	heap     *Heap
	logger   *log.Helper

	staticsMu sync.Mutex
	statics   map[string][]uint32
}

// New builds a VM over the archives named in cfg.ArchivePaths, opened in
// order (first hit wins on every subsequent class lookup).
func New(cfg Config) (*VM, error) {
	if cfg.MainClass == "" {
		cfg.MainClass = "java/lang/Object"
	}
	sources := make([]archive.Source, 0, len(cfg.ArchivePaths))
	for _, p := range cfg.ArchivePaths {
		src, err := archive.OpenZip(p)
		if err != nil {
			return nil, fmt.Errorf("vm: opening archive %s: %w", p, err)
		}
		sources = append(sources, src)
	}
	multi := archive.NewMultiSource(sources...)

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewStdLogger(logNopWriter{})
	}

	return &VM{
		cfg:      cfg,
		registry: loader.New(multi, logger),
		heap:     newHeap(),
		logger:   log.NewHelper(log.NewFilter(logger, log.FilterLevel(log.LevelInfo))),
		statics:  make(map[string][]uint32),
	}, nil
}

type logNopWriter struct{}

func (logNopWriter) Write(p []byte) (int, error) { return len(p), nil }

// LoadMainClass loads cfg.MainClass and every class it transitively
// references through the configured archives.
func (vm *VM) LoadMainClass() (*classfile.ClassFile, error) {
	return vm.registry.Get(vm.cfg.MainClass)
}

// RunMain loads the configured main class and reports how many classes
// ended up registered. VirtualMachine.cpp's own runMain is the same kind
// of placeholder (it prints the class count); invoking a program's
// actual entry point is left to Invoke, since "what a main-method
// contract looks like" is program-specific and out of this interpreter's
// scope.
func (vm *VM) RunMain() (classCount int, err error) {
	if _, err := vm.LoadMainClass(); err != nil {
		return 0, err
	}
	return vm.registry.Len(), nil
}

// Invoke resolves className.methodName(descriptor) — walking the
// superclass chain if the method isn't declared directly on className —
// and runs it in a fresh Frame with args copied into its initial locals.
func (vm *VM) Invoke(className, methodName, descriptor string, args []uint32) ([]uint32, error) {
	cf, method, err := vm.resolveMethod(className, methodName, descriptor)
	if err != nil {
		return nil, err
	}
	return vm.invokeOn(cf, method, args)
}

func (vm *VM) resolveMethod(className, methodName, descriptor string) (*classfile.ClassFile, *classfile.Member, error) {
	requested := className
	for className != "" {
		cf, err := vm.registry.Get(className)
		if err != nil {
			return nil, nil, err
		}
		if m, ok := classfile.FindMethod(cf.Methods, methodName, descriptor); ok {
			return cf, m, nil
		}
		className = cf.SuperClass
	}
	return nil, nil, &MethodNotFoundError{Class: requested, Name: methodName, Descriptor: descriptor}
}

func (vm *VM) invokeOn(cf *classfile.ClassFile, method *classfile.Member, args []uint32) ([]uint32, error) {
	codeAttr, ok := method.Attributes.Lookup("Code")
	if !ok {
		return nil, fmt.Errorf("vm: %s.%s%s has no Code attribute", cf.ThisClass, method.Name, method.Descriptor)
	}
	code, err := parseCodeAttribute(codeAttr.Info)
	if err != nil {
		return nil, fmt.Errorf("vm: %s.%s%s: %w", cf.ThisClass, method.Name, method.Descriptor, err)
	}

	locals := make([]uint32, code.MaxLocals)
	copy(locals, args)

	frame := &Frame{
		vm:     vm,
		cf:     cf,
		method: method,
		code:   code.Code,
		locals: locals,
		stack:  make([]uint32, 0, code.MaxStack),
	}
	if vm.cfg.Trace {
		vm.logger.Infof("invoke %s.%s%s", cf.ThisClass, method.Name, method.Descriptor)
	}
	return frame.Run()
}

// Heap exposes the VM's object/array table, used by opcodes that
// allocate or dereference references.
func (vm *VM) Heap() *Heap { return vm.heap }

// getStatic returns the current slots for className.fieldName,
// allocating a zero-initialized entry on first access.
func (vm *VM) getStatic(className, fieldName string, slots int) []uint32 {
	key := fieldKeyForStatic(className, fieldName)
	vm.staticsMu.Lock()
	defer vm.staticsMu.Unlock()
	v, ok := vm.statics[key]
	if !ok {
		v = make([]uint32, slots)
		vm.statics[key] = v
	}
	return v
}

func (vm *VM) putStatic(className, fieldName string, values []uint32) {
	key := fieldKeyForStatic(className, fieldName)
	vm.staticsMu.Lock()
	defer vm.staticsMu.Unlock()
	vm.statics[key] = values
}
