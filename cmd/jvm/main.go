// Copyright 2026 The jvmlet Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/spf13/cobra"

	"github.com/jvmlet/jvm/classfile"
	"github.com/jvmlet/jvm/vm"
)

func prettyPrint(buf []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, buf, "", "\t"); err != nil {
		return string(buf)
	}
	return out.String()
}

// archivePathsFromJavaHome mirrors VirtualMachine.cpp's archive
// resolution: {JAVA_HOME}/jre/lib/{rt,jce,jsse}.jar, probed in that
// order. Resolving JAVA_HOME happens here, in the CLI, not inside the vm
// package — the library never reads process environment itself.
func archivePathsFromJavaHome() ([]string, error) {
	javaHome := os.Getenv("JAVA_HOME")
	if javaHome == "" {
		return nil, fmt.Errorf("JAVA_HOME is not set")
	}
	lib := filepath.Join(javaHome, "jre", "lib")
	return []string{
		filepath.Join(lib, "rt.jar"),
		filepath.Join(lib, "jce.jar"),
		filepath.Join(lib, "jsse.jar"),
	}, nil
}

func newRunCommand() *cobra.Command {
	var trace bool
	cmd := &cobra.Command{
		Use:   "run [mainClassInternalName]",
		Short: "load a class and its transitive references from JAVA_HOME's archives",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mainClass := "java/lang/Object"
			if len(args) == 1 {
				mainClass = args[0]
			}
			paths, err := archivePathsFromJavaHome()
			if err != nil {
				return err
			}
			logger := log.NewStdLogger(os.Stdout)
			machine, err := vm.New(vm.Config{
				ArchivePaths: paths,
				MainClass:    mainClass,
				Trace:        trace,
				Logger:       logger,
			})
			if err != nil {
				return err
			}
			count, err := machine.RunMain()
			if err != nil {
				return err
			}
			fmt.Printf("loaded %d classes, main class %s\n", count, mainClass)
			return nil
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", false, "log every opcode executed")
	return cmd
}

func newDumpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <internalClassName>",
		Short: "load one class from JAVA_HOME's archives and pretty-print its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := archivePathsFromJavaHome()
			if err != nil {
				return err
			}
			logger := log.NewStdLogger(os.Stdout)
			machine, err := vm.New(vm.Config{ArchivePaths: paths, MainClass: args[0], Logger: logger})
			if err != nil {
				return err
			}
			cf, err := machine.LoadMainClass()
			if err != nil {
				return err
			}
			return dumpClassFile(cf)
		},
	}
	return cmd
}

// dumpSummary is a JSON-friendly projection of a classfile.ClassFile;
// unlike pedumper.go's json.Marshal(pe.DosHeader)-style direct struct
// dump, ClassFile's AttributePool/ConstantPool aren't exported field
// bags, so dump builds one explicitly.
type dumpSummary struct {
	ThisClass    string   `json:"this_class"`
	SuperClass   string   `json:"super_class,omitempty"`
	MajorVersion uint16   `json:"major_version"`
	MinorVersion uint16   `json:"minor_version"`
	Interfaces   []string `json:"interfaces,omitempty"`
	Fields       []string `json:"fields,omitempty"`
	Methods      []string `json:"methods,omitempty"`
}

func dumpClassFile(cf *classfile.ClassFile) error {
	summary := dumpSummary{
		ThisClass:    cf.ThisClass,
		SuperClass:   cf.SuperClass,
		MajorVersion: cf.MajorVersion,
		MinorVersion: cf.MinorVersion,
		Interfaces:   cf.Interfaces,
	}
	for i := range cf.Fields {
		f, err := classfile.MemberAt(cf.Fields, i)
		if err != nil {
			return err
		}
		summary.Fields = append(summary.Fields, f.Name+" "+f.Descriptor)
	}
	for i := range cf.Methods {
		m, err := classfile.MemberAt(cf.Methods, i)
		if err != nil {
			return err
		}
		summary.Methods = append(summary.Methods, m.Name+m.Descriptor)
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	fmt.Println(prettyPrint(raw))
	return nil
}

func main() {
	root := &cobra.Command{Use: "jvm", Short: "an embryonic JVM classfile decoder and bytecode interpreter"}
	root.AddCommand(newRunCommand(), newDumpCommand())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
