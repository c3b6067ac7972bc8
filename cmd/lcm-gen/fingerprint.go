// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lcm-go/lcm/lcmgen"
	"github.com/lcm-go/lcm/lcmtype"
)

func newFingerprintCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint <file.lcm> [struct]",
		Short: "Print the 64-bit structural fingerprint of one or all structs in a file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFingerprint(cmd, args)
		},
	}
}

func runFingerprint(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return &lcmgen.IOError{Path: path, Op: "read", Err: err}
	}
	f, err := lcmgen.ParseFile(string(src), path)
	if err != nil {
		return err
	}

	reg := lcmgen.NewRegistry([]*lcmtype.File{f})
	want := ""
	if len(args) == 2 {
		want = args[1]
	}

	printed := false
	for i := range f.Structs {
		s := &f.Structs[i]
		if want != "" && s.ShortName != want && s.FullName() != want {
			continue
		}
		fp, err := lcmgen.Fingerprint(s, reg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t0x%016x\n", s.FullName(), fp)
		printed = true
	}
	if !printed {
		return fmt.Errorf("lcm-gen: no struct named %q in %s", want, path)
	}
	return nil
}
