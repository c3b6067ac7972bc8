// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lcm-go/lcm/lcmgen"
	"github.com/lcm-go/lcm/lcmtype"
)

func newGenerateCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <file.lcm>...",
		Short: "Parse IDL files and write the generated Go source",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runGenerate(cmd, cfg, args)
		},
	}
}

// runGenerate parses every path independently, continuing past a bad file
// so a single typo does not hide errors in the rest of the batch, then
// generates and writes the union of everything that parsed.
func runGenerate(cmd *cobra.Command, cfg lcmgen.Config, paths []string) error {
	var files []*lcmtype.File
	var parseErrs []error

	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			parseErrs = append(parseErrs, &lcmgen.IOError{Path: path, Op: "read", Err: err})
			continue
		}
		f, err := lcmgen.ParseFile(string(src), path)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		files = append(files, f)
	}

	if len(parseErrs) > 0 {
		for _, e := range parseErrs {
			fmt.Fprintln(cmd.ErrOrStderr(), e)
		}
		if len(files) == 0 {
			return fmt.Errorf("lcm-gen: no file parsed successfully")
		}
	}

	gen := lcmgen.NewGenerator(cfg, files)
	generated, err := gen.GenerateAll(context.Background(), files)
	if err != nil {
		return err
	}
	if err := gen.Write(generated); err != nil {
		return err
	}

	for _, f := range generated {
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", f.Struct, f.Path)
	}

	if len(parseErrs) > 0 {
		return fmt.Errorf("lcm-gen: %d of %d files failed to parse", len(parseErrs), len(paths))
	}
	return nil
}
