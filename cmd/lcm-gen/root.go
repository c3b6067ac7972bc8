// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"

	"github.com/lcm-go/lcm/lcmgen"
	genconfig "github.com/lcm-go/lcm/lcmgen/config"
)

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	outDir     string
	mkdir      bool
	strict     bool
	configPath string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "lcm-gen",
		Short:         "Generate Go types from LCM IDL files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.outDir, "out-dir", "o", ".", "output directory for generated packages")
	cmd.PersistentFlags().BoolVar(&flags.mkdir, "mkdir", true, "create package output directories as needed")
	cmd.PersistentFlags().BoolVar(&flags.strict, "strict", false, "reject array dimensions that resolve to neither a constant nor a member")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "optional TOML config file overlaying the flags above")

	cmd.AddCommand(newGenerateCommand(flags))
	cmd.AddCommand(newFingerprintCommand())

	return cmd
}

// resolveConfig builds the generator config starting from -config (when
// given) overlaid on the library defaults, then applies every flag the
// user actually passed on top of that. CLI flags always override file
// values, per SPEC_FULL.md 3; a flag left at its default does not
// clobber a value the config file set explicitly.
func resolveConfig(cmd *cobra.Command, flags *rootFlags) (lcmgen.Config, error) {
	cfg := lcmgen.DefaultConfig()
	if flags.configPath != "" {
		var err error
		cfg, err = genconfig.Load(flags.configPath, cfg)
		if err != nil {
			return lcmgen.Config{}, err
		}
	}

	if cmd.Flags().Changed("out-dir") {
		cfg.OutDir = flags.outDir
	}
	if cmd.Flags().Changed("mkdir") {
		cfg.Mkdir = flags.mkdir
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = flags.strict
	}
	return cfg, nil
}
