// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the generator's optional TOML configuration file,
// overlaying it on the defaults before command-line flags are applied.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lcm-go/lcm/lcmgen"
)

// fileConfig mirrors the TOML schema on disk. Fields use IsDefined so an
// absent key does not clobber a default or a flag value applied later.
type fileConfig struct {
	OutDir string            `toml:"out_dir"`
	Mkdir  bool              `toml:"mkdir"`
	Strict bool              `toml:"strict"`
	Remap  map[string]string `toml:"package_root_remap"`
}

// Load reads path and overlays whatever keys it defines onto base. A
// non-empty package_root_remap table replaces base's PackageRoots as a
// whole rather than merging with it. Pass lcmgen.DefaultConfig()
// as base to get the file's values with the library defaults underneath,
// or a config already populated from command-line flags to let the file
// override specific flag values.
func Load(path string, base lcmgen.Config) (lcmgen.Config, error) {
	cfg := base

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return lcmgen.Config{}, fmt.Errorf("lcmgen/config: load %s: %w", path, err)
	}

	if meta.IsDefined("out_dir") {
		cfg.OutDir = strings.TrimSpace(raw.OutDir)
	}
	if meta.IsDefined("mkdir") {
		cfg.Mkdir = raw.Mkdir
	}
	if meta.IsDefined("strict") {
		cfg.Strict = raw.Strict
	}

	if len(raw.Remap) > 0 {
		cfg.PackageRoots = make(map[string]string, len(raw.Remap))
		for pkg, dir := range raw.Remap {
			cfg.PackageRoots[strings.TrimSpace(pkg)] = strings.TrimSpace(dir)
		}
	}

	return cfg, nil
}
