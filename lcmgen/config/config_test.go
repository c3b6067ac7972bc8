// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lcm-go/lcm/lcmgen"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "lcmgen.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOverlaysDefinedKeysOnly(t *testing.T) {
	path := writeTemp(t, `
out_dir = "gen"
strict = true
`)
	cfg, err := Load(path, lcmgen.DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, "gen", cfg.OutDir)
	require.True(t, cfg.Strict)
	require.True(t, cfg.Mkdir) // default preserved, not overridden by an absent key
}

func TestLoadOverlaysOntoSuppliedBase(t *testing.T) {
	path := writeTemp(t, `strict = true`)
	base := lcmgen.Config{OutDir: "from-flags", Mkdir: false}

	cfg, err := Load(path, base)
	require.NoError(t, err)
	require.Equal(t, "from-flags", cfg.OutDir) // untouched key keeps the caller's base
	require.True(t, cfg.Strict)                // defined key overrides the base
}

func TestLoadPackageRootRemap(t *testing.T) {
	path := writeTemp(t, `
[package_root_remap]
sensors = "internal/gen/sensors"
`)
	cfg, err := Load(path, lcmgen.DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, "internal/gen/sensors", cfg.PackageRoots["sensors"])
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"), lcmgen.DefaultConfig())
	require.Error(t, err)
}
