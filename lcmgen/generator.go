// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcmgen

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/lcm-go/lcm/lcmtype"
)

// Config controls where and how the generator writes its output, per
// spec.md 6's generator CLI surface.
type Config struct {
	OutDir string // output directory, default "."
	Mkdir  bool   // create the package-derived directory tree automatically
	Strict bool   // reject symbolic array dimensions (spec.md 9 open question)

	// PackageRoots overrides the output directory for specific IDL
	// packages, keyed by dotted package name. A package absent from this
	// map uses OutDir/GoPackagePath(pkg) as usual.
	PackageRoots map[string]string
}

// DefaultConfig returns the generator's defaults: the current directory,
// with directory creation enabled.
func DefaultConfig() Config {
	return Config{OutDir: ".", Mkdir: true}
}

// Generator drives EmitStruct across every struct in a set of parsed
// files and writes the result to disk, one file per struct. Rendering is
// fanned out across goroutines; writing happens sequentially in Write.
type Generator struct {
	cfg Config
	reg *Registry
}

// NewGenerator returns a Generator over files, indexing them into a
// shared Registry so fingerprinting can resolve cross-file struct
// references.
func NewGenerator(cfg Config, files []*lcmtype.File) *Generator {
	return &Generator{cfg: cfg, reg: NewRegistry(files)}
}

// GeneratedFile is one emitted source file, returned by GenerateAll before
// any of it is written to disk — useful for tests that want to inspect
// generated source without touching the filesystem.
type GeneratedFile struct {
	Path   string // absolute/relative disk path this would be written to
	Source string
	Struct string // the struct's full dotted name
}

// GenerateAll validates (if Strict) and renders every struct across files,
// fanning the per-struct emission out across goroutines via
// golang.org/x/sync/errgroup and returning on the first failure.
func (g *Generator) GenerateAll(ctx context.Context, files []*lcmtype.File) ([]GeneratedFile, error) {
	if g.cfg.Strict {
		for _, f := range files {
			if err := ValidateStrict(f); err != nil {
				return nil, err
			}
		}
	}

	structs := g.reg.All()
	results := make([]GeneratedFile, len(structs))

	grp, _ := errgroup.WithContext(ctx)
	for i, s := range structs {
		i, s := i, s
		grp.Go(func() error {
			src, err := EmitStruct(s, g.reg)
			if err != nil {
				return err
			}
			results[i] = GeneratedFile{
				Path:   g.outputPath(s),
				Source: src,
				Struct: s.FullName(),
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// outputPath follows spec.md 6's external interface contract: one file
// per struct at <out>/<pkg-as-dirs>/<shortname>.go, the IDL's own short
// name rather than its PascalCase Go identifier.
func (g *Generator) outputPath(s *lcmtype.Struct) string {
	var dir string
	if root, ok := g.cfg.PackageRoots[s.Package]; ok {
		dir = root
	} else {
		dir = filepath.Join(g.cfg.OutDir, GoPackagePath(s.Package))
	}
	fileName := s.ShortName + ".go"
	return filepath.Join(dir, fileName)
}

// Write persists every generated file to disk, creating its package
// directory first when Config.Mkdir is set.
func (g *Generator) Write(files []GeneratedFile) error {
	for _, f := range files {
		if g.cfg.Mkdir {
			if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
				return &IOError{Path: filepath.Dir(f.Path), Op: "write", Err: err}
			}
		}
		if err := os.WriteFile(f.Path, []byte(f.Source), 0o644); err != nil {
			return &IOError{Path: f.Path, Op: "write", Err: err}
		}
	}
	return nil
}
