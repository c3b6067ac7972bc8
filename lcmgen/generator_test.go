// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcmgen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lcm-go/lcm/lcmtype"
)

const genPointSrc = `package sensors;

struct point3d_t
{
    double x;
    double y;
    double z;
}
`

const genScanSrc = `package sensors;

struct scan_t
{
    int64_t utime;
    int32_t n;
    sensors.point3d_t points[n];
}
`

func TestGenerateAllProducesOneFilePerStruct(t *testing.T) {
	pf, err := ParseFile(genPointSrc, "point3d_t.lcm")
	require.NoError(t, err)
	sf, err := ParseFile(genScanSrc, "scan_t.lcm")
	require.NoError(t, err)

	files := []*lcmtype.File{pf, sf}
	g := NewGenerator(Config{OutDir: "gen", Mkdir: true}, files)
	out, err := g.GenerateAll(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, out, 2)

	byStruct := map[string]GeneratedFile{}
	for _, f := range out {
		byStruct[f.Struct] = f
	}

	point, ok := byStruct["sensors.point3d_t"]
	require.True(t, ok)
	require.Contains(t, point.Source, "func NewPoint3dT(")
	require.Contains(t, point.Path, "sensors")
	require.Contains(t, point.Path, "point3d_t.go")

	scan, ok := byStruct["sensors.scan_t"]
	require.True(t, ok)
	require.Contains(t, scan.Source, "Points []Point3dT")
}

func TestGenerateAllStrictRejectsSymbolicDims(t *testing.T) {
	const src = `struct bad_t
{
    int32_t n;
    int32_t data[UNKNOWN_CONST];
}
`
	f, err := ParseFile(src, "bad_t.lcm")
	require.NoError(t, err)

	files := []*lcmtype.File{f}
	g := NewGenerator(Config{Strict: true}, files)
	_, err = g.GenerateAll(context.Background(), files)
	require.Error(t, err)
	require.Contains(t, err.Error(), "UNKNOWN_CONST")
}

func TestGenerateAllPermissiveAllowsSymbolicDims(t *testing.T) {
	const src = `struct odd_t
{
    int32_t data[UNKNOWN_CONST];
}
`
	f, err := ParseFile(src, "odd_t.lcm")
	require.NoError(t, err)

	files := []*lcmtype.File{f}
	g := NewGenerator(Config{}, files)
	out, err := g.GenerateAll(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "odd_t", out[0].Struct)
}
