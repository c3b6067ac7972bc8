// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcmgen

import (
	"testing"

	"github.com/lcm-go/lcm/lcmtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePointStruct(t *testing.T) {
	src := `package p;
struct point_t {
    double x;
    double y;
    double z;
}`
	file, err := ParseFile(src, "point.lcm")
	require.NoError(t, err)
	assert.Equal(t, "p", file.Package)
	require.Len(t, file.Structs, 1)

	s := file.Structs[0]
	assert.Equal(t, "point_t", s.ShortName)
	assert.Equal(t, "p", s.Package)
	require.Len(t, s.Members, 3)
	assert.Equal(t, "x", s.Members[0].Name)
	assert.True(t, s.Members[0].Type.Primitive)
	assert.Equal(t, "double", s.Members[0].Type.FullName)
}

func TestParseConstants(t *testing.T) {
	src := `struct limits_t {
    const int32_t MIN = -5, MAX = 0x7fffffff;
    const double PI = 3.14159;
    int32_t value;
}`
	file, err := ParseFile(src, "limits.lcm")
	require.NoError(t, err)
	require.Len(t, file.Structs, 1)

	s := file.Structs[0]
	require.Len(t, s.Constants, 3)
	assert.Equal(t, "MIN", s.Constants[0].Name)
	assert.EqualValues(t, -5, s.Constants[0].Literal.Int)
	assert.Equal(t, "MAX", s.Constants[1].Name)
	assert.EqualValues(t, 0x7fffffff, s.Constants[1].Literal.Int)
	assert.Equal(t, "PI", s.Constants[2].Name)
	assert.InDelta(t, 3.14159, s.Constants[2].Literal.Float, 1e-9)
}

func TestParseFixedAndVariableArrays(t *testing.T) {
	src := `struct scan_t {
    int32_t n;
    double fixed[3];
    double ranges[n];
}`
	file, err := ParseFile(src, "scan.lcm")
	require.NoError(t, err)
	s := file.Structs[0]

	require.Len(t, s.Members, 3)
	fixed := s.Members[1]
	require.Len(t, fixed.Dims, 1)
	assert.Equal(t, lcmtype.DimConst, fixed.Dims[0].Kind)
	assert.Equal(t, 3, fixed.Dims[0].Size)

	variable := s.Members[2]
	require.Len(t, variable.Dims, 1)
	assert.Equal(t, lcmtype.DimVariable, variable.Dims[0].Kind)
	assert.Equal(t, "n", variable.Dims[0].Refer)
}

func TestParseNestedUserType(t *testing.T) {
	src := `package sensors;
struct point3d_t { double x; double y; double z; }
struct scan_t {
    point3d_t origin;
    other.pkg.frame_t frame;
}`
	file, err := ParseFile(src, "scan.lcm")
	require.NoError(t, err)
	require.Len(t, file.Structs, 2)

	scan := file.Structs[1]
	origin := scan.Members[0]
	assert.False(t, origin.Type.Primitive)
	assert.Equal(t, "sensors", origin.Type.Package)
	assert.Equal(t, "point3d_t", origin.Type.ShortName)

	frame := scan.Members[1]
	assert.Equal(t, "other.pkg", frame.Type.Package)
	assert.Equal(t, "frame_t", frame.Type.ShortName)
}

func TestParseUnexpectedTokenFails(t *testing.T) {
	_, err := ParseFile("struct foo_t { int32_t ; }", "foo.lcm")
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseDocCommentsAttach(t *testing.T) {
	src := `/// describes a 3D point
struct point3d_t {
    /// the x coordinate
    double x;
}`
	file, err := ParseFile(src, "point.lcm")
	require.NoError(t, err)
	assert.Equal(t, "describes a 3D point", file.Structs[0].Doc)
	assert.Equal(t, "the x coordinate", file.Structs[0].Members[0].Doc)
}
