// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcmtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructFullName(t *testing.T) {
	s := Struct{Package: "sensors", ShortName: "point3d_t"}
	assert.Equal(t, "sensors.point3d_t", s.FullName())

	s2 := Struct{ShortName: "point3d_t"}
	assert.Equal(t, "point3d_t", s2.FullName())
}

func TestMemberByName(t *testing.T) {
	s := Struct{
		ShortName: "scan_t",
		Members: []Member{
			{Type: TypeRef{FullName: "int32_t", Primitive: true}, Name: "n"},
			{Type: TypeRef{FullName: "double", Primitive: true}, Name: "ranges", Dims: []ArrayDim{{Kind: DimVariable, Refer: "n"}}},
		},
	}

	m, ok := s.MemberByName("n")
	assert.True(t, ok)
	assert.False(t, m.IsArray())

	m, ok = s.MemberByName("ranges")
	assert.True(t, ok)
	assert.True(t, m.IsArray())

	_, ok = s.MemberByName("missing")
	assert.False(t, ok)
}

func TestIsPrimitive(t *testing.T) {
	assert.True(t, IsPrimitive("int8_t"))
	assert.True(t, IsPrimitive("boolean"))
	assert.False(t, IsPrimitive("point3d_t"))
}
