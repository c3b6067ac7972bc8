// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcmgen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lcm-go/lcm/lcmtype"
)

func fileWithDim(dim lcmtype.ArrayDim) *lcmtype.File {
	return &lcmtype.File{
		Package: "sensors",
		Structs: []lcmtype.Struct{
			{
				Package:   "sensors",
				ShortName: "scan_t",
				Members: []lcmtype.Member{
					{
						Type: lcmtype.TypeRef{FullName: "double", Primitive: true},
						Name: "ranges",
						Dims: []lcmtype.ArrayDim{dim},
					},
				},
			},
		},
	}
}

func TestValidateStrictRejectsSymbolicDim(t *testing.T) {
	f := fileWithDim(lcmtype.ArrayDim{Kind: lcmtype.DimConst, Expr: "NUM_RANGES", Symbolic: true})

	err := ValidateStrict(f)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "sensors.scan_t", verr.Struct)
	require.Equal(t, "ranges", verr.Member)
}

func TestValidateStrictAllowsConstDim(t *testing.T) {
	f := fileWithDim(lcmtype.ArrayDim{Kind: lcmtype.DimConst, Expr: "16", Size: 16})
	require.NoError(t, ValidateStrict(f))
}

func TestValidateStrictAllowsVariableDim(t *testing.T) {
	f := fileWithDim(lcmtype.ArrayDim{Kind: lcmtype.DimVariable, Expr: "num_ranges", Refer: "num_ranges"})
	require.NoError(t, ValidateStrict(f))
}
