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

// TestFingerprintPointT exercises spec.md 8 scenario 1: package p;
// struct point_t { double x; double y; double z; } must fingerprint to
// the literal value every peer implementation agrees on.
func TestFingerprintPointT(t *testing.T) {
	src := `package p;
struct point_t {
    double x;
    double y;
    double z;
}`
	file, err := ParseFile(src, "point.lcm")
	require.NoError(t, err)

	reg := NewRegistry([]*lcmtype.File{file})
	fp, err := Fingerprint(&file.Structs[0], reg)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xae7e5fba5eeca11e), fp)
}

// TestRotationUsesUnsignedShift exercises spec.md 8 scenario 6: a base
// hash with the top bit set must rotate through an unsigned shift, not a
// signed arithmetic one.
func TestRotationUsesUnsignedShift(t *testing.T) {
	h := uint64(0x8000000000000000)
	fp := (h << 1) | (h >> 63)
	assert.Equal(t, uint64(0x0000000000000001), fp)
}

func TestFingerprintStableAcrossRecompute(t *testing.T) {
	src := `struct scan_t {
    int32_t n;
    double ranges[n];
    string name;
}`
	file, err := ParseFile(src, "scan.lcm")
	require.NoError(t, err)
	reg := NewRegistry([]*lcmtype.File{file})

	fp1, err := Fingerprint(&file.Structs[0], reg)
	require.NoError(t, err)
	fp2, err := Fingerprint(&file.Structs[0], reg)
	require.NoError(t, err)
	assert.Equal(t, fp1, fp2)
}

func TestFingerprintChangesWithFieldOrder(t *testing.T) {
	a, err := ParseFile(`struct t_t { int32_t a; int32_t b; }`, "a.lcm")
	require.NoError(t, err)
	b, err := ParseFile(`struct t_t { int32_t b; int32_t a; }`, "b.lcm")
	require.NoError(t, err)

	regA := NewRegistry([]*lcmtype.File{a})
	regB := NewRegistry([]*lcmtype.File{b})

	fpA, err := Fingerprint(&a.Structs[0], regA)
	require.NoError(t, err)
	fpB, err := Fingerprint(&b.Structs[0], regB)
	require.NoError(t, err)
	assert.NotEqual(t, fpA, fpB)
}

func TestFingerprintFoldsNestedUserType(t *testing.T) {
	src := `package sensors;
struct point3d_t { double x; double y; double z; }
struct scan_t {
    point3d_t origin;
    int32_t n;
}`
	file, err := ParseFile(src, "scan.lcm")
	require.NoError(t, err)
	reg := NewRegistry([]*lcmtype.File{file})

	point := &file.Structs[0]
	scan := &file.Structs[1]

	pointFP, err := Fingerprint(point, reg)
	require.NoError(t, err)
	scanFP, err := Fingerprint(scan, reg)
	require.NoError(t, err)
	assert.NotEqual(t, pointFP, scanFP)

	// Changing the nested type changes the dependent struct's fingerprint.
	mutated := *point
	mutated.Members = append(mutated.Members, lcmtype.Member{
		Type: lcmtype.TypeRef{FullName: "int32_t", Primitive: true},
		Name: "extra",
	})
	mutatedReg := &Registry{byFullName: map[string]*lcmtype.Struct{
		point.FullName(): &mutated,
		scan.FullName():  scan,
	}}
	mutatedScanFP, err := Fingerprint(scan, mutatedReg)
	require.NoError(t, err)
	assert.NotEqual(t, scanFP, mutatedScanFP)
}

func TestFingerprintUnresolvedTypeFails(t *testing.T) {
	src := `struct scan_t {
    other.missing_t frame;
}`
	file, err := ParseFile(src, "scan.lcm")
	require.NoError(t, err)
	reg := NewRegistry([]*lcmtype.File{file})

	_, err = Fingerprint(&file.Structs[0], reg)
	require.Error(t, err)
}
