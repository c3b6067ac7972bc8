// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcmgen

import (
	"fmt"
	"unicode/utf16"

	"github.com/lcm-go/lcm/lcmtype"
)

// initialHash is the fixed seed every struct's base hash starts from,
// per spec.md 4.3.
const initialHash int64 = 0x12345678

// mixByte folds one byte-or-wider unit c into the accumulator v. The right
// shift is the signed, arithmetic shift of v (not a logical shift) and the
// addition wraps modulo 2^64; both are exactly what Go's int64 arithmetic
// does by default, so no masking is required here. Substituting an
// unsigned (logical) shift here would silently change every fingerprint
// whose accumulator has gone negative along the way, breaking interop with
// peer implementations — see the final rotation in Fingerprint for the one
// place an unsigned shift is in fact required.
func mixByte(v int64, c int64) int64 {
	return ((v << 8) ^ (v >> 55)) + c
}

// mixString folds a name or size-expression string into the accumulator:
// first its length as a code-unit count, then each UTF-16 code unit in
// order. Every string fed to this function in practice is an ASCII
// identifier, for which code units and bytes coincide; unicode/utf16
// handles the general case exactly as spec.md 4.3 requires for interop
// with peer implementations that hash Java-style UTF-16 strings.
func mixString(v int64, s string) int64 {
	units := utf16.Encode([]rune(s))
	v = mixByte(v, int64(len(units)))
	for _, u := range units {
		v = mixByte(v, int64(u))
	}
	return v
}

// baseHash computes a struct's hash contribution from its own members,
// independent of any nested user-defined type's own hash (those are folded
// in transitively by computeHash).
func baseHash(s *lcmtype.Struct) int64 {
	v := initialHash
	for _, m := range s.Members {
		v = mixString(v, m.Name)
		if m.Type.Primitive {
			v = mixString(v, m.Type.FullName)
		}
		v = mixByte(v, int64(len(m.Dims)))
		for _, d := range m.Dims {
			mode := int64(0)
			if d.Kind == lcmtype.DimVariable {
				mode = 1
			}
			v = mixByte(v, mode)
			v = mixString(v, d.Expr)
		}
	}
	return v
}

// computeHash returns a struct's fully-mixed hash: its own base hash plus
// the hash of every distinct user-defined type it transitively contains,
// each counted once. visiting guards against a cyclic type graph (a struct
// that contains itself, directly or through other structs), which the
// parser accepts and which is reported here as an error.
func computeHash(s *lcmtype.Struct, reg *Registry, visiting map[string]bool) (uint64, error) {
	key := s.FullName()
	if visiting[key] {
		return 0, fmt.Errorf("lcmgen: cyclic type reference involving %s", key)
	}
	visiting[key] = true
	defer delete(visiting, key)

	total := uint64(baseHash(s))
	seen := make(map[string]bool)
	for _, m := range s.Members {
		if m.Type.Primitive || seen[m.Type.FullName] {
			continue
		}
		seen[m.Type.FullName] = true

		dep, ok := reg.Lookup(m.Type.FullName)
		if !ok {
			return 0, fmt.Errorf("lcmgen: %s references undefined type %s", key, m.Type.FullName)
		}
		depHash, err := computeHash(dep, reg, visiting)
		if err != nil {
			return 0, err
		}
		total += depHash
	}
	return total, nil
}

// Fingerprint computes the 64-bit value spec.md 4.3 and 4.4 say every
// generated struct embeds at the head of its wire form: the struct's fully
// mixed hash, rotated left by one bit using an unsigned (logical) shift.
// Using a signed shift here, unlike in mixByte, would disagree with every
// peer implementation whenever the top bit of the mixed hash is set.
func Fingerprint(s *lcmtype.Struct, reg *Registry) (uint64, error) {
	h, err := computeHash(s, reg, make(map[string]bool))
	if err != nil {
		return 0, err
	}
	return (h << 1) | (h >> 63), nil
}
