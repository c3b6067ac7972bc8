// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcmgen

import "github.com/lcm-go/lcm/lcmtype"

// Registry resolves a struct's full dotted name to its parsed definition,
// across every file handed to the generator in one invocation. The
// fingerprint calculator consults it to fold in the transitive hash of
// nested user-defined members.
type Registry struct {
	byFullName map[string]*lcmtype.Struct
}

// NewRegistry indexes every struct declared across files by its full
// dotted name.
func NewRegistry(files []*lcmtype.File) *Registry {
	reg := &Registry{byFullName: make(map[string]*lcmtype.Struct)}
	for _, f := range files {
		for i := range f.Structs {
			s := &f.Structs[i]
			reg.byFullName[s.FullName()] = s
		}
	}
	return reg
}

// Lookup returns the struct registered under fullName, if any.
func (r *Registry) Lookup(fullName string) (*lcmtype.Struct, bool) {
	s, ok := r.byFullName[fullName]
	return s, ok
}

// All returns every registered struct, in no particular order.
func (r *Registry) All() []*lcmtype.Struct {
	out := make([]*lcmtype.Struct, 0, len(r.byFullName))
	for _, s := range r.byFullName {
		out = append(out, s)
	}
	return out
}
