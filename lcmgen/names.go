// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcmgen

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lcm-go/lcm/lcmtype"
)

// titleCaser renders one underscore-delimited segment with a capitalized
// initial, e.g. "vector3f" -> "Vector3f". It replaces the hand-rolled
// to_pascal_case helper in the reference C emitter with the ecosystem's
// Unicode-aware title-casing.
var titleCaser = cases.Title(language.Und)

// PascalCase maps an IDL snake_case identifier to an exported Go
// identifier, e.g. "vector3f_t" -> "Vector3fT" (the trailing "_t" becomes
// "T" rather than being stripped, matching the C emitter's own worked
// example in its doc comment).
func PascalCase(name string) string {
	parts := strings.Split(name, "_")
	var sb strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		sb.WriteString(titleCaser.String(p))
	}
	if sb.Len() == 0 {
		return "X"
	}
	return sb.String()
}

// GoPackageName returns the Go package name for an IDL dotted package
// name: its final component, or "lcmtypes" for the unqualified (root)
// package.
func GoPackageName(pkg string) string {
	if pkg == "" {
		return "lcmtypes"
	}
	parts := strings.Split(pkg, ".")
	return parts[len(parts)-1]
}

// GoPackagePath returns the slash-separated directory path for an IDL
// dotted package name, rooted under the generator's output directory, per
// spec.md 4.4 "a directory path derived from the package (dots -> path
// separators)".
func GoPackagePath(pkg string) string {
	if pkg == "" {
		return GoPackageName("")
	}
	return strings.ReplaceAll(pkg, ".", "/")
}

// scalarGoType maps one of the nine LCM primitives to its Go
// representation.
func scalarGoType(t lcmtype.Primitive) string {
	switch t {
	case lcmtype.Int8:
		return "int8"
	case lcmtype.Int16:
		return "int16"
	case lcmtype.Int32:
		return "int32"
	case lcmtype.Int64:
		return "int64"
	case lcmtype.Byte:
		return "byte"
	case lcmtype.Float:
		return "float32"
	case lcmtype.Double:
		return "float64"
	case lcmtype.String:
		return "string"
	case lcmtype.Boolean:
		return "bool"
	default:
		return "interface{}"
	}
}

// memberGoType returns the member's scalar Go type, ignoring any array
// dimensions, qualified with a package alias when it is a user-defined
// type declared in a different IDL package than current.
func memberGoType(m *lcmtype.Member, currentPkg string) string {
	if m.Type.Primitive {
		return scalarGoType(lcmtype.Primitive(m.Type.FullName))
	}
	name := PascalCase(m.Type.ShortName)
	if m.Type.Package == currentPkg {
		return name
	}
	return GoPackageName(m.Type.Package) + "." + name
}

// memberFieldGoType returns the full, possibly array-nested, Go type for a
// struct field.
func memberFieldGoType(m *lcmtype.Member, currentPkg string) string {
	t := memberGoType(m, currentPkg)
	for range m.Dims {
		t = "[]" + t
	}
	return t
}
