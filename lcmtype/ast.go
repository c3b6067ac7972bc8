// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lcmtype holds the abstract syntax tree produced by the lcmgen
// parser: files, structs, members, constants and type references. The
// fingerprint calculator and the Go emitter both walk this tree; nothing in
// this package performs I/O or depends on the tokenizer.
package lcmtype

// Primitive is the set of built-in LCM scalar types. Every other type name
// is a reference to a user-defined struct.
type Primitive string

// The nine LCM primitive types, exactly as enumerated in the IDL grammar.
const (
	Int8    Primitive = "int8_t"
	Int16   Primitive = "int16_t"
	Int32   Primitive = "int32_t"
	Int64   Primitive = "int64_t"
	Byte    Primitive = "byte"
	Float   Primitive = "float"
	Double  Primitive = "double"
	String  Primitive = "string"
	Boolean Primitive = "boolean"
)

// primitiveSet is used for O(1) membership tests by IsPrimitive.
var primitiveSet = map[Primitive]bool{
	Int8: true, Int16: true, Int32: true, Int64: true, Byte: true,
	Float: true, Double: true, String: true, Boolean: true,
}

// IsPrimitive reports whether name names one of the nine built-in types.
func IsPrimitive(name string) bool {
	return primitiveSet[Primitive(name)]
}

// TypeRef is a reference to a member's or constant's type: either one of
// the nine primitives, or a dotted reference to a user-defined struct.
type TypeRef struct {
	FullName  string // dotted name, e.g. "sensors.point3d_t"; an unqualified user type is prefixed with the enclosing package
	ShortName string // the final path component, e.g. "point3d_t"
	Package   string // package portion, empty for primitives; an unqualified user type takes the enclosing package
	Primitive bool   // true iff FullName names one of the nine built-ins
}

// DimKind distinguishes fixed-size array dimensions from ones whose size is
// carried by another member at runtime.
type DimKind int

const (
	// DimConst is a dimension whose size is known at generation time,
	// either a literal integer or a previously declared integer constant.
	DimConst DimKind = iota
	// DimVariable is a dimension sized by the current value of an
	// earlier integer member of the same struct.
	DimVariable
)

// ArrayDim is one dimension of a (possibly multi-dimensional) array member.
type ArrayDim struct {
	Kind      DimKind
	Expr      string // the original size expression text: digits, identifier, or symbolic constant
	Size      int    // resolved size for DimConst; meaningless for DimVariable
	Refer     string // for DimVariable, the name of the member carrying the count
	Symbolic  bool   // true for a DimConst identifier matching neither a const nor a member (spec.md 9's open question)
}

// Member is one field of a struct.
type Member struct {
	Type TypeRef
	Name string
	Dims []ArrayDim // empty for scalar members
	Doc  string
}

// IsArray reports whether the member declares at least one dimension.
func (m *Member) IsArray() bool { return len(m.Dims) > 0 }

// ConstLiteral is the typed value of a struct constant, parsed from the IDL
// text and used by the emitter to produce a typed literal. The fingerprint
// calculator does not consult constant values — only member shapes feed
// the fingerprint, per the base hash recipe.
type ConstLiteral struct {
	Type  Primitive // restricted to the integer/float primitives in practice
	Text  string    // original literal text, e.g. "0x7fffffff" or "3.14"
	Int   int64     // parsed integer value, valid when Type is an integer type
	Float float64   // parsed float value, valid when Type is float/double
}

// Constant is a `const` declaration inside a struct.
type Constant struct {
	Name    string
	Literal ConstLiteral
	Doc     string
}

// Struct is one `struct` declaration: an ordered list of constants followed
// (in source position, though lcmtype keeps them in two separate ordered
// lists) by an ordered list of members.
type Struct struct {
	Package   string
	ShortName string // e.g. "point3d_t"
	Members   []Member
	Constants []Constant
	Doc       string
}

// FullName returns the struct's dotted package-qualified name, or just its
// short name if it has no package.
func (s *Struct) FullName() string {
	if s.Package == "" {
		return s.ShortName
	}
	return s.Package + "." + s.ShortName
}

// MemberByName returns the member with the given name and true, or the
// zero Member and false if no such member exists. Used to resolve variable
// array dimensions; the referenced member's type is not checked.
func (s *Struct) MemberByName(name string) (Member, bool) {
	for _, m := range s.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// ConstantByName returns the constant with the given name and true, or the
// zero Constant and false.
func (s *Struct) ConstantByName(name string) (Constant, bool) {
	for _, c := range s.Constants {
		if c.Name == name {
			return c, true
		}
	}
	return Constant{}, false
}

// File is the parse result of one IDL source file: an optional package
// name applying to every struct that does not otherwise specify one, plus
// the structs declared in source order.
type File struct {
	Path    string
	Package string
	Structs []Struct
	Doc     string
}
