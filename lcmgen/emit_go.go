// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcmgen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lcm-go/lcm/lcmtype"
)

// structEmitter renders one struct's generated Go source. It is
// constructed fresh per struct by EmitStruct.
type structEmitter struct {
	s        *lcmtype.Struct
	reg      *Registry
	typeName string // exported Go type name, e.g. "Point3dT"
	imports  map[string]bool
}

// EmitStruct renders the Go source file for one IDL struct: its type
// declaration, fingerprint constant, typed constants, constructor, and
// the Encode/Decode pair satisfying lcm.Message, per spec.md 4.4.
func EmitStruct(s *lcmtype.Struct, reg *Registry) (string, error) {
	e := &structEmitter{s: s, reg: reg, typeName: PascalCase(s.ShortName), imports: map[string]bool{}}

	fp, err := Fingerprint(s, reg)
	if err != nil {
		return "", fmt.Errorf("lcmgen: %s: %w", s.FullName(), err)
	}

	var body strings.Builder
	e.emitType(&body)
	e.emitConstants(&body, fp)
	e.emitConstructor(&body)
	e.emitEncode(&body)
	if err := e.emitDecode(&body); err != nil {
		return "", err
	}

	var out strings.Builder
	out.WriteString("// Code generated by lcm-gen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&out, "package %s\n\n", GoPackageName(s.Package))

	imports := e.sortedImports()
	if len(imports) > 0 {
		out.WriteString("import (\n")
		for _, imp := range imports {
			fmt.Fprintf(&out, "\t%q\n", imp)
		}
		out.WriteString(")\n\n")
	}

	out.WriteString(body.String())
	return out.String(), nil
}

func (e *structEmitter) sortedImports() []string {
	e.imports["github.com/lcm-go/lcm/buffer"] = true
	out := make([]string, 0, len(e.imports))
	for imp := range e.imports {
		out = append(out, imp)
	}
	sort.Strings(out)
	return out
}

func (e *structEmitter) foreignImport(m *lcmtype.Member) {
	if !m.Type.Primitive && m.Type.Package != e.s.Package {
		e.imports[importPathFor(m.Type.Package)] = true
	}
}

// importPathFor maps an IDL dotted package name to the Go import path of
// its generated package, rooted under the module's gen tree.
func importPathFor(pkg string) string {
	return "github.com/lcm-go/lcm/gen/" + GoPackagePath(pkg)
}

func (e *structEmitter) emitType(sb *strings.Builder) {
	if e.s.Doc != "" {
		writeDocComment(sb, e.s.Doc)
	}
	fmt.Fprintf(sb, "type %s struct {\n", e.typeName)
	for _, m := range e.s.Members {
		e.foreignImport(&m)
		if m.Doc != "" {
			fmt.Fprintf(sb, "\t// %s\n", m.Doc)
		}
		fmt.Fprintf(sb, "\t%s %s\n", PascalCase(m.Name), memberFieldGoType(&m, e.s.Package))
	}
	sb.WriteString("}\n\n")
}

func writeDocComment(sb *strings.Builder, doc string) {
	for _, line := range strings.Split(doc, "\n") {
		fmt.Fprintf(sb, "// %s\n", line)
	}
}

func (e *structEmitter) emitConstants(sb *strings.Builder, fp uint64) {
	fmt.Fprintf(sb, "// %sFingerprint is the 64-bit structural fingerprint embedded at the\n// head of every encoded %s.\n", e.typeName, e.typeName)
	fmt.Fprintf(sb, "const %sFingerprint uint64 = %#x\n\n", e.typeName, fp)

	if len(e.s.Constants) == 0 {
		return
	}
	sb.WriteString("const (\n")
	for _, c := range e.s.Constants {
		if c.Doc != "" {
			fmt.Fprintf(sb, "\t// %s\n", c.Doc)
		}
		fmt.Fprintf(sb, "\t%s%s %s = %s\n", e.typeName, PascalCase(c.Name), scalarGoType(c.Literal.Type), c.Literal.Text)
	}
	sb.WriteString(")\n\n")
}

func (e *structEmitter) emitConstructor(sb *strings.Builder) {
	params := make([]string, 0, len(e.s.Members))
	assigns := make([]string, 0, len(e.s.Members))
	for _, m := range e.s.Members {
		goName := PascalCase(m.Name)
		goType := memberFieldGoType(&m, e.s.Package)
		params = append(params, fmt.Sprintf("%s %s", lowerFirst(goName), goType))
		assigns = append(assigns, fmt.Sprintf("%s: %s", goName, lowerFirst(goName)))
	}
	fmt.Fprintf(sb, "// New%s constructs a %s requiring every member to be supplied by the caller.\n", e.typeName, e.typeName)
	fmt.Fprintf(sb, "func New%s(%s) *%s {\n", e.typeName, strings.Join(params, ", "), e.typeName)
	fmt.Fprintf(sb, "\treturn &%s{%s}\n", e.typeName, strings.Join(assigns, ", "))
	sb.WriteString("}\n\n")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func (e *structEmitter) emitEncode(sb *strings.Builder) {
	fmt.Fprintf(sb, "// LCMFingerprint returns %s's structural fingerprint.\n", e.typeName)
	fmt.Fprintf(sb, "func (s *%s) LCMFingerprint() uint64 { return %sFingerprint }\n\n", e.typeName, e.typeName)

	fmt.Fprintf(sb, "// Encode writes %s to buf: its fingerprint, then each member in\n// declaration order.\n", e.typeName)
	fmt.Fprintf(sb, "func (s *%s) Encode(buf *buffer.Buffer) error {\n", e.typeName)
	sb.WriteString("\tbuf.WriteInt64(int64(s.LCMFingerprint()))\n")
	for _, m := range e.s.Members {
		e.emitEncodeMember(sb, &m, 1)
	}
	sb.WriteString("\treturn nil\n}\n\n")
}

func (e *structEmitter) emitEncodeMember(sb *strings.Builder, m *lcmtype.Member, indent int) {
	e.emitEncodeArray(sb, m, 0, "s."+PascalCase(m.Name), indent)
}

func (e *structEmitter) emitEncodeArray(sb *strings.Builder, m *lcmtype.Member, dimIdx int, expr string, indent int) {
	if dimIdx == len(m.Dims) {
		e.emitEncodeScalar(sb, m.Type, expr, indent)
		return
	}
	ind := strings.Repeat("\t", indent)
	loopVar := fmt.Sprintf("i%d", dimIdx)
	fmt.Fprintf(sb, "%sfor %s := range %s {\n", ind, loopVar, expr)
	e.emitEncodeArray(sb, m, dimIdx+1, fmt.Sprintf("%s[%s]", expr, loopVar), indent+1)
	fmt.Fprintf(sb, "%s}\n", ind)
}

func (e *structEmitter) emitEncodeScalar(sb *strings.Builder, t lcmtype.TypeRef, expr string, indent int) {
	ind := strings.Repeat("\t", indent)
	if t.Primitive {
		switch lcmtype.Primitive(t.FullName) {
		case lcmtype.Int8:
			fmt.Fprintf(sb, "%sbuf.WriteInt8(%s)\n", ind, expr)
		case lcmtype.Int16:
			fmt.Fprintf(sb, "%sbuf.WriteInt16(%s)\n", ind, expr)
		case lcmtype.Int32:
			fmt.Fprintf(sb, "%sbuf.WriteInt32(%s)\n", ind, expr)
		case lcmtype.Int64:
			fmt.Fprintf(sb, "%sbuf.WriteInt64(%s)\n", ind, expr)
		case lcmtype.Byte:
			fmt.Fprintf(sb, "%s_ = buf.WriteByte(%s)\n", ind, expr)
		case lcmtype.Float:
			fmt.Fprintf(sb, "%sbuf.WriteFloat32(%s)\n", ind, expr)
		case lcmtype.Double:
			fmt.Fprintf(sb, "%sbuf.WriteFloat64(%s)\n", ind, expr)
		case lcmtype.String:
			fmt.Fprintf(sb, "%sbuf.WriteString(%s)\n", ind, expr)
		case lcmtype.Boolean:
			fmt.Fprintf(sb, "%sbuf.WriteBoolean(%s)\n", ind, expr)
		}
		return
	}
	fmt.Fprintf(sb, "%sif err := %s.Encode(buf); err != nil {\n%s\treturn err\n%s}\n", ind, expr, ind, ind)
}

func (e *structEmitter) emitDecode(sb *strings.Builder) error {
	fmt.Fprintf(sb, "// Decode%s reads a %s from buf: its fingerprint (failing on mismatch),\n// then each member in declaration order.\n", e.typeName, e.typeName)
	fmt.Fprintf(sb, "func Decode%s(buf *buffer.Buffer) (*%s, error) {\n", e.typeName, e.typeName)
	sb.WriteString("\tfp, err := buf.ReadInt64()\n\tif err != nil {\n\t\treturn nil, err\n\t}\n")
	fmt.Fprintf(sb, "\tif uint64(fp) != %sFingerprint {\n\t\treturn nil, &buffer.FingerprintMismatchError{Expected: %sFingerprint, Got: uint64(fp)}\n\t}\n", e.typeName, e.typeName)
	fmt.Fprintf(sb, "\ts := &%s{}\n", e.typeName)
	for i := range e.s.Members {
		m := &e.s.Members[i]
		e.emitDecodeMember(sb, m, 1)
	}
	sb.WriteString("\treturn s, nil\n}\n")
	return nil
}

func (e *structEmitter) emitDecodeMember(sb *strings.Builder, m *lcmtype.Member, indent int) {
	e.emitDecodeArray(sb, m, 0, "s."+PascalCase(m.Name), indent)
}

func (e *structEmitter) emitDecodeArray(sb *strings.Builder, m *lcmtype.Member, dimIdx int, expr string, indent int) {
	if dimIdx == len(m.Dims) {
		e.emitDecodeScalar(sb, m.Type, expr, indent)
		return
	}
	ind := strings.Repeat("\t", indent)
	sizeExpr := e.sizeExprFor(m.Dims[dimIdx])
	sliceType := goTypeAtDepth(m, dimIdx, e.s.Package)
	fmt.Fprintf(sb, "%s%s = make(%s, %s)\n", ind, expr, sliceType, sizeExpr)
	loopVar := fmt.Sprintf("i%d", dimIdx)
	fmt.Fprintf(sb, "%sfor %s := range %s {\n", ind, loopVar, expr)
	e.emitDecodeArray(sb, m, dimIdx+1, fmt.Sprintf("%s[%s]", expr, loopVar), indent+1)
	fmt.Fprintf(sb, "%s}\n", ind)
}

func (e *structEmitter) sizeExprFor(d lcmtype.ArrayDim) string {
	if d.Kind == lcmtype.DimVariable {
		return "int(s." + PascalCase(d.Refer) + ")"
	}
	return strconv.Itoa(d.Size)
}

func (e *structEmitter) emitDecodeScalar(sb *strings.Builder, t lcmtype.TypeRef, expr string, indent int) {
	ind := strings.Repeat("\t", indent)
	if t.Primitive {
		readFn, cast := readFuncFor(t)
		fmt.Fprintf(sb, "%s{\n", ind)
		fmt.Fprintf(sb, "%s\tv, err := buf.%s()\n", ind, readFn)
		fmt.Fprintf(sb, "%s\tif err != nil {\n%s\t\treturn nil, err\n%s\t}\n", ind, ind, ind)
		if cast != "" {
			fmt.Fprintf(sb, "%s\t%s = %s(v)\n", ind, expr, cast)
		} else {
			fmt.Fprintf(sb, "%s\t%s = v\n", ind, expr)
		}
		fmt.Fprintf(sb, "%s}\n", ind)
		return
	}
	decodeFn := memberTypeRefDecodeFunc(t, e.s.Package)
	fmt.Fprintf(sb, "%s{\n", ind)
	fmt.Fprintf(sb, "%s\tv, err := %s(buf)\n", ind, decodeFn)
	fmt.Fprintf(sb, "%s\tif err != nil {\n%s\t\treturn nil, err\n%s\t}\n", ind, ind, ind)
	fmt.Fprintf(sb, "%s\t%s = *v\n", ind, expr)
	fmt.Fprintf(sb, "%s}\n", ind)
}

// readFuncFor returns the buffer.Buffer read method for a primitive, plus
// a Go conversion to apply to its result. The conversion is empty for every
// primitive, since each read method already returns the field's Go type.
func readFuncFor(t lcmtype.TypeRef) (readFn, cast string) {
	switch lcmtype.Primitive(t.FullName) {
	case lcmtype.Int8:
		return "ReadInt8", ""
	case lcmtype.Int16:
		return "ReadInt16", ""
	case lcmtype.Int32:
		return "ReadInt32", ""
	case lcmtype.Int64:
		return "ReadInt64", ""
	case lcmtype.Byte:
		return "ReadByteValue", ""
	case lcmtype.Float:
		return "ReadFloat32", ""
	case lcmtype.Double:
		return "ReadFloat64", ""
	case lcmtype.String:
		return "ReadString", ""
	case lcmtype.Boolean:
		return "ReadBoolean", ""
	default:
		return "ReadInt8", ""
	}
}

// memberTypeRefGoType returns the exported Go type name for a user-defined
// TypeRef, qualified with its package alias when foreign to currentPkg.
func memberTypeRefGoType(t lcmtype.TypeRef, currentPkg string) string {
	name := PascalCase(t.ShortName)
	if t.Package == currentPkg {
		return name
	}
	return GoPackageName(t.Package) + "." + name
}

// memberTypeRefDecodeFunc returns the call target for a user-defined
// TypeRef's generated Decode function, qualified with its package alias
// when foreign to currentPkg (the alias belongs on the function, not
// spliced into the middle of "Decode<Name>").
func memberTypeRefDecodeFunc(t lcmtype.TypeRef, currentPkg string) string {
	fn := "Decode" + PascalCase(t.ShortName)
	if t.Package == currentPkg {
		return fn
	}
	return GoPackageName(t.Package) + "." + fn
}

// goTypeAtDepth returns the Go type of the slice produced by make() at
// dimension index fromDim: the member's element type nested in
// len(Dims)-fromDim levels of "[]".
func goTypeAtDepth(m *lcmtype.Member, fromDim int, currentPkg string) string {
	t := memberGoType(m, currentPkg)
	for i := fromDim; i < len(m.Dims); i++ {
		t = "[]" + t
	}
	return t
}
