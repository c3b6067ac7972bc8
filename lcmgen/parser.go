// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcmgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lcm-go/lcm/lcmtype"
)

// ParseError reports an unexpected token or grammar violation at a source
// position.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// Parser is a recursive-descent parser over a pre-tokenized IDL source,
// producing an lcmtype.File per the grammar in spec.md 4.2.
type Parser struct {
	toks []Token
	pos  int
	path string
}

// NewParser returns a Parser over toks. path is recorded on the resulting
// File for diagnostics and for deriving the generator's output path.
func NewParser(toks []Token, path string) *Parser {
	return &Parser{toks: toks, path: path}
}

// ParseFile parses source (tokenizing it first) into an lcmtype.File.
func ParseFile(source, path string) (*lcmtype.File, error) {
	toks, err := NewLexer(source).Tokenize()
	if err != nil {
		return nil, err
	}
	return NewParser(toks, path).Parse()
}

func (p *Parser) cur() Token  { return p.toks[p.pos] }
func (p *Parser) atEOF() bool { return p.cur().Kind == KindEOF }

func (p *Parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(kind Kind) (Token, error) {
	if p.cur().Kind != kind {
		return Token{}, &ParseError{
			Line:    p.cur().Line,
			Column:  p.cur().Column,
			Message: fmt.Sprintf("expected %s, got %s %q", kind, p.cur().Kind, p.cur().Text),
		}
	}
	return p.advance(), nil
}

// Parse runs the file production: an optional leading doc comment (carried
// on whichever token begins the file), an optional package clause, and
// zero or more struct declarations.
func (p *Parser) Parse() (*lcmtype.File, error) {
	file := &lcmtype.File{Path: p.path, Doc: p.cur().Doc}

	if p.cur().Kind == KindPackage {
		pkg, err := p.parsePackage()
		if err != nil {
			return nil, err
		}
		file.Package = pkg
	}

	for !p.atEOF() {
		s, err := p.parseStruct(file.Package)
		if err != nil {
			return nil, err
		}
		file.Structs = append(file.Structs, *s)
	}

	return file, nil
}

func (p *Parser) parsePackage() (string, error) {
	if _, err := p.expect(KindPackage); err != nil {
		return "", err
	}
	first, err := p.expect(KindIdent)
	if err != nil {
		return "", err
	}
	parts := []string{first.Text}
	for p.cur().Kind == KindDot {
		p.advance()
		ident, err := p.expect(KindIdent)
		if err != nil {
			return "", err
		}
		parts = append(parts, ident.Text)
	}
	if _, err := p.expect(KindSemi); err != nil {
		return "", err
	}
	return strings.Join(parts, "."), nil
}

func (p *Parser) parseStruct(enclosingPkg string) (*lcmtype.Struct, error) {
	structTok, err := p.expect(KindStruct)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(KindIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(KindLBrace); err != nil {
		return nil, err
	}

	s := &lcmtype.Struct{Package: enclosingPkg, ShortName: name.Text, Doc: structTok.Doc}

	for p.cur().Kind != KindRBrace {
		if p.atEOF() {
			return nil, &ParseError{Line: p.cur().Line, Column: p.cur().Column, Message: "unexpected end of file inside struct body"}
		}
		if p.cur().Kind == KindConst {
			consts, err := p.parseConst()
			if err != nil {
				return nil, err
			}
			s.Constants = append(s.Constants, consts...)
			continue
		}
		m, err := p.parseMember(s, enclosingPkg)
		if err != nil {
			return nil, err
		}
		s.Members = append(s.Members, *m)
	}

	if _, err := p.expect(KindRBrace); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Parser) parseConst() ([]lcmtype.Constant, error) {
	constTok, err := p.expect(KindConst)
	if err != nil {
		return nil, err
	}
	typeTok, err := p.expect(KindIdent)
	if err != nil {
		return nil, err
	}
	typ := lcmtype.Primitive(typeTok.Text)

	var consts []lcmtype.Constant
	for {
		nameTok, err := p.expect(KindIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(KindEquals); err != nil {
			return nil, err
		}
		lit, err := p.parseLiteral(typ)
		if err != nil {
			return nil, err
		}
		doc := constTok.Doc
		if len(consts) > 0 {
			doc = ""
		}
		consts = append(consts, lcmtype.Constant{Name: nameTok.Text, Literal: lit, Doc: doc})

		if p.cur().Kind == KindComma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(KindSemi); err != nil {
		return nil, err
	}
	return consts, nil
}

func (p *Parser) parseLiteral(typ lcmtype.Primitive) (lcmtype.ConstLiteral, error) {
	tok := p.cur()
	switch tok.Kind {
	case KindInt:
		p.advance()
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return lcmtype.ConstLiteral{}, &ParseError{Line: tok.Line, Column: tok.Column, Message: "malformed integer literal " + tok.Text}
		}
		return lcmtype.ConstLiteral{Type: typ, Text: tok.Text, Int: v, Float: float64(v)}, nil
	case KindHex:
		p.advance()
		v, err := strconv.ParseUint(tok.Text[2:], 16, 64)
		if err != nil {
			return lcmtype.ConstLiteral{}, &ParseError{Line: tok.Line, Column: tok.Column, Message: "malformed hex literal " + tok.Text}
		}
		return lcmtype.ConstLiteral{Type: typ, Text: tok.Text, Int: int64(v), Float: float64(v)}, nil
	case KindFloat:
		p.advance()
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return lcmtype.ConstLiteral{}, &ParseError{Line: tok.Line, Column: tok.Column, Message: "malformed float literal " + tok.Text}
		}
		return lcmtype.ConstLiteral{Type: typ, Text: tok.Text, Float: v}, nil
	default:
		return lcmtype.ConstLiteral{}, &ParseError{Line: tok.Line, Column: tok.Column, Message: "expected literal, got " + tok.Kind.String()}
	}
}

func (p *Parser) parseMember(s *lcmtype.Struct, enclosingPkg string) (*lcmtype.Member, error) {
	typeTok, err := p.expect(KindIdent)
	if err != nil {
		return nil, err
	}
	parts := []string{typeTok.Text}
	for p.cur().Kind == KindDot {
		p.advance()
		ident, err := p.expect(KindIdent)
		if err != nil {
			return nil, err
		}
		parts = append(parts, ident.Text)
	}
	typeRef := buildTypeRef(parts, enclosingPkg)

	nameTok, err := p.expect(KindIdent)
	if err != nil {
		return nil, err
	}

	var dims []lcmtype.ArrayDim
	for p.cur().Kind == KindLBrack {
		p.advance()
		dim, err := p.parseArrayDim(s)
		if err != nil {
			return nil, err
		}
		dims = append(dims, dim)
		if _, err := p.expect(KindRBrack); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(KindSemi); err != nil {
		return nil, err
	}

	return &lcmtype.Member{Type: typeRef, Name: nameTok.Text, Dims: dims, Doc: typeTok.Doc}, nil
}

// parseArrayDim resolves one `[ int_literal | ident ]` dimension against
// the struct's members and constants parsed so far, per spec.md 4.2's
// array-dimension resolution rules.
func (p *Parser) parseArrayDim(s *lcmtype.Struct) (lcmtype.ArrayDim, error) {
	tok := p.cur()
	switch tok.Kind {
	case KindInt:
		p.advance()
		size, err := strconv.Atoi(tok.Text)
		if err != nil || size <= 0 {
			return lcmtype.ArrayDim{}, &ParseError{Line: tok.Line, Column: tok.Column, Message: "array dimension must be a positive integer, got " + tok.Text}
		}
		return lcmtype.ArrayDim{Kind: lcmtype.DimConst, Expr: tok.Text, Size: size}, nil
	case KindIdent:
		p.advance()
		if c, ok := s.ConstantByName(tok.Text); ok && isIntegerPrimitive(c.Literal.Type) {
			return lcmtype.ArrayDim{Kind: lcmtype.DimConst, Expr: tok.Text, Size: int(c.Literal.Int)}, nil
		}
		if _, ok := s.MemberByName(tok.Text); ok {
			return lcmtype.ArrayDim{Kind: lcmtype.DimVariable, Expr: tok.Text, Refer: tok.Text}, nil
		}
		// Symbolic constant: matches neither a prior const nor a prior
		// member. Preserved for fingerprint parity per spec.md 9's open
		// question; generation-time validation may reject it later.
		return lcmtype.ArrayDim{Kind: lcmtype.DimConst, Expr: tok.Text, Symbolic: true}, nil
	default:
		return lcmtype.ArrayDim{}, &ParseError{Line: tok.Line, Column: tok.Column, Message: "expected array dimension, got " + tok.Kind.String()}
	}
}

func isIntegerPrimitive(t lcmtype.Primitive) bool {
	switch t {
	case lcmtype.Int8, lcmtype.Int16, lcmtype.Int32, lcmtype.Int64, lcmtype.Byte:
		return true
	default:
		return false
	}
}

// buildTypeRef classifies a dotted name scanned for a member's type:
// primitive if it is exactly one of the nine built-ins, otherwise a
// user-defined reference that inherits the enclosing package when
// unqualified.
func buildTypeRef(parts []string, enclosingPkg string) lcmtype.TypeRef {
	full := strings.Join(parts, ".")
	if len(parts) == 1 && lcmtype.IsPrimitive(parts[0]) {
		return lcmtype.TypeRef{FullName: parts[0], ShortName: parts[0], Primitive: true}
	}
	if len(parts) == 1 {
		return lcmtype.TypeRef{
			FullName:  joinPkg(enclosingPkg, parts[0]),
			ShortName: parts[0],
			Package:   enclosingPkg,
		}
	}
	pkg := strings.Join(parts[:len(parts)-1], ".")
	short := parts[len(parts)-1]
	return lcmtype.TypeRef{FullName: full, ShortName: short, Package: pkg}
}

func joinPkg(pkg, short string) string {
	if pkg == "" {
		return short
	}
	return pkg + "." + short
}
