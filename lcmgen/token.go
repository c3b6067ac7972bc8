// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcmgen

import "fmt"

// Kind classifies a lexical token produced by the tokenizer.
type Kind int

const (
	KindEOF Kind = iota
	KindPackage
	KindStruct
	KindConst
	KindIdent
	KindInt     // decimal integer literal, may be signed
	KindHex     // 0x/0X-prefixed integer literal
	KindFloat   // floating point literal, may be signed
	KindSemi    // ;
	KindLBrace  // {
	KindRBrace  // }
	KindLBrack  // [
	KindRBrack  // ]
	KindComma   // ,
	KindEquals  // =
	KindDot     // .
)

func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "EOF"
	case KindPackage:
		return "package"
	case KindStruct:
		return "struct"
	case KindConst:
		return "const"
	case KindIdent:
		return "identifier"
	case KindInt:
		return "integer literal"
	case KindHex:
		return "hex literal"
	case KindFloat:
		return "float literal"
	case KindSemi:
		return "';'"
	case KindLBrace:
		return "'{'"
	case KindRBrace:
		return "'}'"
	case KindLBrack:
		return "'['"
	case KindRBrack:
		return "']'"
	case KindComma:
		return "','"
	case KindEquals:
		return "'='"
	case KindDot:
		return "'.'"
	default:
		return "unknown"
	}
}

// keywords maps the reserved identifiers recognized after the identifier
// scan completes, per spec.md 4.1 "keyword recognition is on the
// identifier post-scan".
var keywords = map[string]Kind{
	"package": KindPackage,
	"struct":  KindStruct,
	"const":   KindConst,
}

// Token is one lexical unit plus its source position and, for doc comments
// accumulated ahead of it, the attached documentation text.
type Token struct {
	Kind   Kind
	Text   string
	Doc    string
	Line   int
	Column int
}

// LexError reports an unrecognized character or malformed literal at a
// specific source position.
type LexError struct {
	Line    int
	Column  int
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s", e.Line, e.Column, e.Message)
}
