// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcmgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexBasicStruct(t *testing.T) {
	src := `package sensors;
struct point3d_t {
    double x;
    double y;
    double z;
}`
	toks, err := NewLexer(src).Tokenize()
	require.NoError(t, err)

	assert.Equal(t, []Kind{
		KindPackage, KindIdent, KindSemi,
		KindStruct, KindIdent, KindLBrace,
		KindIdent, KindIdent, KindSemi,
		KindIdent, KindIdent, KindSemi,
		KindIdent, KindIdent, KindSemi,
		KindRBrace, KindEOF,
	}, kinds(toks))
}

func TestLexNumericLiterals(t *testing.T) {
	src := `const int32_t A = -5, B = 0x7fffffff; const double C = 3.14, D = -2.5e3;`
	toks, err := NewLexer(src).Tokenize()
	require.NoError(t, err)

	var numbers []Token
	for _, tok := range toks {
		if tok.Kind == KindInt || tok.Kind == KindHex || tok.Kind == KindFloat {
			numbers = append(numbers, tok)
		}
	}
	require.Len(t, numbers, 4)
	assert.Equal(t, KindInt, numbers[0].Kind)
	assert.Equal(t, "-5", numbers[0].Text)
	assert.Equal(t, KindHex, numbers[1].Kind)
	assert.Equal(t, "0x7fffffff", numbers[1].Text)
	assert.Equal(t, KindFloat, numbers[2].Kind)
	assert.Equal(t, "3.14", numbers[2].Text)
	assert.Equal(t, KindFloat, numbers[3].Kind)
	assert.Equal(t, "-2.5e3", numbers[3].Text)
}

func TestLexDocCommentAttaches(t *testing.T) {
	src := `/// a scan from a 2D LIDAR
struct scan_t { int32_t n; }`
	toks, err := NewLexer(src).Tokenize()
	require.NoError(t, err)

	require.NotEmpty(t, toks)
	assert.Equal(t, KindStruct, toks[0].Kind)
	assert.Equal(t, "a scan from a 2D LIDAR", toks[0].Doc)
}

func TestLexSkipsComments(t *testing.T) {
	src := "// a line comment\nstruct /* inline */ foo_t {}"
	toks, err := NewLexer(src).Tokenize()
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindStruct, KindIdent, KindLBrace, KindRBrace, KindEOF}, kinds(toks))
}

func TestLexUnrecognizedCharacter(t *testing.T) {
	_, err := NewLexer("struct foo_t { int32_t @x; }").Tokenize()
	require.Error(t, err)

	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 1, lexErr.Line)
}
