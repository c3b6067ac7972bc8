// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcmgen

import "fmt"

// IOError reports a failure reading an IDL source file or writing generated
// output, as distinct from a LexError or ParseError against source text
// that was read successfully.
type IOError struct {
	Path string
	Op   string // "read" or "write"
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("lcmgen: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
