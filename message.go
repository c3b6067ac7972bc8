// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcm

import "github.com/lcm-go/lcm/buffer"

// Message is the capability every lcm-gen generated struct implements:
// a stable 64-bit structural fingerprint and the ability to encode itself
// onto a buffer. Decoding is a free function (Decode<Type>) per struct
// rather than a method, since Go has no static factory methods;
// PublishMessage only calls Encode.
type Message interface {
	LCMFingerprint() uint64
	Encode(buf *buffer.Buffer) error
}
