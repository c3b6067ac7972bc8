// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package buffer implements the growing-position byte buffer that every
// generated LCM message uses to encode and decode its fields: a mutable
// byte slice with a cursor and big-endian typed accessors for the LCM
// primitive set (8/16/32/64-bit integers, 32/64-bit floats, raw bytes,
// length-prefixed strings and single-byte booleans).
package buffer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrShortBuffer is the sentinel wrapped by every read that would run past
// the filled region of the buffer.
var ErrShortBuffer = errors.New("buffer: short buffer")

// DecodeError reports a failed read: a read past the filled region, an
// invalid length prefix, or a malformed payload encountered while decoding
// a generated message.
type DecodeError struct {
	Op  string // the accessor that failed, e.g. "ReadInt32"
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("buffer: decode: %s: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// FingerprintMismatchError reports that a decoded message's leading
// fingerprint did not match the fingerprint compiled into the decoder,
// per spec.md 7's FingerprintMismatch error kind.
type FingerprintMismatchError struct {
	Expected uint64
	Got      uint64
}

func (e *FingerprintMismatchError) Error() string {
	return fmt.Sprintf("buffer: fingerprint mismatch: expected %#x, got %#x", e.Expected, e.Got)
}

// Buffer is a growing byte buffer with a read/write cursor, used by
// generated Encode/Decode methods. The zero value is not usable; construct
// one with New or Wrap.
type Buffer struct {
	data []byte
	pos  int
}

// New returns a Buffer ready for writing, pre-allocated to hint bytes of
// capacity. The cursor starts at zero.
func New(hint int) *Buffer {
	if hint < 0 {
		hint = 0
	}
	return &Buffer{data: make([]byte, 0, hint)}
}

// Wrap returns a Buffer reading from an existing byte slice. Writes to a
// wrapped Buffer grow and reallocate the slice as needed; the original
// slice is left untouched unless it has spare capacity.
func Wrap(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Bytes returns the filled portion of the buffer, from zero to the current
// write high-water mark. It does not depend on the cursor position.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the number of filled bytes in the buffer.
func (b *Buffer) Len() int { return len(b.data) }

// Pos returns the current cursor position.
func (b *Buffer) Pos() int { return b.pos }

// Remaining returns the number of unread bytes between the cursor and the
// end of the filled region.
func (b *Buffer) Remaining() int { return len(b.data) - b.pos }

// Reset rewinds the cursor to the start without discarding the underlying
// storage.
func (b *Buffer) Reset() { b.pos = 0 }

func (b *Buffer) grow(n int) []byte {
	start := len(b.data)
	if cap(b.data)-start < n {
		next := make([]byte, start, (start+n)*2+16)
		copy(next, b.data)
		b.data = next
	}
	b.data = b.data[:start+n]
	return b.data[start : start+n]
}

func (b *Buffer) need(op string, n int) ([]byte, error) {
	if b.pos+n > len(b.data) {
		return nil, &DecodeError{Op: op, Err: fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrShortBuffer, n, b.pos, len(b.data))}
	}
	chunk := b.data[b.pos : b.pos+n]
	b.pos += n
	return chunk, nil
}

// WriteInt8 writes a signed 8-bit integer and advances the cursor.
func (b *Buffer) WriteInt8(v int8) {
	dst := b.grow(1)
	dst[0] = byte(v)
	b.pos++
}

// ReadInt8 reads a signed 8-bit integer and advances the cursor.
func (b *Buffer) ReadInt8() (int8, error) {
	chunk, err := b.need("ReadInt8", 1)
	if err != nil {
		return 0, err
	}
	return int8(chunk[0]), nil
}

// WriteByte writes a single unsigned byte and advances the cursor. It
// satisfies io.ByteWriter.
func (b *Buffer) WriteByte(v byte) error {
	dst := b.grow(1)
	dst[0] = v
	b.pos++
	return nil
}

// ReadByteValue reads a single unsigned byte and advances the cursor.
func (b *Buffer) ReadByteValue() (byte, error) {
	chunk, err := b.need("ReadByteValue", 1)
	if err != nil {
		return 0, err
	}
	return chunk[0], nil
}

// WriteBoolean writes a single 0/1 byte per spec's boolean wire form.
func (b *Buffer) WriteBoolean(v bool) {
	if v {
		b.WriteByte(1)
	} else {
		b.WriteByte(0)
	}
}

// ReadBoolean reads a single 0/1 byte as a boolean.
func (b *Buffer) ReadBoolean() (bool, error) {
	v, err := b.ReadByteValue()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// WriteInt16 writes a big-endian signed 16-bit integer.
func (b *Buffer) WriteInt16(v int16) {
	dst := b.grow(2)
	binary.BigEndian.PutUint16(dst, uint16(v))
	b.pos += 2
}

// ReadInt16 reads a big-endian signed 16-bit integer.
func (b *Buffer) ReadInt16() (int16, error) {
	chunk, err := b.need("ReadInt16", 2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(chunk)), nil
}

// WriteInt32 writes a big-endian signed 32-bit integer.
func (b *Buffer) WriteInt32(v int32) {
	dst := b.grow(4)
	binary.BigEndian.PutUint32(dst, uint32(v))
	b.pos += 4
}

// ReadInt32 reads a big-endian signed 32-bit integer.
func (b *Buffer) ReadInt32() (int32, error) {
	chunk, err := b.need("ReadInt32", 4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(chunk)), nil
}

// WriteUint32 writes a big-endian unsigned 32-bit integer, used for string
// length prefixes.
func (b *Buffer) WriteUint32(v uint32) {
	dst := b.grow(4)
	binary.BigEndian.PutUint32(dst, v)
	b.pos += 4
}

// ReadUint32 reads a big-endian unsigned 32-bit integer.
func (b *Buffer) ReadUint32() (uint32, error) {
	chunk, err := b.need("ReadUint32", 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(chunk), nil
}

// WriteInt64 writes a big-endian signed 64-bit integer. The LCM
// fingerprint is written with this accessor.
func (b *Buffer) WriteInt64(v int64) {
	dst := b.grow(8)
	binary.BigEndian.PutUint64(dst, uint64(v))
	b.pos += 8
}

// ReadInt64 reads a big-endian signed 64-bit integer.
func (b *Buffer) ReadInt64() (int64, error) {
	chunk, err := b.need("ReadInt64", 8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(chunk)), nil
}

// WriteFloat32 writes a big-endian IEEE-754 single-precision float.
func (b *Buffer) WriteFloat32(v float32) {
	b.WriteInt32(int32(math.Float32bits(v)))
}

// ReadFloat32 reads a big-endian IEEE-754 single-precision float.
func (b *Buffer) ReadFloat32() (float32, error) {
	v, err := b.ReadInt32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(v)), nil
}

// WriteFloat64 writes a big-endian IEEE-754 double-precision float.
func (b *Buffer) WriteFloat64(v float64) {
	b.WriteInt64(int64(math.Float64bits(v)))
}

// ReadFloat64 reads a big-endian IEEE-754 double-precision float.
func (b *Buffer) ReadFloat64() (float64, error) {
	v, err := b.ReadInt64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(v)), nil
}

// WriteBytes writes a raw, unprefixed run of bytes.
func (b *Buffer) WriteBytes(v []byte) {
	dst := b.grow(len(v))
	copy(dst, v)
	b.pos += len(v)
}

// ReadBytes reads n raw, unprefixed bytes.
func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	chunk, err := b.need("ReadBytes", n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, chunk)
	return out, nil
}

// WriteString writes an LCM string: a 32-bit big-endian length (the UTF-8
// byte count plus one for a trailing NUL), the UTF-8 bytes, then a NUL
// byte.
func (b *Buffer) WriteString(s string) {
	raw := []byte(s)
	b.WriteUint32(uint32(len(raw) + 1))
	b.WriteBytes(raw)
	b.WriteByte(0)
}

// ReadString reads an LCM string per the wire form described in WriteString.
func (b *Buffer) ReadString() (string, error) {
	n, err := b.ReadUint32()
	if err != nil {
		return "", &DecodeError{Op: "ReadString", Err: err}
	}
	if n == 0 {
		return "", &DecodeError{Op: "ReadString", Err: fmt.Errorf("invalid string length prefix 0")}
	}
	raw, err := b.ReadBytes(int(n) - 1)
	if err != nil {
		return "", &DecodeError{Op: "ReadString", Err: err}
	}
	if _, err := b.ReadByteValue(); err != nil {
		return "", &DecodeError{Op: "ReadString", Err: fmt.Errorf("missing terminating NUL: %w", err)}
	}
	return string(raw), nil
}
