// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcm

import "encoding/binary"

// Wire magic numbers and size limits, per spec.md 4.5/4.6/6.
const (
	magicShort    uint32 = 0x4c433032
	magicFragment uint32 = 0x4c433033

	maxChannelLen      = 63
	maxShortPayload    = 65499 // channel + NUL + payload
	maxFragmentChunk   = 65487
	maxFragments       = 65535
	fragmentHeaderSize = 20 // magic + seq + total_size + offset + frag_idx + frag_count
)

// encodeShortPacket builds a single-packet message: magic, sequence
// number, null-terminated channel, payload.
func encodeShortPacket(seq uint32, channel string, payload []byte) []byte {
	buf := make([]byte, 4+4+len(channel)+1+len(payload))
	binary.BigEndian.PutUint32(buf[0:4], magicShort)
	binary.BigEndian.PutUint32(buf[4:8], seq)
	n := copy(buf[8:], channel)
	buf[8+n] = 0
	copy(buf[8+n+1:], payload)
	return buf
}

// fragmentBudget returns the payload bytes available in fragment index
// idx of a message whose channel is channel, per spec.md 4.5: "The
// fragment payload budget is 65487 bytes minus (fragment 0 only) the
// channel length + 1."
func fragmentBudget(channel string, idx int) int {
	if idx == 0 {
		return maxFragmentChunk - len(channel) - 1
	}
	return maxFragmentChunk
}

// countFragments returns the number of fragments needed to carry a
// payload of size total on channel, without allocating any of them.
func countFragments(channel string, total int) int {
	offset := 0
	idx := 0
	for offset < total || idx == 0 {
		offset += fragmentBudget(channel, idx)
		idx++
		if offset >= total {
			break
		}
	}
	return idx
}

// buildFragments splits payload into the fragment packets required to
// deliver it under one sequence number, per spec.md 4.5.
func buildFragments(seq uint32, channel string, payload []byte) ([][]byte, error) {
	total := len(payload)
	numFragments := countFragments(channel, total)
	if numFragments > maxFragments {
		return nil, &MessageTooLargeError{Size: total, NumFragments: numFragments}
	}

	out := make([][]byte, 0, numFragments)
	offset := 0
	for i := 0; i < numFragments; i++ {
		budget := fragmentBudget(channel, i)
		chunkLen := budget
		if total-offset < chunkLen {
			chunkLen = total - offset
		}
		headerLen := fragmentHeaderSize
		if i == 0 {
			headerLen += len(channel) + 1
		}
		pkt := make([]byte, headerLen+chunkLen)
		binary.BigEndian.PutUint32(pkt[0:4], magicFragment)
		binary.BigEndian.PutUint32(pkt[4:8], seq)
		binary.BigEndian.PutUint32(pkt[8:12], uint32(total))
		binary.BigEndian.PutUint32(pkt[12:16], uint32(offset))
		binary.BigEndian.PutUint16(pkt[16:18], uint16(i))
		binary.BigEndian.PutUint16(pkt[18:20], uint16(numFragments))
		body := pkt[fragmentHeaderSize:]
		if i == 0 {
			n := copy(body, channel)
			body[n] = 0
			copy(body[n+1:], payload[offset:offset+chunkLen])
		} else {
			copy(body, payload[offset:offset+chunkLen])
		}
		out = append(out, pkt)
		offset += chunkLen
	}
	return out, nil
}
