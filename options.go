// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcm

import (
	"net"
	"time"
)

// Option configures some aspect of a Client (logger, receive buffer
// sizing, ...).
type Option func(c *Client)

// WithLogger sets a dedicated Logger for the client. The default is a
// fresh Logger at LogLevelError, writing to stderr.
func WithLogger(log *Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithLogLevel adjusts the level of the client's current logger. Options
// apply in order: placed before WithLogger it has no effect, since
// WithLogger replaces the logger outright; placed after WithLogger it
// sets the level of the supplied logger.
func WithLogLevel(level LogLevel) Option {
	return func(c *Client) {
		c.log.SetLevel(level)
	}
}

// WithReceiveBuffer sets the size of the channel buffering deliveries
// between the socket-read goroutine and the dispatch loop. The default is
// 64.
func WithReceiveBuffer(n int) Option {
	return func(c *Client) {
		c.recvBuf = n
	}
}

// WithReassemblyIdleTimeout bounds how long an incomplete fragment
// reassembly slot is kept before it is evicted as stale. The reference
// implementation never times these out (spec.md 9's open question); this
// is an opt-in extension absent by default (zero disables it).
func WithReassemblyIdleTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.reassemblyIdle = d
	}
}

// WithInterface pins the multicast group join and the send socket's
// outbound interface to iface, overriding the system's default
// multicast interface selection. Tests pin this to the loopback
// interface for hermetic same-host round-trips.
func WithInterface(iface *net.Interface) Option {
	return func(c *Client) {
		c.iface = iface
	}
}
