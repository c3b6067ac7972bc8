// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lcm implements a client for a lightweight publish/subscribe
// messaging transport built over UDP multicast. A Client owns a send
// socket and a receive socket joined to a multicast group, automatically
// fragmenting oversized messages on publish and reassembling them on
// receive, and dispatches delivered messages to subscriptions matched by
// regular expression against the channel name.
//
// Message types are produced by the sibling lcmgen code generator from a
// small interface-definition language; see github.com/lcm-go/lcm/lcmgen
// and github.com/lcm-go/lcm/lcmtype. Generated types satisfy the Message
// interface in this package.
package lcm
