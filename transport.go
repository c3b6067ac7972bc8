// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcm

import (
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"sync"
	"time"

	"golang.org/x/net/ipv4"

	"github.com/lcm-go/lcm/buffer"
)

// Client owns the send and receive UDP multicast sockets for one LCM
// instance, plus the subscription list and fragment reassembly table
// that its single event-loop goroutine exclusively mutates, per
// spec.md 5.
type Client struct {
	log            *Logger
	recvBuf        int
	reassemblyIdle time.Duration // 0 disables eviction, matching the reference (spec.md 9)
	iface          *net.Interface

	provider  *Provider
	groupAddr *net.UDPAddr

	sendConn net.PacketConn
	sendPC   *ipv4.PacketConn

	recvConn net.PacketConn
	recvPC   *ipv4.PacketConn

	seqMu sync.Mutex
	seq   uint32

	commands  chan clientCmd
	datagrams chan rawDatagram

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	closeMu sync.Mutex
	closed  bool
}

type rawDatagram struct {
	data []byte
	addr *net.UDPAddr
}

type clientCmd struct {
	subscribe   *subscribeCmd
	unsubscribe *unsubscribeCmd
}

type subscribeCmd struct {
	pattern string
	handler Handler
	reply   chan subscribeResult
}

type subscribeResult struct {
	sub *Subscription
	err error
}

type unsubscribeCmd struct {
	sub   *Subscription
	reply chan struct{}
}

// New constructs a Client bound to the provider described by
// providerURL ("udpm://[address[:port]]?ttl=N", spec.md 6) and starts
// its receive and event-loop goroutines.
func New(providerURL string, opts ...Option) (*Client, error) {
	provider, err := ParseProvider(providerURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		log:       NewLogger(LogLevelError),
		recvBuf:   64,
		provider:  provider,
		groupAddr: &net.UDPAddr{IP: net.ParseIP(provider.Address), Port: provider.Port},
		commands:  make(chan clientCmd, 16),
		datagrams: make(chan rawDatagram, 64),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.recvBuf > 0 && cap(c.datagrams) != c.recvBuf {
		c.datagrams = make(chan rawDatagram, c.recvBuf)
	}

	provider.Warn(c.log)

	if err := c.setupSockets(); err != nil {
		return nil, err
	}

	c.ctx, c.cancel = context.WithCancel(context.Background())

	subs := newSubscriptionList()
	reasm := newReassemblyTable()

	c.wg.Add(2)
	go c.recvLoop()
	go c.eventLoop(subs, reasm)

	return c, nil
}

func (c *Client) setupSockets() error {
	sendRaw, err := net.ListenPacket("udp4", ":0")
	if err != nil {
		return fmt.Errorf("lcm: open send socket: %w", err)
	}
	sendPC := ipv4.NewPacketConn(sendRaw)
	if err := sendPC.SetMulticastTTL(c.provider.TTL); err != nil {
		sendRaw.Close()
		return fmt.Errorf("lcm: set multicast ttl: %w", err)
	}
	if err := sendPC.SetMulticastLoopback(true); err != nil {
		sendRaw.Close()
		return fmt.Errorf("lcm: set multicast loopback: %w", err)
	}
	if c.iface != nil {
		if err := sendPC.SetMulticastInterface(c.iface); err != nil {
			sendRaw.Close()
			return fmt.Errorf("lcm: set multicast interface: %w", err)
		}
	}

	recvRaw, err := net.ListenPacket("udp4", fmt.Sprintf(":%d", c.provider.Port))
	if err != nil {
		sendRaw.Close()
		return fmt.Errorf("lcm: open receive socket: %w", err)
	}
	recvPC := ipv4.NewPacketConn(recvRaw)
	if err := recvPC.JoinGroup(c.iface, c.groupAddr); err != nil {
		sendRaw.Close()
		recvRaw.Close()
		return fmt.Errorf("lcm: join multicast group %s: %w", c.groupAddr, err)
	}

	c.sendConn, c.sendPC = sendRaw, sendPC
	c.recvConn, c.recvPC = recvRaw, recvPC
	return nil
}

// recvLoop reads raw datagrams off the socket and forwards them to the
// event loop. It performs no protocol parsing: spec.md 5 reserves state
// mutation to the single event-loop goroutine.
func (c *Client) recvLoop() {
	defer c.wg.Done()
	buf := make([]byte, 65535)
	for {
		n, _, src, err := c.recvPC.ReadFrom(buf)
		if err != nil {
			select {
			case <-c.ctx.Done():
				return
			default:
				c.log.Debug("receive error: %v", err)
				continue
			}
		}
		data := make([]byte, n)
		copy(data, buf[:n])
		udpSrc, _ := src.(*net.UDPAddr)
		select {
		case c.datagrams <- rawDatagram{data: data, addr: udpSrc}:
		case <-c.ctx.Done():
			return
		}
	}
}

// eventLoop is the single cooperative scheduler spec.md 5 describes: it
// owns subs and reasm exclusively, applying commands and dispatching
// deliveries as they arrive.
func (c *Client) eventLoop(subs *subscriptionList, reasm *reassemblyTable) {
	defer c.wg.Done()

	var evictC <-chan time.Time
	if c.reassemblyIdle > 0 {
		ticker := time.NewTicker(c.reassemblyIdle)
		defer ticker.Stop()
		evictC = ticker.C
	}

	for {
		select {
		case cmd := <-c.commands:
			c.applyCommand(cmd, subs)
		case dgram := <-c.datagrams:
			c.handleDatagram(dgram, subs, reasm)
		case <-evictC:
			reasm.evictStale(c.reassemblyIdle)
		case <-c.ctx.Done():
			// spec.md 9: close drops in-flight reassembly state without
			// notifying subscribers.
			reasm.clear()
			subs.clear()
			return
		}
	}
}

func (c *Client) applyCommand(cmd clientCmd, subs *subscriptionList) {
	switch {
	case cmd.subscribe != nil:
		sub, err := subs.add(cmd.subscribe.pattern, cmd.subscribe.handler)
		cmd.subscribe.reply <- subscribeResult{sub: sub, err: err}
	case cmd.unsubscribe != nil:
		subs.remove(cmd.unsubscribe.sub)
		cmd.unsubscribe.reply <- struct{}{}
	}
}

func (c *Client) handleDatagram(dgram rawDatagram, subs *subscriptionList, reasm *reassemblyTable) {
	if len(dgram.data) < 8 {
		c.log.Debug("dropping %d-byte datagram: shorter than header", len(dgram.data))
		return
	}
	magic := binary.BigEndian.Uint32(dgram.data[0:4])
	switch magic {
	case magicShort:
		channel, payload, ok := parseShortPacket(dgram.data)
		if !ok {
			c.log.Debug("dropping malformed short packet from %v", dgram.addr)
			return
		}
		subs.dispatch(channel, payload, c.log)
	case magicFragment:
		c.handleFragment(dgram, subs, reasm)
	default:
		c.log.Debug("dropping datagram with unrecognized magic %#x from %v", magic, dgram.addr)
	}
}

func parseShortPacket(data []byte) (channel string, payload []byte, ok bool) {
	rest := data[8:]
	nul := indexByte(rest, 0)
	if nul < 0 {
		return "", nil, false
	}
	return string(rest[:nul]), rest[nul+1:], true
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

func (c *Client) handleFragment(dgram rawDatagram, subs *subscriptionList, reasm *reassemblyTable) {
	data := dgram.data
	if len(data) < fragmentHeaderSize {
		c.log.Debug("dropping undersized fragment packet from %v", dgram.addr)
		return
	}
	seq := binary.BigEndian.Uint32(data[4:8])
	total := binary.BigEndian.Uint32(data[8:12])
	offset := binary.BigEndian.Uint32(data[12:16])
	fragIdx := binary.BigEndian.Uint16(data[16:18])
	fragCount := binary.BigEndian.Uint16(data[18:20])

	key := reassemblyKey{addr: dgram.addr.String(), seq: seq}
	slot := reasm.lookup(key, total)
	if slot == nil {
		slot = reasm.begin(key, total, int(fragCount))
	}

	body := data[fragmentHeaderSize:]
	if fragIdx == 0 {
		nul := indexByte(body, 0)
		if nul < 0 {
			reasm.drop(key)
			c.log.Debug("dropping fragment 0 with no channel terminator from %v", dgram.addr)
			return
		}
		slot.channel = string(body[:nul])
		body = body[nul+1:]
	}

	if uint64(offset)+uint64(len(body)) > uint64(slot.total) {
		reasm.drop(key)
		c.log.Debug("dropping reassembly %v: fragment exceeds declared size", key)
		return
	}

	copy(slot.data[offset:], body)
	slot.pending--
	slot.updatedAt = time.Now()

	if slot.pending <= 0 {
		channel, payload := slot.channel, slot.data
		reasm.complete(key)
		subs.dispatch(channel, payload, c.log)
	}
}

// Publish sends payload on channel, choosing the single-packet or
// fragmented wire form per spec.md 4.5.
func (c *Client) Publish(channel string, payload []byte) error {
	if c.isClosed() {
		return &InstanceClosedError{Op: "publish"}
	}
	if len(channel) > maxChannelLen {
		return &ChannelNameTooLongError{Channel: channel}
	}

	c.seqMu.Lock()
	c.seq++
	seq := c.seq
	c.seqMu.Unlock()

	need := len(channel) + 1 + len(payload)
	if need <= maxShortPayload {
		pkt := encodeShortPacket(seq, channel, payload)
		return c.send(pkt)
	}

	fragments, err := buildFragments(seq, channel, payload)
	if err != nil {
		return err
	}
	for _, f := range fragments {
		if err := c.send(f); err != nil {
			return err
		}
	}
	return nil
}

// PublishMessage encodes msg onto a fresh buffer and publishes it, the
// convenience path generated structs are meant to be sent through.
func (c *Client) PublishMessage(channel string, msg Message) error {
	buf := buffer.New(256)
	if err := msg.Encode(buf); err != nil {
		return err
	}
	return c.Publish(channel, buf.Bytes())
}

func (c *Client) send(pkt []byte) error {
	_, err := c.sendPC.WriteTo(pkt, nil, c.groupAddr)
	if err != nil {
		return fmt.Errorf("lcm: send: %w", err)
	}
	return nil
}

// Subscribe compiles pattern as an anchored regular expression and
// registers handler to receive every message on a matching channel,
// per spec.md 4.7.
func (c *Client) Subscribe(pattern string, handler Handler) (*Subscription, error) {
	if c.isClosed() {
		return nil, &InstanceClosedError{Op: "subscribe"}
	}
	reply := make(chan subscribeResult, 1)
	select {
	case c.commands <- clientCmd{subscribe: &subscribeCmd{pattern: pattern, handler: handler, reply: reply}}:
	case <-c.ctx.Done():
		return nil, &InstanceClosedError{Op: "subscribe"}
	}
	res := <-reply
	return res.sub, res.err
}

// Unsubscribe removes sub from the subscription list. It is a no-op if
// sub was already removed or belongs to a different Client.
func (c *Client) Unsubscribe(sub *Subscription) error {
	if c.isClosed() {
		return &InstanceClosedError{Op: "unsubscribe"}
	}
	reply := make(chan struct{}, 1)
	select {
	case c.commands <- clientCmd{unsubscribe: &unsubscribeCmd{sub: sub, reply: reply}}:
	case <-c.ctx.Done():
		return &InstanceClosedError{Op: "unsubscribe"}
	}
	<-reply
	return nil
}

func (c *Client) isClosed() bool {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	return c.closed
}

// Close cancels the receive loop, closes both sockets, and clears the
// subscription list and fragment table. Close is idempotent.
func (c *Client) Close() error {
	c.closeMu.Lock()
	if c.closed {
		c.closeMu.Unlock()
		return nil
	}
	c.closed = true
	c.closeMu.Unlock()

	c.cancel()
	c.recvConn.Close()
	c.wg.Wait()
	return c.sendConn.Close()
}
