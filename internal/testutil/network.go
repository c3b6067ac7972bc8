// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testutil provides testing utilities for the lcm transport.
package testutil

import (
	"fmt"
	"net"
	"sync/atomic"
)

var portCounter int64 = 20000

// GetMulticastTestPort returns an available UDP port for multicast
// testing, handing out a fresh port per call so parallel tests do not
// collide on the same group.
func GetMulticastTestPort() (int, error) {
	basePort := atomic.AddInt64(&portCounter, 1)

	for i := 0; i < 100; i++ {
		port := int(basePort) + i
		if port > 65535 {
			port = 20000 + (port % 45535)
		}

		if isUDPPortAvailable(port) {
			return port, nil
		}
	}

	return 0, fmt.Errorf("no available UDP ports found")
}

// isUDPPortAvailable checks if a UDP port is available
func isUDPPortAvailable(port int) bool {
	addr := fmt.Sprintf(":%d", port)
	conn, err := net.ListenPacket("udp4", addr)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// GetLoopbackInterface returns the loopback interface for testing, the
// interface local multicast publish/subscribe round-trips join.
func GetLoopbackInterface() (*net.Interface, error) {
	interfaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	for _, iface := range interfaces {
		if iface.Flags&net.FlagLoopback != 0 && iface.Flags&net.FlagUp != 0 {
			return &iface, nil
		}
	}

	return nil, fmt.Errorf("no loopback interface found")
}

// GetNetworkInterfaces returns every network interface on the host.
func GetNetworkInterfaces() ([]net.Interface, error) {
	return net.Interfaces()
}

// GetMulticastTestProviderURL returns a udpm:// provider URL addressed to
// the default 239.255.76.67 multicast group on a freshly allocated port,
// suitable for test isolation (avoiding the well-known 7667 default port,
// which a concurrently running process might already be using).
func GetMulticastTestProviderURL() (string, error) {
	port, err := GetMulticastTestPort()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("udpm://239.255.76.67:%d?ttl=0", port), nil
}
