// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcm

import (
	"net"
	"net/url"
	"strconv"
)

// DefaultMulticastAddress and DefaultMulticastPort are the udpm provider's
// defaults, per spec.md 6.
const (
	DefaultMulticastAddress = "239.255.76.67"
	DefaultMulticastPort    = 7667
	DefaultTTL              = 0
)

// Provider is a parsed udpm:// transport provider URL.
type Provider struct {
	Address string
	Port    int
	TTL     int
}

// ParseProvider parses a transport provider URL of the form
// "udpm://[address[:port]]?ttl=N", applying the defaults from spec.md 6
// for any component left unspecified.
func ParseProvider(raw string) (*Provider, error) {
	if raw == "" {
		return &Provider{Address: DefaultMulticastAddress, Port: DefaultMulticastPort, TTL: DefaultTTL}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, &InvalidProviderError{URL: raw, Reason: err.Error()}
	}
	if u.Scheme != "udpm" {
		return nil, &InvalidProviderError{URL: raw, Reason: "scheme must be udpm"}
	}

	p := &Provider{Address: DefaultMulticastAddress, Port: DefaultMulticastPort, TTL: DefaultTTL}

	if u.Host != "" {
		host, port, err := splitHostPort(u.Host)
		if err != nil {
			return nil, &InvalidProviderError{URL: raw, Reason: err.Error()}
		}
		if host != "" {
			p.Address = host
		}
		if port != "" {
			n, err := strconv.Atoi(port)
			if err != nil || n < 0 || n > 65535 {
				return nil, &InvalidProviderError{URL: raw, Reason: "invalid port " + port}
			}
			p.Port = n
		}
	}

	if ttlStr := u.Query().Get("ttl"); ttlStr != "" {
		n, err := strconv.Atoi(ttlStr)
		if err != nil || n < 0 || n > 255 {
			return nil, &InvalidProviderError{URL: raw, Reason: "invalid ttl " + ttlStr}
		}
		p.TTL = n
	}

	if net.ParseIP(p.Address) == nil {
		return nil, &InvalidProviderError{URL: raw, Reason: "address is not a valid IP: " + p.Address}
	}

	return p, nil
}

func splitHostPort(host string) (string, string, error) {
	h, p, err := net.SplitHostPort(host)
	if err == nil {
		return h, p, nil
	}
	// No port present; net.SplitHostPort errors on that, host is the whole
	// value.
	return host, "", nil
}

// Warn logs a human-readable warning when the TTL exceeds 1, per
// spec.md 6 ("ttl>1 emits a human-readable warning").
func (p *Provider) Warn(log *Logger) {
	if p.TTL > 1 {
		log.Warn("provider ttl=%d allows packets to leave the local network segment", p.TTL)
	}
}
