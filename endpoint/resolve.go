// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package endpoint

import (
	"context"
	"errors"
	"net"
	"net/netip"
)

// Resolver is the external capability for expanding a domain name into its
// ordered list of IP addresses. The interface is shaped so that the stdlib
// [net.Resolver] satisfies it out of the box; for resolving against a
// specific DNS server see the dnspool package.
//
// Resolvers may block; it is up to the resolver (and the passed context) to
// decide about timeouts and cancellation, as [Endpoint.Resolve] imposes no
// policy of its own.
type Resolver interface {
	LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error)
}

// SystemResolver resolves domain names using the stdlib default resolver,
// and with it the host's usual name resolution configuration.
var SystemResolver Resolver = net.DefaultResolver

// errNoAddresses signals a lookup that succeeded protocol-wise, yet came
// back without a single address.
var errNoAddresses = errors.New("no addresses found")

// Resolve turns a network endpoint into its ordered list of concrete socket
// addresses. An IP-literal host combines directly with the endpoint's port
// into exactly one socket address, without consulting the resolver at all. A
// domain host is expanded through a single resolver lookup, with the
// resolver's address ordering preserved; lookup failures as well as empty
// lookup results are reported as [ResolutionError] wrapping the resolver's
// own error. Resolving a unix or file endpoint fails with [ErrNotNetwork].
//
// Resolve never caches and never retries; such policies belong to the caller
// or the resolver.
func (e Endpoint) Resolve(ctx context.Context, r Resolver) ([]netip.AddrPort, error) {
	if !e.scheme.IsNetwork() {
		return nil, ErrNotNetwork
	}
	if ip, ok := e.host.IP(); ok {
		return []netip.AddrPort{netip.AddrPortFrom(ip, e.port)}, nil
	}
	domain, _ := e.host.Domain()
	ips, err := r.LookupNetIP(ctx, "ip", domain)
	if err != nil {
		return nil, &ResolutionError{Domain: domain, Err: err}
	}
	if len(ips) == 0 {
		return nil, &ResolutionError{Domain: domain, Err: errNoAddresses}
	}
	addrs := make([]netip.AddrPort, 0, len(ips))
	for _, ip := range ips {
		addrs = append(addrs, netip.AddrPortFrom(ip, e.port))
	}
	return addrs, nil
}
