// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import (
	"fmt"
	"net/netip"
)

// HostAddr is the host component of a network endpoint: either a literal IP
// address (IPv4 or IPv6) or a still unresolved domain name. Exactly one of the
// two forms is ever present; the zero HostAddr is invalid.
//
// HostAddr values are immutable; they are either constructed programmatically
// using [IPHost] or [DomainHost], or parsed from their textual form using
// [ParseHost].
type HostAddr struct {
	ip     netip.Addr
	domain string
}

// IPHost returns the HostAddr for a literal IP address.
func IPHost(ip netip.Addr) HostAddr {
	return HostAddr{ip: ip}
}

// DomainHost returns the HostAddr for an unresolved domain name. The name is
// kept verbatim and not validated; use [ParseHost] for validating input.
func DomainHost(domain string) HostAddr {
	return HostAddr{domain: domain}
}

// ParseHost parses a host token into a HostAddr. Tokens first undergo a strict
// IP address parse (IPv4, then IPv6; without any brackets, as these belong to
// the URI authority syntax and not to the address itself). Any non-IP token is
// accepted as a domain name as long as it is non-empty and sticks to the DNS
// host character set of letters, digits, hyphens, and dots.
func ParseHost(token string) (HostAddr, error) {
	if ip, err := netip.ParseAddr(token); err == nil {
		return HostAddr{ip: ip}, nil
	}
	if token == "" {
		return HostAddr{}, fmt.Errorf("empty host")
	}
	for _, r := range token {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '.':
		default:
			return HostAddr{}, fmt.Errorf("invalid character %q in host %q", r, token)
		}
	}
	return HostAddr{domain: token}, nil
}

// IsValid reports whether this HostAddr carries either of its two forms, as
// opposed to the zero HostAddr.
func (h HostAddr) IsValid() bool {
	return h.ip.IsValid() || h.domain != ""
}

// IP returns the literal IP address together with true, or the zero address
// and false for the domain form.
func (h HostAddr) IP() (netip.Addr, bool) {
	return h.ip, h.ip.IsValid()
}

// Domain returns the domain name together with true, or "" and false for the
// IP-literal form.
func (h HostAddr) Domain() (string, bool) {
	return h.domain, h.domain != ""
}

// String returns the canonical textual form: the IP address rendered by the
// netip package (IPv6 without brackets), or the domain name verbatim.
func (h HostAddr) String() string {
	if h.ip.IsValid() {
		return h.ip.String()
	}
	return h.domain
}

// AuthorityString returns the textual form suitable for embedding into a URI
// authority next to a port, that is, with IPv6 literals in brackets.
func (h HostAddr) AuthorityString() string {
	if h.ip.IsValid() && h.ip.Is6() {
		return "[" + h.ip.String() + "]"
	}
	return h.String()
}
