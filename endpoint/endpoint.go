// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package endpoint

import (
	"net/netip"
	"strconv"
	"strings"

	"github.com/siemens/endpoints/types"
)

// Endpoint identifies a destination: either a network socket reachable by
// protocol, host, and port, or a local resource in form of a unix-domain
// socket or a plain file path. Endpoint values are immutable once
// constructed, either programmatically through [New] and [NewPath], or from
// their textual form through [Parse]. Endpoints are comparable, so == tells
// whether two endpoints identify the same destination.
//
// The port of a network endpoint is always explicit: the default-port policy
// is applied at parse time, so there is no "unset" port state to deal with
// later on.
type Endpoint struct {
	scheme Scheme
	host   types.HostAddr
	port   uint16
	path   string
}

// New returns the network endpoint for the given scheme, host, and port. It
// fails with [ErrInvalidScheme] for non-network schemes and with an
// [InvalidAddressError] for the zero host.
func New(scheme Scheme, host types.HostAddr, port uint16) (Endpoint, error) {
	if !scheme.IsNetwork() {
		return Endpoint{}, ErrInvalidScheme
	}
	if !host.IsValid() {
		return Endpoint{}, &InvalidAddressError{Token: ""}
	}
	return Endpoint{scheme: scheme, host: host, port: port}, nil
}

// NewPath returns the unix or file endpoint for the given path. It fails with
// [ErrInvalidScheme] for network schemes and with an [InvalidAddressError]
// for an empty path.
func NewPath(scheme Scheme, path string) (Endpoint, error) {
	if scheme != Unix && scheme != File {
		return Endpoint{}, ErrInvalidScheme
	}
	if path == "" {
		return Endpoint{}, &InvalidAddressError{Token: path}
	}
	return Endpoint{scheme: scheme, path: path}, nil
}

// Parse parses an endpoint URI of the form "scheme://host[:port]" for
// network schemes, or "scheme://path" for the unix and file schemes, into
// its Endpoint value.
//
// The scheme token is matched case-sensitively against the supported set and
// without any aliases; no luck here means [ErrInvalidScheme]. Network
// endpoints omitting the port get their scheme's default port filled in,
// except for tcp and udp which insist on an explicit port. IPv6 literal
// hosts must be bracketed, "[::1]:8080"-style. Whitespace is never trimmed
// anywhere. Syntactic failures as well as empty hosts and paths are reported
// as [InvalidAddressError].
func Parse(uri string) (Endpoint, error) {
	schemeName, rest, found := strings.Cut(uri, "://")
	if !found {
		// A scheme-only "unix:/run/foo.sock" form without the authority "//"
		// is still acceptable for the path schemes; network schemes require
		// their authority.
		schemeName, rest, found = strings.Cut(uri, ":")
		if !found {
			return Endpoint{}, &InvalidAddressError{Token: uri}
		}
		scheme, ok := schemesByName[schemeName]
		if !ok {
			return Endpoint{}, ErrInvalidScheme
		}
		if scheme.IsNetwork() {
			return Endpoint{}, &InvalidAddressError{Token: uri}
		}
		return NewPath(scheme, rest)
	}
	scheme, ok := schemesByName[schemeName]
	if !ok {
		return Endpoint{}, ErrInvalidScheme
	}
	if !scheme.IsNetwork() {
		return NewPath(scheme, rest)
	}
	return parseNetwork(scheme, rest)
}

// parseNetwork parses the authority "host[:port]" part of a network endpoint
// URI, applying the scheme's default-port policy when the port is omitted.
func parseNetwork(scheme Scheme, authority string) (Endpoint, error) {
	host, portToken, hasPort, err := splitAuthority(authority)
	if err != nil {
		return Endpoint{}, err
	}
	var port uint16
	if hasPort {
		p, err := strconv.ParseUint(portToken, 10, 16)
		if err != nil {
			return Endpoint{}, &InvalidAddressError{Token: authority}
		}
		port = uint16(p)
	} else {
		p, ok := scheme.DefaultPort()
		if !ok {
			return Endpoint{}, &InvalidAddressError{Token: authority}
		}
		port = p
	}
	return Endpoint{scheme: scheme, host: host, port: port}, nil
}

// splitAuthority splits an authority into its host and optional port token.
// Bracketed "[...]" hosts must be IP literals; otherwise the authority is
// split on the last colon, if any, with everything before it going through
// the host parse.
func splitAuthority(authority string) (host types.HostAddr, portToken string, hasPort bool, err error) {
	if strings.HasPrefix(authority, "[") {
		end := strings.IndexByte(authority, ']')
		if end < 0 {
			return types.HostAddr{}, "", false, &InvalidAddressError{Token: authority}
		}
		ip, err := netip.ParseAddr(authority[1:end])
		if err != nil {
			return types.HostAddr{}, "", false, &InvalidAddressError{Token: authority}
		}
		rest := authority[end+1:]
		if rest == "" {
			return types.IPHost(ip), "", false, nil
		}
		if rest[0] != ':' {
			return types.HostAddr{}, "", false, &InvalidAddressError{Token: authority}
		}
		return types.IPHost(ip), rest[1:], true, nil
	}
	hostToken := authority
	if idx := strings.LastIndexByte(authority, ':'); idx >= 0 {
		hostToken, portToken, hasPort = authority[:idx], authority[idx+1:], true
	}
	if hostToken == "" {
		return types.HostAddr{}, "", false, &InvalidAddressError{Token: authority}
	}
	host, err = types.ParseHost(hostToken)
	if err != nil {
		return types.HostAddr{}, "", false, &InvalidAddressError{Token: hostToken}
	}
	return host, portToken, hasPort, nil
}

// Scheme returns the scheme of this endpoint.
func (e Endpoint) Scheme() Scheme { return e.scheme }

// Host returns the host of a network endpoint; it is the zero [types.HostAddr]
// for unix and file endpoints.
func (e Endpoint) Host() types.HostAddr { return e.host }

// Port returns the (explicit or defaulted) port of a network endpoint, or 0
// for unix and file endpoints.
func (e Endpoint) Port() uint16 { return e.port }

// Path returns the filesystem path of a unix or file endpoint, or "" for
// network endpoints.
func (e Endpoint) Path() string { return e.path }

// String returns the canonical URI form of this endpoint:
// "scheme://host:port" with IPv6 literals bracketed, or "scheme://path". The
// result parses back into an equal Endpoint value.
func (e Endpoint) String() string {
	if !e.scheme.IsNetwork() {
		return e.scheme.String() + "://" + e.path
	}
	return e.scheme.String() + "://" + e.host.AuthorityString() + ":" + strconv.Itoa(int(e.port))
}

// MarshalText returns the canonical URI form, so endpoints can be directly
// embedded into textual configuration formats.
func (e Endpoint) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText parses an endpoint URI in place.
func (e *Endpoint) UnmarshalText(text []byte) error {
	ep, err := Parse(string(text))
	if err != nil {
		return err
	}
	*e = ep
	return nil
}
