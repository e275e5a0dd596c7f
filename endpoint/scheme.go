// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package endpoint

import "fmt"

// Scheme identifies one of the supported endpoint forms: a network protocol
// carrying a host and port, or a local unix-socket or file path form. The set
// of schemes is closed; adding a protocol means adding a constant and a
// schemes table entry.
type Scheme int

// The supported endpoint schemes.
const (
	TCP Scheme = iota
	UDP
	HTTP
	HTTPS
	WS
	WSS
	MQTT
	MQTTS
	CoAP
	CoAPS
	Redis
	AMQP
	FTP
	Unix
	File
)

// schemeInfo describes the fixed properties of a single scheme: its textual
// (URI) form, whether it addresses a network destination or a local path,
// and the port substituted when an endpoint string omits an explicit one.
// tcp and udp deliberately carry no default, as there is no IANA-standard
// port to substitute; parsing such endpoints without an explicit port fails.
type schemeInfo struct {
	name        string
	network     bool
	defaultPort uint16
	hasDefault  bool
}

var schemes = [...]schemeInfo{
	TCP:   {name: "tcp", network: true},
	UDP:   {name: "udp", network: true},
	HTTP:  {name: "http", network: true, defaultPort: 80, hasDefault: true},
	HTTPS: {name: "https", network: true, defaultPort: 443, hasDefault: true},
	WS:    {name: "ws", network: true, defaultPort: 80, hasDefault: true},
	WSS:   {name: "wss", network: true, defaultPort: 443, hasDefault: true},
	MQTT:  {name: "mqtt", network: true, defaultPort: 1883, hasDefault: true},
	MQTTS: {name: "mqtts", network: true, defaultPort: 8883, hasDefault: true},
	CoAP:  {name: "coap", network: true, defaultPort: 5683, hasDefault: true},
	CoAPS: {name: "coaps", network: true, defaultPort: 5684, hasDefault: true},
	Redis: {name: "redis", network: true, defaultPort: 6379, hasDefault: true},
	AMQP:  {name: "amqp", network: true, defaultPort: 5672, hasDefault: true},
	FTP:   {name: "ftp", network: true, defaultPort: 21, hasDefault: true},
	Unix:  {name: "unix"},
	File:  {name: "file"},
}

// schemesByName maps the textual scheme forms back onto their Scheme values;
// matching is case-sensitive, without any aliases.
var schemesByName = func() map[string]Scheme {
	m := make(map[string]Scheme, len(schemes))
	for scheme, info := range schemes {
		m[info.name] = Scheme(scheme)
	}
	return m
}()

// IsValid returns true for the supported schemes, false for any other Scheme
// value.
func (s Scheme) IsValid() bool {
	return s >= TCP && s <= File
}

// IsNetwork returns true for schemes addressing a network destination with
// host and port, and false for the path-carrying unix and file schemes.
func (s Scheme) IsNetwork() bool {
	return s.IsValid() && schemes[s].network
}

// DefaultPort returns the port to substitute when an endpoint string omits an
// explicit port, together with true. It returns false for tcp and udp, which
// have no natural default, as well as for the non-network schemes.
func (s Scheme) DefaultPort() (uint16, bool) {
	if !s.IsValid() {
		return 0, false
	}
	return schemes[s].defaultPort, schemes[s].hasDefault
}

// String returns the textual (URI) form of this scheme.
func (s Scheme) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
	return schemes[s].name
}
