// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

/*
Package endpoint parses, formats, and resolves "endpoint" URIs identifying
either a network destination by protocol, host, and port, or a local resource
by filesystem path.

The textual wire format is "scheme://host[:port]" for the network schemes
tcp, udp, http, https, ws, wss, mqtt, mqtts, coap, coaps, redis, amqp, and
ftp, as well as "scheme://path" for the local unix and file schemes. Schemes
omitting the port get their well-known default filled in at parse time (http
80, https 443, ws 80, wss 443, mqtt 1883, mqtts 8883, coap 5683, coaps 5684,
redis 6379, amqp 5672, ftp 21); tcp and udp have no such well-known port and
thus always require an explicit one.

	ep, err := endpoint.Parse("mqtt://broker.local")
	// ⇒ mqtt endpoint, host "broker.local", port 1883

An [Endpoint] is an immutable value: parse it (or construct it through [New]
or [NewPath]) once, then format it back into its canonical URI form through
[Endpoint.String], or turn it into concrete socket addresses through
[Endpoint.Resolve]. Hosts are carried in parsed form as [types.HostAddr], so
whether the host is a literal IP address or a still unresolved domain name is
decided at parse time, while actual name resolution only ever happens in
Resolve, and only for domain hosts. The resolver is an explicit [Resolver]
capability passed into Resolve: use [SystemResolver] for the host's standard
name resolution, a dnspool.Pool for asking a specific DNS server, or a fake
returning scripted addresses in tests.

All operations are pure functions of their inputs (plus, for domain
resolution, the single resolver call), so concurrent callers may parse,
format, and resolve the same or different endpoints fully in parallel.

Failures are terminal and never internally retried, and come in four kinds:
[ErrInvalidScheme], [InvalidAddressError], [ResolutionError], and
[ErrNotNetwork].
*/
package endpoint
