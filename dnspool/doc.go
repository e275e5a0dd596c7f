// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

/*
Package dnspool implements name resolution against a specific DNS server,
over a size-limited pool of pre-dialed DNS client connections.

A [Pool] satisfies the endpoint package's Resolver interface through
[Pool.LookupNetIP], so it plugs directly into endpoint resolution whenever
the host's standard name resolution configuration isn't the right one to ask;
think of split-horizon setups or resolvers reachable only on some specific
address. On top of that, [Pool.ResolveName] offers callback-style
asynchronous lookups and [Pool.Submit] runs arbitrary DNS tasks on the pooled
connections.

Lookups are implemented in pure Go, leveraging the incredible Go module
[miekg/dns], with [gammazero/workerpool] as the limiting goroutine pool.

[miekg/dns]: https://github.com/miekg/dns
[gammazero/workerpool]: https://github.com/gammazero/workerpool
*/
package dnspool
