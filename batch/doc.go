// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

/*
Package batch implements concurrent bulk resolution of endpoint URIs into
their socket addresses, streaming intermediate and final findings as they
happen.

A [Resolver] parses submitted URIs and resolves the resulting endpoints on a
goroutine-limited worker pool, delegating the actual domain lookups to
whatever Resolver capability of the endpoint package it got handed; this
keeps batching, transport, and lookup policy cleanly separated. News about
every endpoint travels over a channel as [Update] values:

	         +---+
	[]string-->| R +-->ch Update
	         +---+

⚠ Please note that a [Resolver] initially emits any newly submitted endpoint
before it undergoes resolution (with its status still “pending”), as well as
later the resolving state and the final outcome(s). The rationale is that
especially interactive clients can more easily manage their display so that
all enqueued resolutions are early visible.

On the consuming side, [AddressMap] soaks up such an update stream into a
concurrency-safe map of endpoints to their resolution state and socket
addresses, ready for rendering whenever convenient.
*/
package batch
