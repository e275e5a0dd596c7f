// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package batch

import (
	"context"
	"net/netip"

	"github.com/siemens/endpoints/endpoint"
	"github.com/siemens/endpoints/types"

	"github.com/gammazero/workerpool"
)

// Update is one piece of news from a bulk resolution: an endpoint got
// queued, its resolution started, one of its socket addresses arrived, or
// resolution (or already parsing) failed.
type Update struct {
	URI      string            // endpoint in canonical textual form; verbatim input if parsing failed.
	Endpoint endpoint.Endpoint // parsed endpoint; zero when parsing failed.
	Addr     netip.AddrPort    // one resolved socket address, only with [types.Resolved].
	Status   types.Status
	Err      error // what went wrong, only with [types.Failed].
}

// Resolver resolves batches of endpoint URIs into their socket addresses and
// then streams its findings over its “news” channel. Resolution runs under
// the constraint of a limited worker pool, delegating individual endpoint
// resolution (and with it domain lookups) to an upstream resolver
// capability.
type Resolver struct {
	workers  *workerpool.WorkerPool
	upstream endpoint.Resolver
	news     chan Update
}

// New returns a new Resolver with a maximum worker pool of the specified
// size as well as a “news stream”. This news channel sends [Update] elements
// as endpoints are submitted for resolution, as well as the outcome(s) of
// the resolutions. Please note that the returned news channel is never
// closed by a Resolver itself, only by [Resolver.StopWait].
//
// Upstream is the resolver capability to use for domain lookups, such as
// [endpoint.SystemResolver] or a dnspool.Pool.
func New(size int, upstream endpoint.Resolver) (*Resolver, <-chan Update) {
	news := make(chan Update, size)
	return &Resolver{
		workers:  workerpool.New(size),
		upstream: upstream,
		news:     news,
	}, news
}

// ResolveEndpoints parses the given list of endpoint URIs and enqueues the
// parsed endpoints for concurrent resolution. Intermediate and final results
// are getting sent to the channel returned beforehand by [New]: per URI
// first a pending update (or a final failed update for URIs that don't even
// parse), later a resolving update, and finally either one resolved update
// per socket address or a single failed update.
//
// Enqueueing doesn't block on resolution, only ever on a consumer not
// consuming the news, and then only until the context gets cancelled.
func (r *Resolver) ResolveEndpoints(ctx context.Context, uris []string) {
	for _, uri := range uris {
		ep, err := endpoint.Parse(uri)
		if err != nil {
			if !r.send(ctx, Update{URI: uri, Status: types.Failed, Err: err}) {
				return
			}
			continue
		}
		// The canonical form keys all further news about this endpoint, so
		// consumers get to see defaulted ports and suchlike.
		uri := ep.String()
		// Initially inform the consumer of any endpoint that will undergo
		// resolution later; the workers might beat us to it with further
		// updates only after this send.
		if !r.send(ctx, Update{URI: uri, Endpoint: ep, Status: types.Pending}) {
			return
		}
		r.workers.Submit(func() {
			r.resolve(ctx, uri, ep)
		})
	}
}

// resolve runs a single endpoint resolution, streaming the outcome(s) as
// news.
func (r *Resolver) resolve(ctx context.Context, uri string, ep endpoint.Endpoint) {
	if !r.send(ctx, Update{URI: uri, Endpoint: ep, Status: types.Resolving}) {
		return
	}
	addrs, err := ep.Resolve(ctx, r.upstream)
	if err != nil {
		r.send(ctx, Update{URI: uri, Endpoint: ep, Status: types.Failed, Err: err})
		return
	}
	for _, addr := range addrs {
		if !r.send(ctx, Update{URI: uri, Endpoint: ep, Addr: addr, Status: types.Resolved}) {
			return
		}
	}
}

// send an update without ever blocking endlessly in case of the context
// getting cancelled, reporting whether the update went out.
func (r *Resolver) send(ctx context.Context, update Update) bool {
	select {
	case r.news <- update:
		return true
	case <-ctx.Done():
		return false
	}
}

// StopWait waits for all queued resolution tasks to get processed and then
// finally closes the news channel.
func (r *Resolver) StopWait() {
	r.workers.StopWait()
	close(r.news)
}
