// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package dnspool

import (
	"context"
	"fmt"
	"net/netip"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/miekg/dns"
)

// Pool is a (size-limited) pool of DNS client connections talking with the
// same DNS resolver address. A *Pool satisfies the endpoint package's
// Resolver interface, so endpoints can be resolved against a specific DNS
// server instead of the host's standard resolution configuration.
type Pool struct {
	workers *workerpool.WorkerPool
	mu      sync.Mutex // protects the pool of DNS connections
	free    []*dns.Conn
}

// New returns a pool of the specified size of DNS client connections, with
// each connection using the specified client configuration and talking to
// the same DNS resolver address (in "host:port" format).
//
// DNS tasks are submitted using [Pool.Submit] in form of task functions
// receiving a concrete [dns.Conn]; [Pool.ResolveName] and [Pool.LookupNetIP]
// cover the usual address lookups.
//
// The passed context is used for creating (dialing) the DNS client
// connections only. It is not directly passed to the submitted DNS tasks, so
// task submitters are themselves responsible for capturing the necessary
// context in their task function closure.
func New(ctx context.Context, size int, dnsclnt *dns.Client, addr string) (*Pool, error) {
	free := make([]*dns.Conn, 0, size)
	for i := 0; i < size; i++ {
		conn, err := dnsclnt.DialContext(ctx, addr)
		if err != nil {
			// Immediately release all connections created so far.
			for _, conn := range free {
				conn.Close()
			}
			return nil, err
		}
		free = append(free, conn)
	}
	return &Pool{
		workers: workerpool.New(size),
		free:    free,
	}, nil
}

// Submit a task to the DNS client connection pool, where it gets enqueued to
// be executed on an available DNS client connection.
func (p *Pool) Submit(task func(conn *dns.Conn)) {
	p.workers.Submit(func() { p.task(task) })
}

// ResolveName is a convenience method for submitting A/AAAA queries and
// gathering the results. The resolved IP addresses or an error if resolution
// failed are passed to the specified callback function fn.
//
// fn is called only once after completing both A and AAAA queries, so fn
// always gets to see all IP addresses from all IP families (if any).
//
// Please note that when the passed context is cancelled this will cancel all
// in-flight as well as scheduled name resolution jobs.
func (p *Pool) ResolveName(ctx context.Context, name string, fn func([]netip.Addr, error)) {
	p.Submit(func(conn *dns.Conn) {
		fn(lookup(ctx, conn, name, dns.TypeA, dns.TypeAAAA))
	})
}

// LookupNetIP resolves a name into its IP addresses on one of the pool's DNS
// client connections, blocking until an available connection has taken on
// and finished the necessary queries. The network selects the address
// families to query: "ip" for both, "ip4" for IPv4 only, and "ip6" for IPv6
// only.
//
// LookupNetIP makes a *Pool satisfy the endpoint package's Resolver
// interface.
func (p *Pool) LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error) {
	var qtypes []uint16
	switch network {
	case "ip":
		qtypes = []uint16{dns.TypeA, dns.TypeAAAA}
	case "ip4":
		qtypes = []uint16{dns.TypeA}
	case "ip6":
		qtypes = []uint16{dns.TypeAAAA}
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
	var addrs []netip.Addr
	var err error
	done := make(chan struct{})
	p.Submit(func(conn *dns.Conn) {
		defer close(done)
		addrs, err = lookup(ctx, conn, host, qtypes...)
	})
	<-done
	return addrs, err
}

// lookup runs the specified address queries for a name over the given DNS
// client connection, collecting the addresses from all answers. Queries for
// a name that yield not a single address count as failed.
func lookup(ctx context.Context, conn *dns.Conn, name string, qtypes ...uint16) ([]netip.Addr, error) {
	var addrs []netip.Addr
	dnsclnt := dns.Client{}
	name = dns.Fqdn(name)
	for _, qtype := range qtypes {
		// don't fire off the next query if the context has been cancelled in
		// the meantime.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		msg := dns.Msg{
			MsgHdr: dns.MsgHdr{Id: dns.Id()},
		}
		msg.SetQuestion(name, qtype)
		r, _, err := dnsclnt.ExchangeWithConn(&msg, conn)
		if err != nil {
			return nil, err
		}
		for _, rr := range r.Answer {
			if addrRR, ok := rr.(*dns.A); ok {
				if addr, err := netip.ParseAddr(addrRR.A.String()); err == nil {
					addrs = append(addrs, addr)
				}
				continue
			}
			if addrRR, ok := rr.(*dns.AAAA); ok {
				if addr, err := netip.ParseAddr(addrRR.AAAA.String()); err == nil {
					addrs = append(addrs, addr)
				}
			}
		}
	}
	// If we got not a single address answered then we consider this to be an
	// error, so callers never have to second-guess empty results.
	if len(addrs) == 0 {
		return nil, fmt.Errorf("query for %q yields no answers", name)
	}
	return addrs, nil
}

// task grabs the next free DNS client and passes it to the specified
// function. After the function returns, the connection is put back into the
// free list.
func (p *Pool) task(task func(conn *dns.Conn)) {
	// pop off a free DNS client connection,
	// https://ueokande.github.io/go-slice-tricks/,
	p.mu.Lock()
	if len(p.free) == 0 {
		panic("no free DNS client connection available")
	}
	last := len(p.free) - 1
	conn := p.free[last]
	p.free = p.free[:last]
	p.mu.Unlock()
	// run the task with its assigned DNS client connection...
	task(conn)
	// ...and push the DNS client connection back into the free list.
	p.mu.Lock()
	p.free = append(p.free, conn)
	p.mu.Unlock()
}

// StopWait waits for all enqueued address lookup or generic DNS request
// tasks to finish, and then shuts down the pool.
func (p *Pool) StopWait() {
	p.workers.StopWait()
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, conn := range p.free {
		conn.Close()
	}
	p.free = nil
}
