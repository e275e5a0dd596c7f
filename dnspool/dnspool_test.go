// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package dnspool

import (
	"context"
	"net"
	"net/netip"
	"sync"
	"time"

	"github.com/miekg/dns"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gleak"
	. "github.com/thediveo/success"
)

// serveTestZone runs an in-process DNS server on a loopback UDP port,
// answering A/AAAA queries for names inside "test." with fixed addresses.
// It returns the server's address for dialing and a teardown function.
func serveTestZone() (addr string, teardown func()) {
	mux := dns.NewServeMux()
	mux.HandleFunc("test.", func(w dns.ResponseWriter, req *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(req)
		question := req.Question[0]
		switch question.Qtype {
		case dns.TypeA:
			m.Answer = append(m.Answer,
				Successful(dns.NewRR(question.Name+" 60 IN A 192.0.2.17")))
		case dns.TypeAAAA:
			m.Answer = append(m.Answer,
				Successful(dns.NewRR(question.Name+" 60 IN AAAA 2001:db8::17")))
		}
		_ = w.WriteMsg(m)
	})
	pc := Successful(net.ListenPacket("udp", "127.0.0.1:0"))
	srv := &dns.Server{PacketConn: pc, Handler: mux}
	go func() {
		defer GinkgoRecover()
		_ = srv.ActivateAndServe()
	}()
	return pc.LocalAddr().String(), func() {
		Expect(srv.Shutdown()).To(Succeed())
	}
}

var _ = Describe("DNS client connection pool", func() {

	var dnssrv string

	BeforeEach(func() {
		goodgos := Goroutines()
		addr, teardown := serveTestZone()
		dnssrv = addr
		DeferCleanup(func() {
			teardown()
			Eventually(Goroutines).WithTimeout(3 * time.Second).WithPolling(250 * time.Millisecond).
				ShouldNot(HaveLeaked(goodgos))
		})
	})

	It("runs a goroutine-limited set of DNS tasks", NodeTimeout(30*time.Second), func(ctx context.Context) {
		const poolsize = 3

		dnsclnt := dns.Client{}
		pool := Successful(New(ctx, poolsize, &dnsclnt, dnssrv))

		dnsconns := map[*dns.Conn]int{}
		var mu sync.Mutex
		taskfn := func(conn *dns.Conn) {
			mu.Lock()
			defer mu.Unlock()
			count := dnsconns[conn]
			dnsconns[conn] = count + 1
			time.Sleep(100 * time.Millisecond)
		}

		numtasks := poolsize * 2
		for i := 0; i < numtasks; i++ {
			pool.Submit(taskfn)
		}

		pool.StopWait()

		total := 0
		for _, count := range dnsconns {
			total += count
		}
		Expect(total).To(Equal(numtasks), "number of submitted and executed tasks mismatch")
	})

	It("resolves a name", NodeTimeout(30*time.Second), func(ctx context.Context) {
		dnsclnt := dns.Client{}
		pool := Successful(New(ctx, 1, &dnsclnt, dnssrv))
		ch := make(chan []netip.Addr)

		pool.ResolveName(ctx,
			"foo.test",
			func(addrs []netip.Addr, err error) {
				defer GinkgoRecover()
				Expect(err).NotTo(HaveOccurred())
				ch <- addrs
				close(ch)
			})
		Eventually(ch).Should(Receive(ConsistOf(
			netip.MustParseAddr("192.0.2.17"),
			netip.MustParseAddr("2001:db8::17"),
		)))
		pool.StopWait()
	})

	It("looks up addresses of the requested families", NodeTimeout(30*time.Second), func(ctx context.Context) {
		dnsclnt := dns.Client{}
		pool := Successful(New(ctx, 2, &dnsclnt, dnssrv))
		defer pool.StopWait()

		Expect(Successful(pool.LookupNetIP(ctx, "ip4", "foo.test"))).To(ConsistOf(
			netip.MustParseAddr("192.0.2.17")))
		Expect(Successful(pool.LookupNetIP(ctx, "ip6", "foo.test"))).To(ConsistOf(
			netip.MustParseAddr("2001:db8::17")))
		Expect(Successful(pool.LookupNetIP(ctx, "ip", "foo.test"))).To(HaveLen(2))

		_, err := pool.LookupNetIP(ctx, "tcp", "foo.test")
		Expect(err).To(MatchError(ContainSubstring("unsupported network")))
	})

	It("reports resolution failures", NodeTimeout(30*time.Second), func(ctx context.Context) {
		dnsclnt := dns.Client{}
		pool := Successful(New(ctx, 1, &dnsclnt, dnssrv))
		defer pool.StopWait()

		_, err := pool.LookupNetIP(ctx, "ip", "tld.rottennet")
		Expect(err).To(MatchError(ContainSubstring("yields no answers")))
	})

	It("cancels scheduled lookups", NodeTimeout(30*time.Second), func(ctx context.Context) {
		dnsclnt := dns.Client{}
		pool := Successful(New(ctx, 1, &dnsclnt, dnssrv))
		defer pool.StopWait()

		cancelledctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := pool.LookupNetIP(cancelledctx, "ip", "foo.test")
		Expect(err).To(MatchError(context.Canceled))
	})

})
