// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/siemens/endpoints/batch"
	"github.com/siemens/endpoints/dnspool"
	"github.com/siemens/endpoints/endpoint"

	"github.com/gosuri/uilive"
	"github.com/miekg/dns"
)

// ResolveAndReport resolves the given endpoint URIs into their socket
// addresses, live-rendering the state of affairs while resolutions are still
// in flight. Domain names are either resolved through the system resolver,
// or through a pool of connections to a specific DNS server when --dns was
// given.
func ResolveAndReport(ctx context.Context, uris []string) error {
	upstream := endpoint.SystemResolver
	if *dnsServer != "" {
		transport := "udp"
		if *dnsOverTCP {
			transport = "tcp"
		}
		dnsclnt := dns.Client{Net: transport}
		pool, err := dnspool.New(ctx, int(*workerNumber), &dnsclnt, *dnsServer)
		if err != nil {
			return fmt.Errorf("cannot connect to DNS server: %w", err)
		}
		defer pool.StopWait()
		log.Debug().Str("server", *dnsServer).Str("transport", transport).
			Msg("asking a specific DNS server")
		upstream = pool
	}

	// Create an empty (concurrency-safe) result map with endpoint address
	// information and immediately fire off the rendering goroutine. The
	// rendering will only stop after tracking has finished because the result
	// stream channel has been closed. We then render a final update and end
	// rendering, signalling the end of our activities via renderingDone.
	addrs := batch.NewAddressMap()
	trackingDone := make(chan struct{})
	renderingDone := make(chan struct{})

	go func() {
		// Dunno what uilive's background updating mode using Start() is good
		// for? It may trigger anytime with the rendering into the buffer not
		// yet complete, thus making the terminal output very flickery. So we
		// avoid Start() and instead trigger an explicit flush to the terminal
		// after having completed the rendering.
		term := uilive.New()
		renderer := newRenderer(term)
		renderer.Indentation = int(*indentation)
		defer func() {
			renderData(term, renderer, addrs)
			renderer.Stop()
			close(renderingDone)
		}()
		renderData(term, renderer, addrs)
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				renderData(term, renderer, addrs)
			case <-trackingDone:
				return
			}
		}
	}()

	// Now lets put the required processing elements and their plumbing in
	// place.
	//
	//   - batch Resolver producing socket addresses from the list of URIs.
	//   - AddressMap consuming the resolution news.
	//
	// Rendering is done on the information collected by the AddressMap.
	resolver, news := batch.New(int(*workerNumber), upstream)
	go func() {
		_ = addrs.Track(ctx, news)
		close(trackingDone)
	}()

	// Finally feed the endpoint URIs into the resolver, so they can be
	// processed and move through the different stages. Then close the news
	// stream and wait for all the data to pass the stages and finally get
	// rendered a last time.
	go func() {
		resolver.ResolveEndpoints(ctx, uris)
		resolver.StopWait()
	}()
	<-renderingDone

	return nil
}

// renderData gets the current endpoint address data and then renders (and
// flushes) it to the terminal.
func renderData(term *uilive.Writer, r *renderer, data *batch.AddressMap) {
	r.Render(data.Get())
	term.Flush()
}
