// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"net/netip"
	"sort"

	"github.com/siemens/endpoints/batch"
	"github.com/siemens/endpoints/types"
)

// renderer renders the terminal display, based on endpoint address
// information passed to its Render method.
type renderer struct {
	Indentation int
	w           io.Writer
	spinner     *spinner
}

// newRenderer returns a renderer object rendering to the specified
// io.Writer.
func newRenderer(w io.Writer) *renderer {
	sp := newSpinner()
	sp.Start(*spinnerInterval)
	return &renderer{
		w:       w,
		spinner: sp,
	}
}

// Stop the renderer's background ticker.
func (r *renderer) Stop() {
	r.spinner.Stop()
}

// Render the given endpoint addresses.
func (r *renderer) Render(eas []batch.EndpointAddresses) {
	// If we don't have any endpoint addressing information yet, show a proxy
	// message.
	if len(eas) == 0 {
		fmt.Fprintln(r.w, "parsing endpoints...")
		return
	}
	sortEndpointAddresses(eas)
	// For neat display, determine the length of the longest endpoint URI in
	// the data to display, so that the addresses column doesn't zig-zag
	// around.
	maxlen := 0
	for _, ea := range eas {
		if l := len(ea.URI); l > maxlen {
			maxlen = l
		}
	}
	fmt.Fprintf(r.w, "socket addresses for %s\n",
		countStyle.Styled(fmt.Sprintf("%d endpoint(s)", len(eas))))
	for _, ea := range eas {
		r.renderEndpointDetails(maxlen, ea)
	}
}

// renderEndpointDetails renders a single endpoint's URI together with its
// resolution state and socket addresses.
func (r *renderer) renderEndpointDetails(labelwidth int, ea batch.EndpointAddresses) {
	fmt.Fprintf(r.w, "%-*s%-*s", r.Indentation, "", labelwidth, ea.URI)
	switch ea.Status {
	case types.Pending:
		fmt.Fprint(r.w, " ? queued")
	case types.Resolving:
		fmt.Fprint(r.w, resolvingStyle.Styled(" "+r.spinner.Spinner()+"resolving "))
	case types.Failed:
		reason := "resolution failed"
		if ea.Err != nil {
			reason = ea.Err.Error()
		}
		fmt.Fprint(r.w, failedStyle.Styled(" × "+reason+" "))
	case types.Resolved:
		sortAddrPorts(ea.Addrs)
		for idx, addr := range ea.Addrs {
			if idx > 0 {
				fmt.Fprint(r.w, " ")
			}
			fmt.Fprint(r.w, resolvedStyle.Styled(" ✔ "+addr.String()+" "))
		}
	}
	fmt.Fprintln(r.w)
}

// sortAddrPorts sorts a slice of socket addresses in place: IPv4 before
// IPv6, then by address value, then by port.
func sortAddrPorts(addrs []netip.AddrPort) {
	sort.Slice(addrs, func(a, b int) bool {
		if c := addrs[a].Addr().Compare(addrs[b].Addr()); c != 0 {
			return c < 0
		}
		return addrs[a].Port() < addrs[b].Port()
	})
}

// sortEndpointAddresses sorts endpoints in place for display by their
// canonical URI, which conveniently also groups them by scheme.
func sortEndpointAddresses(eas []batch.EndpointAddresses) {
	sort.Slice(eas, func(a, b int) bool {
		return eas[a].URI < eas[b].URI
	})
}
