// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package batch

import (
	"context"
	"net/netip"
	"sync"

	"github.com/siemens/endpoints/types"
)

// EndpointAddresses is one endpoint (in canonical textual form) together
// with its overall resolution status and the socket addresses resolved so
// far.
type EndpointAddresses struct {
	URI    string           `json:"uri"`
	Status types.Status     `json:"status"`
	Addrs  []netip.AddrPort `json:"addrs"`
	Err    error            `json:"-"` // optional failure details.
}

// AddressMap maps endpoints to their resolution state and socket addresses.
// A typical use case for an AddressMap is to consume resolution news from an
// event stream (channel) sending updates as endpoints are submitted,
// resolved into their socket addresses, or failed.
type AddressMap struct {
	m  map[string]*EndpointAddresses
	mu sync.Mutex
}

// NewAddressMap returns a new and properly initialized AddressMap.
func NewAddressMap() *AddressMap {
	return &AddressMap{
		m: map[string]*EndpointAddresses{},
	}
}

// Get returns (copies of) all endpoint addresses from the map.
func (m *AddressMap) Get() []EndpointAddresses {
	m.mu.Lock()
	defer m.mu.Unlock()
	eas := make([]EndpointAddresses, 0, len(m.m))
	for _, ea := range m.m {
		clone := *ea
		clone.Addrs = append([]netip.AddrPort(nil), ea.Addrs...)
		eas = append(eas, clone)
	}
	return eas
}

// Update the map with a resolution update, augmenting socket addresses in
// case they are yet unknown. The overall endpoint status only ever moves
// forward through the resolution lifecycle, so stale updates arriving late
// never downgrade an endpoint.
func (m *AddressMap) Update(update Update) {
	if update.URI == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ea, ok := m.m[update.URI]
	if !ok {
		ea = &EndpointAddresses{URI: update.URI}
		m.m[update.URI] = ea
	}
	if update.Status > ea.Status { // slightly simplified "update" rule
		ea.Status = update.Status
	}
	// Error details only ever belong to a failed endpoint; the same canonical
	// endpoint may be resolved multiple times in a batch, so a successful
	// resolution supersedes failure details no matter in which order the
	// updates trickle in.
	switch {
	case ea.Status == types.Failed && update.Err != nil:
		ea.Err = update.Err
	case ea.Status == types.Resolved:
		ea.Err = nil
	}
	if update.Status != types.Resolved || !update.Addr.IsValid() {
		return
	}
	for _, addr := range ea.Addrs {
		if addr == update.Addr {
			return
		}
	}
	ea.Addrs = append(ea.Addrs, update.Addr)
}

// Track resolution updates received from the specified news channel until
// the channel is closed or the context done. Track only returns after
// processing all updates or when the context is done.
func (m *AddressMap) Track(ctx context.Context, news <-chan Update) error {
	for {
		select {
		case update, ok := <-news:
			if !ok {
				return nil
			}
			m.Update(update)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
