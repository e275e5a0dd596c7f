// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package endpoint

import (
	"errors"
	"fmt"
)

// ErrInvalidScheme is returned when parsing an endpoint URI whose scheme
// token doesn't match any of the supported schemes.
var ErrInvalidScheme = errors.New("unsupported scheme")

// ErrNotNetwork is returned when trying to resolve a unix or file endpoint
// into socket addresses: these identify local resources and have no
// socket-address representation.
var ErrNotNetwork = errors.New("not a network endpoint")

// InvalidAddressError is returned when host, port, or path extraction from an
// endpoint URI fails syntactically, when a required component is empty, or
// when a tcp or udp endpoint lacks its mandatory explicit port.
type InvalidAddressError struct {
	Token string // the offending host, port, path, or authority token.
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid address: %s", e.Token)
}

// ResolutionError is returned when the resolver could not come up with any
// address for the domain name of an endpoint. The resolver's underlying
// failure is wrapped untouched and available for unwrapping.
type ResolutionError struct {
	Domain string
	Err    error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve domain %q: %v", e.Domain, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
