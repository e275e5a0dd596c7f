// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import "fmt"

// Status indicates how far along the resolution of an endpoint into its
// socket addresses has come.
type Status int

// The resolution states of an endpoint address.
const (
	Pending   Status = iota // endpoint queued, resolution not yet started.
	Resolving               // resolution in progress.
	Failed                  // endpoint could not be resolved.
	Resolved                // endpoint successfully resolved into an address.
)

// String returns the clear-text representation of a Status value.
func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolving:
		return "resolving"
	case Failed:
		return "failed"
	case Resolved:
		return "resolved"
	}
	return fmt.Sprintf("Status(%d)", s)
}

// IsPending returns true as long as an endpoint hasn't been either
// successfully or unsuccessfully resolved.
func (s Status) IsPending() bool {
	switch s {
	case Pending, Resolving:
		return true
	default:
		return false
	}
}
