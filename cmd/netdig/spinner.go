// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// A small braille spinner for the live terminal display.

package main

import (
	"sync"
	"time"
)

// spinnerPhases is the cycle of braille "frames" a spinner steps through,
// each padded so it can directly prefix an address or status column.
var spinnerPhases = []string{"⠋ ", "⠙ ", "⠸ ", "⠴ ", "⠦ ", "⠇ "}

// spinner steps through its phases on a background ticker until stopped;
// whoever renders simply asks for the current phase whenever redrawing.
type spinner struct {
	ticker *time.Ticker
	done   chan struct{}
	mu     sync.Mutex
	phase  int
}

// newSpinner returns a new spinner; later call the Start method to make it
// spinning, and the Stop method to stop it and release background resources.
func newSpinner() *spinner {
	return &spinner{
		done: make(chan struct{}),
	}
}

// Spinner returns the spinner string for the current phase.
func (s *spinner) Spinner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return spinnerPhases[s.phase]
}

// Start the spinner to spin in steps every specified interval.
func (s *spinner) Start(interval time.Duration) {
	s.ticker = time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.mu.Lock()
				s.phase = (s.phase + 1) % len(spinnerPhases)
				s.mu.Unlock()
			case <-s.done:
				s.ticker.Stop()
				return
			}
		}
	}()
}

// Stop the spinner and release the background resources.
func (s *spinner) Stop() {
	close(s.done)
}
