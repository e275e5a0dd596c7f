// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import "github.com/muesli/termenv"

var (
	resolvingStyle = termenv.Style{}.Foreground(termenv.ANSIYellow)
	resolvedStyle  = termenv.Style{}.Foreground(termenv.ANSIGreen)
	failedStyle    = termenv.Style{}.Foreground(termenv.ANSIRed)
)

var countStyle = termenv.Style{}.Bold()
