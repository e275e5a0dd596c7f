// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"os"
)

func main() {
	// Deviating from the usual cobra boilerplate we don't print the error
	// here: cobra has already rendered it and printing it again would show
	// it twice, see https://github.com/spf13/cobra/issues/304.
	if err := newRootCmd().Execute(); err != nil {
		osExit(1)
	}
}

// Exit hook, replaced in CLI unit tests.
var osExit = os.Exit
