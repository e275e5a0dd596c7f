// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	indentation     *uint
	spinnerInterval *time.Duration
	workerNumber    *uint
	debug           *bool
	dnsServer       *string
	dnsOverTCP      *bool
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	With().Timestamp().Logger().
	Level(zerolog.WarnLevel)

func newRootCmd() (rootCmd *cobra.Command) {
	rootCmd = &cobra.Command{
		Use:     "netdig [flags] endpoint-uri ...",
		Short:   "netdig parses endpoint URIs and digs up their socket addresses",
		Version: "0.9",
		Args:    cobra.MinimumNArgs(1),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if *indentation > 80 {
				return fmt.Errorf("--indent width out of range [0..80]")
			}
			if *workerNumber < 1 || *workerNumber > 10 {
				return fmt.Errorf("--workers out of range [1..10]")
			}
			if *spinnerInterval < 10*time.Millisecond {
				return fmt.Errorf("--spinner must be at least 10ms")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if *debug {
				log = log.Level(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			}
			return ResolveAndReport(context.Background(), args)
		},
	}
	// Sets up the flags.
	debug = rootCmd.PersistentFlags().Bool(
		"debug", false, "enable debugging output")
	indentation = rootCmd.PersistentFlags().Uint(
		"indent", 3, "indentation width")
	spinnerInterval = rootCmd.PersistentFlags().Duration(
		"spinner", 100*time.Millisecond, "spinner interval")
	workerNumber = rootCmd.PersistentFlags().Uint(
		"workers", 5, "number of DNS resolution workers")
	dnsServer = rootCmd.PersistentFlags().String(
		"dns", "", "\"host:port\" of a specific DNS server to ask, instead of the system resolver")
	dnsOverTCP = rootCmd.PersistentFlags().Bool(
		"tcp", false, "use DNS over TCP when asking a specific DNS server")
	return
}
