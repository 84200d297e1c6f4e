// Command nucmer aligns nucleotide sequences against a set of references.
//
// Usage:
//
//	nucmer <command> [options]
//
// Commands:
//
//	align     Align queries against references
//	score     Score a pair of gapped sequences
//	stats     Calculate sequence statistics
//	version   Show version information
//
// Every option can also be set with a NUCMER_ environment variable or a
// config file given with --config.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error(err)
		stop()
		os.Exit(1)
	}
}
