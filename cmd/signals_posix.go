//go:build !windows
// +build !windows

package cmd

import (
	"os"
	"syscall"
)

// TerminationSignals are those signals which filewatch considers to be
// requesting termination. Signals with special runtime handling (such as
// SIGABRT) are intentionally excluded.
var TerminationSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}
