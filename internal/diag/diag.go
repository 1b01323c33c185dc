// Package diag is a minimal process-wide debug facility. It is not a
// structured-logging framework: library packages (parser, retrieval,
// primer) and internal/toolserver never call it; only cmd/mind does, for
// ambient diagnostic output.
package diag

import (
	"fmt"
	"os"
	"sync"
)

var (
	enabled     = os.Getenv("MIND_DEBUG") != ""
	verboseMode bool
	quietMode   bool
	mu          sync.Mutex
)

// Enabled reports whether debug output is currently on, either via
// MIND_DEBUG or --verbose.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled || verboseMode
}

// SetVerbose enables or disables verbose output for the process.
func SetVerbose(verbose bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = verbose
}

// SetQuiet enables or disables quiet mode, which suppresses non-essential
// informational output regardless of verbosity.
func SetQuiet(quiet bool) {
	mu.Lock()
	defer mu.Unlock()
	quietMode = quiet
}

// IsQuiet reports whether quiet mode is enabled.
func IsQuiet() bool {
	mu.Lock()
	defer mu.Unlock()
	return quietMode
}

// Logf writes a debug line to stderr when debug output is enabled.
func Logf(format string, args ...interface{}) {
	if Enabled() {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// Printf writes informational output to stdout unless quiet mode is set.
func Printf(format string, args ...interface{}) {
	if IsQuiet() {
		return
	}
	fmt.Printf(format, args...)
}
