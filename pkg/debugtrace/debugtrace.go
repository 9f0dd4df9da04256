// Package debugtrace is the environment-driven debug/tracing subsystem
// the compiler's error channel writes through (spec §6, "Error channel").
// It is deliberately thin: a single gate on pkg/envflags' Debug flag
// wrapping the standard library's log.Logger, matching the teacher's own
// preference for fmt/log over a structured logging dependency for
// compiler-internal diagnostics.
package debugtrace

import (
	"fmt"
	"log"
	"os"

	"github.com/orc-lang/orc/pkg/envflags"
)

var logger = log.New(os.Stderr, "orc: ", 0)

// Printf writes a diagnostic line when ORC_CODE=debug is set; otherwise
// it is a silent no-op, so hot compiler passes never pay for formatting
// they won't use (checked before, not after, building the string).
func Printf(format string, args ...interface{}) {
	if !envflags.Get().Debug {
		return
	}
	logger.Printf(format, args...)
}

// Errorf is like Printf but always reports the diagnostic — used for the
// one line of context accompanying a latched compiler error, regardless
// of the debug flag, since a compile failure is always worth explaining.
func Errorf(format string, args ...interface{}) string {
	msg := fmt.Sprintf(format, args...)
	logger.Print(msg)
	return msg
}
