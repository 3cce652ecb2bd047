/*Package apierror contains AutoPas's two-tier error reporting convention.

External errors name a bad configuration or a violated invariant that the
caller can fix (a box mismatch, an unsupported traversal, an empty search
space). Internal errors name a bug in the tuning protocol itself and carry
a stack trace.
*/
package apierror

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
)

// External reports an unrecoverable, user-fixable error and terminates the
// process. Configuration errors and invariant violations (spec §7) are
// reported this way: the message must name the offending inputs and the
// configuration in effect. It has the same signature as fmt.Printf.
func External(format string, a ...interface{}) {
	log.Printf("AutoPas exited early with the following error:\n"+format, a...)
	os.Exit(1)
}

// Internal reports a protocol bug — something that requires a code dive,
// not a configuration change — along with a stack trace, and terminates
// the process. Transient under-determination (spec §7, e.g. the tuner is
// asked for an optimum before any evidence exists) is reported this way.
func Internal(format string, a ...interface{}) {
	log.Println("AutoPas exited early with the following internal error:")
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprintf(os.Stderr, "\n\n")
	debug.PrintStack()
	os.Exit(1)
}

// ExternalError and InternalError are non-fatal counterparts returned by
// code paths that can't unilaterally terminate the process (e.g. code
// called from library entry points with callers who may want to recover).
// Fatal reporting via External/Internal remains the default for the
// façade's own top-level operations, matching the teacher's convention
// that configuration and invariant failures kill the process outright.
type ExternalError struct{ msg string }

func (e *ExternalError) Error() string { return e.msg }

// NewExternal builds a non-fatal ExternalError with the same message
// conventions as External, for call sites (like tests) that need to
// observe the failure rather than have the process exit.
func NewExternal(format string, a ...interface{}) *ExternalError {
	return &ExternalError{msg: fmt.Sprintf(format, a...)}
}

type InternalError struct{ msg string }

func (e *InternalError) Error() string { return e.msg }

func NewInternal(format string, a ...interface{}) *InternalError {
	return &InternalError{msg: fmt.Sprintf(format, a...)}
}
