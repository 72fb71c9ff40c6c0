// Package raceerr defines the error taxonomy the race core uses to decide
// what gets propagated, what gets logged and swallowed, and what is a plain
// diagnostic returned to a caller.
package raceerr

import "errors"

// Load is returned when a race or its dependencies (track folder, driver
// records, curvature file) cannot be assembled. The caller never observes a
// partially constructed race state: a Load error means the prior state, if
// any, is untouched.
var Load = errors.New("load error")

// Command marks a diagnostic produced by the command dispatcher: malformed
// input or an unknown entity. It is never logged, only returned.
var Command = errors.New("command error")

// Persistence marks a durable-store write failure. It is logged at error
// level and never propagated past the call site that triggered it; the
// in-memory event journal and race state remain authoritative.
var Persistence = errors.New("persistence error")

// Invariant marks violation of an internal precondition, such as two races
// being Ongoing at once. Invariant errors indicate a bug; the system logs
// and refuses the operation rather than corrupting state.
var Invariant = errors.New("invariant error")

// Wrap attaches one of the sentinels above to err so callers can classify it
// with errors.Is while keeping the underlying message.
func Wrap(kind error, err error) error {
	if err == nil {
		return nil
	}
	return &wrapped{kind: kind, err: err}
}

type wrapped struct {
	kind error
	err  error
}

func (w *wrapped) Error() string { return w.err.Error() }
func (w *wrapped) Unwrap() []error {
	return []error{w.kind, w.err}
}
