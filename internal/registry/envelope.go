package registry

import "fmt"

// Envelope is the result mapping returned by every tool handler. A
// successful invocation carries the tool's payload fields; a failed one
// carries a single "error" key with a human-readable message. Exactly one
// of the two shapes is produced per invocation, never both.
type Envelope map[string]any

// Fail builds an error envelope.
func Fail(msg string) Envelope {
	return Envelope{"error": msg}
}

// Failf builds an error envelope from a format string.
func Failf(format string, args ...any) Envelope {
	return Fail(fmt.Sprintf(format, args...))
}

// Failed reports whether the envelope carries an error.
func (e Envelope) Failed() bool {
	_, ok := e["error"]
	return ok
}
