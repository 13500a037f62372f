package parser

import "fmt"

// Trace is an append-only, per-invocation debug buffer for the item state
// machine. A nil *Trace is valid and discards every write, so callers that
// don't need a trace can pass nil without a branch.
type Trace struct {
	lines []string
}

// NewTrace returns an empty, ready-to-use trace.
func NewTrace() *Trace {
	return &Trace{}
}

// Logf appends a formatted line. No-op on a nil receiver.
func (t *Trace) Logf(format string, args ...interface{}) {
	if t == nil {
		return
	}
	t.lines = append(t.lines, fmt.Sprintf(format, args...))
}

// Lines returns the collected trace lines, or nil on a nil receiver.
func (t *Trace) Lines() []string {
	if t == nil {
		return nil
	}
	return t.lines
}
