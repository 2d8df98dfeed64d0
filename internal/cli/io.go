package cli

import (
	"fmt"
	"io"
)

// IO collects command output and keeps problems visible.
//
// Two severities exist. Errors abort a command and go to stderr once,
// prefixed "error:". Warnings flag degraded-but-usable results: they
// are echoed to stderr before the first stdout write and again by
// Finish, so they survive piping through head or tail, and any
// warning turns the exit code to 1 while stdout output still happens.
type IO struct {
	stdout   io.Writer
	stderr   io.Writer
	warnings []string
	flushed  bool
}

// NewIO returns an IO writing to the given streams.
func NewIO(stdout, stderr io.Writer) *IO {
	return &IO{stdout: stdout, stderr: stderr}
}

// Warn records an actionable warning: what degraded, and what the
// caller can do about it.
func (o *IO) Warn(issue string, action string) {
	o.warnings = append(o.warnings, fmt.Sprintf("%s: %s", issue, action))
}

// Errorf reports a fatal command error on stderr.
func (o *IO) Errorf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.stderr, "error: "+format+"\n", a...)
}

// Println writes to stdout, echoing pending warnings first.
func (o *IO) Println(a ...any) {
	o.flushLeading()
	_, _ = fmt.Fprintln(o.stdout, a...)
}

// Printf writes formatted output to stdout, echoing pending warnings
// first.
func (o *IO) Printf(format string, a ...any) {
	o.flushLeading()
	_, _ = fmt.Fprintf(o.stdout, format, a...)
}

// Finish echoes the warnings a final time and returns the exit code:
// 1 if any warning was recorded, 0 otherwise.
func (o *IO) Finish() int {
	o.flushLeading()
	o.echoWarnings()

	if len(o.warnings) > 0 {
		return 1
	}

	return 0
}

func (o *IO) flushLeading() {
	if !o.flushed && len(o.warnings) > 0 {
		o.echoWarnings()
		o.flushed = true
	}
}

func (o *IO) echoWarnings() {
	for _, w := range o.warnings {
		_, _ = fmt.Fprintln(o.stderr, "warning:", w)
	}
}
