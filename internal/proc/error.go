package proc

import (
	"fmt"
	"time"
)

// Formats holds the messages used to render a ProcessError.
// Failed and Canceled take the summary; TimedOut takes the timeout and the summary.
type Formats struct {
	Failed   string
	TimedOut string
	Canceled string
}

// ProcessError reports an unsuccessful external process run.
// Kind is the sentinel error callers match with errors.Is.
type ProcessError struct {
	Kind    error
	Result  Result
	Timeout time.Duration
	Formats Formats
}

// Error renders a user-facing message that carries the captured stderr text.
func (e *ProcessError) Error() string {
	summary := e.Result.Summary()
	switch {
	case e.Result.TimedOut && e.Formats.TimedOut != "":
		return fmt.Sprintf(e.Formats.TimedOut, e.Timeout, summary)
	case e.Result.Canceled && e.Formats.Canceled != "":
		return fmt.Sprintf(e.Formats.Canceled, summary)
	case e.Formats.Failed != "":
		return fmt.Sprintf(e.Formats.Failed, summary)
	default:
		return fmt.Sprintf("%v: %s", e.Kind, summary)
	}
}

// Unwrap returns the failure kind.
func (e *ProcessError) Unwrap() error {
	return e.Kind
}

// Stderr returns the captured standard error text verbatim.
func (e *ProcessError) Stderr() string {
	return e.Result.Stderr
}
