// Package doctor runs read-only health checks for the toolkit.
package doctor

// Status is the severity of a check result.
type Status int

const (
	// StatusOK means the check passed.
	StatusOK Status = iota
	// StatusWarn means the toolkit works but something needs attention.
	StatusWarn
	// StatusFail means an action will fail until the problem is fixed.
	StatusFail
)

// Result is one line of doctor output.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}

// HasFailure reports whether any result failed.
func HasFailure(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}

// HasWarning reports whether any result warned.
func HasWarning(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusWarn {
			return true
		}
	}
	return false
}
