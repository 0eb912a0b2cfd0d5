package scanning

import "time"

// ScanResult is the uniform verdict returned by every scan backend.
type ScanResult struct {
	Clean      bool
	Threats    []string
	Vendor     string
	Confidence float64
	ScannedAt  time.Time
	// FailedOpen is set when the backend errored and the fail-open policy
	// produced the clean verdict instead of a real scan.
	FailedOpen bool
}

// Decision is the outcome of the pre-scan heuristics.
type Decision int

// Decision constants
const (
	DecisionScan Decision = iota
	DecisionSkip
	DecisionReject
)

func (d Decision) String() string {
	switch d {
	case DecisionScan:
		return "scan"
	case DecisionSkip:
		return "skip"
	case DecisionReject:
		return "reject"
	default:
		return "unknown"
	}
}
