package scanning

import "context"

// ScanBackend is implemented by each external scanning engine.
type ScanBackend interface {
	// Scan submits the file content and blocks until a verdict or ctx is done.
	Scan(ctx context.Context, fileName string, content []byte) (*ScanResult, error)
	// Vendor identifies the backend in results and audit entries.
	Vendor() string
}

// ScanService wraps the decision heuristics, backend dispatch and the
// fail-open policy into a single entry point.
type ScanService interface {
	// ScanFile decides whether to scan and returns the uniform result.
	// A skipped file yields a clean result with full confidence.
	ScanFile(ctx context.Context, fileName, contentType string, content []byte) (*ScanResult, Decision, error)
}
