package changedetect

import (
	"context"

	"subsidy_pilot_service/internal/domain/subsidies"
)

// SourceClient fetches summaries and full records from one external source.
type SourceClient interface {
	// FetchSummary retrieves the record count and content hash of a source.
	FetchSummary(ctx context.Context, source Source) (Summary, error)
	// FetchRecords retrieves the full subsidy records of a source.
	FetchRecords(ctx context.Context, source Source) ([]*subsidies.Subsidy, error)
}

// Detector runs the poll-diff-trigger cycle over registered sources.
type Detector interface {
	// CheckSource polls one source, diffs against the stored snapshot and,
	// on change, syncs its subsidy records.
	CheckSource(ctx context.Context, source Source) (*DetectionResult, error)
	// CheckAll polls every registered source concurrently.
	CheckAll(ctx context.Context) ([]*DetectionResult, error)
}

// SnapshotRepository defines the persistence interface for source snapshots
type SnapshotRepository interface {
	// Get retrieves the snapshot for a source code, or nil when the source
	// has never been observed
	Get(ctx context.Context, sourceCode string) (*SourceSnapshot, error)
	// Put creates or replaces the snapshot for a source code
	Put(ctx context.Context, snapshot *SourceSnapshot) error
}

// SourceRegistry provides the current set of sources to poll.
type SourceRegistry interface {
	// Sources returns the currently registered sources.
	Sources() []Source
}
