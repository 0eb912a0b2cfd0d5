package app

import (
	"context"
	"fmt"
	"time"

	"subsidy_pilot_service/internal/domain/changedetect"
	"subsidy_pilot_service/internal/domain/subsidies"
	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/logger"
	"subsidy_pilot_service/internal/pkg/retry"

	"golang.org/x/sync/errgroup"
)

// changeDetector implements the Detector interface: poll, diff against the
// stored snapshot and sync records on change.
type changeDetector struct {
	sourceClient       changedetect.SourceClient
	sourceRegistry     changedetect.SourceRegistry
	snapshotRepository changedetect.SnapshotRepository
	subsidyRepository  subsidies.SubsidyRepository
	retryInterval      time.Duration
	maxRetries         int
	logger             logger.Logger
}

// NewChangeDetector creates a new instance of Detector
func NewChangeDetector(
	settings *config.ChangeDetectorSettings,
	sourceClient changedetect.SourceClient,
	sourceRegistry changedetect.SourceRegistry,
	snapshotRepository changedetect.SnapshotRepository,
	subsidyRepository subsidies.SubsidyRepository,
	logger logger.Logger,
) (changedetect.Detector, error) {
	settings.ApplyDefaults()

	return &changeDetector{
		sourceClient:       sourceClient,
		sourceRegistry:     sourceRegistry,
		snapshotRepository: snapshotRepository,
		subsidyRepository:  subsidyRepository,
		retryInterval:      settings.RetryInterval,
		maxRetries:         settings.MaxRetries,
		logger:             logger,
	}, nil
}

// CheckSource polls one source, diffs against the stored snapshot and, on
// change, syncs its subsidy records. A source observed for the first time
// always counts as changed. An unchanged source still refreshes its
// snapshot timestamp.
func (d *changeDetector) CheckSource(ctx context.Context, source changedetect.Source) (*changedetect.DetectionResult, error) {
	summary, err := d.fetchSummaryWithRetry(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch summary for source '%s': %w", source.Code, err)
	}

	previous, err := d.snapshotRepository.Get(ctx, source.Code)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	changed := previous == nil || previous.Changed(summary)
	result := &changedetect.DetectionResult{
		SourceCode:      source.Code,
		ChangesDetected: changed,
		RecordCount:     summary.RecordCount,
		CheckedAt:       time.Now(),
	}

	if changed {
		synced, err := d.syncRecords(ctx, source)
		if err != nil {
			return nil, err
		}
		result.SyncedRecords = synced
	}

	snapshot := &changedetect.SourceSnapshot{
		SourceCode:  source.Code,
		RecordCount: summary.RecordCount,
		ContentHash: summary.ContentHash,
		CheckedAt:   result.CheckedAt,
	}
	if err := d.snapshotRepository.Put(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if changed {
		d.logger.Info("Source ", source.Code, " changed, synced ", result.SyncedRecords, " records")
	}
	return result, nil
}

// fetchSummaryWithRetry retries transient summary failures a bounded number
// of times.
func (d *changeDetector) fetchSummaryWithRetry(ctx context.Context, source changedetect.Source) (changedetect.Summary, error) {
	attempts := 0
	backoff := retry.StaticBackoff(d.retryInterval)

	return retry.Blocking(ctx, backoff, func() (changedetect.Summary, error) {
		summary, err := d.sourceClient.FetchSummary(ctx, source)
		if err != nil {
			attempts++
			if attempts <= d.maxRetries {
				d.logger.Warn("Summary fetch attempt ", attempts, " for source ", source.Code, " failed: ", err)
				return changedetect.Summary{}, retry.ErrRetry
			}
			return changedetect.Summary{}, err
		}
		return summary, nil
	})
}

// syncRecords fetches the full record set and upserts every subsidy.
func (d *changeDetector) syncRecords(ctx context.Context, source changedetect.Source) (int, error) {
	records, err := d.sourceClient.FetchRecords(ctx, source)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch records for source '%s': %w", source.Code, err)
	}

	for _, record := range records {
		if err := d.subsidyRepository.Upsert(ctx, record); err != nil {
			return 0, fmt.Errorf("failed to upsert record '%s' from source '%s': %w", record.ExternalID, source.Code, err)
		}
	}

	return len(records), nil
}

// CheckAll polls every registered source concurrently. A failing source is
// logged and skipped so one unreachable portal cannot stall the rest.
func (d *changeDetector) CheckAll(ctx context.Context) ([]*changedetect.DetectionResult, error) {
	sources := d.sourceRegistry.Sources()
	results := make([]*changedetect.DetectionResult, len(sources))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, source := range sources {
		group.Go(func() error {
			result, err := d.CheckSource(groupCtx, source)
			if err != nil {
				d.logger.Error("Check failed for source ", source.Code, ": ", err)
				return nil
			}
			results[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	succeeded := make([]*changedetect.DetectionResult, 0, len(results))
	for _, result := range results {
		if result != nil {
			succeeded = append(succeeded, result)
		}
	}

	return succeeded, nil
}
