package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"subsidy_pilot_service/internal/domain/audit"
	"subsidy_pilot_service/internal/domain/scanning"
	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/logger"
)

// failOpenConfidence marks verdicts produced by the fail-open policy rather
// than a real scan.
const failOpenConfidence = 0.1

// scanService implements the ScanService interface: decision heuristics,
// backend dispatch and the fail-open policy.
type scanService struct {
	policy   scanning.Policy
	backend  scanning.ScanBackend
	failOpen bool
	audit    audit.Recorder
	logger   logger.Logger
}

// NewScanService creates a new instance of ScanService. A nil backend
// disables scanning entirely; every scannable file is then skipped.
func NewScanService(settings *config.ScannerSettings, backend scanning.ScanBackend, auditRecorder audit.Recorder, logger logger.Logger) (scanning.ScanService, error) {
	if settings.Backend != config.ScanBackendOff && backend == nil {
		return nil, fmt.Errorf("scan backend '%s' configured but no backend provided", settings.Backend)
	}

	return &scanService{
		policy: scanning.Policy{
			MaxScanSize:   settings.MaxScanSize,
			SkipBelowSize: settings.SkipBelowSize,
		},
		backend:  backend,
		failOpen: settings.FailOpen,
		audit:    auditRecorder,
		logger:   logger,
	}, nil
}

// ScanFile decides whether to scan and returns the uniform result.
func (s *scanService) ScanFile(ctx context.Context, fileName, contentType string, content []byte) (*scanning.ScanResult, scanning.Decision, error) {
	decision := s.policy.Decide(fileName, contentType, int64(len(content)))

	switch decision {
	case scanning.DecisionReject:
		return nil, decision, fmt.Errorf("file '%s' exceeds the maximum scannable size", fileName)

	case scanning.DecisionSkip:
		return &scanning.ScanResult{
			Clean:      true,
			Vendor:     "policy",
			Confidence: 1,
			ScannedAt:  time.Now(),
		}, decision, nil
	}

	if s.backend == nil {
		// Scanning is switched off; files pass through as skipped
		return &scanning.ScanResult{
			Clean:      true,
			Vendor:     "off",
			Confidence: 1,
			ScannedAt:  time.Now(),
		}, scanning.DecisionSkip, nil
	}

	result, err := s.backend.Scan(ctx, fileName, content)
	if err != nil {
		if !s.failOpen {
			return nil, decision, fmt.Errorf("scan failed for '%s': %w", fileName, err)
		}

		s.logger.Warn("Scan backend unavailable, failing open for ", fileName, ": ", err)
		s.audit.Record(ctx, &audit.Event{
			Action:   audit.ActionScanFailOpen,
			Resource: fileName,
			Detail:   err.Error(),
		})

		return &scanning.ScanResult{
			Clean:      true,
			Vendor:     s.backend.Vendor(),
			Confidence: failOpenConfidence,
			ScannedAt:  time.Now(),
			FailedOpen: true,
		}, decision, nil
	}

	if !result.Clean {
		s.audit.Record(ctx, &audit.Event{
			Action:   audit.ActionScanInfected,
			Resource: fileName,
			Detail:   strings.Join(result.Threats, ", "),
		})
	}

	return result, decision, nil
}
