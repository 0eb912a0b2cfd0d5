package scanning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"subsidy_pilot_service/internal/domain/scanning"
	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/logger"
	"subsidy_pilot_service/internal/pkg/retry"
)

const cloudVendor = "cloud-reputation"

// submitResponse is the cloud API's answer to a scan submission.
type submitResponse struct {
	ScanID string `json:"scan_id"`
}

// verdictResponse is the cloud API's answer to a verdict poll.
type verdictResponse struct {
	Status     string   `json:"status"`
	Clean      bool     `json:"clean"`
	Threats    []string `json:"threats"`
	Confidence float64  `json:"confidence"`
}

// cloudScanBackend submits files to a reputation API and polls for the verdict.
type cloudScanBackend struct {
	endpoint        string
	apiKey          string
	pollInterval    time.Duration
	pollMaxInterval time.Duration
	pollTimeout     time.Duration
	httpClient      *http.Client
	logger          logger.Logger
}

// NewCloudScanBackend creates a ScanBackend talking to a cloud reputation API.
func NewCloudScanBackend(settings *config.ScannerSettings, logger logger.Logger) (scanning.ScanBackend, error) {
	if settings.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required for the cloud scan backend")
	}

	return &cloudScanBackend{
		endpoint:        strings.TrimRight(settings.Endpoint, "/"),
		apiKey:          settings.APIKey,
		pollInterval:    settings.PollInterval,
		pollMaxInterval: settings.PollMaxInterval,
		pollTimeout:     settings.PollTimeout,
		httpClient:      &http.Client{},
		logger:          logger,
	}, nil
}

func (b *cloudScanBackend) Vendor() string {
	return cloudVendor
}

func (b *cloudScanBackend) Scan(ctx context.Context, fileName string, content []byte) (*scanning.ScanResult, error) {
	scanID, err := b.submit(ctx, fileName, content)
	if err != nil {
		return nil, err
	}

	pollCtx, cancel := context.WithTimeout(ctx, b.pollTimeout)
	defer cancel()

	backoff := retry.CappedExponentialBackoff(b.pollInterval, 2, b.pollMaxInterval)
	verdict, err := retry.Blocking(pollCtx, backoff, func() (*verdictResponse, error) {
		return b.pollVerdict(pollCtx, scanID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to obtain verdict for scan %s: %w", scanID, err)
	}

	return &scanning.ScanResult{
		Clean:      verdict.Clean,
		Threats:    verdict.Threats,
		Vendor:     cloudVendor,
		Confidence: verdict.Confidence,
		ScannedAt:  time.Now(),
	}, nil
}

// submit posts the file content and returns the scan id to poll.
func (b *cloudScanBackend) submit(ctx context.Context, fileName string, content []byte) (string, error) {
	query := url.Values{"file_name": {fileName}}
	requestURL := fmt.Sprintf("%s/scans?%s", b.endpoint, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to create scan request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if b.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+b.apiKey)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to submit scan: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("scan submission returned status %d: %s", resp.StatusCode, string(body))
	}

	var submitted submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&submitted); err != nil {
		return "", fmt.Errorf("failed to decode scan submission response: %w", err)
	}
	if submitted.ScanID == "" {
		return "", fmt.Errorf("scan submission response carries no scan id")
	}

	return submitted.ScanID, nil
}

// pollVerdict fetches the verdict once, returning retry.ErrRetry while pending.
func (b *cloudScanBackend) pollVerdict(ctx context.Context, scanID string) (*verdictResponse, error) {
	requestURL := fmt.Sprintf("%s/scans/%s", b.endpoint, url.PathEscape(scanID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create verdict request: %w", err)
	}
	if b.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+b.apiKey)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to poll verdict: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("verdict poll returned status %d", resp.StatusCode)
	}

	var verdict verdictResponse
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return nil, fmt.Errorf("failed to decode verdict response: %w", err)
	}

	if verdict.Status != "completed" {
		return nil, retry.ErrRetry
	}

	return &verdict, nil
}
