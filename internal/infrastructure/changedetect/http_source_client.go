package changedetect

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"subsidy_pilot_service/internal/domain/changedetect"
	"subsidy_pilot_service/internal/domain/subsidies"
	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/logger"

	"github.com/google/uuid"
)

// summaryPayload is the JSON body of a source's summary endpoint.
type summaryPayload struct {
	RecordCount int    `json:"record_count"`
	ContentHash string `json:"content_hash"`
}

// recordPayload is one subsidy record in a source's records endpoint.
type recordPayload struct {
	ExternalID  string  `json:"external_id"`
	Title       string  `json:"title"`
	Agency      string  `json:"agency"`
	Country     string  `json:"country"`
	Deadline    string  `json:"deadline"`
	MinFunding  float64 `json:"min_funding"`
	MaxFunding  float64 `json:"max_funding"`
	MinHectares float64 `json:"min_hectares"`
	MaxHectares float64 `json:"max_hectares"`
	Eligibility string  `json:"eligibility"`
}

// httpSourceClient fetches summaries and records from open-data endpoints.
type httpSourceClient struct {
	httpClient *http.Client
	logger     logger.Logger
}

// NewHTTPSourceClient creates a SourceClient over plain HTTP.
func NewHTTPSourceClient(settings *config.ChangeDetectorSettings, logger logger.Logger) (changedetect.SourceClient, error) {
	timeout := settings.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &httpSourceClient{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

func (c *httpSourceClient) FetchSummary(ctx context.Context, source changedetect.Source) (changedetect.Summary, error) {
	body, err := c.get(ctx, source.SummaryURL)
	if err != nil {
		return changedetect.Summary{}, fmt.Errorf("failed to fetch summary for source '%s': %w", source.Code, err)
	}

	var payload summaryPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return changedetect.Summary{}, fmt.Errorf("failed to decode summary for source '%s': %w", source.Code, err)
	}

	// Sources without a precomputed hash get one derived from the body
	if payload.ContentHash == "" {
		sum := sha256.Sum256(body)
		payload.ContentHash = hex.EncodeToString(sum[:])
	}

	return changedetect.Summary{
		RecordCount: payload.RecordCount,
		ContentHash: payload.ContentHash,
	}, nil
}

func (c *httpSourceClient) FetchRecords(ctx context.Context, source changedetect.Source) ([]*subsidies.Subsidy, error) {
	if source.RecordsURL == "" {
		return nil, nil
	}

	body, err := c.get(ctx, source.RecordsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records for source '%s': %w", source.Code, err)
	}

	var payloads []recordPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, fmt.Errorf("failed to decode records for source '%s': %w", source.Code, err)
	}

	now := time.Now()
	records := make([]*subsidies.Subsidy, 0, len(payloads))
	for _, p := range payloads {
		if p.ExternalID == "" {
			c.logger.Warn("Skipping record without external id from source ", source.Code)
			continue
		}

		country := p.Country
		if country == "" {
			country = source.Country
		}

		subsidy := &subsidies.Subsidy{
			ID:          uuid.New().String(),
			SourceCode:  source.Code,
			ExternalID:  p.ExternalID,
			Title:       p.Title,
			Agency:      p.Agency,
			Country:     country,
			MinFunding:  p.MinFunding,
			MaxFunding:  p.MaxFunding,
			MinHectares: p.MinHectares,
			MaxHectares: p.MaxHectares,
			Eligibility: p.Eligibility,
			ContentHash: hashRecord(p),
			UpdatedAt:   now,
		}

		if p.Deadline != "" {
			deadline, err := time.Parse(time.RFC3339, p.Deadline)
			if err != nil {
				return nil, fmt.Errorf("invalid deadline '%s' in record '%s': %w", p.Deadline, p.ExternalID, err)
			}
			subsidy.Deadline = &deadline
		}

		records = append(records, subsidy)
	}

	return records, nil
}

func (c *httpSourceClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// hashRecord fingerprints one record for per-subsidy change tracking.
func hashRecord(p recordPayload) string {
	encoded, _ := json.Marshal(p)
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:])
}
