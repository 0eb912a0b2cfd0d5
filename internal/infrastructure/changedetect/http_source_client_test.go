//go:build unit
// +build unit

package changedetect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"subsidy_pilot_service/internal/domain/changedetect"
	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSourceClientForTest(t *testing.T) changedetect.SourceClient {
	t.Helper()

	settings := &config.ChangeDetectorSettings{RegistryPath: "sources.yaml"}
	settings.ApplyDefaults()

	client, err := NewHTTPSourceClient(settings, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	return client
}

func TestHTTPSourceClient_FetchSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"record_count": 42, "content_hash": "a3f5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f60718293"}`))
	}))
	defer server.Close()

	client := newSourceClientForTest(t)
	source := changedetect.Source{Code: "eu-cap", SummaryURL: server.URL, Country: "DE"}

	summary, err := client.FetchSummary(context.Background(), source)
	require.NoError(t, err)
	assert.Equal(t, 42, summary.RecordCount)
	assert.Equal(t, "a3f5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f60718293", summary.ContentHash)
}

func TestHTTPSourceClient_FetchSummary_HashesBodyWhenMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"record_count": 7}`))
	}))
	defer server.Close()

	client := newSourceClientForTest(t)
	source := changedetect.Source{Code: "eu-cap", SummaryURL: server.URL, Country: "DE"}

	summary, err := client.FetchSummary(context.Background(), source)
	require.NoError(t, err)
	assert.Equal(t, 7, summary.RecordCount)
	assert.Len(t, summary.ContentHash, 64)
}

func TestHTTPSourceClient_FetchSummary_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newSourceClientForTest(t)
	source := changedetect.Source{Code: "eu-cap", SummaryURL: server.URL, Country: "DE"}

	_, err := client.FetchSummary(context.Background(), source)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestHTTPSourceClient_FetchRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{
				"external_id": "EU-2026-001",
				"title": "Eco-scheme direct payment",
				"agency": "BLE",
				"deadline": "2026-12-31T23:59:59Z",
				"min_funding": 500,
				"max_funding": 25000,
				"min_hectares": 1,
				"max_hectares": 200,
				"eligibility": "Active farmers"
			},
			{
				"title": "record without id is skipped"
			}
		]`))
	}))
	defer server.Close()

	client := newSourceClientForTest(t)
	source := changedetect.Source{Code: "eu-cap", SummaryURL: server.URL, RecordsURL: server.URL, Country: "DE"}

	records, err := client.FetchRecords(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, "EU-2026-001", record.ExternalID)
	assert.Equal(t, "eu-cap", record.SourceCode)
	// Country falls back to the source country when the record omits it
	assert.Equal(t, "DE", record.Country)
	require.NotNil(t, record.Deadline)
	assert.Equal(t, 2026, record.Deadline.Year())
	assert.Len(t, record.ContentHash, 64)
	assert.NoError(t, record.Validate())
}

func TestHTTPSourceClient_FetchRecords_NoRecordsURL(t *testing.T) {
	client := newSourceClientForTest(t)
	source := changedetect.Source{Code: "eu-cap", SummaryURL: "http://example.com/summary", Country: "DE"}

	records, err := client.FetchRecords(context.Background(), source)
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestHTTPSourceClient_FetchRecords_InvalidDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"external_id": "EU-1", "title": "x", "deadline": "next spring"}]`))
	}))
	defer server.Close()

	client := newSourceClientForTest(t)
	source := changedetect.Source{Code: "eu-cap", SummaryURL: server.URL, RecordsURL: server.URL, Country: "DE"}

	_, err := client.FetchRecords(context.Background(), source)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid deadline")
}
