//go:build unit
// +build unit

package scanning

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCloudBackendForTest(t *testing.T, endpoint string) *cloudScanBackend {
	t.Helper()

	settings := &config.ScannerSettings{
		Backend:  config.ScanBackendCloud,
		Endpoint: endpoint,
		APIKey:   "test-key",
	}
	settings.ApplyDefaults()
	settings.PollInterval = 10 * time.Millisecond
	settings.PollMaxInterval = 50 * time.Millisecond
	settings.PollTimeout = 2 * time.Second

	backend, err := NewCloudScanBackend(settings, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	return backend.(*cloudScanBackend)
}

func TestCloudScanBackend_Scan_CleanVerdict(t *testing.T) {
	var polls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(map[string]string{"scan_id": "scan-1"})
		case http.MethodGet:
			// Pending on the first poll, completed afterwards
			if atomic.AddInt32(&polls, 1) == 1 {
				_ = json.NewEncoder(w).Encode(map[string]any{"status": "pending"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status":     "completed",
				"clean":      true,
				"confidence": 0.97,
			})
		}
	}))
	defer server.Close()

	backend := newCloudBackendForTest(t, server.URL)

	result, err := backend.Scan(context.Background(), "report.pdf", []byte("content"))
	require.NoError(t, err)
	assert.True(t, result.Clean)
	assert.Empty(t, result.Threats)
	assert.InDelta(t, 0.97, result.Confidence, 0.001)
	assert.Equal(t, "cloud-reputation", result.Vendor)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&polls), int32(2))
}

func TestCloudScanBackend_Scan_InfectedVerdict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			_ = json.NewEncoder(w).Encode(map[string]string{"scan_id": "scan-2"})
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status":     "completed",
				"clean":      false,
				"threats":    []string{"Eicar-Test-Signature"},
				"confidence": 1,
			})
		}
	}))
	defer server.Close()

	backend := newCloudBackendForTest(t, server.URL)

	result, err := backend.Scan(context.Background(), "payload.exe", []byte("content"))
	require.NoError(t, err)
	assert.False(t, result.Clean)
	assert.Equal(t, []string{"Eicar-Test-Signature"}, result.Threats)
}

func TestCloudScanBackend_Scan_EscapesFileNameInQuery(t *testing.T) {
	fileNames := []string{"annual report.pdf", "my report&x=1.pdf", "50% subsidy #2.pdf"}

	for _, fileName := range fileNames {
		t.Run(fileName, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.Method {
				case http.MethodPost:
					// The query must round-trip the filename intact
					if r.URL.Query().Get("file_name") != fileName {
						http.Error(w, "bad file_name", http.StatusBadRequest)
						return
					}
					_ = json.NewEncoder(w).Encode(map[string]string{"scan_id": "scan-4"})
				case http.MethodGet:
					_ = json.NewEncoder(w).Encode(map[string]any{
						"status":     "completed",
						"clean":      true,
						"confidence": 0.95,
					})
				}
			}))
			defer server.Close()

			backend := newCloudBackendForTest(t, server.URL)

			result, err := backend.Scan(context.Background(), fileName, []byte("content"))
			require.NoError(t, err)
			assert.True(t, result.Clean)
		})
	}
}

func TestCloudScanBackend_Scan_SubmissionRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	backend := newCloudBackendForTest(t, server.URL)

	_, err := backend.Scan(context.Background(), "report.pdf", []byte("content"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestCloudScanBackend_Scan_PollTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			_ = json.NewEncoder(w).Encode(map[string]string{"scan_id": "scan-3"})
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "pending"})
		}
	}))
	defer server.Close()

	backend := newCloudBackendForTest(t, server.URL)
	backend.pollTimeout = 50 * time.Millisecond

	_, err := backend.Scan(context.Background(), "report.pdf", []byte("content"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewCloudScanBackend_MissingEndpoint(t *testing.T) {
	settings := &config.ScannerSettings{Backend: config.ScanBackendCloud}
	settings.ApplyDefaults()

	_, err := NewCloudScanBackend(settings, testutil.SetupTestLogger(t))
	assert.Error(t, err)
}
