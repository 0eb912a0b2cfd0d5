//go:build unit
// +build unit

package scanning

import (
	"context"
	"encoding/binary"
	"io"
	"net"
	"testing"

	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startFakeClamd runs a one-shot clamd that reads one INSTREAM session and
// answers with the given reply. The streamed body is sent on the returned
// channel once the session completes.
func startFakeClamd(t *testing.T, reply string) (addr string, received chan []byte) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	received = make(chan []byte, 1)

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer func() { _ = conn.Close() }()

		// Command terminated by the zero byte
		command := make([]byte, len("zINSTREAM\x00"))
		if _, err := io.ReadFull(conn, command); err != nil {
			return
		}

		// Length-prefixed chunks until the zero-length terminator
		var body []byte
		sizeBuf := make([]byte, 4)
		for {
			if _, err := io.ReadFull(conn, sizeBuf); err != nil {
				return
			}
			size := binary.BigEndian.Uint32(sizeBuf)
			if size == 0 {
				break
			}
			chunk := make([]byte, size)
			if _, err := io.ReadFull(conn, chunk); err != nil {
				return
			}
			body = append(body, chunk...)
		}

		received <- body
		_, _ = conn.Write([]byte(reply + "\x00"))
	}()

	return listener.Addr().String(), received
}

func newClamdBackendForTest(t *testing.T, addr string) *clamdScanBackend {
	t.Helper()

	settings := &config.ScannerSettings{
		Backend:      config.ScanBackendClamd,
		ClamdAddress: addr,
	}
	settings.ApplyDefaults()

	backend, err := NewClamdScanBackend(settings, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	return backend.(*clamdScanBackend)
}

func TestClamdScanBackend_Scan_Clean(t *testing.T) {
	addr, received := startFakeClamd(t, "stream: OK")
	backend := newClamdBackendForTest(t, addr)

	content := []byte("harmless text content")
	result, err := backend.Scan(context.Background(), "notes.txt", content)
	require.NoError(t, err)

	assert.True(t, result.Clean)
	assert.Empty(t, result.Threats)
	assert.Equal(t, "clamav", result.Vendor)
	assert.Equal(t, content, <-received)
}

func TestClamdScanBackend_Scan_Infected(t *testing.T) {
	addr, _ := startFakeClamd(t, "stream: Eicar-Test-Signature FOUND")
	backend := newClamdBackendForTest(t, addr)

	result, err := backend.Scan(context.Background(), "eicar.com", []byte("X5O!"))
	require.NoError(t, err)

	assert.False(t, result.Clean)
	assert.Equal(t, []string{"Eicar-Test-Signature"}, result.Threats)
}

func TestClamdScanBackend_Scan_ChunksLargeContent(t *testing.T) {
	addr, received := startFakeClamd(t, "stream: OK")
	backend := newClamdBackendForTest(t, addr)

	// Content spanning several chunks must arrive intact
	content := make([]byte, clamdChunkSize*3+17)
	for i := range content {
		content[i] = byte(i % 251)
	}

	result, err := backend.Scan(context.Background(), "big.bin", content)
	require.NoError(t, err)
	assert.True(t, result.Clean)
	assert.Equal(t, content, <-received)
}

func TestClamdScanBackend_Scan_DaemonUnreachable(t *testing.T) {
	backend := newClamdBackendForTest(t, "127.0.0.1:1")

	_, err := backend.Scan(context.Background(), "notes.txt", []byte("content"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to clamd")
}

func TestNewClamdScanBackend_MissingAddress(t *testing.T) {
	settings := &config.ScannerSettings{Backend: config.ScanBackendClamd}
	settings.ApplyDefaults()

	_, err := NewClamdScanBackend(settings, testutil.SetupTestLogger(t))
	assert.Error(t, err)
}
