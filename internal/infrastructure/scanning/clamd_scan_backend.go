package scanning

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"strings"
	"time"

	"subsidy_pilot_service/internal/domain/scanning"
	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/logger"
)

const (
	clamdVendor    = "clamav"
	clamdChunkSize = 2048
)

// clamdScanBackend streams files to a local clamd daemon over its INSTREAM
// protocol: a zero-terminated command, length-prefixed chunks and a
// zero-length chunk marking the end of the stream.
type clamdScanBackend struct {
	address string
	dialer  *net.Dialer
	logger  logger.Logger
}

// NewClamdScanBackend creates a ScanBackend talking to a clamd daemon.
func NewClamdScanBackend(settings *config.ScannerSettings, logger logger.Logger) (scanning.ScanBackend, error) {
	if settings.ClamdAddress == "" {
		return nil, fmt.Errorf("clamd_address is required for the clamd scan backend")
	}

	return &clamdScanBackend{
		address: settings.ClamdAddress,
		dialer:  &net.Dialer{Timeout: 10 * time.Second},
		logger:  logger,
	}, nil
}

func (b *clamdScanBackend) Vendor() string {
	return clamdVendor
}

func (b *clamdScanBackend) Scan(ctx context.Context, fileName string, content []byte) (*scanning.ScanResult, error) {
	conn, err := b.dialer.DialContext(ctx, "tcp", b.address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clamd at %s: %w", b.address, err)
	}
	defer func() {
		_ = conn.Close()
	}()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("failed to set connection deadline: %w", err)
		}
	}

	if _, err := conn.Write([]byte("zINSTREAM\x00")); err != nil {
		return nil, fmt.Errorf("failed to send INSTREAM command: %w", err)
	}

	if err := b.streamChunks(conn, content); err != nil {
		return nil, err
	}

	response, err := bufio.NewReader(conn).ReadString('\x00')
	if err != nil {
		return nil, fmt.Errorf("failed to read clamd response: %w", err)
	}

	return b.parseResponse(fileName, strings.TrimRight(response, "\x00")), nil
}

// streamChunks writes length-prefixed chunks followed by a zero-length chunk.
func (b *clamdScanBackend) streamChunks(conn net.Conn, content []byte) error {
	sizeBuf := make([]byte, 4)
	for offset := 0; offset < len(content); offset += clamdChunkSize {
		end := offset + clamdChunkSize
		if end > len(content) {
			end = len(content)
		}
		chunk := content[offset:end]

		binary.BigEndian.PutUint32(sizeBuf, uint32(len(chunk)))
		if _, err := conn.Write(sizeBuf); err != nil {
			return fmt.Errorf("failed to write chunk size: %w", err)
		}
		if _, err := conn.Write(chunk); err != nil {
			return fmt.Errorf("failed to write chunk: %w", err)
		}
	}

	binary.BigEndian.PutUint32(sizeBuf, 0)
	if _, err := conn.Write(sizeBuf); err != nil {
		return fmt.Errorf("failed to terminate stream: %w", err)
	}
	return nil
}

// parseResponse interprets "stream: OK" and "stream: <name> FOUND" replies.
func (b *clamdScanBackend) parseResponse(fileName, response string) *scanning.ScanResult {
	response = strings.TrimSpace(response)
	result := &scanning.ScanResult{
		Vendor:     clamdVendor,
		Confidence: 1,
		ScannedAt:  time.Now(),
	}

	switch {
	case strings.HasSuffix(response, "OK"):
		result.Clean = true
	case strings.HasSuffix(response, "FOUND"):
		threat := strings.TrimSuffix(strings.TrimPrefix(response, "stream: "), " FOUND")
		result.Threats = []string{threat}
		b.logger.Warn("clamd flagged file ", fileName, " as ", threat)
	default:
		// ERROR or unknown reply; treat as a dirty verdict with low confidence
		result.Threats = []string{response}
		result.Confidence = 0.5
	}

	return result
}
