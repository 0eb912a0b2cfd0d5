package scanning

import (
	"path/filepath"
	"strings"
)

// Policy holds the thresholds for the scan decision heuristics.
type Policy struct {
	// MaxScanSize is the largest file accepted at all. Larger files are rejected.
	MaxScanSize int64
	// SkipBelowSize lets trusted content types below this size skip scanning.
	SkipBelowSize int64
}

// Content types that never carry executable payloads in practice and may
// skip scanning when small enough.
var trustedContentTypes = map[string]bool{
	"text/plain":      true,
	"text/csv":        true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/gif":       true,
	"application/pdf": true,
}

// Extensions that must always be scanned regardless of size or declared type.
var riskyExtensions = map[string]bool{
	".exe":  true,
	".dll":  true,
	".bat":  true,
	".cmd":  true,
	".sh":   true,
	".js":   true,
	".jar":  true,
	".zip":  true,
	".rar":  true,
	".7z":   true,
	".gz":   true,
	".tar":  true,
	".docm": true,
	".xlsm": true,
	".pptm": true,
}

// Decide applies the MIME/size heuristics for a single file.
// Risky extensions are always scanned, oversized files rejected, and small
// files of trusted types skipped.
func (p Policy) Decide(fileName, contentType string, size int64) Decision {
	if p.MaxScanSize > 0 && size > p.MaxScanSize {
		return DecisionReject
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if riskyExtensions[ext] {
		return DecisionScan
	}

	mediaType := contentType
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	if trustedContentTypes[strings.ToLower(mediaType)] && size < p.SkipBelowSize {
		return DecisionSkip
	}

	return DecisionScan
}
