package validation

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/username/fundadvisor/backend/src/logger"
)

// ErrValidationFailed wraps every document-text validation failure so
// handlers can map the whole family to a 400.
var ErrValidationFailed = errors.New("document text validation failed")

// AllowedClientContentTypes is a map for quick lookup of allowed
// client-declared MIME types. The upload is the text already extracted from
// the carrier's PDF by the prior stage, so only text-ish types are expected.
var AllowedClientContentTypes = map[string]bool{
	"text/plain":                true,
	"text/plain; charset=utf-8": true,
	"application/octet-stream":  true,  // Fallback, but be more cautious
	"application/pdf":           false, // raw PDFs belong to the extraction stage, not here
}

// ValidateClientContentType checks the Content-Type header provided by the client.
func ValidateClientContentType(contentType string) error {
	if allowed, exists := AllowedClientContentTypes[strings.ToLower(contentType)]; !exists || !allowed {
		if logger.L != nil {
			logger.L.Warn("Disallowed client-declared Content-Type", "contentType", contentType)
		}
		return fmt.Errorf("%w: client-declared file type '%s' is not allowed for report text upload", ErrValidationFailed, contentType)
	}
	return nil
}

// ValidateFileContentByMagicBytes checks the actual file content signature.
// It returns the detected content type and an error if validation fails.
func ValidateFileContentByMagicBytes(file io.ReadSeeker) (string, error) {
	if file == nil {
		return "", fmt.Errorf("%w: file is nil", ErrValidationFailed)
	}

	buffer := make([]byte, 512) // Read first 512 bytes for MIME detection
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file for content type checking: %w", err)
	}

	// Reset the file read pointer so the ingestion pipeline can read the full text.
	_, seekErr := file.Seek(0, io.SeekStart)
	if seekErr != nil {
		return "", fmt.Errorf("failed to reset file read pointer: %w", seekErr)
	}

	detectedContentType := http.DetectContentType(buffer[:n])
	detectedContentType = strings.ToLower(strings.Split(detectedContentType, ";")[0])

	allowedDetectedTypes := map[string]bool{
		"text/plain":               true,
		"application/octet-stream": true, // UTF-8 with heavy CJK can be detected as this; strict text validation follows
	}

	if !allowedDetectedTypes[detectedContentType] {
		if logger.L != nil {
			logger.L.Warn("Disallowed detected file content type (magic bytes)", "detectedContentType", detectedContentType)
		}
		return detectedContentType, fmt.Errorf("%w: detected file content type '%s' is not consistent with extracted report text", ErrValidationFailed, detectedContentType)
	}

	if logger.L != nil {
		logger.L.Debug("File content type (magic bytes) validated", "detectedContentType", detectedContentType)
	}
	return detectedContentType, nil
}

// ValidateReportText rejects empty or non-UTF-8 document text before it
// reaches the extraction pipeline.
func ValidateReportText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: document text is empty", ErrValidationFailed)
	}
	if !utf8.ValidString(text) {
		return fmt.Errorf("%w: document text is not valid UTF-8", ErrValidationFailed)
	}
	return nil
}
