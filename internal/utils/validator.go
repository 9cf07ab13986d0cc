package utils

import (
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// Only standard image, video, or audio files are accepted for upload.
var allowedMIMEPrefixes = []string{"image/", "video/", "audio/"}

func AllowedMIME(mimeType string) bool {
	for _, prefix := range allowedMIMEPrefixes {
		if strings.HasPrefix(mimeType, prefix) {
			return true
		}
	}
	return false
}

// DetectMIME resolves the MIME type for an upload: file extension first,
// then the client-declared header, then content sniffing.
func DetectMIME(filename, headerType string, data []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(filename)); t != "" {
		// strip optional parameters like "; charset=utf-8"
		if i := strings.Index(t, ";"); i >= 0 {
			t = t[:i]
		}
		return strings.TrimSpace(t)
	}
	if headerType != "" {
		return headerType
	}
	return http.DetectContentType(data)
}

func ValidateFileHeader(h *multipart.FileHeader, maxBytes int64) error {
	if h.Size == 0 {
		return fmt.Errorf("%w: empty file", ErrValidation)
	}
	if maxBytes > 0 && h.Size > maxBytes {
		return fmt.Errorf("%w: file exceeds %d bytes", ErrValidation, maxBytes)
	}
	return nil
}

// SplitCSV splits a comma separated form value, trimming whitespace and
// dropping empty entries.
func SplitCSV(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
