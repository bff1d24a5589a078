package subtitle

import (
	"fmt"
	"os"
	"strings"

	"github.com/MimeLyc/srt-translator/internal/apperr"
)

// CheckFileType accepts a file when either its media type is the SubRip
// type or its name ends in ".srt".
func CheckFileType(name, mediaType string) error {
	if isSubRipMediaType(mediaType) || strings.HasSuffix(strings.ToLower(name), Ext) {
		return nil
	}
	return apperr.New(apperr.ErrInputType, "Invalid file type. Please upload a .srt file.").
		WithContext("file", name)
}

func isSubRipMediaType(mediaType string) bool {
	mediaType = strings.TrimSpace(mediaType)
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}
	return strings.EqualFold(strings.TrimSpace(mediaType), MediaType)
}

// ReadFile reads a SubRip document from disk as text
func ReadFile(path string) (string, error) {
	if err := CheckFileType(path, ""); err != nil {
		return "", err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf("subtitle file does not exist: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read subtitle file: %w", err)
	}
	return string(data), nil
}
