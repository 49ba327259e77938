package dictionary

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the supported dataset file formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatJSON               // JSON array of entries, the original data.json layout
	FormatMsgpack            // msgpack snapshot written by Convert
)

// FormatInfo contains metadata about a dataset file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatJSON: {
		Format:      FormatJSON,
		Description: "JSON Glossary",
		Extensions:  []string{".json"},
		MinSize:     2, // "[]"
	},
	FormatMsgpack: {
		Format:      FormatMsgpack,
		Description: "Msgpack Glossary Snapshot",
		Extensions:  []string{".msgpack", ".mpk"},
		MinSize:     1,
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format: %v", expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	validExt := false
	for _, validExtension := range formatInfo.Extensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	if expectedFormat == FormatJSON {
		return validateJSONFormat(filename)
	}
	return nil
}

// validateJSONFormat checks that the file holds a top-level JSON array
func validateJSONFormat(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil {
		return fmt.Errorf("failed to read from %s: %w", filename, err)
	}

	head := bytes.TrimLeft(buffer[:n], " \t\r\n\ufeff")
	if len(head) == 0 || head[0] != '[' {
		return fmt.Errorf("file %s does not start with a JSON array", filename)
	}

	log.Debugf("JSON file %s validated", filename)
	return nil
}

// DetectFileFormat attempts to detect the format of a file
func DetectFileFormat(filename string) (FileFormat, error) {
	for _, format := range []FileFormat{FormatJSON, FormatMsgpack} {
		if err := ValidateFileFormat(filename, format); err == nil {
			return format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
