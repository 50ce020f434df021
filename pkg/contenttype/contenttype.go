// Package contenttype decides which decoder an input document needs.
package contenttype

import (
	"bytes"
	"encoding/json"
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Category represents a broad input classification.
type Category string

const (
	JSON        Category = "json"
	YAML        Category = "yaml"
	Unknown     Category = "unknown"
	Unsupported Category = "unsupported"
)

// Classify returns the category for a content-type header value.
// Uses mime.ParseMediaType to strip parameters (charset, boundary, etc.)
// before matching. Falls back to strings.ToLower for malformed values.
// Returns Unknown for empty content-type strings.
func Classify(contentType string) Category {
	if strings.TrimSpace(contentType) == "" {
		return Unknown
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	// Short names are accepted as well ("json", "yaml").
	switch mediaType {
	case "json":
		return JSON
	case "yaml", "yml":
		return YAML
	}

	// JSON: application/json, application/vnd.*+json, ndjson excluded
	if strings.Contains(mediaType, "json") && !strings.Contains(mediaType, "ndjson") {
		return JSON
	}

	// YAML: application/yaml, text/yaml, application/x-yaml
	if strings.Contains(mediaType, "yaml") {
		return YAML
	}

	// Plain text may still hold a document; let the content decide.
	if mediaType == "text/plain" {
		return Unknown
	}

	return Unsupported
}

// FromFilename classifies by file extension.
func FromFilename(name string) Category {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".geojson", ".har":
		return JSON
	case ".yaml", ".yml":
		return YAML
	default:
		return Unknown
	}
}

// Sniff guesses the category from the document itself. Documents opening an
// object or array, and any other valid JSON, are JSON; remaining UTF-8 text is YAML.
func Sniff(data []byte) Category {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) == 0 {
		return Unknown
	}
	if !utf8.Valid(trimmed) {
		return Unsupported
	}
	if trimmed[0] == '{' || trimmed[0] == '[' || json.Valid(trimmed) {
		return JSON
	}
	return YAML
}

// Resolve picks a category from, in order, an explicit content type, the file
// name and the content.
func Resolve(contentType, filename string, data []byte) Category {
	if c := Classify(contentType); c != Unknown {
		return c
	}
	if c := FromFilename(filename); c != Unknown {
		return c
	}
	return Sniff(data)
}
