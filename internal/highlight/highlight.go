// Package highlight colors YAML and JSON for terminal output
package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

const (
	// Formatter is the chroma formatter used for terminal output
	Formatter = "terminal256"
	// Style is the chroma style used for terminal output
	Style = "monokai"
)

// Language is a source language the highlighter knows
type Language string

const (
	YAML Language = "yaml"
	JSON Language = "json"
)

// Highlight returns source with terminal color escapes for lang
func Highlight(source string, lang Language) (string, error) {
	var b strings.Builder
	if err := quick.Highlight(&b, source, string(lang), Formatter, Style); err != nil {
		return "", fmt.Errorf("failed to highlight %s: %w", lang, err)
	}
	return b.String(), nil
}

// Maybe highlights source when enabled is true and returns it unchanged
// otherwise or when highlighting fails
func Maybe(source string, lang Language, enabled bool) string {
	if !enabled {
		return source
	}
	out, err := Highlight(source, lang)
	if err != nil {
		return source
	}
	return out
}

// ForContentType picks the language for a response media type
func ForContentType(mediaType string) (Language, bool) {
	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return JSON, true
	case mediaType == "application/yaml" || mediaType == "application/x-yaml" || mediaType == "text/yaml":
		return YAML, true
	default:
		return "", false
	}
}
