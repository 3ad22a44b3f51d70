package reporter

import (
	"fmt"
	"strings"
)

// Format is an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name. The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: text, json, yaml", s)
	}
}

func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// IsStructured reports whether f is machine readable.
func (f Format) IsStructured() bool {
	return f == FormatJSON || f == FormatYAML
}
