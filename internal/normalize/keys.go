package normalize

import (
	"path/filepath"
	"strings"
)

// QualifiedKey joins a section and a key into the "section:key" form used in
// messages and text dumps.
// Examples:
//   - QualifiedKey("Export", "enabled") → "Export:enabled"
//   - QualifiedKey("", "enabled") → "enabled"
func QualifiedKey(section, key string) string {
	if section == "" {
		return key
	}
	if key == "" {
		return section
	}
	return section + ":" + key
}

// SourceName derives the provenance identifier of a file path.
// Only the base name is kept so dumps do not leak directory layout.
// Examples:
//   - SourceName("/etc/app/valid.ini") → "file:valid.ini"
func SourceName(path string) string {
	return "file:" + filepath.Base(path)
}

// SplitList splits a comma-separated value and trims whitespace around each
// item. Empty items between commas are kept; an empty or blank input yields
// an empty slice.
// Examples:
//   - "A, B ,C" → ["A", "B", "C"]
//   - "1,,2" → ["1", "", "2"]
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}

	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
