// Package sourceini reads INI files into ordered raw key/value entries.
//
// Parsing follows Python configparser conventions: "=" or ":" delimiters,
// full-line ";" and "#" comments, indented continuation lines, case-sensitive
// names and a DEFAULT section whose keys every other section inherits.
//
// Example:
//
//	doc, err := sourceini.New("settings.ini", sourceini.Options{}).Read()
//	export, ok := doc.Section("Export")
package sourceini
