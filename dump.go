package typedini

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Azhovan/typedini/internal/normalize"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DumpOption configures dump behavior using the functional options pattern.
type DumpOption func(*dumpConfig)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"
)

// dumpConfig holds options for Dump.
type dumpConfig struct {
	format      string // One of the format* constants
	withSources bool   // Include provenance for each entry
	indent      string // Indentation for JSON and YAML output (default: "  ")
	section     string // Restrict output to one section
	hasSection  bool
}

// WithSources includes source attribution for each entry in the output.
func WithSources() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.withSources = true
	}
}

// AsJSON outputs the snapshot as JSON instead of text.
func AsJSON() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.format = formatJSON
	}
}

// AsYAML outputs the snapshot as YAML instead of text.
func AsYAML() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.format = formatYAML
	}
}

// AsTOML outputs the snapshot as TOML instead of text.
func AsTOML() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.format = formatTOML
	}
}

// WithIndent sets the indentation for JSON and YAML output.
// Default is two spaces ("  "). An empty indent gives compact JSON.
func WithIndent(indent string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.indent = indent
	}
}

// OnlySection restricts the output to a single section.
func OnlySection(name string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.section = name
		cfg.hasSection = true
	}
}

// DumpFormat returns the DumpOption for a format name: "text", "json", "yaml" or "toml".
func DumpFormat(name string) (DumpOption, error) {
	switch strings.ToLower(name) {
	case "", formatText:
		return func(cfg *dumpConfig) { cfg.format = formatText }, nil
	case formatJSON:
		return AsJSON(), nil
	case formatYAML, "yml":
		return AsYAML(), nil
	case formatTOML:
		return AsTOML(), nil
	default:
		return nil, fmt.Errorf("unsupported dump format: %s (supported: text, json, yaml, toml)", name)
	}
}

// Dump writes the snapshot in the requested format. Sections and keys appear
// in file order for text output; structured formats follow their encoder's
// key ordering.
func Dump(w io.Writer, s *Snapshot, opts ...DumpOption) error {
	if s == nil {
		return ErrNilSnapshot
	}

	config := dumpConfig{
		format: formatText,
		indent: "  ",
	}
	for _, opt := range opts {
		opt(&config)
	}

	sections := s.order
	if config.hasSection {
		if !s.HasSection(config.section) {
			return &MissingSectionError{Path: s.path, Section: config.section}
		}
		sections = []string{config.section}
	}

	switch config.format {
	case formatJSON:
		return dumpAsJSON(w, buildDocument(s, sections, config), config)
	case formatYAML:
		return dumpAsYAML(w, buildDocument(s, sections, config), config)
	case formatTOML:
		return dumpAsTOML(w, buildDocument(s, sections, config))
	default:
		return dumpAsText(w, s, sections, config)
	}
}

// dumpAsText outputs one "section:key: value" line per entry.
func dumpAsText(w io.Writer, s *Snapshot, sections []string, config dumpConfig) error {
	for _, section := range sections {
		for _, key := range s.keys[section] {
			line := fmt.Sprintf("%s: %s", normalize.QualifiedKey(section, key), formatValue(s.sections[section][key]))
			if config.withSources {
				line += " " + formatProvenance(s.provenance[entryRef{section: section, key: key}])
			}
			line += "\n"

			if _, err := io.WriteString(w, line); err != nil {
				return fmt.Errorf("write error: %w", err)
			}
		}
	}

	return nil
}

func dumpAsJSON(w io.Writer, doc map[string]any, config dumpConfig) error {
	var data []byte
	var err error
	if config.indent != "" {
		data, err = json.MarshalIndent(doc, "", config.indent)
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}

	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

func dumpAsYAML(w io.Writer, doc map[string]any, config dumpConfig) error {
	enc := yaml.NewEncoder(w)
	indent := len(config.indent)
	if indent == 0 {
		indent = 2
	}
	enc.SetIndent(indent)

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("yaml encode error: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("yaml encode error: %w", err)
	}

	return nil
}

// dumpAsTOML writes doc as TOML. TOML has no null: null mapping values are
// left out and a null list element is an error.
func dumpAsTOML(w io.Writer, doc map[string]any) error {
	clean, err := withoutNulls(doc, "")
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(w).Encode(clean); err != nil {
		return fmt.Errorf("toml encode error: %w", err)
	}
	return nil
}

// withoutNulls copies v, dropping nil mapping values. path names v in errors.
func withoutNulls(v any, path string) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			if item == nil {
				continue
			}
			clean, err := withoutNulls(item, joinPath(path, k))
			if err != nil {
				return nil, err
			}
			out[k] = clean
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			elemPath := fmt.Sprintf("%s[%d]", path, i)
			if item == nil {
				return nil, fmt.Errorf("toml encode error: %s is null, which TOML cannot represent", elemPath)
			}
			clean, err := withoutNulls(item, elemPath)
			if err != nil {
				return nil, err
			}
			out[i] = clean
		}
		return out, nil
	default:
		return v, nil
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// buildDocument builds the nested section/key structure for encoders.
func buildDocument(s *Snapshot, sections []string, config dumpConfig) map[string]any {
	doc := make(map[string]any, len(sections))
	for _, section := range sections {
		entries := make(map[string]any, len(s.keys[section]))
		for _, key := range s.keys[section] {
			value := copyValue(s.sections[section][key])
			if !config.withSources {
				entries[key] = value
				continue
			}

			prov := s.provenance[entryRef{section: section, key: key}]
			entry := map[string]any{
				"value":  value,
				"source": prov.SourceName,
				"kind":   prov.Kind.String(),
			}
			if prov.Inherited {
				entry["inherited"] = true
			}
			if prov.Degraded {
				entry["degraded"] = true
			}
			entries[key] = entry
		}
		doc[section] = entries
	}
	return doc
}

// formatValue renders a coerced value for text output.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(t)
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(data)
	}
}

func formatProvenance(p EntryProvenance) string {
	parts := []string{"source: " + p.SourceName, "kind: " + p.Kind.String()}
	if p.Inherited {
		parts = append(parts, "inherited")
	}
	if p.Degraded {
		parts = append(parts, "degraded")
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
