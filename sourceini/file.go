package sourceini

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Azhovan/typedini/internal/normalize"
	"golang.org/x/text/encoding"
	"gopkg.in/ini.v1"
)

// DefaultSection is the section whose keys are inherited by every other section.
const DefaultSection = "DEFAULT"

// Options configures INI file reading.
type Options struct {
	// Encoding decodes the file before parsing. Nil means UTF-8
	// (a UTF-8 or UTF-16 byte order mark is honoured).
	Encoding encoding.Encoding
}

// Entry is one raw key/value pair of a section.
type Entry struct {
	Key       string
	Value     string
	Inherited bool // Came from the DEFAULT section
}

// Section is a named, ordered group of entries.
type Section struct {
	Name    string
	Entries []Entry
}

// Lookup returns the entry for key.
func (s Section) Lookup(key string) (Entry, bool) {
	for _, e := range s.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Document is the parsed content of one INI file.
type Document struct {
	Path     string
	Sections []Section
}

// Section returns the named section. DEFAULT is never returned as a section.
func (d *Document) Section(name string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// ReadError reports a file that is missing, unreadable or cannot be decoded.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read config file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// SyntaxError reports malformed INI text.
type SyntaxError struct {
	Path string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("parse INI file %s: %v", e.Path, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Source reads a single INI file.
type Source struct {
	path string
	opts Options
}

// New creates an INI file source.
func New(path string, opts Options) *Source {
	return &Source{
		path: path,
		opts: opts,
	}
}

// Name returns a human-readable identifier for this source.
func (s *Source) Name() string {
	return normalize.SourceName(s.path)
}

// Read loads and parses the file. The file is read in full and closed before
// parsing starts.
func (s *Source) Read() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &ReadError{Path: s.path, Err: err}
	}

	if s.opts.Encoding != nil {
		data, err = s.opts.Encoding.NewDecoder().Bytes(data)
		if err != nil {
			return nil, &ReadError{Path: s.path, Err: fmt.Errorf("decode: %w", err)}
		}
	}

	data, raws := shieldQuotedValues(data)

	f, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:        true,
		IgnoreContinuation:         true,
		PreserveSurroundedQuote:    true,
		AllowPythonMultilineValues: true,
		KeyValueDelimiters:         "=:",
	}, data)
	if err != nil {
		return nil, &SyntaxError{Path: s.path, Err: err}
	}

	return buildDocument(s.path, f, raws), nil
}

// rawMarker prefixes the placeholders written by shieldQuotedValues.
const rawMarker = "\x00raw:"

// shieldQuotedValues replaces values that ini.v1 would treat as quoted (a
// leading backtick or """) with numbered placeholders, so the text is kept
// exactly as written. It returns the rewritten data and the original values.
func shieldQuotedValues(data []byte) ([]byte, []string) {
	lines := strings.SplitAfter(string(data), "\n")

	var raws []string
	inKey := false
	for i, line := range lines {
		body := strings.TrimRight(line, "\r\n")
		trimmed := strings.TrimSpace(body)

		switch {
		case trimmed == "":
			inKey = false
			continue
		case trimmed[0] == ';' || trimmed[0] == '#':
			continue
		case trimmed[0] == '[':
			inKey = false
			continue
		case inKey && len(body) > len(strings.TrimLeft(body, " \t\f")):
			// Continuation line of a multi-line value.
			continue
		}

		inKey = true
		if trimmed[0] == '"' || trimmed[0] == '`' {
			// Quoted key name.
			continue
		}
		idx := strings.IndexAny(body, "=:")
		if idx < 0 {
			continue
		}
		value := strings.TrimSpace(body[idx+1:])
		if !strings.HasPrefix(value, "`") && !strings.HasPrefix(value, `"""`) {
			continue
		}

		lines[i] = body[:idx+1] + " " + rawMarker + strconv.Itoa(len(raws)) + "\x00" + line[len(body):]
		raws = append(raws, value)
	}

	if raws == nil {
		return data, nil
	}
	return []byte(strings.Join(lines, "")), raws
}

// restoreValue puts back the original text of a value shielded by
// shieldQuotedValues. Continuation lines that followed it are kept.
func restoreValue(v string, raws []string) string {
	if !strings.HasPrefix(v, rawMarker) {
		return v
	}
	rest := v[len(rawMarker):]
	end := strings.IndexByte(rest, 0)
	if end < 0 {
		return v
	}
	n, err := strconv.Atoi(rest[:end])
	if err != nil || n < 0 || n >= len(raws) {
		return v
	}
	return raws[n] + rest[end+1:]
}

// buildDocument flattens the parsed file into ordered sections, merging
// DEFAULT keys into every named section that does not override them.
func buildDocument(path string, f *ini.File, raws []string) *Document {
	doc := &Document{Path: path}

	var defaults []Entry
	for _, sec := range f.Sections() {
		if sec.Name() != DefaultSection {
			continue
		}
		for _, k := range sec.Keys() {
			defaults = append(defaults, Entry{Key: k.Name(), Value: restoreValue(k.Value(), raws), Inherited: true})
		}
	}

	for _, sec := range f.Sections() {
		if sec.Name() == DefaultSection {
			continue
		}

		section := Section{Name: sec.Name()}
		own := make(map[string]bool)
		for _, k := range sec.Keys() {
			own[k.Name()] = true
			section.Entries = append(section.Entries, Entry{Key: k.Name(), Value: restoreValue(k.Value(), raws)})
		}
		for _, d := range defaults {
			if !own[d.Key] {
				section.Entries = append(section.Entries, d)
			}
		}

		doc.Sections = append(doc.Sections, section)
	}

	return doc
}
