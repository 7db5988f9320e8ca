package typedini

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Azhovan/typedini/internal/normalize"
	"github.com/Azhovan/typedini/sourceini"
	"golang.org/x/text/encoding"
)

// Loader reads INI files and coerces their values.
// Every call re-reads the file; nothing is cached between calls.
// Safe for concurrent use once configured.
type Loader struct {
	report   Reporter
	encoding encoding.Encoding
	now      func() time.Time
}

// NewLoader creates a Loader that reads UTF-8 files and discards warnings.
func NewLoader() *Loader {
	return &Loader{
		now: time.Now,
	}
}

// WithReporter sets where coercion fallback warnings go.
func (l *Loader) WithReporter(report Reporter) *Loader {
	l.report = report
	return l
}

// WithEncoding decodes files from enc instead of UTF-8.
func (l *Loader) WithEncoding(enc encoding.Encoding) *Loader {
	l.encoding = enc
	return l
}

// Load reads path and coerces every key of every section.
func (l *Loader) Load(ctx context.Context, path string) (*Snapshot, error) {
	doc, err := l.read(ctx, path)
	if err != nil {
		return nil, err
	}

	snap := newSnapshot(path, l.clock())
	for _, sec := range doc.Sections {
		snap.addSection(sec.Name)
		l.coerceSection(snap, path, sec)
	}

	return snap, nil
}

// LoadSection reads path and returns every key of section, coerced.
// Returns *MissingFileError or *MissingSectionError; keys that are not in the
// file are simply absent from the result.
func (l *Loader) LoadSection(ctx context.Context, path, section string) (map[string]any, error) {
	doc, err := l.read(ctx, path)
	if err != nil {
		return nil, err
	}

	sec, ok := doc.Section(section)
	if !ok {
		return nil, &MissingSectionError{Path: path, Section: section}
	}

	snap := newSnapshot(path, l.clock())
	snap.addSection(sec.Name)
	l.coerceSection(snap, path, sec)

	return snap.Section(section)
}

// Get returns the coerced value of section/key, or defaultVal unchanged when
// the section or key is absent. File errors are still returned.
func (l *Loader) Get(ctx context.Context, path, section, key string, defaultVal any) (any, error) {
	doc, err := l.read(ctx, path)
	if err != nil {
		return nil, err
	}

	sec, ok := doc.Section(section)
	if !ok {
		return defaultVal, nil
	}
	entry, ok := sec.Lookup(key)
	if !ok {
		return defaultVal, nil
	}

	v, _ := l.coerceEntry(path, section, entry)
	return v, nil
}

func (l *Loader) clock() time.Time {
	if l.now == nil {
		return time.Now()
	}
	return l.now()
}

func (l *Loader) read(ctx context.Context, path string) (*sourceini.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	doc, err := sourceini.New(path, sourceini.Options{Encoding: l.encoding}).Read()
	if err != nil {
		var readErr *sourceini.ReadError
		if errors.As(err, &readErr) {
			return nil, &MissingFileError{Path: path, Err: readErr.Err}
		}
		var syntaxErr *sourceini.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, &ParseError{Path: path, Err: syntaxErr.Err}
		}
		return nil, &ParseError{Path: path, Err: err}
	}

	return doc, nil
}

func (l *Loader) coerceSection(snap *Snapshot, path string, sec sourceini.Section) {
	for _, entry := range sec.Entries {
		v, prov := l.coerceEntry(path, sec.Name, entry)
		snap.set(v, prov)
	}
}

func (l *Loader) coerceEntry(path, section string, entry sourceini.Entry) (any, EntryProvenance) {
	v, err := coerce(entry.Value)
	prov := EntryProvenance{
		Section:    section,
		Key:        entry.Key,
		SourceName: normalize.SourceName(path),
		Kind:       KindOf(v),
		Inherited:  entry.Inherited,
		Degraded:   err != nil,
	}
	if err != nil {
		l.report.warn("structured value for %s is not a valid literal, keeping it as string: %v",
			normalize.QualifiedKey(section, entry.Key), err)
	}
	return v, prov
}
