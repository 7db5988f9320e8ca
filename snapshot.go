package typedini

import (
	"time"

	"github.com/google/go-cmp/cmp"
)

// Snapshot is the fully materialized result of one load: section name to key
// to coerced value. It is never refreshed; load again to observe changes on
// disk. Accessors return deep copies, so callers cannot mutate it.
type Snapshot struct {
	path       string
	loadedAt   time.Time
	sections   map[string]map[string]any
	order      []string            // Section names in file order
	keys       map[string][]string // Key names per section in file order
	provenance map[entryRef]EntryProvenance
}

func newSnapshot(path string, loadedAt time.Time) *Snapshot {
	return &Snapshot{
		path:       path,
		loadedAt:   loadedAt,
		sections:   make(map[string]map[string]any),
		keys:       make(map[string][]string),
		provenance: make(map[entryRef]EntryProvenance),
	}
}

func (s *Snapshot) addSection(name string) {
	if _, ok := s.sections[name]; ok {
		return
	}
	s.sections[name] = make(map[string]any)
	s.order = append(s.order, name)
}

func (s *Snapshot) set(value any, prov EntryProvenance) {
	s.addSection(prov.Section)
	if _, ok := s.sections[prov.Section][prov.Key]; !ok {
		s.keys[prov.Section] = append(s.keys[prov.Section], prov.Key)
	}
	s.sections[prov.Section][prov.Key] = value
	s.provenance[entryRef{section: prov.Section, key: prov.Key}] = prov
}

// Path returns the file the snapshot was loaded from.
func (s *Snapshot) Path() string {
	return s.path
}

// LoadedAt returns when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}

// SectionNames returns section names in file order.
func (s *Snapshot) SectionNames() []string {
	return append([]string(nil), s.order...)
}

// HasSection reports whether the section exists.
func (s *Snapshot) HasSection(name string) bool {
	_, ok := s.sections[name]
	return ok
}

// Keys returns the keys of a section in file order, or nil if it is absent.
func (s *Snapshot) Keys(section string) []string {
	keys, ok := s.keys[section]
	if !ok {
		return nil
	}
	return append([]string(nil), keys...)
}

// Section returns every coerced value of a section.
func (s *Snapshot) Section(name string) (map[string]any, error) {
	sec, ok := s.sections[name]
	if !ok {
		return nil, &MissingSectionError{Path: s.path, Section: name}
	}
	return copyMap(sec), nil
}

// Value returns the coerced value of section/key.
func (s *Snapshot) Value(section, key string) (any, bool) {
	sec, ok := s.sections[section]
	if !ok {
		return nil, false
	}
	v, ok := sec[key]
	if !ok {
		return nil, false
	}
	return copyValue(v), true
}

// Get returns the coerced value of section/key, or defaultVal unchanged when
// the section or key is absent.
func (s *Snapshot) Get(section, key string, defaultVal any) any {
	if v, ok := s.Value(section, key); ok {
		return v
	}
	return defaultVal
}

// ToMap returns the whole snapshot as nested maps.
func (s *Snapshot) ToMap() map[string]map[string]any {
	out := make(map[string]map[string]any, len(s.sections))
	for name, sec := range s.sections {
		out[name] = copyMap(sec)
	}
	return out
}

// Equal reports whether two snapshots hold the same sections, keys, order and
// values. Path and load time are ignored.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s == nil || other == nil {
		return s == other
	}
	return cmp.Equal(s.sections, other.sections) &&
		cmp.Equal(s.order, other.order) &&
		cmp.Equal(s.keys, other.keys)
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}
