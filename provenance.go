package typedini

// EntryProvenance describes where a coerced value came from and how it was typed.
type EntryProvenance struct {
	Section    string // Section the value is reported under
	Key        string
	SourceName string // Source identifier (e.g., "file:settings.ini")
	Kind       Kind
	Inherited  bool // Value came from the DEFAULT section
	Degraded   bool // Looked structured but failed to parse; kept as string
}

type entryRef struct {
	section string
	key     string
}

// ProvenanceOf returns provenance for a single entry.
func (s *Snapshot) ProvenanceOf(section, key string) (EntryProvenance, bool) {
	if s == nil {
		return EntryProvenance{}, false
	}
	p, ok := s.provenance[entryRef{section: section, key: key}]
	return p, ok
}

// Provenance returns provenance for every entry in file order.
func (s *Snapshot) Provenance() []EntryProvenance {
	if s == nil {
		return nil
	}

	out := make([]EntryProvenance, 0, len(s.provenance))
	for _, section := range s.order {
		for _, key := range s.keys[section] {
			out = append(out, s.provenance[entryRef{section: section, key: key}])
		}
	}
	return out
}

// Degraded returns the entries whose structured value failed to parse.
func (s *Snapshot) Degraded() []EntryProvenance {
	var out []EntryProvenance
	for _, p := range s.Provenance() {
		if p.Degraded {
			out = append(out, p)
		}
	}
	return out
}
