package typedini

import (
	"strings"

	"github.com/Azhovan/typedini/internal/literal"
	"github.com/Azhovan/typedini/internal/normalize"
)

// Coercer converts raw INI text into typed values.
//
// Rules, applied to the trimmed text, first match wins:
//  1. "true" / "false", any case → bool
//  2. optional sign and decimal digits → int64 (never octal)
//  3. decimal floating-point literal → float64
//  4. text opening with "{" or "[" → map[string]any or []any, parsed without
//     evaluating anything; on failure the raw text is kept and a warning is reported
//  5. anything else → the raw string, unchanged
type Coercer struct {
	report Reporter
}

// NewCoercer creates a Coercer that sends fallback warnings to report.
func NewCoercer(report Reporter) *Coercer {
	return &Coercer{report: report}
}

// Coerce returns the typed value of raw. It never fails.
func (c *Coercer) Coerce(raw string) any {
	v, err := coerce(raw)
	if err != nil {
		c.report.warn("structured value %q is not a valid literal, keeping it as string: %v", raw, err)
	}
	return v
}

// coerce returns raw and the parse failure when a structured value degrades.
func coerce(raw string) (any, error) {
	s := strings.TrimSpace(raw)

	if v, ok := literal.Scalar(s); ok {
		return v, nil
	}

	if literal.LooksStructured(s) {
		v, err := literal.Parse(s)
		if err != nil {
			return raw, err
		}
		return v, nil
	}

	return raw, nil
}

// SplitList splits a comma-separated value into trimmed items.
// Comma lists are never detected by coercion; callers opt in explicitly.
func SplitList(s string) []string {
	return normalize.SplitList(s)
}
