// Package typedini loads INI files and turns every raw string value into its
// best-guess typed value.
//
// Quick Start:
//
//	snap, err := typedini.NewLoader().
//	    WithReporter(report.Zerolog(logger)).
//	    Load(ctx, "settings.ini")
//
//	enabled := typedini.GetAs(snap, "Export", "enabled", false)
//	formats, _ := snap.Value("Export", "values_month_to_excel")
//
// Coercion rules, first match wins: true/false (any case) → bool, signed
// decimal digits → int64, decimal float → float64, text opening with "{" or "["
// → map[string]any or []any, anything else → string. A structure that does not
// parse stays a string and a warning goes to the Reporter.
//
// Comma-separated lists are not detected; use SplitList or a slice field with
// Decode.
//
// See example_test.go for detailed usage.
package typedini
