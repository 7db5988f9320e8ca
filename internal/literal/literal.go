// Package literal classifies raw configuration text into typed values.
//
// Structured values are read as YAML flow collections, which covers JSON and
// Python-style literals ({'a': True}), and are then walked node by node so
// that nothing beyond plain data is ever constructed.
package literal

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxDepth bounds the nesting of structured values.
const MaxDepth = 64

var (
	// ErrNotStructured is returned by Parse when the text is not a single flow mapping or sequence.
	ErrNotStructured = errors.New("literal: not a flow mapping or sequence")

	// ErrUnsafe is returned when the text uses anchors, aliases, explicit tags or merge keys.
	ErrUnsafe = errors.New("literal: anchors, aliases, tags and merge keys are not allowed")

	// ErrTooDeep is returned when nesting exceeds MaxDepth.
	ErrTooDeep = errors.New("literal: nesting too deep")

	// ErrBareWord is returned for unquoted text that is not a boolean, number or null,
	// and for YAML-only syntax such as explicit "?" keys and comments.
	ErrBareWord = errors.New("literal: unquoted text is not a literal")
)

var (
	intPattern   = regexp.MustCompile(`^[+-]?[0-9]+$`)
	floatPattern = regexp.MustCompile(`^[+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)
)

// Scalar applies the boolean, integer and float rules to s, in that order.
// The second result is false when none of them match.
func Scalar(s string) (any, bool) {
	if strings.EqualFold(s, "true") {
		return true, true
	}
	if strings.EqualFold(s, "false") {
		return false, true
	}

	// Base 10 only: "007" is 7, never octal.
	if intPattern.MatchString(s) {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
	}

	if floatPattern.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
	}

	return nil, false
}

// LooksStructured reports whether s, once trimmed, opens a mapping or sequence.
func LooksStructured(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}

// Parse reads s as a single flow mapping or sequence and returns it as
// map[string]any / []any trees of bool, int64, float64, string and nil.
func Parse(s string) (any, error) {
	if pos := unquotedIndicator(s); pos >= 0 {
		return nil, fmt.Errorf("%w: %q at offset %d", ErrBareWord, s[pos], pos)
	}

	dec := yaml.NewDecoder(strings.NewReader(s))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNotStructured
		}
		return nil, err
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: more than one document", ErrNotStructured)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) != 1 {
			return nil, ErrNotStructured
		}
		root = root.Content[0]
	}

	if root.Kind != yaml.MappingNode && root.Kind != yaml.SequenceNode {
		return nil, ErrNotStructured
	}
	if root.Style&yaml.FlowStyle == 0 {
		return nil, ErrNotStructured
	}

	return convert(root, 1)
}

func convert(n *yaml.Node, depth int) (any, error) {
	if depth > MaxDepth {
		return nil, ErrTooDeep
	}
	if n.Anchor != "" || n.Style&yaml.TaggedStyle != 0 {
		return nil, fmt.Errorf("%w (line %d, column %d)", ErrUnsafe, n.Line, n.Column)
	}

	switch n.Kind {
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("literal: mapping key at line %d, column %d is not a scalar", k.Line, k.Column)
			}
			if k.Tag == "!!merge" || (k.Style == 0 && k.Value == "<<") || k.Anchor != "" || k.Style&yaml.TaggedStyle != 0 {
				return nil, fmt.Errorf("%w (line %d, column %d)", ErrUnsafe, k.Line, k.Column)
			}
			if k.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) == 0 {
				if _, err := plain(k); err != nil {
					return nil, err
				}
			}
			val, err := convert(v, depth+1)
			if err != nil {
				return nil, err
			}
			m[k.Value] = val
		}
		return m, nil

	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			val, err := convert(item, depth+1)
			if err != nil {
				return nil, err
			}
			list = append(list, val)
		}
		return list, nil

	case yaml.ScalarNode:
		if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
			return n.Value, nil
		}
		return plain(n)

	case yaml.AliasNode:
		return nil, fmt.Errorf("%w (line %d, column %d)", ErrUnsafe, n.Line, n.Column)

	default:
		return nil, fmt.Errorf("literal: unexpected node kind %d", n.Kind)
	}
}

// plain classifies an unquoted scalar found inside a structure. Only
// booleans, numbers and null may appear unquoted.
func plain(n *yaml.Node) (any, error) {
	if v, ok := Scalar(n.Value); ok {
		return v, nil
	}
	switch n.Value {
	case "", "~", "None", "null", "Null", "NULL":
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %q (line %d, column %d)", ErrBareWord, n.Value, n.Line, n.Column)
}

// unquotedIndicator returns the offset of the first "?" or "#" outside quotes,
// or -1. Both only have YAML meanings there: explicit keys and comments.
func unquotedIndicator(s string) int {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote == '"' && c == '\\':
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '?' || c == '#':
			return i
		}
	}
	return -1
}
