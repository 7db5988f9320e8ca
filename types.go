package typedini

import "fmt"

// Reporter receives warning-level messages, such as a structured value that
// could not be parsed and was kept as a string. A nil Reporter discards them.
type Reporter func(msg string)

func (r Reporter) warn(format string, args ...any) {
	if r == nil {
		return
	}
	r(fmt.Sprintf(format, args...))
}

// Kind classifies a coerced value.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindFloat
	KindMap
	KindList
	KindNull
)

var kindNames = [...]string{
	KindString: "string",
	KindBool:   "bool",
	KindInt:    "int",
	KindFloat:  "float",
	KindMap:    "map",
	KindList:   "list",
	KindNull:   "null",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// KindOf returns the Kind of a coerced value. Values of any other Go type
// report KindString.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case int64:
		return KindInt
	case float64:
		return KindFloat
	case map[string]any:
		return KindMap
	case []any:
		return KindList
	default:
		return KindString
	}
}

// Optional distinguishes "not set" from "zero value".
type Optional[T any] struct {
	Value T
	Set   bool
}

// Get returns the wrapped value and whether it was set.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// OrDefault returns the wrapped value or the provided default.
func (o Optional[T]) OrDefault(defaultVal T) T {
	if o.Set {
		return o.Value
	}
	return defaultVal
}

// Lookup returns the value of section/key when it is present and holds a T.
func Lookup[T any](s *Snapshot, section, key string) Optional[T] {
	if s == nil {
		return Optional[T]{}
	}
	v, ok := s.Value(section, key)
	if !ok {
		return Optional[T]{}
	}
	typed, ok := v.(T)
	if !ok {
		return Optional[T]{}
	}
	return Optional[T]{Value: typed, Set: true}
}

// GetAs returns the value of section/key as a T, or defaultVal when the entry
// is absent or holds another type.
func GetAs[T any](s *Snapshot, section, key string, defaultVal T) T {
	return Lookup[T](s, section, key).OrDefault(defaultVal)
}
