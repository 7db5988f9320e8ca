package typedini

import (
	"reflect"

	"github.com/Azhovan/typedini/internal/normalize"
	"github.com/go-viper/mapstructure/v2"
)

// DefaultTagName is the struct tag Decode reads key names from.
const DefaultTagName = "ini"

// DecodeOption configures Decode.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	tagName string
	strict  bool // Fail on keys without a matching field
}

// WithTagName reads key names from a different struct tag.
func WithTagName(name string) DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.tagName = name
	}
}

// Strict makes keys that match no field an error.
func Strict() DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.strict = true
	}
}

// Decode binds the coerced values of a section to the struct pointed to by out.
//
// Field names come from the `ini` tag, falling back to a case-insensitive match
// on the field name. Values convert weakly (an int64 fills an int field, "5"
// fills an int). A string bound to a slice field is split on commas, time.Duration
// fields accept strings like "5s", and encoding.TextUnmarshaler fields receive
// the raw text. Fields without a key keep their current value, so callers set
// defaults before decoding.
func Decode(s *Snapshot, section string, out any, opts ...DecodeOption) error {
	if s == nil {
		return &DecodeError{Section: section, Err: ErrNilSnapshot}
	}

	values, err := s.Section(section)
	if err != nil {
		return err
	}

	cfg := decodeConfig{tagName: DefaultTagName}
	for _, opt := range opts {
		opt(&cfg)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          cfg.tagName,
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      cfg.strict,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			commaListHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return &DecodeError{Section: section, Err: err}
	}

	if err := dec.Decode(values); err != nil {
		return &DecodeError{Section: section, Err: err}
	}

	return nil
}

// commaListHookFunc splits strings bound to slice fields on commas, which is
// the caller-side list convention for INI values.
func commaListHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Slice {
			return data, nil
		}
		// []byte keeps the raw text.
		if t.Elem().Kind() == reflect.Uint8 {
			return data, nil
		}
		return normalize.SplitList(reflect.ValueOf(data).String()), nil
	}
}
