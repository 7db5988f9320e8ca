// Package report adapts logging backends to typedini.Reporter.
//
// The loader never logs on its own; pass one of these to
// Loader.WithReporter or NewCoercer to route fallback warnings.
package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/Azhovan/typedini"
	"github.com/rs/zerolog"
	"go.uber.org/zap"
)

// Discard drops every message.
func Discard() typedini.Reporter {
	return func(string) {}
}

// Writer prints each message on its own line, prefixed with "WARNING: ".
func Writer(w io.Writer) typedini.Reporter {
	var mu sync.Mutex
	return func(msg string) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, "WARNING: %s\n", msg)
	}
}

// Zerolog logs each message at warn level.
func Zerolog(logger zerolog.Logger) typedini.Reporter {
	return func(msg string) {
		logger.Warn().Str("component", "typedini").Msg(msg)
	}
}

// Zap logs each message at warn level.
func Zap(logger *zap.Logger) typedini.Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(msg string) {
		logger.Warn(msg, zap.String("component", "typedini"))
	}
}

// Multi fans a message out to several reporters. Nil entries are skipped.
func Multi(reporters ...typedini.Reporter) typedini.Reporter {
	return func(msg string) {
		for _, r := range reporters {
			if r != nil {
				r(msg)
			}
		}
	}
}

// Recorder keeps every message it receives. Safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

// Reporter returns the function to hand to the loader.
func (r *Recorder) Reporter() typedini.Reporter {
	return func(msg string) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.messages = append(r.messages, msg)
	}
}

// Messages returns a copy of the recorded messages.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}
