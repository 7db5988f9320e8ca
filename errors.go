package typedini

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks against the typed errors below.
var (
	ErrMissingFile    = errors.New("typedini: config file missing or unreadable")
	ErrMissingSection = errors.New("typedini: section not found")
)

// ErrNilSnapshot is returned when an operation receives a nil snapshot.
var ErrNilSnapshot = errors.New("typedini: snapshot is nil")

// MissingFileError reports a config file that does not exist or cannot be read.
type MissingFileError struct {
	Path string
	Err  error // Underlying file system error
}

func (e *MissingFileError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("config file %s not found", e.Path)
	}
	return fmt.Sprintf("config file %s not found or unreadable: %v", e.Path, e.Err)
}

func (e *MissingFileError) Unwrap() error {
	return e.Err
}

// Is matches ErrMissingFile.
func (e *MissingFileError) Is(target error) bool {
	return target == ErrMissingFile
}

// MissingSectionError reports a section that is not present in the file.
type MissingSectionError struct {
	Path    string
	Section string
}

func (e *MissingSectionError) Error() string {
	return fmt.Sprintf("section %q not found in %s", e.Section, e.Path)
}

// Is matches ErrMissingSection.
func (e *MissingSectionError) Is(target error) bool {
	return target == ErrMissingSection
}

// ParseError reports INI text that the reader could not parse.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("config file %s is malformed: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DecodeError reports a section that could not be bound to a struct.
type DecodeError struct {
	Section string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode section %q: %v", e.Section, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
