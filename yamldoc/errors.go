package yamldoc

import (
	"errors"

	goyaml "github.com/goccy/go-yaml"
	goparser "github.com/goccy/go-yaml/parser"
)

// Sentinel errors returned by [Document] operations.
var (
	ErrInvalidYAML = errors.New("invalid yaml")
	ErrNotMapping  = errors.New("document root is not a mapping")
	ErrNotFound    = errors.New("file not found")
	ErrRead        = errors.New("read input")
	ErrWrite       = errors.New("write output")
	ErrFoldRestore = errors.New("restore folded scalar")
)

// SyntaxError wraps a YAML compose failure together with the source it
// came from. It is always returned wrapped in [ErrInvalidYAML].
type SyntaxError struct {
	Err    error
	Source []byte
}

func newSyntaxError(src []byte, err error) *SyntaxError {
	return &SyntaxError{Err: err, Source: src}
}

// Error implements error.
func (e *SyntaxError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying parser error.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Pretty renders the failure with an excerpt of the offending source,
// optionally colored for a terminal. If the source excerpt cannot be
// produced, Pretty falls back to [SyntaxError.Error].
func (e *SyntaxError) Pretty(colored bool) string {
	_, err := goparser.ParseBytes(e.Source, 0)
	if err == nil {
		return e.Error()
	}

	return goyaml.FormatError(err, colored, true)
}
