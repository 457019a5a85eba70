package source

import (
	"errors"
	"fmt"
)

// Sentinel kinds for source errors.
var (
	ErrParse          = errors.New("malformed corpus file")
	ErrCorpusNotFound = errors.New("corpus directory not found")
	errEmptyFile      = errors.New("file is empty")
)

// ParseError reports a corpus file whose content is not a JSON array of
// record objects. It aborts the run.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrParse, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }
