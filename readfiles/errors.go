package readfiles

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFile   = errors.New("missing file")
	ErrMalformedLine = errors.New("malformed line")
	ErrMissingField  = errors.New("missing field")
)

// MissingFileError is returned when an expected case file is absent.
type MissingFileError struct {
	Path string
	Err  error
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingFile, e.Path)
}

func (e *MissingFileError) Unwrap() []error {
	return []error{ErrMissingFile, e.Err}
}

// MalformedLineError is returned when a keyword is present but its value
// does not parse.
type MalformedLineError struct {
	Path   string
	Field  string
	Line   string
	LineNo int
}

func (e *MalformedLineError) Error() string {
	if e.LineNo > 0 {
		return fmt.Sprintf("%s: %s line %d, field %s: [%s]", ErrMalformedLine, e.Path, e.LineNo, e.Field, e.Line)
	}
	return fmt.Sprintf("%s: %s, field %s: [%s]", ErrMalformedLine, e.Path, e.Field, e.Line)
}

func (e *MalformedLineError) Unwrap() error { return ErrMalformedLine }

// MissingFieldError is returned when a required field does not appear in a
// case file.
type MissingFieldError struct {
	Path  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s not found in %s", ErrMissingField, e.Field, e.Path)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }
