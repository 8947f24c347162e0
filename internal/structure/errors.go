package structure

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySystem indicates an input without a single ATOM or HETATM record.
	ErrEmptySystem = errors.New("structure: no atoms in input")

	// ErrShortRecord indicates an atom record too short to hold coordinates.
	ErrShortRecord = errors.New("structure: atom record shorter than 54 columns")

	// ErrNoAtomName indicates an atom record whose name columns are blank.
	ErrNoAtomName = errors.New("structure: blank atom name")
)

// ParseError wraps a failure to read an atom record with its line number.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("structure: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
