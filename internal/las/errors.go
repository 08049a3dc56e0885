package las

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput        = errors.New("no input lines")
	ErrNoCurves          = errors.New("no curve definitions")
	ErrNoDataSection     = errors.New("missing ~A data section")
	ErrInvalidNullValue  = errors.New("NULL value is not numeric")
	ErrWrappedDelimiter  = errors.New("wrapped data with an unrecognised delimiter")
	ErrIncompleteRecord  = errors.New("wrapped record never completed")
	ErrUnknownCurve      = errors.New("unknown curve")
	ErrNoCurvesSelected  = errors.New("no curves selected")
	ErrShapeMismatch     = errors.New("curve and data shapes differ")
	ErrDuplicateMnemonic = errors.New("duplicate curve mnemonic")
)

// ParseError is a structural failure in the header. Line is 1-based and zero
// when the failure is not tied to a particular line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("las: line %d: %v", e.Line, e.Err)
	}
	return "las: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// DecodeError is a structural failure in the ~A data block. Line is the
// 1-based line of the record that failed.
type DecodeError struct {
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("las: data line %d: %v", e.Line, e.Err)
	}
	return "las: data: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }
