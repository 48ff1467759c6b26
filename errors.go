package polycalc

import (
	"errors"
	"fmt"
)

// Kind classifies why a calculator line failed. Its String form is what the
// calculator prints after "ERROR <line>".
type Kind int

const (
	WrongCommand Kind = iota
	WrongPoly
	StackUnderflow
	DegByWrongVariable
	AtWrongValue
	Overflow
)

var kindNames = [...]string{
	WrongCommand:       "WRONG COMMAND",
	WrongPoly:          "WRONG POLY",
	StackUnderflow:     "STACK UNDERFLOW",
	DegByWrongVariable: "DEG BY WRONG VARIABLE",
	AtWrongValue:       "AT WRONG VALUE",
	Overflow:           "OVERFLOW",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrNulByte        = errors.New("line contains a NUL byte")
	ErrUnderflow      = errors.New("not enough polynomials on the stack")
	ErrBadArgument    = errors.New("malformed command argument")
	ErrBadSnapshot    = errors.New("invalid stack snapshot")
)

// LineError reports a failed input line. The stack is left as it was before
// the line.
type LineError struct {
	Line int
	Kind Kind
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("ERROR %d %s", e.Line, e.Kind)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// failure is a LineError before the line number is known.
type failure struct {
	kind Kind
	err  error
}

func fail(kind Kind, err error) *failure {
	return &failure{kind: kind, err: err}
}
