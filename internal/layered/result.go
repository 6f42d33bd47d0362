package layered

import (
	"strings"
)

// Result is the outcome of a cipher operation.
//
// A StatusOK result always has a non-nil Value; an empty Value means there was no input.
// Any other status has a nil Value, a non-empty Message and a non-nil Err.
type Result struct {
	Status  Status
	Level   *Level
	Value   *string
	Message string
	Err     error
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// String returns the value, or "" if there is none.
func (r Result) String() string {
	if r.Value == nil {
		return ""
	}

	return *r.Value
}

// Summary describes the result without its value.
func (r Result) Summary() string {
	var b strings.Builder

	b.WriteString(r.Status.String())
	b.WriteString(" level=")
	b.WriteString(Format(r.Level))

	if r.Message != "" {
		b.WriteString(": ")
		b.WriteString(r.Message)
	}

	return b.String()
}

// Succeeded returns an OK result carrying value.
func Succeeded(level *Level, value string) Result {
	return Result{Status: StatusOK, Level: level, Value: &value}
}

// Failed returns a result for err with the given status.
func Failed(status Status, level *Level, err *Error) Result {
	return Result{Status: status, Level: level, Message: err.Message, Err: err}
}

// at retags the result with level, keeping everything else.
func (r Result) at(level Level) Result {
	r.Level = level.ptr()

	return r
}
