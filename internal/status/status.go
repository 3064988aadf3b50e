// Package status defines the error taxonomy shared by import, export and
// conversion.
//
// Every failure surfaces as an *Error carrying a Code plus whatever context
// identifies the failing item (operator name, tensor index, axis). Callers
// match on the code with errors.Is against the exported sentinels:
//
//	if errors.Is(err, status.ErrInvalidAxis) {
//	    // reject this operator
//	}
package status

import (
	"fmt"
	"strings"
)

// Code classifies a failure.
type Code int

// Failure codes.
const (
	OK Code = iota
	NullInput
	InvalidFormat
	OutOfMemory
	BufferTooSmall
	NotExportable
	UnsupportedOperator
	MissingAttribute
	InvalidAxis
	InvalidAttributeData
	SubgraphAssemblyFailure
)

var codeNames = map[Code]string{
	OK:                      "ok",
	NullInput:               "null input",
	InvalidFormat:           "invalid format",
	OutOfMemory:             "out of memory",
	BufferTooSmall:          "buffer too small",
	NotExportable:           "not exportable",
	UnsupportedOperator:     "unsupported operator",
	MissingAttribute:        "missing attribute",
	InvalidAxis:             "invalid axis",
	InvalidAttributeData:    "invalid attribute data",
	SubgraphAssemblyFailure: "subgraph assembly failure",
}

// String returns the name of the code.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Sentinels for errors.Is matching. Only the Code is compared.
var (
	ErrNullInput               = &Error{Code: NullInput, Tensor: NoTensor}
	ErrInvalidFormat           = &Error{Code: InvalidFormat, Tensor: NoTensor}
	ErrOutOfMemory             = &Error{Code: OutOfMemory, Tensor: NoTensor}
	ErrBufferTooSmall          = &Error{Code: BufferTooSmall, Tensor: NoTensor}
	ErrNotExportable           = &Error{Code: NotExportable, Tensor: NoTensor}
	ErrUnsupportedOperator     = &Error{Code: UnsupportedOperator, Tensor: NoTensor}
	ErrMissingAttribute        = &Error{Code: MissingAttribute, Tensor: NoTensor}
	ErrInvalidAxis             = &Error{Code: InvalidAxis, Tensor: NoTensor}
	ErrInvalidAttributeData    = &Error{Code: InvalidAttributeData, Tensor: NoTensor}
	ErrSubgraphAssemblyFailure = &Error{Code: SubgraphAssemblyFailure, Tensor: NoTensor}
)

// NoTensor marks an Error that does not refer to a tensor.
const NoTensor = -1

// Error is a classified failure with diagnostic context.
type Error struct {
	Code   Code
	Op     string // Operator or node name, if any.
	Tensor int    // Tensor index, NoTensor when not applicable.
	Axis   *int   // Offending axis value, if any.
	Rank   int    // Operand rank accompanying Axis.
	Detail string
	Err    error // Underlying cause.
}

// New creates an Error with a formatted detail message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Tensor: NoTensor, Detail: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around a cause.
func Wrap(code Code, err error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Err = err
	return e
}

// WithOp sets the operator name.
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// WithTensor sets the tensor index.
func (e *Error) WithTensor(idx int) *Error {
	e.Tensor = idx
	return e
}

// WithAxis records the offending axis and the rank it was checked against.
func (e *Error) WithAxis(axis, rank int) *Error {
	e.Axis = &axis
	e.Rank = rank
	return e
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Code.String())
	if e.Op != "" {
		fmt.Fprintf(&b, " [op %s]", e.Op)
	}
	if e.Tensor != NoTensor {
		fmt.Fprintf(&b, " [tensor %d]", e.Tensor)
	}
	if e.Axis != nil {
		fmt.Fprintf(&b, " [axis %d, rank %d]", *e.Axis, e.Rank)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}
