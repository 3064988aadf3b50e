// Package ops defines the canonical operator representation: element types,
// layout formats, primitive type tags and the attribute payload of every
// primitive.
//
// The numeric values of every enum in this package are persisted in model
// files and must never be renumbered.
package ops

import (
	"fmt"
	"strings"
)

// DataType is the canonical element type of a tensor.
type DataType int32

// Canonical element types.
const (
	DataTypeUnknown DataType = 0
	Float32         DataType = 1
	Float16         DataType = 2
	Float64         DataType = 3
	Int8            DataType = 4
	Int16           DataType = 5
	Int32           DataType = 6
	Int64           DataType = 7
	Uint8           DataType = 8
	Bool            DataType = 9
)

// Size returns the byte size of one element, 0 for unknown types.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Float16, Int16:
		return 2
	case Int8, Uint8, Bool:
		return 1
	default:
		return 0
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float16:
		return "float16"
	case Float64:
		return "float64"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// Format is the memory layout tag of a tensor.
type Format int32

// Layout formats.
const (
	NCHW Format = 0
	NHWC Format = 1
	NC   Format = 2
	HW   Format = 3
	KHWC Format = 4
)

var formatNames = map[Format]string{
	NCHW: "NCHW",
	NHWC: "NHWC",
	NC:   "NC",
	HW:   "HW",
	KHWC: "KHWC",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int32(f))
}

// ParseFormat parses a layout name such as "NHWC" (case-insensitive).
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if strings.EqualFold(name, s) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown format %q", s)
}

// TensorCategory tells constants, graph inputs and intermediate values apart.
type TensorCategory int32

// Tensor categories.
const (
	CategoryVariable   TensorCategory = 0
	CategoryConst      TensorCategory = 1
	CategoryGraphInput TensorCategory = 2
)

func (c TensorCategory) String() string {
	switch c {
	case CategoryVariable:
		return "variable"
	case CategoryConst:
		return "const"
	case CategoryGraphInput:
		return "input"
	default:
		return fmt.Sprintf("category(%d)", int32(c))
	}
}

// ActivationType is a fused or standalone activation function.
type ActivationType int8

// Activation functions.
const (
	NoActivation ActivationType = 0
	Relu         ActivationType = 1
	Relu6        ActivationType = 2
	Sigmoid      ActivationType = 3
	Tanh         ActivationType = 4
	ReluN1To1    ActivationType = 5
)

func (a ActivationType) String() string {
	switch a {
	case NoActivation:
		return "none"
	case Relu:
		return "relu"
	case Relu6:
		return "relu6"
	case Sigmoid:
		return "sigmoid"
	case Tanh:
		return "tanh"
	case ReluN1To1:
		return "relu_n1_to_1"
	default:
		return fmt.Sprintf("activation(%d)", int8(a))
	}
}

// FmkType identifies the framework a model was converted from.
type FmkType int32

// Source frameworks.
const (
	FmkNative FmkType = 0
	FmkTFLite FmkType = 1
)

func (f FmkType) String() string {
	switch f {
	case FmkNative:
		return "native"
	case FmkTFLite:
		return "tflite"
	default:
		return fmt.Sprintf("fmk(%d)", int32(f))
	}
}
