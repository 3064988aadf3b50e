// Package tflite reads the foreign model dialect: TFLite-compatible
// flatbuffers identified by "TFL3".
//
// Only the tables and options the converter understands are declared. Read
// verifies a buffer and unpacks it into the object API (ModelT and friends),
// which is what the converter consumes; Pack goes the other way and is used
// to produce fixtures.
package tflite

import (
	"strconv"
)

// Identifier is the file identifier of TFLite models.
const Identifier = "TFL3"

// BuiltinOperator is the operator code of an OperatorCode.
type BuiltinOperator int32

// Builtin operator codes understood by the converter.
const (
	BuiltinOperatorADD           BuiltinOperator = 0
	BuiltinOperatorCONCATENATION BuiltinOperator = 2
	BuiltinOperatorLOGISTIC      BuiltinOperator = 14
	BuiltinOperatorMUL           BuiltinOperator = 18
	BuiltinOperatorRELU          BuiltinOperator = 19
	BuiltinOperatorRELU6         BuiltinOperator = 21
	BuiltinOperatorRESHAPE       BuiltinOperator = 22
	BuiltinOperatorSOFTMAX       BuiltinOperator = 25
	BuiltinOperatorTANH          BuiltinOperator = 28
	BuiltinOperatorSUB           BuiltinOperator = 41
	BuiltinOperatorSPLIT         BuiltinOperator = 49
	BuiltinOperatorSPLIT_V       BuiltinOperator = 102
	BuiltinOperatorCUSTOM        BuiltinOperator = 32
)

// opNames maps operator codes to the names parsers register under.
var opNames = map[BuiltinOperator]string{
	BuiltinOperatorADD:           "Add",
	BuiltinOperatorCONCATENATION: "Concatenation",
	BuiltinOperatorLOGISTIC:      "Logistic",
	BuiltinOperatorMUL:           "Mul",
	BuiltinOperatorRELU:          "Relu",
	BuiltinOperatorRELU6:         "Relu6",
	BuiltinOperatorRESHAPE:       "Reshape",
	BuiltinOperatorSOFTMAX:       "Softmax",
	BuiltinOperatorTANH:          "Tanh",
	BuiltinOperatorSUB:           "Sub",
	BuiltinOperatorSPLIT:         "Split",
	BuiltinOperatorSPLIT_V:       "SplitV",
	BuiltinOperatorCUSTOM:        "Custom",
}

func (v BuiltinOperator) String() string {
	if s, ok := opNames[v]; ok {
		return s
	}
	return "BuiltinOperator(" + strconv.FormatInt(int64(v), 10) + ")"
}

// OpName returns the registry name of an operator code. Custom operators are
// named by their custom code.
func OpName(code *OperatorCodeT) string {
	if code == nil {
		return ""
	}
	if code.BuiltinCode == BuiltinOperatorCUSTOM && code.CustomCode != "" {
		return code.CustomCode
	}
	return code.BuiltinCode.String()
}

// TensorType is the element type of a Tensor.
type TensorType int8

// Tensor element types.
const (
	TensorTypeFLOAT32 TensorType = 0
	TensorTypeFLOAT16 TensorType = 1
	TensorTypeINT32   TensorType = 2
	TensorTypeUINT8   TensorType = 3
	TensorTypeINT64   TensorType = 4
	TensorTypeSTRING  TensorType = 5
	TensorTypeBOOL    TensorType = 6
	TensorTypeINT16   TensorType = 7
	TensorTypeINT8    TensorType = 9
	TensorTypeFLOAT64 TensorType = 10
)

// EnumNamesTensorType maps tensor types to their schema names.
var EnumNamesTensorType = map[TensorType]string{
	TensorTypeFLOAT32: "FLOAT32",
	TensorTypeFLOAT16: "FLOAT16",
	TensorTypeINT32:   "INT32",
	TensorTypeUINT8:   "UINT8",
	TensorTypeINT64:   "INT64",
	TensorTypeSTRING:  "STRING",
	TensorTypeBOOL:    "BOOL",
	TensorTypeINT16:   "INT16",
	TensorTypeINT8:    "INT8",
	TensorTypeFLOAT64: "FLOAT64",
}

func (v TensorType) String() string {
	if s, ok := EnumNamesTensorType[v]; ok {
		return s
	}
	return "TensorType(" + strconv.FormatInt(int64(v), 10) + ")"
}

// ActivationFunctionType is a fused activation.
type ActivationFunctionType int8

// Fused activations.
const (
	ActivationFunctionTypeNONE         ActivationFunctionType = 0
	ActivationFunctionTypeRELU         ActivationFunctionType = 1
	ActivationFunctionTypeRELU_N1_TO_1 ActivationFunctionType = 2
	ActivationFunctionTypeRELU6        ActivationFunctionType = 3
	ActivationFunctionTypeTANH         ActivationFunctionType = 4
	ActivationFunctionTypeSIGN_BIT     ActivationFunctionType = 5
)

// BuiltinOptions is the union tag of Operator.builtin_options.
type BuiltinOptions byte

// Union tags for the options tables declared in this package.
const (
	BuiltinOptionsNONE                 BuiltinOptions = 0
	BuiltinOptionsSoftmaxOptions       BuiltinOptions = 9
	BuiltinOptionsConcatenationOptions BuiltinOptions = 10
	BuiltinOptionsAddOptions           BuiltinOptions = 11
	BuiltinOptionsReshapeOptions       BuiltinOptions = 17
	BuiltinOptionsMulOptions           BuiltinOptions = 21
	BuiltinOptionsSubOptions           BuiltinOptions = 28
	BuiltinOptionsSplitOptions         BuiltinOptions = 35
	BuiltinOptionsSplitVOptions        BuiltinOptions = 79
)

// EnumNamesBuiltinOptions maps union tags to their schema names.
var EnumNamesBuiltinOptions = map[BuiltinOptions]string{
	BuiltinOptionsNONE:                 "NONE",
	BuiltinOptionsSoftmaxOptions:       "SoftmaxOptions",
	BuiltinOptionsConcatenationOptions: "ConcatenationOptions",
	BuiltinOptionsAddOptions:           "AddOptions",
	BuiltinOptionsReshapeOptions:       "ReshapeOptions",
	BuiltinOptionsMulOptions:           "MulOptions",
	BuiltinOptionsSubOptions:           "SubOptions",
	BuiltinOptionsSplitOptions:         "SplitOptions",
	BuiltinOptionsSplitVOptions:        "SplitVOptions",
}

func (v BuiltinOptions) String() string {
	if s, ok := EnumNamesBuiltinOptions[v]; ok {
		return s
	}
	return "BuiltinOptions(" + strconv.FormatInt(int64(v), 10) + ")"
}
