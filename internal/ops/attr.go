package ops

import (
	"fmt"

	"github.com/born-ml/graphlite/internal/status"
)

// PrimitiveType tags the attribute payload of a node.
// Values match the union tags of the persisted schema.
type PrimitiveType uint8

// Primitive types.
const (
	PrimitiveNone       PrimitiveType = 0
	PrimitiveSplit      PrimitiveType = 1
	PrimitiveConcat     PrimitiveType = 2
	PrimitiveSoftMax    PrimitiveType = 3
	PrimitiveReshape    PrimitiveType = 4
	PrimitiveAdd        PrimitiveType = 5
	PrimitiveSub        PrimitiveType = 6
	PrimitiveMul        PrimitiveType = 7
	PrimitiveActivation PrimitiveType = 8
)

// PrimitiveMax is the largest known primitive tag.
const PrimitiveMax = PrimitiveActivation

var primitiveNames = map[PrimitiveType]string{
	PrimitiveNone:       "None",
	PrimitiveSplit:      "Split",
	PrimitiveConcat:     "Concat",
	PrimitiveSoftMax:    "SoftMax",
	PrimitiveReshape:    "Reshape",
	PrimitiveAdd:        "Add",
	PrimitiveSub:        "Sub",
	PrimitiveMul:        "Mul",
	PrimitiveActivation: "Activation",
}

func (p PrimitiveType) String() string {
	if name, ok := primitiveNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Primitive(%d)", uint8(p))
}

// Attr is the operator-specific attribute payload of a node.
type Attr interface {
	// Type returns the primitive tag the payload belongs to.
	Type() PrimitiveType

	// Validate checks the payload against the rank of the node's first
	// input. A negative rank means the rank is unknown.
	Validate(rank int) error
}

// Split divides a tensor into NumberSplit pieces along SplitDim.
type Split struct {
	NumberSplit int32
	SizeSplits  []int32
	SplitDim    int32
}

// Type implements Attr.
func (*Split) Type() PrimitiveType { return PrimitiveSplit }

// Validate implements Attr.
func (s *Split) Validate(rank int) error {
	if s.NumberSplit <= 0 {
		return status.New(status.InvalidAttributeData, "split count %d must be positive", s.NumberSplit)
	}
	if len(s.SizeSplits) != int(s.NumberSplit) {
		return status.New(status.InvalidAttributeData,
			"split declares %d outputs but carries %d sizes", s.NumberSplit, len(s.SizeSplits))
	}
	return checkAxis(int(s.SplitDim), rank)
}

// Concat joins N tensors along Axis.
type Concat struct {
	Axis int32
	N    int32
}

// Type implements Attr.
func (*Concat) Type() PrimitiveType { return PrimitiveConcat }

// Validate implements Attr.
func (c *Concat) Validate(rank int) error {
	if c.N <= 0 {
		return status.New(status.InvalidAttributeData, "concat input count %d must be positive", c.N)
	}
	return checkAxis(int(c.Axis), rank)
}

// SoftMax normalises along Axis.
type SoftMax struct {
	Axis int32
}

// Type implements Attr.
func (*SoftMax) Type() PrimitiveType { return PrimitiveSoftMax }

// Validate implements Attr.
func (s *SoftMax) Validate(rank int) error {
	return checkAxis(int(s.Axis), rank)
}

// Reshape changes the shape of a tensor. An empty Shape means the target
// shape is supplied by the second input at run time.
type Reshape struct {
	Format Format
	Shape  []int64
}

// Type implements Attr.
func (*Reshape) Type() PrimitiveType { return PrimitiveReshape }

// Validate implements Attr.
func (r *Reshape) Validate(int) error {
	inferred := 0
	for _, d := range r.Shape {
		if d == -1 {
			inferred++
			continue
		}
		if d < 0 {
			return status.New(status.InvalidAttributeData, "reshape dimension %d is negative", d)
		}
	}
	if inferred > 1 {
		return status.New(status.InvalidAttributeData, "reshape infers %d dimensions, at most one allowed", inferred)
	}
	return nil
}

// Add is element-wise addition with an optional fused activation.
type Add struct {
	Activation ActivationType
}

// Type implements Attr.
func (*Add) Type() PrimitiveType { return PrimitiveAdd }

// Validate implements Attr.
func (a *Add) Validate(int) error { return checkActivation(a.Activation) }

// Sub is element-wise subtraction with an optional fused activation.
type Sub struct {
	Activation ActivationType
}

// Type implements Attr.
func (*Sub) Type() PrimitiveType { return PrimitiveSub }

// Validate implements Attr.
func (s *Sub) Validate(int) error { return checkActivation(s.Activation) }

// Mul is element-wise multiplication with an optional fused activation.
type Mul struct {
	Activation ActivationType
}

// Type implements Attr.
func (*Mul) Type() PrimitiveType { return PrimitiveMul }

// Validate implements Attr.
func (m *Mul) Validate(int) error { return checkActivation(m.Activation) }

// Activation is a standalone activation function.
type Activation struct {
	Kind  ActivationType
	Alpha float32
}

// Type implements Attr.
func (*Activation) Type() PrimitiveType { return PrimitiveActivation }

// Validate implements Attr.
func (a *Activation) Validate(int) error {
	if a.Kind == NoActivation {
		return status.New(status.InvalidAttributeData, "standalone activation has no function")
	}
	return checkActivation(a.Kind)
}

func checkActivation(a ActivationType) error {
	if a < NoActivation || a > ReluN1To1 {
		return status.New(status.InvalidAttributeData, "unknown activation %d", int8(a))
	}
	return nil
}

// checkAxis verifies an already resolved axis. Unknown ranks are accepted.
func checkAxis(axis, rank int) error {
	if rank < 0 {
		return nil
	}
	if axis < 0 || axis >= rank {
		return status.New(status.InvalidAxis, "resolved axis out of range").WithAxis(axis, rank)
	}
	return nil
}
