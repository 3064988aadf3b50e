package schema

import (
	"github.com/born-ml/graphlite/internal/flatbuf"
)

// Field slots referenced outside the generated accessors.
const (
	metaGraphNameSlot        = 0
	metaGraphVersionSlot     = 1
	metaGraphFmkTypeSlot     = 2
	metaGraphInputIndexSlot  = 3
	metaGraphOutputIndexSlot = 4
	metaGraphNodesSlot       = 5
	metaGraphAllTensorsSlot  = 6
	metaGraphSubGraphSlot    = 7

	subGraphNameSlot          = 0
	subGraphInputIndicesSlot  = 1
	subGraphOutputIndicesSlot = 2
	subGraphNodeIndicesSlot   = 3
	subGraphTensorIndicesSlot = 4

	cNodeNameSlot        = 0
	cNodePrimitiveSlot   = 1
	cNodeInputIndexSlot  = 2
	cNodeOutputIndexSlot = 3

	tensorNameSlot     = 0
	tensorCategorySlot = 1
	tensorDataTypeSlot = 2
	tensorDimsSlot     = 3
	tensorFormatSlot   = 4
	tensorDataSlot     = 5

	primitiveValueTypeSlot = 0
	primitiveValueSlot     = 1
)

// Verify is the format validator: it checks the signature and the
// structural consistency of every table reachable from the root. It never
// interprets operator semantics.
func Verify(buf []byte) error {
	v := flatbuf.NewVerifier(buf)
	root, err := v.Root(Identifier)
	if err != nil {
		return err
	}
	return verifyMetaGraph(root)
}

// Valid reports whether Verify accepts buf.
func Valid(buf []byte) bool {
	return Verify(buf) == nil
}

func verifyMetaGraph(t flatbuf.Table) error {
	if err := t.String(metaGraphNameSlot); err != nil {
		return err
	}
	if err := t.String(metaGraphVersionSlot); err != nil {
		return err
	}
	if err := t.Scalar(metaGraphFmkTypeSlot, 4); err != nil {
		return err
	}
	if err := uintVector(t, metaGraphInputIndexSlot); err != nil {
		return err
	}
	if err := uintVector(t, metaGraphOutputIndexSlot); err != nil {
		return err
	}
	if _, err := t.Tables(metaGraphNodesSlot, func(_ int, c flatbuf.Table) error {
		return verifyCNode(c)
	}); err != nil {
		return err
	}
	if _, err := t.Tables(metaGraphAllTensorsSlot, func(_ int, c flatbuf.Table) error {
		return verifyTensor(c)
	}); err != nil {
		return err
	}
	_, err := t.Tables(metaGraphSubGraphSlot, func(_ int, c flatbuf.Table) error {
		return verifySubGraph(c)
	})
	return err
}

func verifySubGraph(t flatbuf.Table) error {
	if err := t.String(subGraphNameSlot); err != nil {
		return err
	}
	for _, slot := range []int{
		subGraphInputIndicesSlot,
		subGraphOutputIndicesSlot,
		subGraphNodeIndicesSlot,
		subGraphTensorIndicesSlot,
	} {
		if err := uintVector(t, slot); err != nil {
			return err
		}
	}
	return nil
}

func verifyCNode(t flatbuf.Table) error {
	if err := t.String(cNodeNameSlot); err != nil {
		return err
	}
	if err := t.Require(cNodePrimitiveSlot, "primitive"); err != nil {
		return err
	}
	if _, err := t.Child(cNodePrimitiveSlot, verifyPrimitive); err != nil {
		return err
	}
	if err := uintVector(t, cNodeInputIndexSlot); err != nil {
		return err
	}
	return uintVector(t, cNodeOutputIndexSlot)
}

func verifyTensor(t flatbuf.Table) error {
	if err := t.String(tensorNameSlot); err != nil {
		return err
	}
	for _, slot := range []int{tensorCategorySlot, tensorDataTypeSlot, tensorFormatSlot} {
		if err := t.Scalar(slot, 4); err != nil {
			return err
		}
	}
	if _, _, _, err := t.Vector(tensorDimsSlot, 4); err != nil {
		return err
	}
	_, _, _, err := t.Vector(tensorDataSlot, 1)
	return err
}

func verifyPrimitive(t flatbuf.Table) error {
	return t.Union(primitiveValueTypeSlot, primitiveValueSlot, func(typ byte, value flatbuf.Table) error {
		switch PrimitiveType(typ) {
		case PrimitiveTypeSplit:
			return verifyScalars(value, []int{0, 2}, 4, func() error {
				_, _, _, err := value.Vector(1, 4)
				return err
			})
		case PrimitiveTypeConcat:
			return verifyScalars(value, []int{0, 1}, 4, nil)
		case PrimitiveTypeSoftMax:
			return verifyScalars(value, []int{0}, 4, nil)
		case PrimitiveTypeReshape:
			return verifyScalars(value, []int{0}, 4, func() error {
				_, _, _, err := value.Vector(1, 8)
				return err
			})
		case PrimitiveTypeAdd, PrimitiveTypeSub, PrimitiveTypeMul:
			return verifyScalars(value, []int{0}, 1, nil)
		case PrimitiveTypeActivation:
			return verifyScalars(value, []int{0}, 1, func() error {
				return value.Scalar(1, 4)
			})
		default:
			return t.Fail("unknown primitive type %d", typ)
		}
	})
}

func verifyScalars(t flatbuf.Table, slots []int, size int, rest func() error) error {
	for _, slot := range slots {
		if err := t.Scalar(slot, size); err != nil {
			return err
		}
	}
	if rest != nil {
		return rest()
	}
	return nil
}

func uintVector(t flatbuf.Table, slot int) error {
	_, _, _, err := t.Vector(slot, 4)
	return err
}
