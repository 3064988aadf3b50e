package tflite

import (
	"github.com/born-ml/graphlite/internal/flatbuf"
	"github.com/born-ml/graphlite/internal/status"
)

// Verify checks that buf is a structurally sound TFLite model. Option tables
// this package does not declare are checked for table integrity only.
func Verify(buf []byte) error {
	root, err := flatbuf.NewVerifier(buf).Root(Identifier)
	if err != nil {
		return err
	}
	if err := root.Scalar(0, 4); err != nil {
		return err
	}
	if _, err := root.Tables(1, func(_ int, t flatbuf.Table) error {
		if err := t.Scalar(0, 1); err != nil {
			return err
		}
		if err := t.String(1); err != nil {
			return err
		}
		if err := t.Scalar(2, 4); err != nil {
			return err
		}
		return t.Scalar(3, 4)
	}); err != nil {
		return err
	}
	if _, err := root.Tables(2, func(_ int, t flatbuf.Table) error {
		return verifySubGraph(t)
	}); err != nil {
		return err
	}
	if err := root.String(3); err != nil {
		return err
	}
	_, err = root.Tables(4, func(_ int, t flatbuf.Table) error {
		_, _, _, err := t.Vector(0, 1)
		return err
	})
	return err
}

func verifySubGraph(t flatbuf.Table) error {
	if _, err := t.Tables(0, func(_ int, tensor flatbuf.Table) error {
		if _, _, _, err := tensor.Vector(0, 4); err != nil {
			return err
		}
		if err := tensor.Scalar(1, 1); err != nil {
			return err
		}
		if err := tensor.Scalar(2, 4); err != nil {
			return err
		}
		return tensor.String(3)
	}); err != nil {
		return err
	}
	for _, slot := range []int{1, 2} {
		if _, _, _, err := t.Vector(slot, 4); err != nil {
			return err
		}
	}
	if _, err := t.Tables(3, func(_ int, op flatbuf.Table) error {
		return verifyOperator(op)
	}); err != nil {
		return err
	}
	return t.String(4)
}

func verifyOperator(t flatbuf.Table) error {
	if err := t.Scalar(0, 4); err != nil {
		return err
	}
	for _, slot := range []int{1, 2} {
		if _, _, _, err := t.Vector(slot, 4); err != nil {
			return err
		}
	}
	return t.Union(3, 4, func(typ byte, opts flatbuf.Table) error {
		switch BuiltinOptions(typ) {
		case BuiltinOptionsSplitOptions, BuiltinOptionsSplitVOptions, BuiltinOptionsSoftmaxOptions:
			return opts.Scalar(0, 4)
		case BuiltinOptionsConcatenationOptions:
			if err := opts.Scalar(0, 4); err != nil {
				return err
			}
			return opts.Scalar(1, 1)
		case BuiltinOptionsReshapeOptions:
			_, _, _, err := opts.Vector(0, 4)
			return err
		case BuiltinOptionsAddOptions, BuiltinOptionsSubOptions, BuiltinOptionsMulOptions:
			return opts.Scalar(0, 1)
		}
		return nil
	})
}

// Read verifies buf and unpacks the model it holds. The result does not
// alias buf.
func Read(buf []byte) (*ModelT, error) {
	if len(buf) == 0 {
		return nil, status.New(status.NullInput, "empty tflite model")
	}
	if err := Verify(buf); err != nil {
		return nil, status.Wrap(status.InvalidFormat, err, "invalid tflite model")
	}
	return GetRootAsModel(buf, 0).UnPack(), nil
}
