// Package converter translates foreign (TFLite) operators into canonical
// graph nodes.
//
// The package provides a registry of operator parsers keyed by foreign
// operator name. Each parser validates arity and attributes of one foreign
// operator, wires its tensors through a Context and returns the canonical
// attribute payload. Convert drives the registry over a whole model and
// assembles a model.Model from the results.
//
// Supported operator families:
//   - Shape: SplitV, Split, Concatenation, Reshape
//   - Math: Add, Sub, Mul
//   - Activations: Softmax, Relu, Relu6, Logistic, Tanh
package converter
