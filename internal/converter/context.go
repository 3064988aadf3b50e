package converter

import (
	"github.com/born-ml/graphlite/internal/ops"
)

// Context records the tensor wiring of the operator being parsed and maps
// foreign tensor indices to canonical ones.
//
// Canonical tensors are numbered in order of first reference. References
// made during a Parse call stay pending until the caller commits them, so a
// failing parser leaves the numbering exactly as it was.
type Context struct {
	g      *Graph
	op     string
	node   int
	format ops.Format

	committed map[int32]int
	next      int

	pending map[int32]int
	fresh   []freshTensor
	inputs  []int
	outputs []int
}

type freshTensor struct {
	src    int32
	format ops.Format
}

func newContext(g *Graph, format ops.Format, base int) *Context {
	return &Context{
		g:         g,
		format:    format,
		committed: make(map[int32]int),
		next:      base,
		pending:   make(map[int32]int),
	}
}

// Op returns the foreign name of the operator being parsed.
func (c *Context) Op() string {
	return c.op
}

// Node returns the position of the operator in its subgraph.
func (c *Context) Node() int {
	return c.node
}

// Format returns the default canonical layout.
func (c *Context) Format() ops.Format {
	return c.format
}

// AddInput wires foreign tensor src as the next input of the node.
func (c *Context) AddInput(src int32, format ops.Format) error {
	idx, err := c.ref(src, format)
	if err != nil {
		return err
	}
	c.inputs = append(c.inputs, idx)
	return nil
}

// AddOutput wires foreign tensor src as the next output of the node.
func (c *Context) AddOutput(src int32, format ops.Format) error {
	idx, err := c.ref(src, format)
	if err != nil {
		return err
	}
	c.outputs = append(c.outputs, idx)
	return nil
}

// ref resolves src to its canonical index, numbering it if this is its first
// reference. The layout of the first reference wins.
func (c *Context) ref(src int32, format ops.Format) (int, error) {
	if _, err := c.g.Tensor(src); err != nil {
		return 0, err
	}
	if idx, ok := c.committed[src]; ok {
		return idx, nil
	}
	if idx, ok := c.pending[src]; ok {
		return idx, nil
	}
	idx := c.next + len(c.fresh)
	c.pending[src] = idx
	c.fresh = append(c.fresh, freshTensor{src: src, format: format})
	return idx, nil
}

func (c *Context) begin(op string, node int) {
	c.op = op
	c.node = node
	c.rollback()
}

// commit makes the pending references permanent and returns the tensors
// numbered by them, in canonical order.
func (c *Context) commit() []freshTensor {
	fresh := c.fresh
	for src, idx := range c.pending {
		c.committed[src] = idx
	}
	c.next += len(fresh)
	c.pending = make(map[int32]int)
	c.fresh = nil
	return fresh
}

func (c *Context) rollback() {
	clear(c.pending)
	c.fresh = nil
	c.inputs = nil
	c.outputs = nil
}

// wired returns the node's inputs and outputs recorded since begin.
func (c *Context) wired() (inputs, outputs []int) {
	return c.inputs, c.outputs
}
