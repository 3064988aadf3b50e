package model

import (
	"fmt"
	"slices"

	"github.com/born-ml/graphlite/internal/status"
)

// assembleSubgraph checks an explicit descriptor against the finished node
// and tensor tables. Any inconsistency fails the whole descriptor.
func assembleSubgraph(idx int, spec SubgraphSpec, numTensors int, nodes []Node) (Subgraph, error) {
	fail := func(format string, args ...any) (Subgraph, error) {
		return Subgraph{}, status.New(status.SubgraphAssemblyFailure, "subgraph %d %q: %s",
			idx, spec.Name, fmt.Sprintf(format, args...))
	}

	seen := make(map[int]bool, len(spec.Nodes))
	for _, n := range spec.Nodes {
		if n < 0 || n >= len(nodes) {
			return fail("node index %d out of range [0, %d)", n, len(nodes))
		}
		if seen[n] {
			return fail("node %d listed twice", n)
		}
		seen[n] = true
	}
	for _, group := range [][]int{spec.Inputs, spec.Outputs, spec.Tensors} {
		for _, t := range group {
			if t < 0 || t >= numTensors {
				return fail("tensor index %d out of range [0, %d)", t, numTensors)
			}
		}
	}

	tensors := spec.Tensors
	if len(tensors) == 0 {
		tensors = memberTensors(spec.Nodes, nodes)
	}
	return Subgraph{
		Index:   idx,
		Name:    spec.Name,
		Nodes:   slices.Clone(spec.Nodes),
		Inputs:  slices.Clone(spec.Inputs),
		Outputs: slices.Clone(spec.Outputs),
		Tensors: slices.Clone(tensors),
	}, nil
}

// inferSubgraph builds the single implicit subgraph of a model without a
// subgraph table. It holds every node in order. Its inputs are the tensors
// read by some node but written by none, in order of first use. Its outputs
// are the tensors written by some node but read by none, in order of
// production. Constant tensors therefore count as inputs.
func inferSubgraph(name string, nodes []Node) Subgraph {
	produced := make(map[int]bool)
	consumed := make(map[int]bool)
	for _, n := range nodes {
		for _, t := range n.Inputs {
			consumed[t] = true
		}
		for _, t := range n.Outputs {
			produced[t] = true
		}
	}

	sg := Subgraph{Name: name, Nodes: make([]int, len(nodes))}
	inSeen := make(map[int]bool)
	outSeen := make(map[int]bool)
	for i, n := range nodes {
		sg.Nodes[i] = n.Index
		for _, t := range n.Inputs {
			if !produced[t] && !inSeen[t] {
				inSeen[t] = true
				sg.Inputs = append(sg.Inputs, t)
			}
		}
		for _, t := range n.Outputs {
			if !consumed[t] && !outSeen[t] {
				outSeen[t] = true
				sg.Outputs = append(sg.Outputs, t)
			}
		}
	}
	sg.Tensors = memberTensors(sg.Nodes, nodes)
	return sg
}

// memberTensors lists the tensors touched by the given nodes in order of
// first reference.
func memberTensors(members []int, nodes []Node) []int {
	seen := make(map[int]bool)
	var out []int
	for _, idx := range members {
		n := nodes[idx]
		for _, t := range slices.Concat(n.Inputs, n.Outputs) {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}
