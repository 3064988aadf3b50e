package converter

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/born-ml/graphlite/internal/model"
	"github.com/born-ml/graphlite/internal/ops"
	"github.com/born-ml/graphlite/internal/status"
	"github.com/born-ml/graphlite/internal/tflite"
)

// Options configures Convert.
type Options struct {
	// Registry supplies the parsers (default: DefaultRegistry()).
	Registry *Registry

	// Format is the canonical layout assigned to tensors whose parser does
	// not pin one (default: NHWC).
	Format ops.Format

	// Fmk tags the converted model with its source framework.
	Fmk ops.FmkType

	// Name and Version label the model. Name defaults to the foreign
	// model's description.
	Name    string
	Version string

	// StrictMode fails on unsupported operators (default: true). When false
	// they are skipped with a warning.
	StrictMode bool

	// Logger receives conversion diagnostics (default: the standard logger).
	Logger log.FieldLogger
}

// DefaultOptions returns the default conversion settings.
func DefaultOptions() Options {
	return Options{
		Format:     ops.NHWC,
		Fmk:        ops.FmkTFLite,
		StrictMode: true,
	}
}

// Convert translates every subgraph of src into a canonical Model. Each
// foreign subgraph becomes one explicit canonical subgraph; the first one
// provides the graph-level inputs and outputs.
//
// The returned Model is not exportable; pass it to model.Marshal to obtain
// its persisted form.
func Convert(src *tflite.ModelT, opts ...Options) (*model.Model, error) {
	opt := DefaultOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.Registry == nil {
		opt.Registry = DefaultRegistry()
	}
	if opt.Logger == nil {
		opt.Logger = log.StandardLogger()
	}

	if src == nil {
		return nil, status.New(status.NullInput, "no foreign model")
	}
	if len(src.Subgraphs) == 0 {
		return nil, status.New(status.InvalidFormat, "foreign model has no subgraphs")
	}

	name := opt.Name
	if name == "" {
		name = src.Description
	}
	c := &conversion{
		src:     src,
		opt:     opt,
		builder: model.NewBuilder(name, opt.Version),
		log:     opt.Logger.WithField("model", name),
	}
	c.builder.SetFmkType(opt.Fmk)

	for i := range src.Subgraphs {
		if err := c.convertSubgraph(i); err != nil {
			c.log.WithError(err).Warn("conversion failed")
			return nil, errors.Wrapf(err, "convert subgraph %d", i)
		}
	}

	m, err := c.builder.Build()
	if err != nil {
		return nil, errors.Wrap(err, "assemble converted model")
	}
	c.log.WithFields(log.Fields{
		"model_id": m.ID(),
		"nodes":    m.NumNodes(),
		"tensors":  m.NumTensors(),
		"skipped":  c.skipped,
	}).Info("model converted")
	return m, nil
}

type conversion struct {
	src     *tflite.ModelT
	opt     Options
	builder *model.Builder
	log     log.FieldLogger
	skipped int
}

func (c *conversion) convertSubgraph(i int) error {
	g, err := NewGraph(c.src, i)
	if err != nil {
		return err
	}
	ctx := newContext(g, c.opt.Format, c.builder.NumTensors())
	graphInputs := make(map[int32]bool, len(g.subgraph.Inputs))
	for _, in := range g.subgraph.Inputs {
		graphInputs[in] = true
	}

	inputs, err := c.boundary(ctx, g, g.subgraph.Inputs, graphInputs)
	if err != nil {
		return errors.Wrap(err, "subgraph inputs")
	}

	var nodes []int
	for j, op := range g.subgraph.Operators {
		idx, err := c.convertOperator(ctx, g, j, op, graphInputs)
		if err != nil {
			if !c.opt.StrictMode && errors.Is(err, status.ErrUnsupportedOperator) {
				c.skipped++
				c.log.WithError(err).WithField("node", j).Warn("skipping unsupported operator")
				continue
			}
			return errors.Wrapf(err, "operator %d", j)
		}
		nodes = append(nodes, idx)
	}

	outputs, err := c.boundary(ctx, g, g.subgraph.Outputs, graphInputs)
	if err != nil {
		return errors.Wrap(err, "subgraph outputs")
	}

	c.builder.AddSubgraph(model.SubgraphSpec{
		Name:    g.Name(),
		Nodes:   nodes,
		Inputs:  inputs,
		Outputs: outputs,
	})
	if i == 0 {
		c.builder.SetGraphIO(inputs, outputs)
	}
	return nil
}

// boundary maps subgraph input or output tensors to canonical indices.
func (c *conversion) boundary(ctx *Context, g *Graph, srcs []int32, graphInputs map[int32]bool) ([]int, error) {
	ctx.begin("", -1)
	out := make([]int, 0, len(srcs))
	for _, src := range srcs {
		idx, err := ctx.ref(src, c.opt.Format)
		if err != nil {
			ctx.rollback()
			return nil, err
		}
		out = append(out, idx)
	}
	c.addTensors(g, ctx.commit(), graphInputs)
	return out, nil
}

func (c *conversion) convertOperator(ctx *Context, g *Graph, j int, op *tflite.OperatorT,
	graphInputs map[int32]bool) (int, error) {
	if op == nil {
		return 0, status.New(status.InvalidFormat, "operator %d is null", j)
	}
	code, err := g.OperatorCode(op)
	if err != nil {
		return 0, err
	}
	name := tflite.OpName(code)
	parser, err := c.opt.Registry.Lookup(name)
	if err != nil {
		return 0, err
	}

	ctx.begin(name, j)
	attr, err := parser.Parse(ctx, op, g)
	if err != nil {
		ctx.rollback()
		return 0, withOp(err, name)
	}
	if attr == nil {
		ctx.rollback()
		return 0, status.New(status.InvalidAttributeData, "parser returned no attributes").WithOp(name)
	}
	inputs, outputs := ctx.wired()
	c.addTensors(g, ctx.commit(), graphInputs)
	idx, err := c.builder.AddNode(model.NodeSpec{
		Name:    fmt.Sprintf("%s-%d", name, c.builder.NumNodes()),
		Inputs:  inputs,
		Outputs: outputs,
		Attr:    attr,
	})
	if err != nil {
		return 0, withOp(err, name)
	}
	c.log.WithFields(log.Fields{"op": name, "node": idx, "type": attr.Type()}).Debug("operator converted")
	return idx, nil
}

// addTensors appends newly numbered foreign tensors to the builder.
func (c *conversion) addTensors(g *Graph, fresh []freshTensor, graphInputs map[int32]bool) {
	for _, f := range fresh {
		t := g.subgraph.Tensors[f.src]
		data := g.Data(f.src)
		category := ops.CategoryVariable
		switch {
		case len(data) > 0:
			category = ops.CategoryConst
		case graphInputs[f.src]:
			category = ops.CategoryGraphInput
		}
		c.builder.AddTensor(model.TensorSpec{
			Name:     t.Name,
			Shape:    t.Shape,
			DataType: dataType(t.Type),
			Format:   f.format,
			Category: category,
			Data:     data,
		})
	}
}

// withOp names the operator on status errors that do not name one yet.
// err is never modified: parsers may return shared sentinels.
func withOp(err error, op string) error {
	var se *status.Error
	if !errors.As(err, &se) || se.Op != "" {
		return err
	}
	named := *se
	named.Op = op
	if err != error(se) {
		named.Detail = ""
		named.Err = err
	}
	return &named
}
