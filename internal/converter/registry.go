package converter

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/born-ml/graphlite/internal/ops"
	"github.com/born-ml/graphlite/internal/status"
	"github.com/born-ml/graphlite/internal/tflite"
)

// OperatorParser translates one foreign operator into a canonical attribute
// payload.
//
// Parse must not modify g. It checks arity before reading attributes, wires
// every tensor the canonical node uses through ctx in source order, and
// returns the payload tagged with its canonical primitive type. On error the
// caller discards whatever ctx recorded.
type OperatorParser interface {
	Parse(ctx *Context, op *tflite.OperatorT, g *Graph) (ops.Attr, error)
}

// ParserFunc adapts a function to OperatorParser.
type ParserFunc func(ctx *Context, op *tflite.OperatorT, g *Graph) (ops.Attr, error)

// Parse implements OperatorParser.
func (f ParserFunc) Parse(ctx *Context, op *tflite.OperatorT, g *Graph) (ops.Attr, error) {
	return f(ctx, op, g)
}

// Registry maps foreign operator names to parsers.
//
// Registration happens before the first Lookup; the first Lookup seals the
// registry, after which Lookup is safe from any number of goroutines
// without locking.
type Registry struct {
	mu      sync.Mutex
	sealed  atomic.Bool
	parsers map[string]OperatorParser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]OperatorParser)}
}

// DefaultRegistry creates a registry holding every built-in parser.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	if err := RegisterBuiltins(r); err != nil {
		// Built-in names are unique; this only fires on a programming error.
		panic(err)
	}
	return r
}

// RegisterBuiltins adds every parser shipped with this package.
func RegisterBuiltins(r *Registry) error {
	for _, register := range []func(*Registry) error{
		registerShapeOps,
		registerMathOps,
		registerActivations,
	} {
		if err := register(r); err != nil {
			return err
		}
	}
	return nil
}

// Register adds a parser under name. Names are matched exactly. It fails on
// a duplicate name or once the registry is sealed.
func (r *Registry) Register(name string, p OperatorParser) error {
	if p == nil {
		return fmt.Errorf("register %q: nil parser", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed.Load() {
		return fmt.Errorf("register %q: registry is sealed", name)
	}
	if _, dup := r.parsers[name]; dup {
		return fmt.Errorf("register %q: already registered", name)
	}
	r.parsers[name] = p
	return nil
}

// Lookup returns the parser registered under name, or an UnsupportedOperator
// error naming it.
func (r *Registry) Lookup(name string) (OperatorParser, error) {
	r.seal()
	p, ok := r.parsers[name]
	if !ok {
		return nil, status.New(status.UnsupportedOperator, "no parser registered").WithOp(name)
	}
	return p, nil
}

// Names returns the registered operator names, sorted.
func (r *Registry) Names() []string {
	r.seal()
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) seal() {
	if r.sealed.Load() {
		return
	}
	r.mu.Lock()
	r.sealed.Store(true)
	r.mu.Unlock()
}

func register(r *Registry, parsers map[string]ParserFunc) error {
	names := make([]string, 0, len(parsers))
	for name := range parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := r.Register(name, parsers[name]); err != nil {
			return err
		}
	}
	return nil
}
