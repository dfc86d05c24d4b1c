// Package visitor implements read-only traversal and rewriting of query
// trees. Behavior is attached per node kind: a handler registered for a
// concrete kind wins over one registered for an abstract ancestor
// (tree.KindTerm, tree.KindBaseOperation), and nodes with no applicable
// handler fall back to a structural default that recurses without
// emitting anything (TreeVisitor) or rebuilds the node from its
// rewritten children (TreeTransformer).
package visitor

import (
	"errors"
	"fmt"
	"iter"

	"github.com/coffersTech/queryast/tree"
)

// ErrMaxDepth reports a traversal that exceeded the configured depth
// bound.
var ErrMaxDepth = errors.New("maximum traversal depth exceeded")

// HandlerFunc handles one node during a read-only traversal. It may
// emit any number of results through yield and reports whether
// traversal should continue; it must return false once yield does.
// Call TreeVisitor.VisitChildren to descend into the node's children.
type HandlerFunc func(node tree.Node, ctx *Context, yield func(any) bool) bool

// TreeVisitor enumerates every node of a tree exactly once, collecting
// whatever the handlers emit. A visitor with no handlers emits nothing.
//
// A TreeVisitor is safe for concurrent Visit calls once its handlers
// are registered: each call walks the shared immutable tree with its
// own context chain.
type TreeVisitor struct {
	cfg      config
	handlers map[tree.Kind]HandlerFunc
	fallback HandlerFunc
}

// New returns a TreeVisitor.
func New(opts ...Option) *TreeVisitor {
	v := &TreeVisitor{
		cfg:      newConfig(opts),
		handlers: make(map[tree.Kind]HandlerFunc),
	}
	v.fallback = v.VisitChildren
	return v
}

// Handle registers fn for kind. A handler registered under an abstract
// kind applies to every concrete kind declaring it as an ancestor,
// unless a more specific handler is registered too.
func (v *TreeVisitor) Handle(kind tree.Kind, fn HandlerFunc) {
	v.handlers[kind] = fn
}

// HandleFallback replaces the structural fallback invoked when no
// registered handler applies to a node. The default is VisitChildren.
func (v *TreeVisitor) HandleFallback(fn HandlerFunc) {
	v.fallback = fn
}

// Visit returns the traversal of root as a lazy sequence. Every call
// produces an independent sequence that can itself be ranged over more
// than once; consuming a sequence to completion observes every node.
// ctx may be nil. Visit panics with an error wrapping ErrMaxDepth if
// the tree is nested deeper than the configured bound, and panics
// raised by handlers propagate unchanged.
func (v *TreeVisitor) Visit(root tree.Node, ctx *Context) iter.Seq[any] {
	return func(yield func(any) bool) {
		if root == nil {
			return
		}
		v.visit(root, ctx.clone(), yield)
	}
}

func (v *TreeVisitor) visit(node tree.Node, ctx *Context, yield func(any) bool) bool {
	return v.resolve(node.Kind())(node, ctx, yield)
}

// resolve walks the kind's declared ancestry, most specific first, and
// returns the first registered handler. Resolution depends only on the
// ancestry chain, never on registration order.
func (v *TreeVisitor) resolve(kind tree.Kind) HandlerFunc {
	for _, k := range kind.Ancestry() {
		if fn, ok := v.handlers[k]; ok {
			return fn
		}
	}
	return v.fallback
}

// VisitChildren is the structural fallback: it emits nothing for node
// itself and descends into every child in order. Handlers call it to
// resume the default walk beneath their node, before or after emitting
// their own results.
func (v *TreeVisitor) VisitChildren(node tree.Node, ctx *Context, yield func(any) bool) bool {
	children := node.Children()
	if len(children) == 0 {
		return true
	}
	childCtx := v.cfg.childContext(ctx, node)
	if childCtx.depth > v.cfg.maxDepth {
		panic(fmt.Errorf("%w (%d)", ErrMaxDepth, v.cfg.maxDepth))
	}
	for _, child := range children {
		if !v.visit(child, childCtx, yield) {
			return false
		}
	}
	return true
}
