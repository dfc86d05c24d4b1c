package visitor

import (
	"errors"
	"fmt"

	"github.com/coffersTech/queryast/tree"
)

// ErrResultCount reports a transformation whose root rewrite produced a
// number of nodes other than one.
var ErrResultCount = errors.New("the transformation did not produce exactly one result")

// TransformFunc rewrites one node. It returns the node's replacement
// sequence: empty deletes the node, one node substitutes it (or keeps
// it as is), several fan the position out into sibling positions. An
// error aborts the whole transformation and reaches the Visit caller
// unchanged.
type TransformFunc func(node tree.Node, ctx *Context) ([]tree.Node, error)

// TreeTransformer rebuilds a tree bottom-up. Handlers replace
// individual nodes; positions with no applicable handler are rebuilt
// structurally from their rewritten children, every other attribute
// kept from the original node. A transformer with no handlers returns
// a tree structurally equal to its input.
//
// A TreeTransformer is safe for concurrent Visit calls once its
// handlers are registered: nodes are never mutated in place, only
// replaced by newly built values.
type TreeTransformer struct {
	cfg      config
	handlers map[tree.Kind]TransformFunc
	fallback TransformFunc
}

// NewTransformer returns a TreeTransformer.
func NewTransformer(opts ...Option) *TreeTransformer {
	t := &TreeTransformer{
		cfg:      newConfig(opts),
		handlers: make(map[tree.Kind]TransformFunc),
	}
	t.fallback = t.TransformChildren
	return t
}

// Handle registers fn for kind. A handler registered under an abstract
// kind applies to every concrete kind declaring it as an ancestor,
// unless a more specific handler is registered too.
func (t *TreeTransformer) Handle(kind tree.Kind, fn TransformFunc) {
	t.handlers[kind] = fn
}

// HandleFallback replaces the structural fallback invoked when no
// registered handler applies to a node. The default is
// TransformChildren.
func (t *TreeTransformer) HandleFallback(fn TransformFunc) {
	t.fallback = fn
}

// Visit rewrites root and returns the resulting tree. Interior
// positions may produce zero or several replacement nodes; splicing
// those into the parent is the normal deletion and fan-out mechanism.
// The rewrite as a whole must end in exactly one node: a root result of
// any other size is reported as an error wrapping ErrResultCount. This
// check applies only at the top level. ctx may be nil.
func (t *TreeTransformer) Visit(root tree.Node, ctx *Context) (tree.Node, error) {
	if root == nil {
		return nil, errors.New("cannot transform a nil tree")
	}
	nodes, err := t.transform(root, ctx.clone())
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrResultCount, len(nodes))
	}
	return nodes[0], nil
}

func (t *TreeTransformer) transform(node tree.Node, ctx *Context) ([]tree.Node, error) {
	return t.resolve(node.Kind())(node, ctx)
}

func (t *TreeTransformer) resolve(kind tree.Kind) TransformFunc {
	for _, k := range kind.Ancestry() {
		if fn, ok := t.handlers[k]; ok {
			return fn
		}
	}
	return t.fallback
}

// TransformChildren is the structural fallback: it rewrites every
// child, splices the replacement sequences together in the original
// child order, and rebuilds node around them with all other attributes
// unchanged. Handlers call it to apply the default rebuild and then
// decide what to do with the result, e.g. unwrap an operation left with
// a single operand.
func (t *TreeTransformer) TransformChildren(node tree.Node, ctx *Context) ([]tree.Node, error) {
	children := node.Children()
	if len(children) == 0 {
		return []tree.Node{node}, nil
	}
	childCtx := t.cfg.childContext(ctx, node)
	if childCtx.depth > t.cfg.maxDepth {
		return nil, fmt.Errorf("%w (%d)", ErrMaxDepth, t.cfg.maxDepth)
	}
	newChildren := make([]tree.Node, 0, len(children))
	for _, child := range children {
		replacements, err := t.transform(child, childCtx)
		if err != nil {
			return nil, err
		}
		newChildren = append(newChildren, replacements...)
	}
	return []tree.Node{node.WithChildren(newChildren)}, nil
}
