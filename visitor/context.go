package visitor

import "github.com/coffersTech/queryast/tree"

// Context carries caller-defined values and the engine-maintained
// ancestor chains down a traversal. It is immutable: WithValue returns
// a derived copy, so a handler may shape the context its subtree sees
// without affecting siblings. A nil *Context is valid and empty.
type Context struct {
	values     map[string]any
	parents    []tree.Node
	newParents []tree.Node
	depth      int
}

// NewContext returns an empty context.
func NewContext() *Context { return &Context{} }

// Value returns the value stored under key, or nil if absent.
func (c *Context) Value(key string) any {
	if c == nil {
		return nil
	}
	return c.values[key]
}

// WithValue returns a copy of the context with key set to value.
func (c *Context) WithValue(key string, value any) *Context {
	out := c.clone()
	values := make(map[string]any, len(out.values)+1)
	for k, v := range out.values {
		values[k] = v
	}
	values[key] = value
	out.values = values
	return out
}

// Parents returns the chain of strict ancestors of the current node in
// the tree being traversed, root first. It is nil at the root, and at
// every node when parent tracking was not enabled.
func (c *Context) Parents() []tree.Node {
	if c == nil {
		return nil
	}
	return c.parents
}

// NewParents returns the descent chain recorded while a TreeTransformer
// rebuilds the tree, root first. Each entry is the node that was being
// rewritten at that level, so the chain tracks structural position, not
// the final post-rewrite nodes. It is nil at the root, and at every
// node when new-parent tracking was not enabled.
func (c *Context) NewParents() []tree.Node {
	if c == nil {
		return nil
	}
	return c.newParents
}

func (c *Context) clone() *Context {
	out := &Context{}
	if c != nil {
		*out = *c
	}
	return out
}

func appendChain(chain []tree.Node, node tree.Node) []tree.Node {
	out := make([]tree.Node, len(chain)+1)
	copy(out, chain)
	out[len(chain)] = node
	return out
}
