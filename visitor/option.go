package visitor

import "github.com/coffersTech/queryast/tree"

// DefaultMaxDepth is the traversal depth bound used unless WithMaxDepth
// overrides it.
const DefaultMaxDepth = 1000

// Option configures a TreeVisitor or TreeTransformer.
type Option func(*config)

type config struct {
	trackParents    bool
	trackNewParents bool
	maxDepth        int
}

func newConfig(opts []Option) config {
	cfg := config{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithTrackParents records, for every visited node, the chain of its
// strict ancestors in the original tree, exposed as Context.Parents.
func WithTrackParents() Option {
	return func(c *config) { c.trackParents = true }
}

// WithTrackNewParents records the descent chain of the tree being
// rebuilt, exposed as Context.NewParents. It has no effect on a
// TreeVisitor.
func WithTrackNewParents() Option {
	return func(c *config) { c.trackNewParents = true }
}

// WithMaxDepth overrides the traversal depth bound. Trees nested deeper
// than n make a TreeTransformer return an error wrapping ErrMaxDepth
// and a TreeVisitor panic with the same error.
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

// childContext derives the context handed to the children of node: the
// caller-visible values are untouched, the depth advances, and the
// enabled ancestor chains grow by node.
func (cfg config) childContext(c *Context, node tree.Node) *Context {
	out := c.clone()
	out.depth++
	if cfg.trackParents {
		out.parents = appendChain(c.Parents(), node)
	}
	if cfg.trackNewParents {
		out.newParents = appendChain(c.NewParents(), node)
	}
	return out
}
