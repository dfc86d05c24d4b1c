// Package tree defines the abstract syntax tree of a search query:
// boolean combinations, phrases, proximity modifiers and per-field
// scoping. Nodes are immutable value objects compared structurally;
// every structural change builds a new node via WithChildren.
package tree

import (
	"fmt"
	"strings"
)

// Node is the interface implemented by all AST nodes.
//
// Children and WithChildren are the uniform capability generic traversal
// code uses to walk and rebuild a tree; traversal never reaches into a
// variant's fields directly.
type Node interface {
	// Kind returns the variant tag used for handler dispatch.
	Kind() Kind

	// Children returns the node's ordered child sequence. Leaves return
	// nil. The returned slice must not be modified.
	Children() []Node

	// WithChildren returns a copy of the node holding the given child
	// sequence, with every non-child attribute preserved. It panics if
	// the child count is not valid for the variant.
	WithChildren(children []Node) Node

	// Equal reports structural equality: same variant, same attributes,
	// same children in the same order.
	Equal(other Node) bool

	// String returns a compact debug form of the node. It is not query
	// syntax.
	String() string
}

// Equal reports whether a and b are structurally equal. Either side may
// be nil; two nils are equal.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

func childrenEqual(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func mustLeaf(k Kind, children []Node) {
	if len(children) != 0 {
		panic(fmt.Sprintf("tree: %v cannot hold children", k))
	}
}

func exactlyOne(k Kind, children []Node) Node {
	if len(children) != 1 {
		panic(fmt.Sprintf("tree: %v requires exactly one child, got %d", k, len(children)))
	}
	return children[0]
}

// Word is a single unquoted search term.
type Word struct {
	Value string
}

// NewWord returns a Word holding value.
func NewWord(value string) *Word { return &Word{Value: value} }

func (w *Word) Kind() Kind       { return KindWord }
func (w *Word) Children() []Node { return nil }

func (w *Word) WithChildren(children []Node) Node {
	mustLeaf(KindWord, children)
	return w
}

func (w *Word) Equal(other Node) bool {
	o, ok := other.(*Word)
	return ok && o.Value == w.Value
}

func (w *Word) String() string { return fmt.Sprintf("Word(%s)", w.Value) }

// Phrase is a quoted search term. Value keeps the surrounding quotes,
// so a Phrase never equals a Word carrying the same text.
type Phrase struct {
	Value string
}

// NewPhrase returns a Phrase holding value. By convention value
// includes its quotes, e.g. `"some phrase"`.
func NewPhrase(value string) *Phrase { return &Phrase{Value: value} }

func (p *Phrase) Kind() Kind       { return KindPhrase }
func (p *Phrase) Children() []Node { return nil }

func (p *Phrase) WithChildren(children []Node) Node {
	mustLeaf(KindPhrase, children)
	return p
}

func (p *Phrase) Equal(other Node) bool {
	o, ok := other.(*Phrase)
	return ok && o.Value == p.Value
}

func (p *Phrase) String() string { return fmt.Sprintf("Phrase(%s)", p.Value) }

// Group is a parenthesized sub-expression.
type Group struct {
	Expr Node
}

// NewGroup returns a Group wrapping expr.
func NewGroup(expr Node) *Group { return &Group{Expr: expr} }

func (g *Group) Kind() Kind       { return KindGroup }
func (g *Group) Children() []Node { return []Node{g.Expr} }

func (g *Group) WithChildren(children []Node) Node {
	return &Group{Expr: exactlyOne(KindGroup, children)}
}

func (g *Group) Equal(other Node) bool {
	o, ok := other.(*Group)
	return ok && Equal(g.Expr, o.Expr)
}

func (g *Group) String() string { return fmt.Sprintf("Group(%s)", g.Expr) }

// Proximity is a distance modifier: its term, conventionally a Phrase,
// matches within Degree words.
type Proximity struct {
	Term   Node
	Degree int
}

// NewProximity returns a Proximity over term with the given degree.
func NewProximity(term Node, degree int) *Proximity {
	return &Proximity{Term: term, Degree: degree}
}

func (p *Proximity) Kind() Kind       { return KindProximity }
func (p *Proximity) Children() []Node { return []Node{p.Term} }

func (p *Proximity) WithChildren(children []Node) Node {
	return &Proximity{Term: exactlyOne(KindProximity, children), Degree: p.Degree}
}

func (p *Proximity) Equal(other Node) bool {
	o, ok := other.(*Proximity)
	return ok && o.Degree == p.Degree && Equal(p.Term, o.Term)
}

func (p *Proximity) String() string {
	return fmt.Sprintf("Proximity(%s, %d)", p.Term, p.Degree)
}

// SearchField restricts its sub-expression to a named field.
type SearchField struct {
	Name string
	Expr Node
}

// NewSearchField returns a SearchField scoping expr to the named field.
func NewSearchField(name string, expr Node) *SearchField {
	return &SearchField{Name: name, Expr: expr}
}

func (s *SearchField) Kind() Kind       { return KindSearchField }
func (s *SearchField) Children() []Node { return []Node{s.Expr} }

func (s *SearchField) WithChildren(children []Node) Node {
	return &SearchField{Name: s.Name, Expr: exactlyOne(KindSearchField, children)}
}

func (s *SearchField) Equal(other Node) bool {
	o, ok := other.(*SearchField)
	return ok && o.Name == s.Name && Equal(s.Expr, o.Expr)
}

func (s *SearchField) String() string {
	return fmt.Sprintf("SearchField(%s, %s)", s.Name, s.Expr)
}

// AndOperation is an n-ary boolean conjunction. Operand order is
// significant.
type AndOperation struct {
	Operands []Node
}

// NewAnd returns an AndOperation over the given operands.
func NewAnd(operands ...Node) *AndOperation {
	return &AndOperation{Operands: operands}
}

func (a *AndOperation) Kind() Kind       { return KindAndOperation }
func (a *AndOperation) Children() []Node { return a.Operands }

func (a *AndOperation) WithChildren(children []Node) Node {
	return &AndOperation{Operands: children}
}

func (a *AndOperation) Equal(other Node) bool {
	o, ok := other.(*AndOperation)
	return ok && childrenEqual(a.Operands, o.Operands)
}

func (a *AndOperation) String() string { return formatOperation("And", a.Operands) }

// OrOperation is an n-ary boolean disjunction. Operand order is
// significant.
type OrOperation struct {
	Operands []Node
}

// NewOr returns an OrOperation over the given operands.
func NewOr(operands ...Node) *OrOperation {
	return &OrOperation{Operands: operands}
}

func (o *OrOperation) Kind() Kind       { return KindOrOperation }
func (o *OrOperation) Children() []Node { return o.Operands }

func (o *OrOperation) WithChildren(children []Node) Node {
	return &OrOperation{Operands: children}
}

func (o *OrOperation) Equal(other Node) bool {
	n, ok := other.(*OrOperation)
	return ok && childrenEqual(o.Operands, n.Operands)
}

func (o *OrOperation) String() string { return formatOperation("Or", o.Operands) }

func formatOperation(name string, operands []Node) string {
	parts := make([]string, len(operands))
	for i, op := range operands {
		parts[i] = op.String()
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ", "))
}

// NoneItem is the sentinel for an operand position that exists
// syntactically but carries no value. All occurrences are
// interchangeable and compare equal.
var NoneItem Node = noneItem{}

type noneItem struct{}

func (noneItem) Kind() Kind       { return KindNoneItem }
func (noneItem) Children() []Node { return nil }

func (noneItem) WithChildren(children []Node) Node {
	mustLeaf(KindNoneItem, children)
	return NoneItem
}

func (noneItem) Equal(other Node) bool {
	return other != nil && other.Kind() == KindNoneItem
}

func (noneItem) String() string { return "None" }
