package visitor_test

import (
	"fmt"

	"github.com/coffersTech/queryast/tree"
	"github.com/coffersTech/queryast/visitor"
)

// Collect the bare words of a query, ignoring phrases.
func ExampleTreeVisitor() {
	v := visitor.New()
	v.Handle(tree.KindWord, func(node tree.Node, ctx *visitor.Context, yield func(any) bool) bool {
		return yield(node.(*tree.Word).Value)
	})

	root := tree.NewAnd(
		tree.NewSearchField("title", tree.NewWord("engine")),
		tree.NewGroup(tree.NewOr(tree.NewWord("query"), tree.NewPhrase(`"search query"`))),
	)
	for value := range v.Visit(root, nil) {
		fmt.Println(value)
	}
	// Output:
	// engine
	// query
}

// Delete every phrase and apply the usual collapsing policy for boolean
// operations: an operation left with a single operand is unwrapped, one
// left with none is deleted too, so deletions keep propagating upward.
func ExampleTreeTransformer() {
	tr := visitor.NewTransformer()
	tr.Handle(tree.KindPhrase, func(node tree.Node, ctx *visitor.Context) ([]tree.Node, error) {
		return nil, nil
	})
	tr.Handle(tree.KindBaseOperation, func(node tree.Node, ctx *visitor.Context) ([]tree.Node, error) {
		rebuilt, err := tr.TransformChildren(node, ctx)
		if err != nil {
			return nil, err
		}
		switch children := rebuilt[0].Children(); len(children) {
		case 0:
			return nil, nil
		case 1:
			return []tree.Node{children[0]}, nil
		default:
			return rebuilt, nil
		}
	})

	root := tree.NewAnd(
		tree.NewOr(tree.NewWord("spam"), tree.NewPhrase(`"ham"`)),
		tree.NewAnd(tree.NewPhrase(`"baz"`), tree.NewPhrase(`"biz"`)),
	)
	result, err := tr.Visit(root, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(result)
	// Output: Word(spam)
}
