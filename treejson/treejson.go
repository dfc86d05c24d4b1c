// Package treejson reads and writes the JSON interchange form of a
// query tree. It is the boundary through which external query parsers
// hand the engine an already-constructed tree; it is structural
// interchange, not query syntax.
//
// Every node is one object tagged by "type":
//
//	{"type": "word", "value": "foo"}
//	{"type": "phrase", "value": "\"foo bar\""}
//	{"type": "group", "expr": {...}}
//	{"type": "proximity", "degree": 2, "term": {...}}
//	{"type": "search_field", "name": "title", "expr": {...}}
//	{"type": "and", "operands": [{...}, ...]}
//	{"type": "or", "operands": [{...}, ...]}
//	{"type": "none"}
package treejson

import (
	"fmt"

	"github.com/valyala/fastjson"

	"github.com/coffersTech/queryast/tree"
)

var parsers fastjson.ParserPool

// Decode parses data as a single tree document.
func Decode(data []byte) (tree.Node, error) {
	p := parsers.Get()
	defer parsers.Put(p)

	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("invalid tree document: %w", err)
	}
	return decodeNode(v)
}

func decodeNode(v *fastjson.Value) (tree.Node, error) {
	typ := string(v.GetStringBytes("type"))
	switch typ {
	case "word":
		return tree.NewWord(string(v.GetStringBytes("value"))), nil

	case "phrase":
		return tree.NewPhrase(string(v.GetStringBytes("value"))), nil

	case "group":
		expr, err := decodeChild(v, typ, "expr")
		if err != nil {
			return nil, err
		}
		return tree.NewGroup(expr), nil

	case "proximity":
		term, err := decodeChild(v, typ, "term")
		if err != nil {
			return nil, err
		}
		return tree.NewProximity(term, v.GetInt("degree")), nil

	case "search_field":
		expr, err := decodeChild(v, typ, "expr")
		if err != nil {
			return nil, err
		}
		return tree.NewSearchField(string(v.GetStringBytes("name")), expr), nil

	case "and", "or":
		items := v.GetArray("operands")
		operands := make([]tree.Node, 0, len(items))
		for i, item := range items {
			operand, err := decodeNode(item)
			if err != nil {
				return nil, fmt.Errorf("%s operand %d: %w", typ, i, err)
			}
			operands = append(operands, operand)
		}
		if typ == "and" {
			return tree.NewAnd(operands...), nil
		}
		return tree.NewOr(operands...), nil

	case "none":
		return tree.NoneItem, nil

	case "":
		return nil, fmt.Errorf("tree document node is missing a type")

	default:
		return nil, fmt.Errorf("unknown node type %q", typ)
	}
}

func decodeChild(v *fastjson.Value, typ, key string) (tree.Node, error) {
	child := v.Get(key)
	if child == nil {
		return nil, fmt.Errorf("%s node is missing %q", typ, key)
	}
	return decodeNode(child)
}

// Encode renders node as a compact JSON tree document.
func Encode(node tree.Node) ([]byte, error) {
	var arena fastjson.Arena
	v, err := encodeNode(&arena, node)
	if err != nil {
		return nil, err
	}
	return v.MarshalTo(nil), nil
}

func encodeNode(arena *fastjson.Arena, node tree.Node) (*fastjson.Value, error) {
	o := arena.NewObject()
	switch n := node.(type) {
	case *tree.Word:
		o.Set("type", arena.NewString("word"))
		o.Set("value", arena.NewString(n.Value))

	case *tree.Phrase:
		o.Set("type", arena.NewString("phrase"))
		o.Set("value", arena.NewString(n.Value))

	case *tree.Group:
		expr, err := encodeNode(arena, n.Expr)
		if err != nil {
			return nil, err
		}
		o.Set("type", arena.NewString("group"))
		o.Set("expr", expr)

	case *tree.Proximity:
		term, err := encodeNode(arena, n.Term)
		if err != nil {
			return nil, err
		}
		o.Set("type", arena.NewString("proximity"))
		o.Set("degree", arena.NewNumberInt(n.Degree))
		o.Set("term", term)

	case *tree.SearchField:
		expr, err := encodeNode(arena, n.Expr)
		if err != nil {
			return nil, err
		}
		o.Set("type", arena.NewString("search_field"))
		o.Set("name", arena.NewString(n.Name))
		o.Set("expr", expr)

	case *tree.AndOperation, *tree.OrOperation:
		typ := "and"
		if node.Kind() == tree.KindOrOperation {
			typ = "or"
		}
		operands := arena.NewArray()
		for i, child := range node.Children() {
			operand, err := encodeNode(arena, child)
			if err != nil {
				return nil, err
			}
			operands.SetArrayItem(i, operand)
		}
		o.Set("type", arena.NewString(typ))
		o.Set("operands", operands)

	default:
		if node == nil {
			return nil, fmt.Errorf("cannot encode a nil node")
		}
		if node.Kind() == tree.KindNoneItem {
			o.Set("type", arena.NewString("none"))
			break
		}
		return nil, fmt.Errorf("cannot encode node of kind %v", node.Kind())
	}
	return o, nil
}
