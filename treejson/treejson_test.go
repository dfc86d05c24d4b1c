package treejson

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/valyala/fastjson"

	"github.com/coffersTech/queryast/tree"
	"github.com/coffersTech/queryast/visitor"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  tree.Node
	}{
		{
			"word",
			`{"type": "word", "value": "foo"}`,
			tree.NewWord("foo"),
		},
		{
			"phrase keeps quoting",
			`{"type": "phrase", "value": "\"foo bar\""}`,
			tree.NewPhrase(`"foo bar"`),
		},
		{
			"none",
			`{"type": "none"}`,
			tree.NoneItem,
		},
		{
			"group",
			`{"type": "group", "expr": {"type": "word", "value": "x"}}`,
			tree.NewGroup(tree.NewWord("x")),
		},
		{
			"proximity",
			`{"type": "proximity", "degree": 2, "term": {"type": "phrase", "value": "\"a b\""}}`,
			tree.NewProximity(tree.NewPhrase(`"a b"`), 2),
		},
		{
			"search field",
			`{"type": "search_field", "name": "title", "expr": {"type": "word", "value": "x"}}`,
			tree.NewSearchField("title", tree.NewWord("x")),
		},
		{
			"and with operands",
			`{"type": "and", "operands": [
				{"type": "word", "value": "a"},
				{"type": "none"},
				{"type": "word", "value": "b"}
			]}`,
			tree.NewAnd(tree.NewWord("a"), tree.NoneItem, tree.NewWord("b")),
		},
		{
			"empty or",
			`{"type": "or", "operands": []}`,
			tree.NewOr(),
		},
		{
			"nested",
			`{"type": "or", "operands": [
				{"type": "group", "expr": {"type": "and", "operands": [
					{"type": "word", "value": "a"},
					{"type": "phrase", "value": "\"b\""}
				]}},
				{"type": "search_field", "name": "body", "expr": {"type": "word", "value": "c"}}
			]}`,
			tree.NewOr(
				tree.NewGroup(tree.NewAnd(tree.NewWord("a"), tree.NewPhrase(`"b"`))),
				tree.NewSearchField("body", tree.NewWord("c")),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.input))
			if err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if !tree.Equal(got, tt.want) {
				t.Errorf("decoded %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		errPart string
	}{
		{"invalid json", `{"type": `, "invalid tree document"},
		{"missing type", `{"value": "foo"}`, "missing a type"},
		{"unknown type", `{"type": "fuzzy", "value": "foo"}`, `unknown node type "fuzzy"`},
		{"group without expr", `{"type": "group"}`, `group node is missing "expr"`},
		{"proximity without term", `{"type": "proximity", "degree": 2}`, `proximity node is missing "term"`},
		{"bad operand", `{"type": "and", "operands": [{"type": "fuzzy"}]}`, "and operand 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error %q does not mention %q", err, tt.errPart)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	trees := []tree.Node{
		tree.NewWord("foo"),
		tree.NewPhrase(`"a b"`),
		tree.NoneItem,
		tree.NewAnd(),
		tree.NewAnd(
			tree.NewGroup(tree.NewOr(tree.NewWord("bar"), tree.NewWord("foo"))),
			tree.NewProximity(tree.NewPhrase(`"x y"`), 4),
			tree.NewSearchField("title", tree.NewWord("z")),
			tree.NoneItem,
		),
	}

	for _, root := range trees {
		t.Run(root.String(), func(t *testing.T) {
			data, err := Encode(root)
			if err != nil {
				t.Fatalf("encode error: %v", err)
			}
			got, err := Decode(data)
			if err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if !tree.Equal(got, root) {
				t.Errorf("round trip gave %v, want %v", got, root)
			}
		})
	}
}

func TestEncodeUnknownNode(t *testing.T) {
	if _, err := Encode(nil); err == nil {
		t.Errorf("expected an error for a nil node")
	}
}

// TestCorpus runs every document of the golden corpus through decode,
// an identity transform, and a re-encode round trip.
func TestCorpus(t *testing.T) {
	f, err := os.Open("testdata/corpus.json.gz")
	if err != nil {
		t.Fatalf("open corpus: %v", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("open gzip stream: %v", err)
	}
	data, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("read corpus: %v", err)
	}

	docs, err := fastjson.ParseBytes(data)
	if err != nil {
		t.Fatalf("parse corpus: %v", err)
	}
	items, err := docs.Array()
	if err != nil {
		t.Fatalf("corpus is not an array: %v", err)
	}
	if len(items) == 0 {
		t.Fatalf("corpus is empty")
	}

	identity := visitor.NewTransformer()
	for i, item := range items {
		root, err := Decode(item.MarshalTo(nil))
		if err != nil {
			t.Fatalf("document %d: decode: %v", i, err)
		}

		same, err := identity.Visit(root, nil)
		if err != nil {
			t.Fatalf("document %d: identity transform: %v", i, err)
		}
		if !tree.Equal(same, root) {
			t.Errorf("document %d: identity transform gave %v, want %v", i, same, root)
		}

		encoded, err := Encode(root)
		if err != nil {
			t.Fatalf("document %d: encode: %v", i, err)
		}
		again, err := Decode(encoded)
		if err != nil {
			t.Fatalf("document %d: re-decode: %v", i, err)
		}
		if !tree.Equal(again, root) {
			t.Errorf("document %d: round trip gave %v, want %v", i, again, root)
		}
	}
}
