package tree

// Kind identifies a node variant. Concrete kinds are returned by
// Node.Kind; abstract kinds (KindTerm, KindBaseOperation) never appear
// on a node and exist only as dispatch targets for handlers that cover
// a family of variants.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindWord
	KindPhrase
	KindGroup
	KindProximity
	KindSearchField
	KindAndOperation
	KindOrOperation
	KindNoneItem

	// Abstract kinds.
	KindTerm          // common ancestor of Word and Phrase
	KindBaseOperation // common ancestor of AndOperation and OrOperation
)

var kindNames = map[Kind]string{
	KindWord:          "word",
	KindPhrase:        "phrase",
	KindGroup:         "group",
	KindProximity:     "proximity",
	KindSearchField:   "search_field",
	KindAndOperation:  "and",
	KindOrOperation:   "or",
	KindNoneItem:      "none",
	KindTerm:          "term",
	KindBaseOperation: "base_operation",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// ancestry declares the dispatch chain of each kind with abstract
// ancestors, most specific first. Kinds absent from this table resolve
// to themselves only.
var ancestry = map[Kind][]Kind{
	KindWord:         {KindWord, KindTerm},
	KindPhrase:       {KindPhrase, KindTerm},
	KindAndOperation: {KindAndOperation, KindBaseOperation},
	KindOrOperation:  {KindOrOperation, KindBaseOperation},
}

// Ancestry returns the dispatch chain for k: k itself first, then each
// declared abstract ancestor from most to least specific. The universal
// Node type is not part of any chain. Callers must not modify the
// returned slice.
func (k Kind) Ancestry() []Kind {
	if chain, ok := ancestry[k]; ok {
		return chain
	}
	return []Kind{k}
}
