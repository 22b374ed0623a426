package template

// Node is one element of a parsed template document.
type Node interface {
	node()
}

// Text is a literal run of characters, emitted verbatim. Malformed
// directives degrade to Text so rendering never fails structurally.
type Text struct {
	Value string
}

// Scalar is a {{ name }} reference. Raw preserves the original tag
// text (including its spacing) so unresolved references round-trip
// byte-for-byte.
type Scalar struct {
	Name string
	Raw  string
}

// Conditional is an if or unless block. Negate distinguishes unless;
// unless never has a false branch.
type Conditional struct {
	Cond   Condition
	Negate bool
	True   []Node
	False  []Node
}

// Loop is an {{#each name}} block over a named array.
type Loop struct {
	Array string
	Body  []Node
}

func (*Text) node()        {}
func (*Scalar) node()      {}
func (*Conditional) node() {}
func (*Loop) node()        {}
