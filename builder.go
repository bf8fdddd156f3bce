package xmltree

// ElementBuilder assembles an Element incrementally.
//
//	root := xmltree.NewElementBuilder("root").
//		Children(
//			xmltree.NewElementBuilder("child").Attr("class", "foo").Text("bar"),
//		).
//		Element()
type ElementBuilder struct {
	e *Element
}

// NewElementBuilder starts building an element with the given local name.
func NewElementBuilder(name string) *ElementBuilder {
	return &ElementBuilder{e: NewElement(name)}
}

// Prefix sets the namespace prefix.
func (b *ElementBuilder) Prefix(prefix string) *ElementBuilder {
	b.e.Prefix = prefix
	return b
}

// Attr sets one attribute, replacing any previous value for the same key.
func (b *ElementBuilder) Attr(key, value string) *ElementBuilder {
	b.e.Attributes[key] = value
	return b
}

// Text appends a text run to the content sequence.
func (b *ElementBuilder) Text(s string) *ElementBuilder {
	b.e.Nodes = append(b.e.Nodes, Text(s))
	return b
}

// CData appends a CDATA section to the content sequence.
func (b *ElementBuilder) CData(s string) *ElementBuilder {
	b.e.Nodes = append(b.e.Nodes, CData(s))
	return b
}

// Children appends the given builders' elements to the content sequence.
func (b *ElementBuilder) Children(children ...*ElementBuilder) *ElementBuilder {
	for _, c := range children {
		b.e.Nodes = append(b.e.Nodes, c.Element())
	}
	return b
}

// Element returns the built element. The builder keeps its own copy, so it
// can keep being modified without affecting elements already returned.
func (b *ElementBuilder) Element() *Element {
	return b.e.Clone()
}
