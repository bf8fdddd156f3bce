package xmltree

// DefaultName is the placeholder tag name given to elements created without
// one, so a zero-configured Document still renders as well-formed XML.
const DefaultName = "tag"

// Version enumerates the supported XML declaration versions.
type Version int

const (
	// Version10 is XML version 1.0, the default.
	Version10 Version = iota
	// Version11 is XML version 1.1.
	Version11
)

// String returns the version as written in an XML declaration.
func (v Version) String() string {
	if v == Version11 {
		return "1.1"
	}
	return "1.0"
}

// Node is one entry of an element's mixed content: either a child *Element,
// a Text run, or a CData section. Text and child elements keep their relative
// order inside the parent.
type Node interface {
	node()
}

// Text is a run of character data. The value holds decoded text, entity
// references are applied on parse and re-escaped on render.
type Text string

func (Text) node() {}

// CData is a `<![CDATA[ ... ]]>` section. The value is carried verbatim and
// rendered back inside a CDATA section without escaping.
type CData string

func (CData) node() {}

// Element represents one XML tag node.
type Element struct {
	// Prefix is the namespace prefix: "xsl" in <xsl:for-each>. Prefixes are
	// stored as written, they are not resolved against namespace URIs.
	Prefix string
	// Name is the local tag name: "for-each" in <xsl:for-each>.
	Name string
	// Attributes maps attribute names (prefix included, if any) to values.
	Attributes map[string]string
	// Nodes is the element's mixed content in document order.
	Nodes []Node
}

func (*Element) node() {}

// NewElement constructs an Element with the given local name and no
// attributes or content. An empty name falls back to DefaultName.
func NewElement(name string) *Element {
	if name == "" {
		name = DefaultName
	}
	return &Element{Name: name, Attributes: map[string]string{}}
}

// Children returns the child elements in document order, skipping
// interleaved text.
func (e *Element) Children() []*Element {
	var children []*Element
	for _, n := range e.Nodes {
		if c, ok := n.(*Element); ok {
			children = append(children, c)
		}
	}
	return children
}

// Contents returns the concatenated text of the element: Text runs and CData
// sections joined in document order, child elements skipped.
func (e *Element) Contents() string {
	var s string
	for _, n := range e.Nodes {
		switch n := n.(type) {
		case Text:
			s += string(n)
		case CData:
			s += string(n)
		}
	}
	return s
}

// AppendChild adds a child element at the end of the content sequence.
func (e *Element) AppendChild(c *Element) {
	e.Nodes = append(e.Nodes, c)
}

// AppendText adds a text run at the end of the content sequence.
func (e *Element) AppendText(s string) {
	e.Nodes = append(e.Nodes, Text(s))
}

// FindChild returns the first child element matching the predicate, or nil.
func (e *Element) FindChild(pred func(*Element) bool) *Element {
	for _, n := range e.Nodes {
		if c, ok := n.(*Element); ok && pred(c) {
			return c
		}
	}
	return nil
}

// FilterChildren returns all child elements matching the predicate.
func (e *Element) FilterChildren(pred func(*Element) bool) []*Element {
	var children []*Element
	for _, n := range e.Nodes {
		if c, ok := n.(*Element); ok && pred(c) {
			children = append(children, c)
		}
	}
	return children
}

// Equal reports structural equality: prefix, name, the attribute set, and
// the content sequence (order-sensitive, recursing into child elements).
func (e *Element) Equal(o *Element) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.Prefix != o.Prefix || e.Name != o.Name {
		return false
	}
	if len(e.Attributes) != len(o.Attributes) {
		return false
	}
	for k, v := range e.Attributes {
		ov, ok := o.Attributes[k]
		if !ok || ov != v {
			return false
		}
	}
	if len(e.Nodes) != len(o.Nodes) {
		return false
	}
	for i, n := range e.Nodes {
		switch n := n.(type) {
		case *Element:
			oc, ok := o.Nodes[i].(*Element)
			if !ok || !n.Equal(oc) {
				return false
			}
		default:
			if n != o.Nodes[i] {
				return false
			}
		}
	}
	return true
}

// Clone returns a fully independent deep copy of the element.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	c := &Element{Prefix: e.Prefix, Name: e.Name}
	if e.Attributes != nil {
		c.Attributes = make(map[string]string, len(e.Attributes))
		for k, v := range e.Attributes {
			c.Attributes[k] = v
		}
	}
	if e.Nodes != nil {
		c.Nodes = make([]Node, len(e.Nodes))
		for i, n := range e.Nodes {
			if child, ok := n.(*Element); ok {
				c.Nodes[i] = child.Clone()
			} else {
				c.Nodes[i] = n
			}
		}
	}
	return c
}

// Document is a complete XML unit: declaration metadata plus one root
// element. A Document always has exactly one root.
type Document struct {
	// Version of the XML document.
	Version Version
	// Encoding is the declared character encoding, empty when undeclared.
	// It is advisory: Parse records it but does not transcode (see
	// DecodeReader and DetectReader for that).
	Encoding string
	// Root is the document's single top-level element.
	Root *Element
}

// NewDocument constructs a Document with version 1.0, no declared encoding,
// and a placeholder root element.
func NewDocument() *Document {
	return &Document{Root: NewElement(DefaultName)}
}

// Equal reports structural equality of version, encoding, and root tree.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.Version == o.Version && d.Encoding == o.Encoding && d.Root.Equal(o.Root)
}

// Clone returns a fully independent deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	return &Document{Version: d.Version, Encoding: d.Encoding, Root: d.Root.Clone()}
}
