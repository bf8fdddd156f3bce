package xmltree

// Token represents an XML Token:
//
// * StartTag: <foo> or <foo />
// * CloseTag: </foo> implicitly </foo> too
// * CharData: Any string outside of angle brackets <>, or a <![CDATA[ ... ]]> section
// * Comment: <!-- foo -->
// * ProcInst: <?foo ?>, including the <?xml ?> declaration
// * Directive: <! foo >
type Token interface {
	token()

	// Copy the token into a new instance.
	//
	// Token instances are constantly modified by the decoding process, this
	// function makes a copy for when the token value must be stored, and for
	// testing!
	Copy() Token
}

// StartTag is an opening XML tag <tag>
type StartTag struct {
	Name *Name
	Attr []*Attr
}

func (*StartTag) token() {}

func (s *StartTag) Copy() Token {
	c := StartTag{Name: s.Name}
	if s.Attr != nil {
		// The decoder pools Attr storage and overwrites it on the next tag,
		// so attributes are copied out, not aliased.
		c.Attr = make([]*Attr, len(s.Attr))
		for i, a := range s.Attr {
			attr := *a
			c.Attr[i] = &attr
		}
	}
	return &c
}

// CloseTag is a closing XML tag </tag>
type CloseTag struct {
	Name *Name
}

func (*CloseTag) token() {}

func (t *CloseTag) Copy() Token {
	return &CloseTag{t.Name}
}

// CharData contains a text node. Entity references are already decoded;
// Refs records that the run contained at least one reference, so a consumer
// can tell escaped whitespace like &#32; apart from layout whitespace.
// CData marks a <![CDATA[ ... ]]> section, whose contents are verbatim.
type CharData struct {
	Data  []byte
	CData bool
	Refs  bool
}

func (*CharData) token() {}

func (t *CharData) Copy() Token {
	data := make([]byte, len(t.Data))
	copy(data, t.Data)
	return &CharData{Data: data, CData: t.CData, Refs: t.Refs}
}

// Comment has the format <!-- -->
type Comment struct {
	Data []byte
}

func (*Comment) token() {}

func (t *Comment) Copy() Token {
	data := make([]byte, len(t.Data))
	copy(data, t.Data)
	return &Comment{data}
}

// ProcInst has the format <?target ... ?>
//
// The `<?xml version="1.0"?>` declaration arrives as a ProcInst with Target
// "xml"; Parse gives it meaning, the Decoder does not.
type ProcInst struct {
	Target string
	Data   string
}

func (*ProcInst) token() {}

func (t *ProcInst) Copy() Token {
	c := *t
	return &c
}

// Directive has the format <! ... >
//
// Directives are NOT processed, the string within `<! ... >` is carried as-is.
type Directive struct {
	Data []byte
}

func (*Directive) token() {}

func (t *Directive) Copy() Token {
	data := make([]byte, len(t.Data))
	copy(data, t.Data)
	return &Directive{data}
}

// Attr is a tag attribute like <foo bar="baz">.
// This will store an Attr with name "bar" and value "baz"
type Attr struct {
	Name  *Name
	Value string
}

// Name stores an identifier name from either a tag or an attribute like
// <foo bar="baz">. This will generate the names "foo" for the tag, and "bar"
// for the attribute.
type Name struct {
	space string
	local string
}

// Local returns the identifier name without XML namespace prefix.
//
// For example <a:b> generates the local name "b" with prefix "a".
// This method will return "b".
func (n *Name) Local() string {
	if n == nil {
		return ""
	}
	return n.local
}

// Prefix returns the namespace prefix, or "" when the name has none.
func (n *Name) Prefix() string {
	if n == nil {
		return ""
	}
	return n.space
}

// String returns the name as written in the document, prefix included.
func (n *Name) String() string {
	if n == nil {
		return ""
	}
	if n.space == "" {
		return n.local
	}
	return n.space + ":" + n.local
}
