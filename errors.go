package xmltree

type parseError string

// Error implements error interface, returns itself since it's already a string.
func (err parseError) Error() string {
	return string(err)
}

const (
	// UnexpectedChar is returned when an unexpected rune appears outside of an
	// attribute value or CharData token.
	UnexpectedChar parseError = "unexpected char"

	// MalformedDeclaration is returned for an invalid `<?xml ... ?>` prolog,
	// including version strings other than "1.0" and "1.1".
	MalformedDeclaration parseError = "malformed declaration"

	// UnexpectedToken is returned for malformed tag syntax: duplicate or naked
	// attributes, content outside the root element, and similar.
	UnexpectedToken parseError = "unexpected token"

	// MismatchedTag is returned when a closing tag does not match the element
	// currently open.
	MismatchedTag parseError = "mismatched closing tag"

	// UnknownEntity is returned for an entity reference other than the named
	// ones (lt, gt, amp, apos, quot) or a valid numeric `&#NN;` / `&#xNN;`.
	UnknownEntity parseError = "unknown entity"

	// MissingRoot is returned when the input ends without any root element.
	MissingRoot parseError = "missing root element"

	// TrailingContent is returned for non-whitespace content after the root
	// element has closed.
	TrailingContent parseError = "trailing content after root element"

	// NestingTooDeep is returned when elements nest deeper than the decoder's
	// MaxDepth.
	NestingTooDeep parseError = "nesting too deep"
)
