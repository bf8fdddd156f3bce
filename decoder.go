// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xmltree

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/triemap"
)

// DefaultMaxDepth is the element nesting limit applied when Decoder.MaxDepth
// is left zero. Exceeding the limit fails the parse with NestingTooDeep.
const DefaultMaxDepth = 256

// Decoder processes an XML input and generates tokens.
//
// Use Parse to assemble the token stream into a Document.
type Decoder struct {
	// ReadComment enables reading and returning back the comment contents.
	// Otherwise returns an empty node. Disabled by default.
	ReadComment bool

	// ReadDirective enables reading and returning back the directive contents.
	// Otherwise returns an empty node. Disabled by default.
	//
	// Note that we DO NOT process directives, we simply return back the string
	// within `<! ... >`
	ReadDirective bool

	// NormalizeWhitespace collapses whitespace runs inside CharData tokens
	// into a single space. Disabled by default so text round-trips verbatim.
	NormalizeWhitespace bool

	// MaxDepth caps element nesting during Parse. Zero means DefaultMaxDepth.
	MaxDepth int

	r       io.RuneReader
	row     int
	col     int
	started bool

	// startedTag indicates whether the current last token consumed an open angle bracket (<)
	startedTag bool

	// selfClosingTag indicates that the last StartTag token self closed, and a CloseTag token should
	// be emitted instead of consuming more characters.
	selfClosingTag *Name

	// Buffers for input read so far for the _current token_. This buffer is cleared on every new
	// token, identifier like tag names or attributes, and string values.
	buf   *bytes.Buffer
	attrs attrPool
	names triemap.RuneSliceMap

	// The following are object buffers to save on allocations by reusing the same instance every
	// time the Decoder.Token function is called.
	// Because returning plain structs would copy by value, it would cause a large amount of
	// allocations for medium to large files, and this allows returning the same pointer multiple
	// times.
	startTagBuf  StartTag
	closeTagBuf  CloseTag
	charDataBuf  CharData
	commentBuf   Comment
	procInstBuf  ProcInst
	directiveBuf Directive
}

// NewDecoder instantiates a Decoder to process a Reader input.
func NewDecoder(r io.Reader) *Decoder {
	var buf bytes.Buffer
	buf.Grow(1000)
	return &Decoder{
		r:        bufio.NewReader(r),
		buf:      &buf,
		MaxDepth: DefaultMaxDepth,
	}
}

// Token will decode the next token from the current XML position.
//
// The token is meant to be processed BEFORE the next token is called.
// Contents of previous tokens can be modified at any time during tokenization.
func (d *Decoder) Token() (Token, error) {
	t, err := d.token()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, d.errAt(err)
	}
	return t, err
}

// errAt attaches the current input position to an error.
func (d *Decoder) errAt(err error) error {
	return fmt.Errorf("%w at row: %d col: %d", err, d.row+1, d.col)
}

func (d *Decoder) token() (Token, error) {
	if d.startedTag {
		d.startedTag = false
		return d.angleStart()
	}
	if d.selfClosingTag != nil {
		d.closeTagBuf.Name = d.selfClosingTag
		d.selfClosingTag = nil
		return &d.closeTagBuf, nil
	}
	r, err := d.next()
	if err != nil {
		return nil, err
	}
	switch {
	case r == '<':
		// StartTag
		// CloseTag
		// CharData (CDATA section)
		// Comment
		// ProcInst
		// Directive
		return d.angleStart()
	case r == '>':
		return nil, unexpectedChar(r)
	}
	// CharData
	return d.charData(r)
}

// unexpectedChar is a utility function to attach the rune to the UnexpectedChar error.
func unexpectedChar(r rune) error {
	return fmt.Errorf("%w %q", UnexpectedChar, r)
}

// next reads the next rune and updates col/row positions for better error messaging.
//
// A byte-order mark at the very start of the input is advisory and skipped.
func (d *Decoder) next() (rune, error) {
	r, _, err := d.r.ReadRune()
	if !d.started {
		d.started = true
		if r == '\uFEFF' && err == nil {
			return d.next()
		}
	}
	if r == '\n' {
		d.col = 0
		d.row++
	} else {
		d.col++
	}
	return r, err
}

// checkUnexpectedEOF is a helper function to catch an EOF and transform it to UnexpectedEOF
// when it happens mid-way during parsing.
func checkUnexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

func (d *Decoder) charData(start rune) (Token, error) {
	d.buf.Reset()
	d.charDataBuf.CData = false
	d.charDataBuf.Refs = false
	r := start
	var space bool
	for {
		switch {
		case r == '&':
			dec, err := d.entity()
			if err != nil {
				return nil, err
			}
			d.buf.WriteRune(dec)
			d.charDataBuf.Refs = true
			space = false
		case d.NormalizeWhitespace && unicode.IsSpace(r):
			if !space {
				d.buf.WriteRune(' ')
				space = true
			}
		default:
			d.buf.WriteRune(r)
			space = false
		}

		var err error
		r, err = d.next()
		if err != nil {
			d.charDataBuf.Data = d.buf.Bytes()
			return &d.charDataBuf, nil
		}
		if r == '<' {
			d.startedTag = true
			d.charDataBuf.Data = d.buf.Bytes()
			return &d.charDataBuf, nil
		}
	}
}

// entity decodes an entity reference, assuming the leading '&' has already
// been consumed. Recognizes the named references lt, gt, amp, apos, quot and
// numeric references &#NN; / &#xNN;.
func (d *Decoder) entity() (rune, error) {
	var ent [16]rune
	var n int
	for {
		r, err := d.next()
		if err != nil {
			return 0, checkUnexpectedEOF(err)
		}
		if r == ';' {
			break
		}
		if n == len(ent) {
			return 0, fmt.Errorf("%w &%s...", UnknownEntity, string(ent[:n]))
		}
		ent[n] = r
		n++
	}
	ref := string(ent[:n])
	switch ref {
	case "lt":
		return '<', nil
	case "gt":
		return '>', nil
	case "amp":
		return '&', nil
	case "apos":
		return '\'', nil
	case "quot":
		return '"', nil
	}
	if strings.HasPrefix(ref, "#") {
		digits := ref[1:]
		base := 10
		if strings.HasPrefix(digits, "x") || strings.HasPrefix(digits, "X") {
			base = 16
			digits = digits[1:]
		}
		v, err := strconv.ParseInt(digits, base, 32)
		if err == nil && utf8.ValidRune(rune(v)) {
			return rune(v), nil
		}
	}
	return 0, fmt.Errorf("%w &%s;", UnknownEntity, ref)
}

// angleStart will return the token corresponding to the previous `<` character
//
// At this point it could be StartTag, CharData (CDATA), Comment, CloseTag,
// Directive, or ProcInst
func (d *Decoder) angleStart() (Token, error) {
	r, err := d.next()
	if err != nil {
		return nil, checkUnexpectedEOF(err)
	}
	switch {
	case isASCIILetter(r):
		// StartTag
		d.buf.Reset()
		d.buf.WriteRune(r)
		return d.startTag(r)
	case r == '/':
		// CloseTag
		return d.closeTag()
	case r == '!':
		// CharData (CDATA)
		// Comment
		// Directive
		d.buf.Reset()

		r, err := d.next()
		if err != nil {
			return nil, checkUnexpectedEOF(err)
		}
		if r == '[' {
			return d.cdata()
		}
		if r != '-' {
			return d.directive(r)
		}

		r, err = d.next()
		if err != nil {
			return nil, checkUnexpectedEOF(err)
		}
		if r != '-' {
			return nil, fmt.Errorf("%w, expected '<!--'", unexpectedChar(r))
		}

		return d.comment()
	case r == '?':
		// ProcInst
		return d.procInst()
	}
	return nil, unexpectedChar(r)
}

// startTag processes a token like: <foo> or <foo bar="baz" biz='x'/>
//
// Attributes must carry a quoted value; a naked attribute like <foo bar> is
// an UnexpectedToken error.
func (d *Decoder) startTag(first rune) (Token, error) {
	name, last, err := d.readIdentifier(first, false)
	if err != nil {
		return nil, fmt.Errorf("%w, expected tag identifier", err)
	}

	d.startTagBuf.Name = name
	d.startTagBuf.Attr = nil
	d.attrs.reset()

	var attrName *Name
	for {
		if unicode.IsSpace(last) {
			last, err = d.consumeSpace()
			if err != nil {
				return nil, fmt.Errorf("%w, expected attribute identifier", err)
			}
		}

		if last == '/' {
			d.selfClosingTag = d.startTagBuf.Name
			last, err = d.next()
			if err != nil {
				return nil, fmt.Errorf("%w, expected '>' for self-close tag", checkUnexpectedEOF(err))
			}
			if last != '>' {
				return nil, fmt.Errorf("%w, expected '>' for self-close tag", unexpectedChar(last))
			}
		}

		// See if there are no more attributes
		switch {
		case last == '>':
			d.startTagBuf.Attr = d.attrs.get()
			return &d.startTagBuf, nil
		case !isASCIILetter(last):
			return nil, fmt.Errorf("%w on tag <%s>", unexpectedChar(last), d.startTagBuf.Name)
		}

		// Find the attribute name
		d.buf.Reset()
		d.buf.WriteRune(last)
		attrName, last, err = d.readIdentifier(last, true)
		if err != nil {
			return nil, fmt.Errorf("%w for attribute on tag <%s>", err, d.startTagBuf.Name)
		}
		if unicode.IsSpace(last) {
			last, err = d.consumeSpace()
			if err != nil {
				return nil, fmt.Errorf("%w for attribute %s on tag <%s>", err, attrName, d.startTagBuf.Name)
			}
		}

		if last != '=' {
			return nil, fmt.Errorf("%w, attribute %s on tag <%s> has no value", UnexpectedToken, attrName, d.startTagBuf.Name)
		}

		// Find attribute value, they are surrounded by quotes
		last, err = d.consumeSpace()
		if err != nil {
			return nil, fmt.Errorf("%w after attribute %s on tag <%s>", err, attrName, d.startTagBuf.Name)
		}
		if last != '"' && last != '\'' {
			return nil, fmt.Errorf("%w, expected quoted value for attribute %s on tag <%s>", unexpectedChar(last), attrName, d.startTagBuf.Name)
		}
		value, err := d.readString(last)
		if err != nil {
			return nil, fmt.Errorf("%w reading attribute %s value on tag <%s>", err, attrName, d.startTagBuf.Name)
		}
		d.attrs.add(attrName, value)

		last, err = d.next()
		if err != nil {
			return nil, fmt.Errorf("%w on tag <%s>", checkUnexpectedEOF(err), d.startTagBuf.Name)
		}
	}
}

// readString reads a string ending in a given quote rune, assumes the initial
// quote has already been consumed. Entity references inside the value are
// decoded.
func (d *Decoder) readString(quote rune) (string, error) {
	d.buf.Reset()
	for {
		r, err := d.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("%w: %w, unterminated value", UnexpectedToken, io.ErrUnexpectedEOF)
			}
			return "", err
		}
		switch r {
		case quote:
			return d.buf.String(), nil
		case '&':
			dec, err := d.entity()
			if err != nil {
				return "", err
			}
			d.buf.WriteRune(dec)
		case '<':
			return "", fmt.Errorf("%w in value", unexpectedChar(r))
		default:
			d.buf.WriteRune(r)
		}
	}
}

// closeTag processes a token like: </foo>
func (d *Decoder) closeTag() (Token, error) {
	last, err := d.consumeSpace()
	if err != nil {
		return nil, fmt.Errorf("%w, expected closing tag", err)
	}
	if !isASCIILetter(last) {
		return nil, fmt.Errorf("%w, expected closing tag", unexpectedChar(last))
	}
	d.buf.Reset()
	d.buf.WriteRune(last)
	name, last, err := d.readIdentifier(last, false)
	if err != nil {
		return nil, fmt.Errorf("%w, expected closing tag", err)
	}
	if unicode.IsSpace(last) {
		last, err = d.consumeSpace()
		if err != nil {
			return nil, fmt.Errorf("%w on closing tag </%v>", err, name)
		}
	}
	if last != '>' {
		return nil, fmt.Errorf("%w, expected '>' for closing tag </%s>", unexpectedChar(last), name)
	}
	d.closeTagBuf.Name = name
	return &d.closeTagBuf, nil
}

// comment processes a token like: <!-- -->
func (d *Decoder) comment() (Token, error) {
	var dashes int
	for {
		r, err := d.next()
		if err != nil {
			return nil, checkUnexpectedEOF(err)
		}
		if r == '-' {
			dashes++
			if d.ReadComment {
				d.buf.WriteRune(r)
			}
			continue
		}
		if r == '>' {
			if dashes >= 2 {
				d.commentBuf.Data = nil
				if d.ReadComment {
					d.commentBuf.Data = d.buf.Bytes()
					d.commentBuf.Data = d.commentBuf.Data[:len(d.commentBuf.Data)-2]
				}
				return &d.commentBuf, nil
			}
			return nil, errors.New("comment closed too early, must end in '-->'")
		}
		dashes = 0
		if d.ReadComment {
			d.buf.WriteRune(r)
		}
	}
}

// procInst processes a token like: <?target ... ?>
func (d *Decoder) procInst() (Token, error) {
	d.buf.Reset()
	var questionMark bool
	for {
		r, err := d.next()
		if err != nil {
			return nil, checkUnexpectedEOF(err)
		}
		if r == '>' {
			if !questionMark {
				return nil, errors.New("proc inst closed too early, must end in '?>'")
			}
			content := d.buf.String()
			content = content[:len(content)-1] // drop the trailing '?'
			d.procInstBuf.Target = content
			d.procInstBuf.Data = ""
			if i := strings.IndexFunc(content, unicode.IsSpace); i >= 0 {
				d.procInstBuf.Target = content[:i]
				d.procInstBuf.Data = strings.TrimSpace(content[i+1:])
			}
			return &d.procInstBuf, nil
		}
		questionMark = r == '?'
		d.buf.WriteRune(r)
	}
}

// cdata processes a token like: <![CDATA[ ... ]]>, assuming `<![` has already
// been consumed. The section contents are carried verbatim, no entity
// decoding happens inside.
func (d *Decoder) cdata() (Token, error) {
	for _, want := range "CDATA[" {
		r, err := d.next()
		if err != nil {
			return nil, checkUnexpectedEOF(err)
		}
		if r != want {
			return nil, fmt.Errorf("%w, expected '<![CDATA['", unexpectedChar(r))
		}
	}
	d.buf.Reset()
	var brackets int
	for {
		r, err := d.next()
		if err != nil {
			return nil, checkUnexpectedEOF(err)
		}
		if r == '>' && brackets >= 2 {
			data := d.buf.Bytes()
			d.charDataBuf.Data = data[:len(data)-2]
			d.charDataBuf.CData = true
			d.charDataBuf.Refs = false
			return &d.charDataBuf, nil
		}
		if r == ']' {
			brackets++
		} else {
			brackets = 0
		}
		d.buf.WriteRune(r)
	}
}

// directive processes a token like: <!  > or <! [] > or <! {} >
func (d *Decoder) directive(last rune) (Token, error) {
	if last == '>' {
		d.directiveBuf.Data = nil
		if d.ReadDirective {
			d.directiveBuf.Data = d.buf.Bytes()
		}
		return &d.directiveBuf, nil
	} else if d.ReadDirective {
		d.buf.WriteRune(last)
	}
	for {
		r, err := d.next()
		if err != nil {
			return nil, checkUnexpectedEOF(err)
		}
		// looping because []{}[]{}
		for r == '[' || r == '{' {
			if d.ReadDirective {
				d.buf.WriteRune(r)
			}

			target := ']'
			if r == '{' {
				target = '}'
			}
			isCloseBracket := func(r rune) bool { return r != target }
			r, err = d.consume(isCloseBracket, d.ReadDirective)
			if err != nil {
				return nil, fmt.Errorf("%w, expected %q", err, target)
			}
		}
		if r == '>' {
			d.directiveBuf.Data = nil
			if d.ReadDirective {
				d.directiveBuf.Data = d.buf.Bytes()
			}
			return &d.directiveBuf, nil
		}
		if d.ReadDirective {
			d.buf.WriteRune(r)
		}
	}
}

// consume reads out all runes matching the function and return the last non-matching rune
func (d *Decoder) consume(match func(rune) bool, read bool) (rune, error) {
	for {
		r, err := d.next()
		if err != nil {
			return 0, checkUnexpectedEOF(err)
		}
		if !match(r) {
			return r, nil
		}
		if read {
			d.buf.WriteRune(r)
		}
	}
}

// consumeSpace reads out all spaces and return the last non-space rune
func (d *Decoder) consumeSpace() (rune, error) {
	return d.consume(unicode.IsSpace, false)
}

// readIdentifier reads the next Name for attribute or tag names. The first
// rune has already been consumed and written to the buffer by the caller.
//
// the distinction between attribute and tag name is important because attributes can be
// followed up by an equals sign (=) character.
func (d *Decoder) readIdentifier(first rune, isAttribute bool) (*Name, rune, error) {
	prev := first
	var r rune
	var err error
	var foundNS bool
loop:
	for {
		r, err = d.next()
		if err != nil {
			return nil, 0, checkUnexpectedEOF(err)
		}
		switch {
		case r == ':' && !foundNS:
			foundNS = true
			fallthrough
		case isIdentifierChar(r):
			d.buf.WriteRune(r)
		case unicode.IsSpace(r), (r == '=' && isAttribute):
			if prev == ':' || !isIdentifierChar(prev) {
				return nil, 0, fmt.Errorf("%w reading identifier", unexpectedChar(prev))
			}
			break loop
		case r == '>', r == '/':
			break loop
		default:
			return nil, 0, fmt.Errorf("%w reading identifier", unexpectedChar(r))
		}
		prev = r
	}

	// Somehow implementing a []rune buffer is worse performing than casting buf.String()
	runes := []rune(d.buf.String())
	name, ok := d.names.Get(runes)
	if ok {
		return name.(*Name), r, nil
	}

	if foundNS {
		parts := strings.SplitN(d.buf.String(), ":", 2)
		if len(parts[1]) == 0 {
			// We only validate the second part because the first part can't be empty for the code
			// to enter this function.
			return nil, 0, fmt.Errorf("%w reading identifier", unexpectedChar(':'))
		}
		name = &Name{space: parts[0], local: parts[1]}
	} else {
		name = &Name{local: d.buf.String()}
	}
	d.names.Put(runes, name)
	return name.(*Name), r, nil
}

func isIdentifierChar(r rune) bool {
	return isASCIILetter(r) || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.'
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
