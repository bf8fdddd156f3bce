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
	"errors"
	"fmt"
	"io"
	"strings"
)

// Parse reads a complete XML document from r and builds its element tree.
//
// On malformed input it returns a parse error carrying the input position;
// no partial Document is ever returned. Use NewDecoder plus
// Decoder.Document to set decoding options first.
func Parse(r io.Reader) (*Document, error) {
	return NewDecoder(r).Document()
}

// Document drives the token stream to completion and assembles a Document.
//
// Open tags are pushed onto an explicit stack so closing tags are verified
// to match 1:1, and nesting deeper than MaxDepth fails with NestingTooDeep.
func (d *Decoder) Document() (*Document, error) {
	maxDepth := d.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	doc := NewDocument()
	var stack []*Element
	var root *Element
	var sawDecl bool
	for {
		tok, err := d.Token()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, err
			}
			if len(stack) > 0 {
				open := stack[len(stack)-1]
				return nil, d.errAt(fmt.Errorf("%w, unclosed tag <%s>", io.ErrUnexpectedEOF, fullName(open)))
			}
			if root == nil {
				return nil, d.errAt(MissingRoot)
			}
			doc.Root = root
			return doc, nil
		}

		switch tok := tok.(type) {
		case *ProcInst:
			// Processing instructions are skipped, except the declaration.
			if tok.Target != "xml" {
				continue
			}
			if sawDecl {
				return nil, d.errAt(fmt.Errorf("%w, more than one declaration", MalformedDeclaration))
			}
			if root != nil || len(stack) > 0 {
				return nil, d.errAt(fmt.Errorf("%w, declaration must precede the root element", MalformedDeclaration))
			}
			if err := parseDeclaration(tok.Data, doc); err != nil {
				return nil, d.errAt(err)
			}
			sawDecl = true

		case *Comment, *Directive:
			// Skipped, not stored.

		case *CharData:
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				if tok.CData {
					parent.Nodes = append(parent.Nodes, CData(tok.Data))
				} else if tok.Refs || !isWhitespace(tok.Data) {
					// A character reference marks the whitespace as deliberate,
					// so &#32; survives while layout whitespace is dropped.
					parent.Nodes = append(parent.Nodes, Text(tok.Data))
				}
				continue
			}
			// Outside any element only layout whitespace is allowed.
			if !tok.CData && !tok.Refs && isWhitespace(tok.Data) {
				continue
			}
			if root != nil {
				return nil, d.errAt(TrailingContent)
			}
			return nil, d.errAt(fmt.Errorf("%w, content before root element", UnexpectedToken))

		case *StartTag:
			if root != nil && len(stack) == 0 {
				return nil, d.errAt(fmt.Errorf("%w, second root <%s>", TrailingContent, tok.Name))
			}
			if len(stack) >= maxDepth {
				return nil, d.errAt(fmt.Errorf("%w, more than %d nested elements", NestingTooDeep, maxDepth))
			}
			el := &Element{
				Prefix:     tok.Name.Prefix(),
				Name:       tok.Name.Local(),
				Attributes: make(map[string]string, len(tok.Attr)),
			}
			for _, attr := range tok.Attr {
				key := attr.Name.String()
				if _, dup := el.Attributes[key]; dup {
					return nil, d.errAt(fmt.Errorf("%w, duplicate attribute %s on tag <%s>", UnexpectedToken, key, tok.Name))
				}
				el.Attributes[key] = attr.Value
			}
			if len(stack) == 0 {
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Nodes = append(parent.Nodes, el)
			}
			stack = append(stack, el)

		case *CloseTag:
			if len(stack) == 0 {
				return nil, d.errAt(fmt.Errorf("%w </%s>, no element is open", MismatchedTag, tok.Name))
			}
			open := stack[len(stack)-1]
			if tok.Name.Local() != open.Name || tok.Name.Prefix() != open.Prefix {
				return nil, d.errAt(fmt.Errorf("%w </%s>, expected </%s>", MismatchedTag, tok.Name, fullName(open)))
			}
			stack = stack[:len(stack)-1]
		}
	}
}

// parseDeclaration applies the `<?xml ... ?>` pseudo-attributes to doc.
// Only version (required, "1.0" or "1.1"), encoding, and standalone are
// allowed. The encoding value is recorded, not acted on.
func parseDeclaration(data string, doc *Document) error {
	attrs := map[string]string{}
	s := strings.TrimSpace(data)
	for s != "" {
		eq := strings.IndexByte(s, '=')
		if eq < 0 {
			return fmt.Errorf("%w: %q", MalformedDeclaration, data)
		}
		key := strings.TrimSpace(s[:eq])
		rest := strings.TrimSpace(s[eq+1:])
		if rest == "" || (rest[0] != '"' && rest[0] != '\'') {
			return fmt.Errorf("%w: %q", MalformedDeclaration, data)
		}
		quote := rest[0]
		end := strings.IndexByte(rest[1:], quote)
		if end < 0 {
			return fmt.Errorf("%w: %q", MalformedDeclaration, data)
		}
		if _, dup := attrs[key]; dup {
			return fmt.Errorf("%w, duplicate %q", MalformedDeclaration, key)
		}
		attrs[key] = rest[1 : 1+end]
		s = strings.TrimSpace(rest[end+2:])
	}

	version, ok := attrs["version"]
	if !ok {
		return fmt.Errorf("%w, missing version", MalformedDeclaration)
	}
	switch version {
	case "1.0":
		doc.Version = Version10
	case "1.1":
		doc.Version = Version11
	default:
		return fmt.Errorf("%w, unsupported version %q", MalformedDeclaration, version)
	}
	doc.Encoding = attrs["encoding"]
	for key := range attrs {
		switch key {
		case "version", "encoding", "standalone":
		default:
			return fmt.Errorf("%w, unknown attribute %q", MalformedDeclaration, key)
		}
	}
	return nil
}

func fullName(e *Element) string {
	if e.Prefix == "" {
		return e.Name
	}
	return e.Prefix + ":" + e.Name
}

func isWhitespace(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}
