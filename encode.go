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
	"io"
	"sort"
	"strings"
)

// WriteOptions controls XML text rendering.
type WriteOptions struct {
	// Indent is the per-level indentation. Empty produces condensed
	// single-line output; non-empty puts nested elements on their own lines.
	Indent string
	// Declaration emits the `<?xml ... ?>` line. Document.Write and
	// Document.String enable it automatically when version or encoding
	// differ from the defaults.
	Declaration bool
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&apos;",
	)
)

// String renders the element and its subtree as condensed XML text.
// Rendering never fails: the tree holds decoded values and reserved
// characters are escaped on the way out.
func (e *Element) String() string {
	var b strings.Builder
	e.encode(&b, "", 0)
	return b.String()
}

// String renders the document as condensed XML text, declaration included
// when version or encoding are non-default. The output round-trips through
// Parse.
func (d *Document) String() string {
	var b strings.Builder
	d.encode(&b, WriteOptions{Declaration: d.declarationNeeded()})
	return b.String()
}

// Write renders the document to w with default options, like String.
func (d *Document) Write(w io.Writer) error {
	return d.WriteWith(w, WriteOptions{Declaration: d.declarationNeeded()})
}

// WriteWith renders the document to w with explicit options.
func (d *Document) WriteWith(w io.Writer, opts WriteOptions) error {
	var b strings.Builder
	d.encode(&b, opts)
	_, err := io.WriteString(w, b.String())
	return err
}

func (d *Document) declarationNeeded() bool {
	return d.Version != Version10 || d.Encoding != ""
}

func (d *Document) encode(b *strings.Builder, opts WriteOptions) {
	if opts.Declaration {
		b.WriteString(`<?xml version="`)
		b.WriteString(d.Version.String())
		b.WriteByte('"')
		if d.Encoding != "" {
			b.WriteString(` encoding="`)
			attrEscaper.WriteString(b, d.Encoding)
			b.WriteByte('"')
		}
		b.WriteString("?>")
		if opts.Indent != "" {
			b.WriteByte('\n')
		}
	}
	if d.Root != nil {
		d.Root.encode(b, opts.Indent, 0)
	}
}

func (e *Element) encode(b *strings.Builder, indent string, depth int) {
	var pad string
	if indent != "" {
		pad = strings.Repeat(indent, depth)
	}
	b.WriteString(pad)
	b.WriteByte('<')
	b.WriteString(fullName(e))
	for _, key := range sortedKeys(e.Attributes) {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteString(`="`)
		attrEscaper.WriteString(b, e.Attributes[key])
		b.WriteByte('"')
	}
	if len(e.Nodes) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')

	// Element-only content gets one line per child; anything holding text
	// is rendered inline so no whitespace is invented inside it.
	if indent != "" && e.elementsOnly() {
		for _, n := range e.Nodes {
			b.WriteByte('\n')
			n.(*Element).encode(b, indent, depth+1)
		}
		b.WriteByte('\n')
		b.WriteString(pad)
	} else {
		for _, n := range e.Nodes {
			switch n := n.(type) {
			case Text:
				textEscaper.WriteString(b, string(n))
			case CData:
				b.WriteString("<![CDATA[")
				// "]]>" cannot appear inside a section, split it across two.
				b.WriteString(strings.ReplaceAll(string(n), "]]>", "]]]]><![CDATA[>"))
				b.WriteString("]]>")
			case *Element:
				n.encode(b, "", 0)
			}
		}
	}
	b.WriteString("</")
	b.WriteString(fullName(e))
	b.WriteByte('>')
}

func (e *Element) elementsOnly() bool {
	for _, n := range e.Nodes {
		if _, ok := n.(*Element); !ok {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
