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
	"strings"
	"testing"
)

func TestElementString(t *testing.T) {
	testCases := []struct {
		desc string
		el   *Element
		want string
	}{
		{"self-closing", NewElement("child"), "<child/>"},
		{
			"attribute and text",
			NewElementBuilder("child").Attr("class", "foo").Text("bar").Element(),
			`<child class="foo">bar</child>`,
		},
		{
			"attributes sorted",
			NewElementBuilder("a").Attr("b", "2").Attr("a", "1").Attr("c", "3").Element(),
			`<a a="1" b="2" c="3"/>`,
		},
		{
			"text escaped",
			NewElementBuilder("root").Text("<tag /> & more").Element(),
			"<root>&lt;tag /&gt; &amp; more</root>",
		},
		{
			"attribute value escaped",
			NewElementBuilder("a").Attr("v", `say "hi" & <go>`).Element(),
			`<a v="say &quot;hi&quot; &amp; &lt;go&gt;"/>`,
		},
		{
			"cdata not escaped",
			NewElementBuilder("root").CData("<tag />").Element(),
			"<root><![CDATA[<tag />]]></root>",
		},
		{
			"cdata terminator split",
			NewElementBuilder("root").CData("a]]>b").Element(),
			"<root><![CDATA[a]]]]><![CDATA[>b]]></root>",
		},
		{
			"prefix",
			NewElementBuilder("for-each").Prefix("xsl").Element(),
			"<xsl:for-each/>",
		},
		{
			"mixed content order",
			NewElementBuilder("p").Text("a").Children(NewElementBuilder("b").Text("x")).Text("c").Element(),
			"<p>a<b>x</b>c</p>",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			if got := tc.el.String(); got != tc.want {
				t.Errorf("String: '%s', want '%s'", got, tc.want)
			}
		})
	}
}

func TestDocumentString(t *testing.T) {
	testCases := []struct {
		desc string
		doc  *Document
		want string
	}{
		{"default has no declaration", NewDocument(), "<tag/>"},
		{
			"non-default version declared",
			&Document{Version: Version11, Root: NewElement("a")},
			`<?xml version="1.1"?><a/>`,
		},
		{
			"encoding declared",
			&Document{Encoding: "UTF-8", Root: NewElement("a")},
			`<?xml version="1.0" encoding="UTF-8"?><a/>`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			if got := tc.doc.String(); got != tc.want {
				t.Errorf("String: '%s', want '%s'", got, tc.want)
			}
		})
	}
}

func TestWriteWith(t *testing.T) {
	doc := &Document{Root: NewElementBuilder("root").
		Children(
			NewElementBuilder("list").
				Children(
					NewElementBuilder("child"),
					NewElementBuilder("child").Attr("class", "foo").Text("bar"),
					NewElementBuilder("child").Attr("class", "22").Text("11"),
				),
		).
		Element()}

	testCases := []struct {
		desc string
		opts WriteOptions
		want string
	}{
		{
			desc: "pretty",
			opts: WriteOptions{Indent: "  ", Declaration: true},
			want: "<?xml version=\"1.0\"?>\n" +
				"<root>\n" +
				"  <list>\n" +
				"    <child/>\n" +
				"    <child class=\"foo\">bar</child>\n" +
				"    <child class=\"22\">11</child>\n" +
				"  </list>\n" +
				"</root>",
		},
		{
			desc: "condensed",
			opts: WriteOptions{},
			want: "<root><list><child/><child class=\"foo\">bar</child><child class=\"22\">11</child></list></root>",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			var b strings.Builder
			if err := doc.WriteWith(&b, tc.opts); err != nil {
				t.Fatal(err)
			}
			if got := b.String(); got != tc.want {
				t.Errorf("WriteWith:\n%s\nwant:\n%s", got, tc.want)
			}
		})
	}
}

func TestWriteWithMixedContentStaysInline(t *testing.T) {
	doc := &Document{Root: NewElementBuilder("root").
		Attr("key", "value").
		Text("some-text").
		Element()}

	var b strings.Builder
	if err := doc.WriteWith(&b, WriteOptions{Indent: "  ", Declaration: true}); err != nil {
		t.Fatal(err)
	}
	want := "<?xml version=\"1.0\"?>\n<root key=\"value\">some-text</root>"
	if got := b.String(); got != want {
		t.Errorf("WriteWith: '%s', want '%s'", got, want)
	}
}

func TestWritePrettyRoundTrip(t *testing.T) {
	doc := &Document{Root: NewElementBuilder("root").
		Children(
			NewElementBuilder("list").Children(
				NewElementBuilder("child").Attr("class", "foo").Text("bar"),
			),
		).
		Element()}

	var b strings.Builder
	if err := doc.WriteWith(&b, WriteOptions{Indent: "  "}); err != nil {
		t.Fatal(err)
	}
	got, err := Parse(strings.NewReader(b.String()))
	if err != nil {
		t.Fatal(err)
	}
	if !doc.Equal(got) {
		t.Errorf("pretty output did not round-trip:\n%s", b.String())
	}
}
