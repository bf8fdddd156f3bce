// Package xmltree is an element-tree style XML library.
//
// The package keeps two layers. The low-level Decoder turns an input stream
// into tokens (StartTag, CloseTag, CharData, ...) while reusing buffers to
// keep allocations down. On top of it, Parse assembles the tokens into a
// Document: a declaration (version, encoding) plus a single root Element
// tree with attributes and mixed text/element content.
//
// Documents and Elements are plain value trees. They can be compared with
// Equal, duplicated with Clone, built programmatically with ElementBuilder,
// and serialized back to XML text with String, Write, or WriteWith.
//
//	doc, err := xmltree.Parse(strings.NewReader(`
//	<table>
//		<fruit type="apple">worm</fruit>
//		<vegetable/>
//	</table>`))
//	if err != nil {
//		log.Fatal(err)
//	}
//	fruit := doc.Root.FindChild(func(e *xmltree.Element) bool { return e.Name == "fruit" })
//	fmt.Println(fruit.Contents()) // worm
package xmltree
