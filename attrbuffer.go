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

// attrPool recycles attribute storage between start tags. Attrs live as
// values in one backing slice and pointers into it are materialized only
// once the tag is complete, so a tag never allocates per attribute after
// the pool has warmed up. The pool overwrites its storage on the next tag,
// which is why StartTag.Copy copies attributes out instead of aliasing.
type attrPool struct {
	attrs []Attr
	out   []*Attr
}

func (p *attrPool) reset() {
	p.attrs = p.attrs[:0]
}

func (p *attrPool) add(name *Name, value string) {
	p.attrs = append(p.attrs, Attr{Name: name, Value: value})
}

func (p *attrPool) get() []*Attr {
	if len(p.attrs) == 0 {
		return nil
	}
	p.out = p.out[:0]
	for i := range p.attrs {
		p.out = append(p.out, &p.attrs[i])
	}
	return p.out
}
