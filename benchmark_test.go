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
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	stdxml "encoding/xml"
)

func benchmarkInput() []byte {
	var b strings.Builder
	b.WriteString("<catalog>\n")
	for i := 0; i < 1000; i++ {
		fmt.Fprintf(&b, `<msg id="%d" desc="benchmark entry">entry &amp; text %d<detail depth="1"/></msg>`+"\n", i, i)
	}
	b.WriteString("</catalog>\n")
	return []byte(b.String())
}

func BenchmarkDecodeAll(b *testing.B) {
	input := benchmarkInput()

	testCases := []struct {
		desc      string
		decodeAll func()
	}{
		{"xmltree",
			func() {
				decoder := NewDecoder(bytes.NewReader(input))
				for {
					_, err := decoder.Token()
					if err != nil {
						if errors.Is(err, io.EOF) {
							return
						}
						b.Fatal("xmltree parsing error")
					}
				}
			},
		},
		{"encoding_xml",
			func() {
				decoder := stdxml.NewDecoder(bytes.NewReader(input))
				for {
					_, err := decoder.RawToken()
					if err != nil {
						if errors.Is(err, io.EOF) {
							return
						}
						b.Fatal("encoding/xml parsing error")
					}
				}
			},
		},
	}

	for _, tc := range testCases {
		b.Run(tc.desc, func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				tc.decodeAll()
			}
		})
	}
}

func BenchmarkParse(b *testing.B) {
	input := benchmarkInput()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(bytes.NewReader(input)); err != nil {
			b.Fatal(err)
		}
	}
}
