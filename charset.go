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
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/ianaindex"
)

// The parser itself operates on UTF-8 and treats encoding declarations as
// advisory. Callers with input in another charset wrap the reader with one
// of the helpers below before handing it to Parse.

// DetectReader wraps r so its contents arrive as UTF-8, sniffing the charset
// from a byte-order mark or the document's own declaration.
func DetectReader(r io.Reader) (io.Reader, error) {
	cr, err := charset.NewReader(r, "")
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}
	return cr, nil
}

// DecodeReader wraps r so its contents are transcoded to UTF-8 from the
// charset named by the IANA label, e.g. "ISO-8859-1".
func DecodeReader(r io.Reader, label string) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %q has no decoder", label)
	}
	return enc.NewDecoder().Reader(r), nil
}
