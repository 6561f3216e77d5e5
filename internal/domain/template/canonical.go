// Package template canonicalizes and compares structured deployment
// templates. Comparison is purely structural: two templates are equal when
// their canonical forms are byte-identical, regardless of key ordering.
package template

import (
	"bytes"
	"encoding/json"
)

// Canonicalize parses doc as JSON and re-serializes it with sorted mapping
// keys, preserved sequence order and two-space indentation. A document that
// does not parse is returned verbatim, so comparison degrades to exact text
// equality instead of failing.
func Canonicalize(doc string) string {
	var data any
	dec := json.NewDecoder(bytes.NewReader([]byte(doc)))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		return doc
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return doc
	}

	// Encode appends a trailing newline; keep the canonical form free of it
	// so diffs line up with MarshalIndent-style output.
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
