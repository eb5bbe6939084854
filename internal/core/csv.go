package core

// csv.go decodes raw import bytes into records. User exports are messy:
// mixed encodings, ragged column counts and stray quotes all show up in
// the wild, so the reader is deliberately lenient and the bytes are
// sanitized to valid UTF-8 first.

import (
	"bytes"
	"encoding/csv"
	"unicode/utf8"
)

// sanitizeUTF8 replaces invalid byte sequences with the Unicode
// replacement character. Valid input is returned unchanged.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
			continue
		}
		buf.WriteRune(r)
		data = data[size:]
	}
	return buf.Bytes()
}

// parseRecords reads the whole file into records. Per-row validation
// handles short rows, so the reader does not enforce a column count.
func parseRecords(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}
