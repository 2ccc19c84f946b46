package shift

import (
	"strings"
	"unicode/utf8"
)

// EncodeRecords classifies and transforms every character of the text, in order.
// An invalid UTF-8 byte is carried verbatim in a record of the Other category.
func EncodeRecords(text string, p Params) []Record {
	records := make([]Record, 0, len(text))
	for len(text) > 0 {
		r, size := utf8.DecodeRuneInString(text)
		if r == utf8.RuneError && size == 1 {
			records = append(records, Record{Repr: text[:1], Category: Other})
		} else {
			records = append(records, NewRecord(r, p))
		}
		text = text[size:]
	}
	return records
}

// DecodeRecords reverses EncodeRecords.
// It fails on the first record which cannot be decoded.
func DecodeRecords(records []Record, p Params) (string, error) {
	var sb strings.Builder
	for i, rec := range records {
		char, err := rec.Decode(p)
		if err != nil {
			if fe, ok := err.(*FormatError); ok {
				fe.Line = i + 1
				fe.Text = rec.Serialize()
			}
			return "", err
		}
		sb.WriteString(char)
	}
	return sb.String(), nil
}

// EncodeString encodes the text into its persisted form, one record per line
func EncodeString(text string, p Params) string {
	var sb strings.Builder
	for _, rec := range EncodeRecords(text, p) {
		sb.WriteString(rec.Serialize())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// DecodeString decodes a persisted stream back to the original text.
// Empty lines are skipped and a malformed record fails the whole operation with a *FormatError.
func DecodeString(stream string, p Params) (string, error) {
	var sb strings.Builder
	for i, line := range strings.Split(stream, "\n") {
		if len(line) == 0 {
			continue
		}
		rec, err := ParseRecord(line)
		if err == nil {
			var char string
			char, err = rec.Decode(p)
			sb.WriteString(char)
		}
		if err != nil {
			if fe, ok := err.(*FormatError); ok {
				fe.Line = i + 1
				fe.Text = line
			}
			return "", err
		}
	}
	return sb.String(), nil
}
