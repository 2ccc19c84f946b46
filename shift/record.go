package shift

import (
	"bufio"
	"io"
	"strings"
)

// Separator separates the transformed character from the category tag in a serialised record
const Separator = ','

// Record is the persisted unit of an encoded stream.
// It pairs the representation of a transformed character with the category of the original character.
type Record struct {
	// Repr the transformed character, or NewlineMarker for the Newline category
	Repr string
	// Category the category of the original character
	Category Category
}

// NewRecord classifies and transforms a single character
func NewRecord(r rune, p Params) Record {
	c := Classify(r)
	return Record{Repr: EncodeChar(r, c, p), Category: c}
}

// Decode reverses the transformation using the stored category
func (r Record) Decode(p Params) (string, error) {
	return DecodeChar(r.Repr, r.Category, p)
}

// Serialize returns the textual form of the record without the line terminator
func (r Record) Serialize() string {
	return r.Repr + string(Separator) + r.Category.String()
}

// ParseRecord parses a single serialised record.
//
// The line is split on the right most separator, because the transformed character itself can be a separator.
// The line must not contain the line terminator.
func ParseRecord(line string) (Record, error) {
	i := strings.LastIndexByte(line, Separator)
	if i < 0 {
		return Record{}, &FormatError{Text: line, Err: ErrMissingSeparator}
	}
	c, err := ParseCategory(line[i+1:])
	if err != nil {
		return Record{}, &FormatError{Text: line, Err: err}
	}
	return Record{Repr: line[:i], Category: c}, nil
}

// RecordWriter writes records into an encoded stream, one record per line.
// Call Flush once all the records have been written.
type RecordWriter struct {
	w *bufio.Writer
}

// NewRecordWriter creates a new RecordWriter object
func NewRecordWriter(w io.Writer, bufferSize int) *RecordWriter {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &RecordWriter{w: bufio.NewWriterSize(w, bufferSize)}
}

// Write serialises the record followed by a line terminator
func (rw *RecordWriter) Write(r Record) error {
	if _, err := rw.w.WriteString(r.Serialize()); err != nil {
		return err
	}
	return rw.w.WriteByte('\n')
}

// Flush writes any buffered data to the underlying writer
func (rw *RecordWriter) Flush() error {
	return rw.w.Flush()
}

// RecordReader reads the records of an encoded stream.
//
// Lines are only terminated by '\n', so a carriage return is read as a regular character.
// Empty lines are skipped.
type RecordReader struct {
	r    *bufio.Reader
	line int
}

// NewRecordReader creates a new RecordReader object
func NewRecordReader(r io.Reader, bufferSize int) *RecordReader {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &RecordReader{r: bufio.NewReaderSize(r, bufferSize)}
}

// Read returns the next record of the stream.
// It returns io.EOF once there are no more records, or a *FormatError if the next record is malformed.
func (rr *RecordReader) Read() (Record, error) {
	for {
		text, err := rr.r.ReadString('\n')
		if err != nil && err != io.EOF {
			return Record{}, err
		}
		if len(text) == 0 && err == io.EOF {
			return Record{}, io.EOF
		}
		rr.line++
		text = strings.TrimSuffix(text, "\n")
		if len(text) == 0 {
			continue
		}
		rec, perr := ParseRecord(text)
		if perr != nil {
			if fe, ok := perr.(*FormatError); ok {
				fe.Line = rr.line
			}
			return Record{}, perr
		}
		return rec, nil
	}
}

// Line returns the number of lines which have been read so far
func (rr *RecordReader) Line() int {
	return rr.line
}
