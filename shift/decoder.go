package shift

import (
	"bytes"
	"context"
	"io"
)

// Decoder is the type that decodes an encoded stream into one or more io.Writer outputs
type Decoder struct {
	input      io.Reader
	output     io.Writer
	bufferSize int
	params     Params
}

// NewDecoder creates a new Decoder object
func NewDecoder(bufferSize int, params Params, input io.Reader, outputs ...io.Writer) *Decoder {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	return &Decoder{
		input:      input,
		output:     io.MultiWriter(outputs...),
		bufferSize: bufferSize,
		params:     params,
	}
}

// Decode decodes the records of the input stream into the specified Writer(s).
//
// The stream must be encoded using the same shift values, which is not something the decoder can verify.
// A malformed record aborts the whole operation with a *FormatError and nothing gets written to the outputs.
func (d *Decoder) Decode() (Status, error) {
	return d.DecodeContext(context.Background())
}

// DecodeContext decodes the records of the input stream into the specified Writer(s) and receives cancellation signal on the context parameter.
func (d *Decoder) DecodeContext(ctx context.Context) (Status, error) {
	reader := NewRecordReader(d.input, d.bufferSize)
	var text bytes.Buffer
	for {
		if isCancelled(ctx) {
			return Cancelled, nil
		}
		rec, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return Failed, err
		}
		char, err := rec.Decode(d.params)
		if err != nil {
			if fe, ok := err.(*FormatError); ok {
				fe.Line = reader.Line()
				fe.Text = rec.Serialize()
			}
			return Failed, err
		}
		text.WriteString(char)
	}

	if _, err := d.output.Write(text.Bytes()); err != nil {
		return Failed, err
	}
	return Completed, nil
}
