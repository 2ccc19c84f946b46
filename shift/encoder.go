package shift

import (
	"bufio"
	"context"
	"io"
)

// Encoder is the type that encodes the text of an io.Reader into one or more io.Writer outputs
type Encoder struct {
	input      io.Reader
	output     io.Writer
	bufferSize int
	params     Params
}

// NewEncoder creates a new Encoder object
func NewEncoder(bufferSize int, params Params, input io.Reader, outputs ...io.Writer) *Encoder {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	return &Encoder{
		input:      input,
		output:     io.MultiWriter(outputs...),
		bufferSize: bufferSize,
		params:     params,
	}
}

// Encode writes one record per character of the input into the specified io.Writer outputs, in input order.
// This methods will return an error if reading the input or writing the records fails
func (e *Encoder) Encode() (Status, error) {
	return e.EncodeContext(context.Background())
}

// EncodeContext encodes the input into the specified io.Writer outputs and receives cancellation signal on the context parameter.
// The context is checked between two consecutive records.
func (e *Encoder) EncodeContext(ctx context.Context) (Status, error) {
	input := bufio.NewReaderSize(e.input, e.bufferSize)
	writer := NewRecordWriter(e.output, e.bufferSize)
	for {
		if isCancelled(ctx) {
			return Cancelled, nil
		}
		rec, err := readRecord(input, e.params)
		if err != nil {
			if err == io.EOF {
				break
			}
			return Failed, err
		}
		if err := writer.Write(rec); err != nil {
			return Failed, err
		}
	}
	if err := writer.Flush(); err != nil {
		return Failed, err
	}
	return Completed, nil
}
