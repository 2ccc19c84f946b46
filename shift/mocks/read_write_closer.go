// Package mocks contains the readers and writers used to test the input and output handling
package mocks

import (
	"errors"
	"io"
)

// ErrWrite is the error returned by FailingWriter
var ErrWrite = errors.New("write failed")

// FailingWriter is a writer which fails every write
type FailingWriter struct{}

func (o *FailingWriter) Write(p []byte) (n int, err error) {
	return 0, ErrWrite
}

// WriteCloser is a writer which records whether it has been closed
type WriteCloser struct {
	IsClosed bool
}

func (o *WriteCloser) Write(p []byte) (n int, err error) {
	return len(p), nil
}

func (o *WriteCloser) Close() error {
	o.IsClosed = true
	return nil
}

// ReadCloser is an empty reader which records whether it has been closed
type ReadCloser struct {
	IsClosed bool
}

func (o *ReadCloser) Read(p []byte) (n int, err error) {
	return 0, io.EOF
}

func (o *ReadCloser) Close() error {
	o.IsClosed = true
	return nil
}
