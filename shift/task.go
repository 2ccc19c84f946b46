package shift

import (
	"context"
	"io"
	"sync"
)

// Operation represents the operation which needs to be done by a Task
type Operation int8

const (
	// Encode turns raw text into an encoded record stream
	Encode Operation = iota
	// Decode turns an encoded record stream back into text
	Decode
)

// String returns the string representation of the operation
func (o Operation) String() string {
	if o == Encode {
		return "encode"
	}
	return "decode"
}

// Task is a unit of encoding/decoding work
type Task struct {
	mode  Operation
	input io.Reader

	mux        sync.Mutex
	status     Status
	inProgress bool
	outputs    []io.Writer
}

// NewTask creates a new Task object
func NewTask(mode Operation, input io.Reader, outputs ...io.Writer) *Task {
	return &Task{
		mode:    mode,
		input:   input,
		outputs: outputs,
		status:  Queued,
	}
}

// Mode returns the operation of the task
func (t *Task) Mode() Operation {
	return t.mode
}

// AddOutput adds a new new output to the Task
// Calling this function on an in-progress Task will return ErrOperationInProgress error
func (t *Task) AddOutput(output io.Writer) error {
	t.mux.Lock()
	defer t.mux.Unlock()
	if t.inProgress {
		return ErrOperationInProgress
	}
	t.outputs = append(t.outputs, output)
	return nil
}

// CloseInput closes the input Reader.
// If the reader is not a io.Closer, calling this function will have no effect
// Calling this function on an in-progress Task will return ErrOperationInProgress error
func (t *Task) CloseInput() error {
	t.mux.Lock()
	defer t.mux.Unlock()
	if t.inProgress {
		return ErrOperationInProgress
	}
	input, ok := t.input.(io.Closer)
	if ok && input != nil {
		return input.Close()
	}
	return nil
}

// CloseOutputs closes all the output Writers.
// If the output is not a io.Closer, calling this function will have no effect
// Calling this function on an in-progress Task will return ErrOperationInProgress error
func (t *Task) CloseOutputs() error {
	t.mux.Lock()
	defer t.mux.Unlock()
	if t.inProgress {
		return ErrOperationInProgress
	}
	for _, out := range t.outputs {
		output, ok := out.(io.Closer)
		if ok && output != nil {
			if err := output.Close(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Status returns the current status of the task
func (t *Task) Status() Status {
	t.mux.Lock()
	defer t.mux.Unlock()
	return t.status
}

// Run processes the task with the specified shift values
func (t *Task) Run(ctx context.Context, params Params) error {
	t.markAsInProgress()
	var status Status
	var err error
	if t.mode == Encode {
		status, err = NewEncoder(defaultBufferSize, params, t.input, t.outputs...).EncodeContext(ctx)
	} else {
		status, err = NewDecoder(defaultBufferSize, params, t.input, t.outputs...).DecodeContext(ctx)
	}
	t.markAsComplete(status)
	return err
}

func (t *Task) markAsInProgress() {
	t.mux.Lock()
	defer t.mux.Unlock()
	t.inProgress = true
}

func (t *Task) markAsComplete(status Status) {
	t.mux.Lock()
	defer t.mux.Unlock()
	t.status = status
	t.inProgress = false
}
