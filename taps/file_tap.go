package taps

import (
	"path/filepath"
	"sync/atomic"

	"github.com/xitonix/xshift/logging"
	"github.com/xitonix/xshift/shift"
)

// Job is a pair of input and output files
type Job struct {
	// Input the path to the file to read
	Input string
	// Output the path to the file to create. Defaults to the input path with the extension of the operation.
	Output string
}

// FileTap is a tap which pushes a fixed list of files into the engine.
type FileTap struct {
	*tap
	mode     shift.Operation
	jobs     []Job
	pending  int32
	finished chan shift.None
}

// NewFileTap creates a new instance of file tap.
//
// Every job will get processed once the tap is opened by the engine.
// Wait for the channel returned by Done() before stopping the engine.
func NewFileTap(mode shift.Operation, log logging.Logger, jobs ...Job) (*FileTap, error) {
	if len(jobs) == 0 {
		return nil, ErrNoJobs
	}
	resolved := make([]Job, len(jobs))
	for i, job := range jobs {
		in, err := filepath.Abs(job.Input)
		if err != nil {
			return nil, err
		}
		out := job.Output
		if out == "" {
			out = filepath.Join(filepath.Dir(in), outputName(mode, filepath.Base(in)))
		}
		out, err = filepath.Abs(out)
		if err != nil {
			return nil, err
		}
		resolved[i] = Job{Input: in, Output: out}
	}

	return &FileTap{
		tap:      newTap(4*len(jobs), log),
		mode:     mode,
		jobs:     resolved,
		pending:  int32(len(jobs)),
		finished: make(chan shift.None),
	}, nil
}

// Jobs returns the resolved list of jobs
func (f *FileTap) Jobs() []Job {
	return f.jobs
}

// Done returns a channel which will get closed once all the jobs have been processed
func (f *FileTap) Done() <-chan shift.None {
	return f.finished
}

// Open starts pushing the jobs into the pipe.
// You SHOULD NOT call this method explicitly when you use the tap with an Engine object.
// Starting the engine will take care of opening the tap.
func (f *FileTap) Open() {
	f.openOnce.Do(func() {
		f.markAsOpen()
		f.wg.Add(1)
		go f.process()
	})
}

// Close stops pushing the jobs and releases the resources.
// NOTE: You don't need to explicitly call this function when you are using the tap
// with an Engine
func (f *FileTap) Close() {
	f.shutdown(nil)
}

func (f *FileTap) process() {
	defer f.wg.Done()
	for _, job := range f.jobs {
		select {
		case <-f.done:
			return
		default:
		}
		if !f.dispatch(f.mode, job.Input, job.Output, f.oneDone) {
			f.oneDone(nil)
		}
	}
}

func (f *FileTap) oneDone(*shift.WorkUnit) {
	if atomic.AddInt32(&f.pending, -1) == 0 {
		close(f.finished)
	}
}
