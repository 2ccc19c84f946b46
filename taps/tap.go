package taps

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/xitonix/xshift/logging"
	"github.com/xitonix/xshift/shift"
)

const (
	// EncodedFileExtension the extension of the encoded files created by the taps
	EncodedFileExtension = ".xs"
	// DecodedFileExtension the extension of the decoded files whose input does not have the EncodedFileExtension
	DecodedFileExtension = ".txt"

	idMetadataKey     = "id"
	inputMetadataKey  = "input"
	outputMetadataKey = "output"
)

// File file
type File struct {
	// Name file name
	Name string
	// Path file full path
	Path string
}

// Result represents the progress details of a task
type Result struct {
	// ID the identifier of the task. All the reports of the same task carry the same ID.
	ID string
	// Operation the operation of the task
	Operation shift.Operation
	// Status the status of the operation
	Status shift.Status
	// Error the error details of a failed task
	Error error
	// Input input file
	Input File
	// Output output file
	Output File
}

// tap implements the plumbing shared by the filesystem taps: the work list, the notification
// channels and the mapping between input and output files.
type tap struct {
	pipe     shift.WorkList
	progress chan *Result
	errors   chan error
	log      logging.Logger
	wg       *sync.WaitGroup
	done     chan shift.None

	openOnce  sync.Once
	closeOnce sync.Once

	// to prevent multiple go routines to run
	// Open and Close at the same time
	mux    sync.Mutex
	isOpen bool
}

func newTap(notificationBuffer int, log logging.Logger) *tap {
	if log == nil {
		log = logging.Nop()
	}
	return &tap{
		pipe:     make(shift.WorkList),
		progress: make(chan *Result, notificationBuffer),
		errors:   make(chan error, notificationBuffer),
		log:      log,
		wg:       &sync.WaitGroup{},
		done:     make(chan shift.None),
	}
}

// Pipe returns the work list channel from which the engine will receive the requests.
func (t *tap) Pipe() shift.WorkList {
	return t.pipe
}

// Errors returns a read-only channel on which you will receive the failure notifications.
// The notifications are dropped if nobody keeps up with reading off the channel.
func (t *tap) Errors() <-chan error {
	return t.errors
}

// Progress returns a read-only channel on which you will receive the progress report.
// The reports are dropped if nobody keeps up with reading off the channel.
func (t *tap) Progress() <-chan *Result {
	return t.progress
}

// IsOpen returns true if the tap is open
func (t *tap) IsOpen() bool {
	t.mux.Lock()
	defer t.mux.Unlock()
	return t.isOpen
}

func (t *tap) markAsOpen() {
	t.mux.Lock()
	defer t.mux.Unlock()
	t.isOpen = true
}

// shutdown stops the internal go routines, waits for them to return and closes the channels.
// stop is called between the two steps to release the resources which may block the go routines.
func (t *tap) shutdown(stop func()) {
	t.closeOnce.Do(func() {
		t.mux.Lock()
		t.isOpen = false
		close(t.done)
		t.mux.Unlock()

		if stop != nil {
			stop()
		}
		t.wg.Wait()

		t.mux.Lock()
		close(t.pipe)
		close(t.errors)
		close(t.progress)
		t.mux.Unlock()
	})
}

func (t *tap) reportError(err error) {
	t.log.Error(err)
	t.mux.Lock()
	defer t.mux.Unlock()
	if !t.isOpen {
		return
	}
	select {
	case t.errors <- err:
	default:
	}
}

func (t *tap) reportProgress(r *Result) {
	t.mux.Lock()
	defer t.mux.Unlock()
	if !t.isOpen {
		return
	}
	select {
	case t.progress <- r:
	default:
	}
}

// dispatch opens the input, creates the output and pushes a work unit into the pipe.
// It returns false if the work unit could not be dispatched, in which case finished will never get called.
func (t *tap) dispatch(mode shift.Operation, inputPath, outputPath string, finished func(*shift.WorkUnit)) bool {
	input, err := os.Open(inputPath)
	if err != nil {
		t.reportError(fmt.Errorf("failed to open '%s': %w", inputPath, err))
		return false
	}

	if _, err := createDirIfNotExist(filepath.Dir(outputPath)); err != nil {
		input.Close()
		t.reportError(fmt.Errorf("failed to create '%s': %w", filepath.Dir(outputPath), err))
		return false
	}

	output, err := os.Create(outputPath)
	if err != nil {
		input.Close()
		t.reportError(fmt.Errorf("failed to create '%s': %w", outputPath, err))
		return false
	}

	task := shift.NewTask(mode, input, output)
	in := File{Name: filepath.Base(inputPath), Path: inputPath}
	out := File{Name: filepath.Base(outputPath), Path: outputPath}
	w := shift.NewWorkUnit(task, func(w *shift.WorkUnit) {
		t.whenDone(w)
		if finished != nil {
			finished(w)
		}
	})
	id := uuid.NewString()
	w.Metadata[idMetadataKey] = id
	w.Metadata[inputMetadataKey] = in
	w.Metadata[outputMetadataKey] = out

	t.reportProgress(&Result{ID: id, Operation: mode, Status: task.Status(), Input: in, Output: out})
	t.log.Debugf("%s [%s]: %s > %s", mode, id, in.Path, out.Path)

	select {
	case t.pipe <- w:
		return true
	case <-t.done:
		task.CloseInput()
		task.CloseOutputs()
		return false
	}
}

// whenDone is a callback method which will get called by the engine once the
// processing of a task has been finished
func (t *tap) whenDone(w *shift.WorkUnit) {
	id, input, output := parseMetadata(w.Metadata)

	if err := w.Task.CloseInput(); err != nil {
		t.reportError(fmt.Errorf("failed to close '%s': %w", input.Name, err))
	}
	if err := w.Task.CloseOutputs(); err != nil {
		t.reportError(fmt.Errorf("failed to close '%s': %w", output.Name, err))
	}

	if w.Error != nil {
		t.reportError(fmt.Errorf("failed to %s '%s': %w", w.Task.Mode(), input.Name, w.Error))
	}

	t.reportProgress(&Result{
		ID:        id,
		Operation: w.Task.Mode(),
		Status:    w.Task.Status(),
		Error:     w.Error,
		Input:     input,
		Output:    output,
	})
}

func parseMetadata(metadata map[string]interface{}) (string, File, File) {
	id, _ := metadata[idMetadataKey].(string)
	in, _ := metadata[inputMetadataKey].(File)
	out, _ := metadata[outputMetadataKey].(File)
	return id, in, out
}

// outputName returns the name of the file into which the result of the operation will be written
func outputName(mode shift.Operation, name string) string {
	if mode == shift.Encode {
		return name + EncodedFileExtension
	}
	if strings.HasSuffix(name, EncodedFileExtension) {
		return strings.TrimSuffix(name, EncodedFileExtension)
	}
	return name + DecodedFileExtension
}

func createDirIfNotExist(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir, err
	}
	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return abs, os.MkdirAll(abs, os.ModePerm)
	}
	if err != nil {
		return abs, err
	}
	if !info.IsDir() {
		return abs, ErrInvalidDirectory
	}
	return abs, nil
}
