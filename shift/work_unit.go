package shift

// WorkList is the channel over which a Tap sends the work units to the engine
type WorkList chan *WorkUnit

// CallbackFunc is a callback function which will get called by the engine once
// the processing of a work unit has been finished
type CallbackFunc func(*WorkUnit)

// WorkUnit is a unit of encoding/decoding work
type WorkUnit struct {
	// Task the task to run
	Task *Task
	// Error the error details of a failed Task
	Error error
	// Metadata arbitrary details attached by the Tap
	Metadata map[string]interface{}

	callback CallbackFunc
}

// NewWorkUnit creates a new work unit
func NewWorkUnit(t *Task, c CallbackFunc) *WorkUnit {
	return &WorkUnit{
		Task:     t,
		callback: c,
		Metadata: make(map[string]interface{}),
	}
}

// discard marks a work unit which will never get processed as cancelled and hands it back to the tap
func (w *WorkUnit) discard() {
	w.Task.markAsComplete(Cancelled)
	w.callBack()
}

func (w *WorkUnit) callBack() {
	if w.callback != nil {
		w.callback(w)
	}
}
