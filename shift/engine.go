package shift

import (
	"context"
	"sync"

	"github.com/xitonix/xshift/logging"
)

// Engine is the type that runs the encoding and decoding work units sent by a Tap.
//
// Every work unit is processed sequentially by one of the workers, so the engine only
// parallelises independent work units, never the characters of a single stream.
type Engine struct {
	stream      *stream
	params      Params
	log         logging.Logger
	wg          *sync.WaitGroup
	cancel      context.CancelFunc
	parallelism uint16

	startOnce sync.Once
	stopOnce  sync.Once

	//to prevent multiple go routines to run Start and Stop at the same time
	mux       sync.Mutex
	isRunning bool
}

// NewEngine creates a new instance of an engine object.
// "parallelism" specifies the number of work units which can be processed at the same time.
func NewEngine(parallelism uint16, params Params, tap Tap) *Engine {
	if parallelism == 0 {
		parallelism = 1
	}
	return &Engine{
		stream:      newStream(parallelism, tap),
		params:      params,
		log:         logging.Nop(),
		wg:          &sync.WaitGroup{},
		parallelism: parallelism,
	}
}

// SetLogger replaces the logger of the engine. It must be called before Start.
func (e *Engine) SetLogger(log logging.Logger) {
	if log != nil {
		e.log = log
	}
}

// Start starts the workers and opens the tap. Once you are finished with the engine, you need to
// call the Stop function. It's safe to call this method on a running engine
func (e *Engine) Start() {
	e.mux.Lock()
	defer e.mux.Unlock()

	if e.isRunning {
		return
	}

	e.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		e.cancel = cancel

		for i := uint16(0); i < e.parallelism; i++ {
			e.wg.Add(1)
			go e.monitorStream(ctx)
		}
		e.stream.open()
		e.isRunning = true
		e.log.Debugf("the engine has been started with %d worker(s)", e.parallelism)
	})
}

// Stop closes the tap, cancels the in-progress work units and releases the resources.
// The work units which have not been picked up by a worker are cancelled and their callbacks get called.
// It's safe to call this function on a stopped engine
func (e *Engine) Stop() {
	e.mux.Lock()
	defer e.mux.Unlock()

	if !e.isRunning {
		return
	}
	e.stopOnce.Do(func() {
		if e.cancel != nil {
			e.isRunning = false
			e.stream.shutdown()
			e.cancel()
			e.wg.Wait()
			e.log.Debug("the engine has been stopped")
		}
	})
}

// IsON returns true if the engine is running
func (e *Engine) IsON() bool {
	e.mux.Lock()
	defer e.mux.Unlock()
	return e.isRunning
}

func (e *Engine) monitorStream(ctx context.Context) {
	defer e.wg.Done()
	for {
		select {
		case wu, more := <-e.stream.tube:
			if !more {
				return
			}
			e.log.Debugf("processing the %s work unit", wu.Task.Mode())
			wu.Error = wu.Task.Run(ctx, e.params)
			if wu.Error != nil {
				e.log.Warningf("failed to %s: %v", wu.Task.Mode(), wu.Error)
			}
			wu.callBack()
		case <-ctx.Done():
			return
		}
	}
}
