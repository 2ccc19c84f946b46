package taps

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/radovskyb/watcher"
	"github.com/rjeczalik/notify"
	"github.com/xitonix/xshift/logging"
	"github.com/xitonix/xshift/shift"
	"github.com/xitonix/xshift/taps/filesystem"
)

const (
	defaultPollingInterval = 500 * time.Millisecond
	defaultSettleTime      = 2 * time.Second
)

// WatchOptions configures a DirectoryWatcherTap
type WatchOptions struct {
	// Source the directory to watch. It will get created if it doesn't already exist.
	Source string
	// Target the directory into which the results will be written. It will get created if it doesn't already exist.
	Target string
	// Mode the operation to run on every file
	Mode shift.Operation
	// Polling switches from the filesystem notifications to polling the source directory.
	// Polling is slower, but works on the filesystems which do not support notifications, such as network shares.
	Polling bool
	// PollingInterval the frequency of checking the source directory in polling mode
	PollingInterval time.Duration
	// SettleTime the time a file must remain untouched before it gets processed
	SettleTime time.Duration
}

// DirectoryWatcherTap is a tap with the functionality of monitoring a local directory and processing
// every new or modified file into the target directory.
//
// The relative path of the files inside the source directory is preserved in the target directory.
// Hidden files are ignored.
type DirectoryWatcherTap struct {
	*tap
	opts    WatchOptions
	queue   *filesystem.Queue
	poller  *watcher.Watcher
	fsEvent chan notify.EventInfo
	failed  chan shift.None
	err     error
}

// NewDirectoryWatcherTap creates a new instance of directory watcher tap.
func NewDirectoryWatcherTap(opts WatchOptions, log logging.Logger) (*DirectoryWatcherTap, error) {
	src, err := createDirIfNotExist(opts.Source)
	if err != nil {
		return nil, err
	}

	tg, err := createDirIfNotExist(opts.Target)
	if err != nil {
		return nil, err
	}

	if isNested(src, tg) {
		return nil, ErrNestedTarget
	}

	opts.Source, opts.Target = src, tg
	if opts.PollingInterval <= 0 {
		opts.PollingInterval = defaultPollingInterval
	}
	if opts.SettleTime <= 0 {
		opts.SettleTime = defaultSettleTime
	}

	d := &DirectoryWatcherTap{
		tap:    newTap(64, log),
		opts:   opts,
		queue:  filesystem.NewQueue(),
		failed: make(chan shift.None),
	}

	if opts.Polling {
		w := watcher.New()
		w.FilterOps(watcher.Create, watcher.Write)
		w.IgnoreHiddenFiles(true)
		if err := w.AddRecursive(src); err != nil {
			return nil, err
		}
		d.poller = w
	} else {
		// Make the channel buffered to ensure no event is dropped. Notify will drop
		// an event if the receiver is not able to keep up the sending pace.
		d.fsEvent = make(chan notify.EventInfo, 64)
	}

	return d, nil
}

// Options returns the resolved options of the tap
func (d *DirectoryWatcherTap) Options() WatchOptions {
	return d.opts
}

// Open starts the directory watcher on the source directory.
// The files which are already in the source directory will get processed straight away.
// You SHOULD NOT call this method explicitly when you use the tap with an Engine object.
// Starting the engine will take care of opening the tap.
func (d *DirectoryWatcherTap) Open() {
	d.openOnce.Do(func() {
		if d.opts.Polling {
			d.wg.Add(2)
			go d.runPoller()
			go d.consumePolls()
			// make sure the poller is running before Close gets a chance to stop it
			d.poller.Wait()
		} else {
			if err := notify.Watch(filepath.Join(d.opts.Source, "..."), d.fsEvent, notify.Create, notify.Write); err != nil {
				d.markAsOpen()
				d.fail(fmt.Errorf("failed to watch '%s': %w", d.opts.Source, err))
				return
			}
			d.wg.Add(1)
			go d.consumeNotifications()
		}

		d.markAsOpen()

		d.wg.Add(1)
		go d.dispatchSettledFiles()

		d.wg.Add(1)
		go d.processExistingFiles()
	})
}

// Failed returns a channel which will get closed if the tap cannot watch the source directory.
// No file will get processed once the channel is closed. Err returns the reason.
func (d *DirectoryWatcherTap) Failed() <-chan shift.None {
	return d.failed
}

// Err returns the error which stopped the tap from watching the source directory, if any
func (d *DirectoryWatcherTap) Err() error {
	d.mux.Lock()
	defer d.mux.Unlock()
	return d.err
}

func (d *DirectoryWatcherTap) fail(err error) {
	d.mux.Lock()
	d.err = err
	d.mux.Unlock()
	d.reportError(err)
	close(d.failed)
}

// Close stops the filesystem watcher and releases the resources.
// NOTE: You don't need to explicitly call this function when you are using the tap
// with an Engine
func (d *DirectoryWatcherTap) Close() {
	d.shutdown(func() {
		if d.opts.Polling {
			d.poller.Close()
		} else {
			notify.Stop(d.fsEvent)
		}
	})
}

func (d *DirectoryWatcherTap) runPoller() {
	defer d.wg.Done()
	if err := d.poller.Start(d.opts.PollingInterval); err != nil {
		d.reportError(fmt.Errorf("failed to poll '%s': %w", d.opts.Source, err))
	}
}

func (d *DirectoryWatcherTap) consumePolls() {
	defer d.wg.Done()
	for {
		// The poller blocks on its channels until it's closed,
		// so keep reading off them even once the tap is closing.
		select {
		case event := <-d.poller.Event:
			if !event.IsDir() {
				d.queue.AddOrUpdate(event.Path)
			}
		case err := <-d.poller.Error:
			d.reportError(fmt.Errorf("polling '%s': %w", d.opts.Source, err))
		case <-d.poller.Closed:
			return
		}
	}
}

func (d *DirectoryWatcherTap) consumeNotifications() {
	defer d.wg.Done()
	for {
		select {
		case <-d.done:
			return
		case ei := <-d.fsEvent:
			d.queue.AddOrUpdate(ei.Path())
		}
	}
}

func (d *DirectoryWatcherTap) dispatchSettledFiles() {
	defer d.wg.Done()
	interval := d.opts.SettleTime / 2
	if interval < 10*time.Millisecond {
		interval = 10 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-d.done:
			return
		case <-ticker.C:
			for _, path := range d.queue.PopSettled(d.opts.SettleTime) {
				info, err := os.Stat(path)
				if err != nil {
					if !os.IsNotExist(err) {
						d.reportError(fmt.Errorf("os.Stat: %w", err))
					}
					continue
				}
				if info.Mode().IsRegular() {
					d.dispatchFile(path)
				}
			}
		}
	}
}

func (d *DirectoryWatcherTap) processExistingFiles() {
	defer d.wg.Done()
	err := filepath.WalkDir(d.opts.Source, func(path string, entry fs.DirEntry, err error) error {
		select {
		case <-d.done:
			return filepath.SkipAll
		default:
		}
		if err != nil {
			d.reportError(err)
			return nil
		}
		if isHidden(entry.Name()) && path != d.opts.Source {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.Type().IsRegular() {
			d.dispatchFile(path)
		}
		return nil
	})

	if err != nil {
		d.reportError(err)
	}
}

func (d *DirectoryWatcherTap) dispatchFile(path string) {
	rel, err := filepath.Rel(d.opts.Source, path)
	if err != nil {
		d.reportError(fmt.Errorf("failed to resolve the path to '%s': %w", path, err))
		return
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if isHidden(part) {
			return
		}
	}
	d.dispatch(d.opts.Mode, path, filepath.Join(d.opts.Target, outputName(d.opts.Mode, rel)), nil)
}

// isNested returns true if dir is the same as, or located inside, the parent directory
func isNested(parent, dir string) bool {
	rel, err := filepath.Rel(parent, dir)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
