// Package filesystem keeps track of the files which are still being written, so that
// a watcher only processes a file once it has stopped changing.
package filesystem

import (
	"sort"
	"sync"
	"time"
)

// Queue is a set of files waiting to settle
type Queue struct {
	mux      sync.Mutex
	monitors map[string]*fileMonitor
	now      func() time.Time
}

// NewQueue creates a new Queue object
func NewQueue() *Queue {
	return &Queue{
		monitors: make(map[string]*fileMonitor),
		now:      time.Now,
	}
}

// AddOrUpdate adds the file to the queue, or resets its settling period if it's already queued
func (q *Queue) AddOrUpdate(path string) {
	q.mux.Lock()
	defer q.mux.Unlock()
	now := q.now()
	if m, ok := q.monitors[path]; ok {
		m.update(now)
		return
	}
	q.monitors[path] = newFileMonitor(path, now)
}

// PopSettled removes and returns the files which have not been touched for at least the specified duration.
// The paths are sorted.
func (q *Queue) PopSettled(settle time.Duration) []string {
	q.mux.Lock()
	defer q.mux.Unlock()
	now := q.now()
	var paths []string
	for path, m := range q.monitors {
		if m.isSettled(now, settle) {
			paths = append(paths, path)
			delete(q.monitors, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of queued files
func (q *Queue) Len() int {
	q.mux.Lock()
	defer q.mux.Unlock()
	return len(q.monitors)
}
