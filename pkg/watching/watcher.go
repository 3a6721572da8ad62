package watching

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/filewatch-io/filewatch/pkg/logging"
)

// Watcher watches a single file or the contents of a single directory and
// dispatches normalized change events to an event handler. Watchers are
// fully asynchronous: after construction the handler fires zero or more
// times with no polling required from the caller.
type Watcher struct {
	// target is the resolved watch target.
	target *target
	// handler is the event handler.
	handler EventHandler
	// filter is the optional exclusion filter. It may be nil.
	filter Filter
	// logger is the watcher's logger. It may be nil.
	logger *logging.Logger
	// source is the platform-specific event source.
	source watchSource
	// queue is the mailbox between the source loop and the dispatch loop.
	queue *eventQueue
	// done tracks termination of the source and dispatch loops.
	done sync.WaitGroup
}

// NewWatcher watches the specified path, invoking the handler once per
// observed event. If the path names anything other than a directory, then
// only events for that single name are delivered. Construction either
// succeeds completely or fails without leaving any background work running.
func NewWatcher(path string, handler EventHandler) (*Watcher, error) {
	return NewFilteredWatcher(path, handler, nil, nil)
}

// NewFilteredWatcher is like NewWatcher, but additionally accepts an
// exclusion filter and a logger, either of which may be nil.
func NewFilteredWatcher(path string, handler EventHandler, filter Filter, logger *logging.Logger) (*Watcher, error) {
	// Enforce that a handler was provided, since a watcher without one could
	// only ever discard events.
	if handler == nil {
		return nil, errors.New("nil event handler")
	}

	// Resolve the watch target.
	target, err := resolveTarget(path)
	if err != nil {
		return nil, err
	}

	// Open the native source for the resolved directory.
	source, err := newWatchSource(target.directory)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open native watch")
	}

	// Create the watcher and start its two loops.
	watcher := &Watcher{
		target:  target,
		handler: handler,
		filter:  filter,
		logger:  logger,
		source:  source,
		queue:   newEventQueue(),
	}
	watcher.done.Add(2)
	go watcher.run()
	go watcher.dispatch()

	// Success.
	return watcher, nil
}

// run is the source loop. It pumps the native source, normalizes and filters
// its output, and feeds the queue. It exits when a wake request is observed
// or the native wait fails.
func (w *Watcher) run() {
	defer w.done.Done()
	for {
		entries, ok, err := w.source.poll()
		if err != nil {
			w.logger.Error(errors.Wrap(err, "watch polling failed"))
			return
		} else if !ok {
			return
		}
		w.queue.enqueue(w.filterEntries(entries))
	}
}

// filterEntries applies single-file filtering and the optional exclusion
// filter to a batch of entries, in place.
func (w *Watcher) filterEntries(entries []queueEntry) []queueEntry {
	filtered := entries[:0]
	for _, entry := range entries {
		if w.target.singleFile && entry.name != w.target.name {
			continue
		}
		if w.filter != nil && w.filter(entry.name) {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered
}

// dispatch is the dispatch loop. It drains the queue in batches and invokes
// the handler once per entry, in arrival order. It is the only goroutine
// that ever invokes the handler.
func (w *Watcher) dispatch() {
	defer w.done.Done()
	for {
		entries, running := w.queue.drain()
		for _, entry := range entries {
			w.invoke(entry)
		}
		if !running {
			return
		}
	}
}

// invoke delivers a single entry to the handler, isolating the dispatch loop
// from handler panics so that a misbehaving handler can never halt delivery
// of subsequent events.
func (w *Watcher) invoke(entry queueEntry) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Warn(errors.Errorf("event handler panicked: %v", r))
		}
	}()
	w.handler(entry.name, entry.event)
}

// Stop terminates watching. It blocks until both internal loops have exited
// and the native watch resources have been released, after which the watcher
// is inert. It must be called exactly once.
func (w *Watcher) Stop() error {
	// Wake the source loop out of its blocking wait, then stop the queue so
	// that the dispatch loop is never left blocked.
	err := w.source.wake()
	w.queue.stop()

	// Wait for both loops to exit. The source loop must have exited before
	// the native resources can be released.
	w.done.Wait()

	// Release the native source.
	if closeErr := w.source.close(); err == nil {
		err = closeErr
	}
	return err
}
