package watching

import (
	"sync"
)

// queueEntry pairs a file name with the event observed for it.
type queueEntry struct {
	// name is the file name, relative to the watched directory.
	name string
	// event is the observed event.
	event Event
}

// eventQueue is an order-preserving mailbox between the source loop and the
// dispatch loop. Entries are appended by the source loop and drained as whole
// batches by the dispatch loop, so a slow event handler never blocks the
// source loop from continuing to append.
type eventQueue struct {
	// lock serializes access to entries and stopped.
	lock sync.Mutex
	// ready is used to signal the dispatch loop when entries are available
	// or the queue has been stopped. It is subordinate to lock.
	ready *sync.Cond
	// entries is the current backlog, in arrival order.
	entries []queueEntry
	// stopped indicates that the queue has been stopped.
	stopped bool
}

// newEventQueue creates a new event queue.
func newEventQueue() *eventQueue {
	queue := &eventQueue{}
	queue.ready = sync.NewCond(&queue.lock)
	return queue
}

// enqueue appends entries to the tail of the backlog, preserving their order,
// and wakes the dispatch loop.
func (q *eventQueue) enqueue(entries []queueEntry) {
	// Ignore empty batches so that the dispatch loop is only woken when
	// there's something to deliver.
	if len(entries) == 0 {
		return
	}

	// Append the entries.
	q.lock.Lock()
	q.entries = append(q.entries, entries...)
	q.lock.Unlock()

	// Wake the dispatch loop.
	q.ready.Signal()
}

// drain blocks until the backlog is non-empty or the queue has been stopped,
// then atomically swaps out the entire backlog and returns it as one ordered
// batch. The second return value indicates whether or not the queue is still
// running; any batch returned alongside a false value is still valid and
// should be delivered.
func (q *eventQueue) drain() ([]queueEntry, bool) {
	q.lock.Lock()
	defer q.lock.Unlock()
	for len(q.entries) == 0 && !q.stopped {
		q.ready.Wait()
	}
	entries := q.entries
	q.entries = nil
	return entries, !q.stopped
}

// stop marks the queue as stopped and unconditionally wakes any blocked
// drain. Entries enqueued after the final drain are discarded.
func (q *eventQueue) stop() {
	q.lock.Lock()
	q.stopped = true
	q.lock.Unlock()
	q.ready.Broadcast()
}
