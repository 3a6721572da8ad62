package watching

const (
	// sourceBufferSize is the size of the buffer used for reading raw change
	// records from the native facility.
	sourceBufferSize = 256 * 1024
)

// watchSource is the interface implemented by platform-specific event
// sources. A source owns the native watch resources for a single directory
// from construction (via newWatchSource) until close.
type watchSource interface {
	// poll blocks until the native facility delivers one or more change
	// records, a wake request is observed, or the wait itself fails. It
	// returns any normalized entries, a boolean that is false once a wake
	// request has been observed, and any error that occurred. Entries are
	// returned in the order reported by the native facility. It must only be
	// called from a single goroutine.
	poll() ([]queueEntry, bool, error)
	// wake unblocks any pending or future poll, causing it to indicate
	// termination. The request is sticky and safe to issue from other
	// goroutines while a poll is in flight.
	wake() error
	// close releases the native watch resources. It must be called exactly
	// once, and only after the polling goroutine has exited.
	close() error
}
