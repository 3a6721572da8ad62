package watching

import (
	"errors"
)

// ErrWatchingUnsupported indicates that the current platform has no native
// watching facility.
var ErrWatchingUnsupported = errors.New("watching not supported on this platform")

// Event indicates the type of change observed for a file.
type Event uint8

const (
	// EventAdded indicates that a file was created.
	EventAdded Event = iota
	// EventRemoved indicates that a file was deleted.
	EventRemoved
	// EventModified indicates that a file's contents were modified.
	EventModified
	// EventRenamedOld indicates that a file was renamed and that the
	// associated name is the pre-rename name. It is only generated on
	// platforms whose native facility has rename semantics.
	EventRenamedOld
	// EventRenamedNew indicates that a file was renamed and that the
	// associated name is the post-rename name. It is only generated on
	// platforms whose native facility has rename semantics.
	EventRenamedNew
)

// String provides a human-readable representation of an event.
func (e Event) String() string {
	switch e {
	case EventAdded:
		return "added"
	case EventRemoved:
		return "removed"
	case EventModified:
		return "modified"
	case EventRenamedOld:
		return "renamed (old name)"
	case EventRenamedNew:
		return "renamed (new name)"
	default:
		return "unknown"
	}
}

// EventHandler is the callback type used to deliver events. The name argument
// is relative to the watched directory. Handlers are invoked from a single
// dedicated goroutine, one event at a time, in arrival order.
type EventHandler func(name string, event Event)

// Filter is a callback type that can be used to exclude names from being
// delivered by a watcher. It accepts a name and returns true if that name
// should be ignored and excluded from events.
type Filter func(name string) bool
