//go:build linux
// +build linux

package watching

import (
	"os"
	"testing"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// appendInotifyRecord appends a synthetic inotify record with the specified
// mask and name to a raw buffer.
func appendInotifyRecord(buffer []byte, mask uint32, name string) []byte {
	// Compute the NUL-padded name length. Real records pad names to a
	// multiple of the header alignment, with at least one terminating NUL
	// for non-empty names.
	nameLength := 0
	if name != "" {
		nameLength = (len(name)/4 + 1) * 4
	}

	// Append the header.
	event := unix.InotifyEvent{
		Wd:   1,
		Mask: mask,
		Len:  uint32(nameLength),
	}
	header := unsafe.Slice((*byte)(unsafe.Pointer(&event)), unix.SizeofInotifyEvent)
	buffer = append(buffer, header...)

	// Append the padded name.
	if nameLength > 0 {
		padded := make([]byte, nameLength)
		copy(padded, name)
		buffer = append(buffer, padded...)
	}

	// Done.
	return buffer
}

// TestParseInotifyEvents verifies decoding and mapping of a raw inotify
// buffer.
func TestParseInotifyEvents(t *testing.T) {
	// Build a synthetic buffer: a creation, a directory-level record with no
	// name (which must be skipped), a move pair, a modification, and a
	// deletion.
	var buffer []byte
	buffer = appendInotifyRecord(buffer, unix.IN_CREATE, "a.txt")
	buffer = appendInotifyRecord(buffer, unix.IN_MODIFY|unix.IN_ISDIR, "")
	buffer = appendInotifyRecord(buffer, unix.IN_MOVED_FROM, "a.txt")
	buffer = appendInotifyRecord(buffer, unix.IN_MOVED_TO, "b.txt")
	buffer = appendInotifyRecord(buffer, unix.IN_MODIFY, "b.txt")
	buffer = appendInotifyRecord(buffer, unix.IN_DELETE, "b.txt")

	// Parse and verify.
	entries := parseInotifyEvents(buffer)
	expected := []queueEntry{
		{"a.txt", EventAdded},
		{"a.txt", EventRemoved},
		{"b.txt", EventAdded},
		{"b.txt", EventModified},
		{"b.txt", EventRemoved},
	}
	if len(entries) != len(expected) {
		t.Fatal("parsed entry count mismatch:", len(entries), "!=", len(expected))
	}
	for i, entry := range entries {
		if entry != expected[i] {
			t.Error("entry mismatch at index", i, ":", entry, "!=", expected[i])
		}
	}
}

// TestParseInotifyEventsEmpty verifies decoding of an empty buffer.
func TestParseInotifyEventsEmpty(t *testing.T) {
	if entries := parseInotifyEvents(nil); len(entries) != 0 {
		t.Error("entries parsed from empty buffer")
	}
}

// TestSourceWakeUnblocksPoll verifies that a wake request issued while a
// poll is in flight unblocks it promptly.
func TestSourceWakeUnblocksPoll(t *testing.T) {
	// Create a temporary directory and defer its removal.
	directory, err := os.MkdirTemp("", "filewatch_source")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	// Open a source for it.
	source, err := newWatchSource(directory)
	if err != nil {
		t.Fatal("unable to open watch source:", err)
	}

	// Block a poll in a separate goroutine.
	results := make(chan bool, 1)
	go func() {
		_, ok, _ := source.poll()
		results <- ok
	}()

	// Issue a wake request and verify prompt unblocking.
	if err := source.wake(); err != nil {
		t.Fatal("unable to issue wake request:", err)
	}
	select {
	case ok := <-results:
		if ok {
			t.Error("poll did not indicate termination after wake")
		}
	case <-time.After(maximumEventWaitTime):
		t.Fatal("poll still blocked after wake")
	}

	// Close the source.
	if err := source.close(); err != nil {
		t.Error("unable to close source:", err)
	}
}
