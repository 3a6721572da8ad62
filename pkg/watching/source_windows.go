//go:build windows
// +build windows

package watching

import (
	"unicode/utf16"
	"unsafe"

	"github.com/pkg/errors"

	"golang.org/x/sys/windows"
)

const (
	// WatchingSupported indicates whether or not the current platform
	// supports native watching.
	WatchingSupported = true

	// readDirectoryChangesFilter selects the change classes reported by
	// ReadDirectoryChangesW.
	readDirectoryChangesFilter = windows.FILE_NOTIFY_CHANGE_FILE_NAME |
		windows.FILE_NOTIFY_CHANGE_DIR_NAME |
		windows.FILE_NOTIFY_CHANGE_ATTRIBUTES |
		windows.FILE_NOTIFY_CHANGE_SIZE |
		windows.FILE_NOTIFY_CHANGE_LAST_WRITE |
		windows.FILE_NOTIFY_CHANGE_LAST_ACCESS |
		windows.FILE_NOTIFY_CHANGE_CREATION |
		windows.FILE_NOTIFY_CHANGE_SECURITY
)

// fileActionEvents maps native file actions onto normalized events.
var fileActionEvents = map[uint32]Event{
	windows.FILE_ACTION_ADDED:            EventAdded,
	windows.FILE_ACTION_REMOVED:          EventRemoved,
	windows.FILE_ACTION_MODIFIED:         EventModified,
	windows.FILE_ACTION_RENAMED_OLD_NAME: EventRenamedOld,
	windows.FILE_ACTION_RENAMED_NEW_NAME: EventRenamedNew,
}

// readDirectoryChangesSource implements watchSource using overlapped
// ReadDirectoryChangesW calls. Each poll issues (or resumes) an asynchronous
// read on the directory handle and then waits on both the read's completion
// event and a manual-reset wake event, so a wake request from another
// goroutine unblocks the wait immediately.
type readDirectoryChangesSource struct {
	// directory is the watched directory handle.
	directory windows.Handle
	// wakeEvent is the manual-reset event used to request termination.
	wakeEvent windows.Handle
	// overlapped is the overlapped structure for asynchronous reads. Its
	// HEvent member holds the manual-reset completion event.
	overlapped windows.Overlapped
	// pending indicates whether or not an asynchronous read is outstanding.
	pending bool
	// buffer is the raw change record buffer.
	buffer []byte
}

// newWatchSource opens the specified directory and prepares it for change
// notification reads.
func newWatchSource(directory string) (watchSource, error) {
	// Convert the directory path.
	path, err := windows.UTF16PtrFromString(directory)
	if err != nil {
		return nil, errors.Wrap(err, "unable to convert directory path")
	}

	// Open the directory for change listing with full sharing, so that the
	// watch doesn't prevent other processes from mutating or removing it.
	handle, err := windows.CreateFile(
		path,
		windows.FILE_LIST_DIRECTORY,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS|windows.FILE_FLAG_OVERLAPPED,
		0,
	)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open directory")
	}

	// Create the completion event.
	completionEvent, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		windows.CloseHandle(handle)
		return nil, errors.Wrap(err, "unable to create completion event")
	}

	// Create the wake event.
	wakeEvent, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		windows.CloseHandle(completionEvent)
		windows.CloseHandle(handle)
		return nil, errors.Wrap(err, "unable to create wake event")
	}

	// Success.
	source := &readDirectoryChangesSource{
		directory: handle,
		wakeEvent: wakeEvent,
		buffer:    make([]byte, sourceBufferSize),
	}
	source.overlapped.HEvent = completionEvent
	return source, nil
}

// poll implements watchSource.poll.
func (s *readDirectoryChangesSource) poll() ([]queueEntry, bool, error) {
	// Issue the next asynchronous read if one isn't already outstanding.
	if !s.pending {
		if err := windows.ReadDirectoryChanges(
			s.directory,
			&s.buffer[0],
			uint32(len(s.buffer)),
			false,
			readDirectoryChangesFilter,
			nil,
			&s.overlapped,
			0,
		); err != nil {
			return nil, false, errors.Wrap(err, "unable to request directory changes")
		}
		s.pending = true
	}

	// Wait for read completion or a wake request.
	status, err := windows.WaitForMultipleObjects(
		[]windows.Handle{s.overlapped.HEvent, s.wakeEvent},
		false,
		windows.INFINITE,
	)
	if err != nil {
		return nil, false, errors.Wrap(err, "unable to wait for events")
	} else if status == windows.WAIT_OBJECT_0+1 {
		return nil, false, nil
	}

	// Collect the read result and reset the completion event for the next
	// read.
	var transferred uint32
	if err := windows.GetOverlappedResult(s.directory, &s.overlapped, &transferred, true); err != nil {
		s.pending = false
		return nil, false, errors.Wrap(err, "unable to retrieve directory changes")
	}
	s.pending = false
	if err := windows.ResetEvent(s.overlapped.HEvent); err != nil {
		return nil, false, errors.Wrap(err, "unable to reset completion event")
	}

	// A zero-length completion indicates that the change backlog overflowed
	// the buffer. There's nothing to parse in that case, but watching can
	// continue.
	if transferred == 0 {
		return nil, true, nil
	}

	// Success.
	return parseFileNotifyInformation(s.buffer[:transferred]), true, nil
}

// fileNotifyInformationHeaderSize is the size of the fixed-length portion of
// a FILE_NOTIFY_INFORMATION record (the three leading DWORD members). The
// record's name data immediately follows this header.
const fileNotifyInformationHeaderSize = 12

// parseFileNotifyInformation decodes a chained sequence of variable-length
// FILE_NOTIFY_INFORMATION records into normalized entries. Each record
// declares its name length explicitly (names are not NUL-terminated) and the
// offset of the next record, with a zero offset terminating the chain. Any
// record whose header or name would extend beyond the buffer terminates the
// walk, since nothing beyond it can be decoded reliably.
func parseFileNotifyInformation(buffer []byte) []queueEntry {
	var entries []queueEntry
	var offset uint32
	for uint64(offset)+fileNotifyInformationHeaderSize <= uint64(len(buffer)) {
		record := (*windows.FileNotifyInformation)(unsafe.Pointer(&buffer[offset]))
		if uint64(offset)+fileNotifyInformationHeaderSize+uint64(record.FileNameLength) > uint64(len(buffer)) {
			break
		}
		nameLength := int(record.FileNameLength / 2)
		name := string(utf16.Decode(unsafe.Slice(&record.FileName, nameLength)))
		if event, ok := fileActionEvents[record.Action]; ok {
			entries = append(entries, queueEntry{name, event})
		}
		if record.NextEntryOffset == 0 {
			break
		}
		next := offset + record.NextEntryOffset
		if next <= offset {
			break
		}
		offset = next
	}
	return entries
}

// wake implements watchSource.wake.
func (s *readDirectoryChangesSource) wake() error {
	if err := windows.SetEvent(s.wakeEvent); err != nil {
		return errors.Wrap(err, "unable to signal wake event")
	}
	return nil
}

// close implements watchSource.close.
func (s *readDirectoryChangesSource) close() error {
	// If an asynchronous read is still outstanding, cancel it and wait for
	// the cancellation to drain before releasing the buffer and handles.
	if s.pending {
		windows.CancelIo(s.directory)
		var transferred uint32
		windows.GetOverlappedResult(s.directory, &s.overlapped, &transferred, true)
	}

	// Release the handles.
	err := windows.CloseHandle(s.directory)
	windows.CloseHandle(s.overlapped.HEvent)
	windows.CloseHandle(s.wakeEvent)
	if err != nil {
		return errors.Wrap(err, "unable to close directory handle")
	}
	return nil
}
