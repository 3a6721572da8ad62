//go:build linux
// +build linux

package watching

import (
	"strings"
	"unsafe"

	"github.com/pkg/errors"

	"golang.org/x/sys/unix"
)

const (
	// WatchingSupported indicates whether or not the current platform
	// supports native watching.
	WatchingSupported = true

	// inotifyMask selects the inotify events that map onto the normalized
	// event vocabulary. Moves are included so that renames surface (as an
	// unpaired removal followed by an addition), since inotify has no paired
	// rename record at this layer.
	inotifyMask = unix.IN_CREATE | unix.IN_DELETE | unix.IN_MODIFY |
		unix.IN_MOVED_FROM | unix.IN_MOVED_TO
)

// inotifySource implements watchSource using inotify. Since a read on an
// inotify descriptor has no native cancellation primitive, the source also
// carries a wake pipe and suspends in poll(2) across both descriptors, which
// bounds shutdown latency without waiting for the next filesystem event.
type inotifySource struct {
	// fd is the inotify descriptor.
	fd int
	// watch is the watch descriptor registered for the target directory.
	watch int
	// wakeRead and wakeWrite are the read and write ends of the wake pipe.
	wakeRead, wakeWrite int
	// buffer is the raw event read buffer.
	buffer []byte
}

// newWatchSource establishes an inotify watch on the specified directory.
func newWatchSource(directory string) (watchSource, error) {
	// Create the inotify instance.
	fd, err := unix.InotifyInit1(unix.IN_CLOEXEC)
	if err != nil {
		return nil, errors.Wrap(err, "unable to initialize inotify")
	}

	// Register the directory.
	watch, err := unix.InotifyAddWatch(fd, directory, inotifyMask)
	if err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, "unable to register watch")
	}

	// Create the wake pipe.
	var pipe [2]int
	if err := unix.Pipe2(pipe[:], unix.O_CLOEXEC); err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, "unable to create wake pipe")
	}

	// Success.
	return &inotifySource{
		fd:        fd,
		watch:     watch,
		wakeRead:  pipe[0],
		wakeWrite: pipe[1],
		buffer:    make([]byte, sourceBufferSize),
	}, nil
}

// poll implements watchSource.poll.
func (s *inotifySource) poll() ([]queueEntry, bool, error) {
	// Wait until the inotify descriptor is readable or a wake request has
	// been issued, retrying on signal interruption.
	pollees := []unix.PollFd{
		{Fd: int32(s.fd), Events: unix.POLLIN},
		{Fd: int32(s.wakeRead), Events: unix.POLLIN},
	}
	for {
		if _, err := unix.Poll(pollees, -1); err != nil {
			if err == unix.EINTR {
				continue
			}
			return nil, false, errors.Wrap(err, "unable to wait for events")
		}
		break
	}

	// If a wake request has been issued, then indicate termination. The wake
	// byte is intentionally left in the pipe so that the request remains
	// observable if additional polls race with it.
	if pollees[1].Revents != 0 {
		return nil, false, nil
	}

	// Read the raw event records.
	length, err := unix.Read(s.fd, s.buffer)
	if err != nil {
		return nil, false, errors.Wrap(err, "unable to read events")
	}

	// Success.
	return parseInotifyEvents(s.buffer[:length]), true, nil
}

// parseInotifyEvents decodes a raw inotify buffer into normalized entries.
// The buffer is a flat sequence of fixed-size headers, each followed by a
// NUL-padded name whose length the header declares. Records without a name
// (events on the watched directory itself) are skipped.
func parseInotifyEvents(buffer []byte) []queueEntry {
	var entries []queueEntry
	for len(buffer) >= unix.SizeofInotifyEvent {
		raw := (*unix.InotifyEvent)(unsafe.Pointer(&buffer[0]))
		length := unix.SizeofInotifyEvent + int(raw.Len)
		if length > len(buffer) {
			break
		}
		if raw.Len > 0 {
			name := strings.TrimRight(string(buffer[unix.SizeofInotifyEvent:length]), "\x00")
			if raw.Mask&(unix.IN_CREATE|unix.IN_MOVED_TO) != 0 {
				entries = append(entries, queueEntry{name, EventAdded})
			} else if raw.Mask&(unix.IN_DELETE|unix.IN_MOVED_FROM) != 0 {
				entries = append(entries, queueEntry{name, EventRemoved})
			} else if raw.Mask&unix.IN_MODIFY != 0 {
				entries = append(entries, queueEntry{name, EventModified})
			}
		}
		buffer = buffer[length:]
	}
	return entries
}

// wake implements watchSource.wake.
func (s *inotifySource) wake() error {
	if _, err := unix.Write(s.wakeWrite, []byte{0}); err != nil {
		return errors.Wrap(err, "unable to signal wake pipe")
	}
	return nil
}

// close implements watchSource.close.
func (s *inotifySource) close() error {
	// Deregister the watch. Failures here are ignorable because closing the
	// inotify descriptor releases the registration in any case.
	unix.InotifyRmWatch(s.fd, uint32(s.watch))

	// Close the inotify descriptor and the wake pipe.
	err := unix.Close(s.fd)
	unix.Close(s.wakeRead)
	unix.Close(s.wakeWrite)
	if err != nil {
		return errors.Wrap(err, "unable to close inotify descriptor")
	}
	return nil
}
