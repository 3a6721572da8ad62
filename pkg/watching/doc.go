// Package watching provides asynchronous notification of changes to a single
// file or to the contents of a single directory, using inotify on Linux and
// ReadDirectoryChangesW on Windows.
package watching
