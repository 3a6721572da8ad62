//go:build !linux && !windows
// +build !linux,!windows

package watching

const (
	// WatchingSupported indicates whether or not the current platform
	// supports native watching.
	WatchingSupported = false
)

// newWatchSource fails on platforms without a supported native facility.
func newWatchSource(directory string) (watchSource, error) {
	return nil, ErrWatchingUnsupported
}
