package watching

import (
	"os"

	"github.com/pkg/errors"
)

// target represents the resolved parameters of a watch. It is computed once
// at construction and read-only afterward.
type target struct {
	// path is the original path provided by the caller.
	path string
	// directory is the directory actually registered with the native
	// facility. For single-file targets, it is the containing directory.
	directory string
	// name is the filename used for filtering in single-file mode.
	name string
	// singleFile indicates whether or not the watch targets a single file.
	singleFile bool
}

// splitDirectoryAndName splits a path at its last path separator. Forward
// slashes are accepted on all platforms and backslashes are additionally
// accepted on Windows (via os.IsPathSeparator). If the path contains no
// separator, the directory defaults to "./".
func splitDirectoryAndName(path string) (string, string) {
	for i := len(path) - 1; i >= 0; i-- {
		if os.IsPathSeparator(path[i]) {
			return path[:i+1], path[i+1:]
		}
	}
	return "./", path
}

// resolveTarget probes a path and computes the watch parameters for it. Paths
// naming anything other than a directory are watched in single-file mode via
// their containing directory. A path that can't be probed aborts watcher
// construction, so the underlying error is returned wrapped.
func resolveTarget(path string) (*target, error) {
	// Probe the path.
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to probe watch target")
	}

	// If the path names a directory, then watch it directly.
	if info.IsDir() {
		return &target{path: path, directory: path}, nil
	}

	// Otherwise watch the containing directory and record the filename as the
	// single-file filter.
	directory, name := splitDirectoryAndName(path)
	return &target{
		path:       path,
		directory:  directory,
		name:       name,
		singleFile: true,
	}, nil
}
