package filewatch

import (
	"os"
)

// DebugEnabled controls whether or not debugging is enabled for filewatch.
// It is set automatically based on the FILEWATCH_DEBUG environment variable.
var DebugEnabled bool

func init() {
	// Check whether or not debugging should be enabled.
	DebugEnabled = os.Getenv("FILEWATCH_DEBUG") == "1"
}
