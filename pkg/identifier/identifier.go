package identifier

import (
	"github.com/filewatch-io/filewatch/pkg/encoding"
	"github.com/filewatch-io/filewatch/pkg/random"
)

const (
	// PrefixWatcher is the prefix used for watcher identifiers.
	PrefixWatcher = "watch_"
)

// New generates a new collision-resistant identifier with the specified
// prefix.
func New(prefix string) (string, error) {
	// Create the random value.
	value, err := random.New(random.CollisionResistantLength)
	if err != nil {
		return "", err
	}

	// Encode the random value.
	return prefix + encoding.EncodeBase62(value), nil
}
