package main

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/pkg/errors"

	"github.com/filewatch-io/filewatch/pkg/watching"
)

// compileFilter converts a set of doublestar patterns into an event
// exclusion filter. It returns a nil filter if no patterns are provided and
// an error if any pattern is malformed.
func compileFilter(patterns []string) (watching.Filter, error) {
	// If there are no patterns, then don't filter at all.
	if len(patterns) == 0 {
		return nil, nil
	}

	// Validate the patterns up front so that malformed patterns are
	// reported rather than silently matching nothing.
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid ignore pattern: %s", pattern)
		}
	}

	// Create the filter.
	return func(name string) bool {
		for _, pattern := range patterns {
			if matched, _ := doublestar.Match(pattern, name); matched {
				return true
			}
		}
		return false
	}, nil
}
