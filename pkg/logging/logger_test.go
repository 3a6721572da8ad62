package logging

import (
	"errors"
	"testing"
)

// TestNilLogger verifies that all logging methods are safe on a nil logger.
func TestNilLogger(t *testing.T) {
	var logger *Logger
	logger.Info("information")
	logger.Infof("information: %d", 1)
	logger.Debug("debugging")
	logger.Debugf("debugging: %d", 1)
	logger.Warn(errors.New("warning"))
	logger.Error(errors.New("error"))
	if sublogger := logger.Sublogger("sub"); sublogger != nil {
		t.Error("nil logger produced non-nil sublogger")
	}
}

// TestSubloggerPrefix verifies prefix composition.
func TestSubloggerPrefix(t *testing.T) {
	logger := NewLogger(LevelInfo).Sublogger("parent").Sublogger("child")
	if logger.prefix != "parent.child" {
		t.Error("prefix mismatch:", logger.prefix)
	}
}

// TestSubloggerInheritsLevel verifies level inheritance.
func TestSubloggerInheritsLevel(t *testing.T) {
	logger := NewLogger(LevelDebug).Sublogger("sub")
	if logger.level != LevelDebug {
		t.Error("level not inherited:", logger.level)
	}
}

// TestNameToLevel tests name to level conversion.
func TestNameToLevel(t *testing.T) {
	// Verify that all valid names round trip.
	names := []string{"disabled", "error", "warn", "info", "debug", "trace"}
	for _, name := range names {
		if level, ok := NameToLevel(name); !ok {
			t.Error("valid level name rejected:", name)
		} else if level.String() != name {
			t.Error("level name round trip failed:", level.String(), "!=", name)
		}
	}

	// Verify that invalid names are rejected.
	if _, ok := NameToLevel("invalid"); ok {
		t.Error("invalid level name accepted")
	}
}
