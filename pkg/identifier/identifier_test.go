package identifier

import (
	"strings"
	"testing"
)

// TestNew tests identifier generation.
func TestNew(t *testing.T) {
	if id, err := New(PrefixWatcher); err != nil {
		t.Fatal("unable to generate identifier:", err)
	} else if !strings.HasPrefix(id, PrefixWatcher) {
		t.Error("identifier missing prefix:", id)
	} else if len(id) <= len(PrefixWatcher) {
		t.Error("identifier has no random component:", id)
	}
}

// TestNewUnique verifies that successive identifiers differ.
func TestNewUnique(t *testing.T) {
	first, err := New(PrefixWatcher)
	if err != nil {
		t.Fatal("unable to generate identifier:", err)
	}
	second, err := New(PrefixWatcher)
	if err != nil {
		t.Fatal("unable to generate identifier:", err)
	}
	if first == second {
		t.Error("identifiers collided:", first)
	}
}
