package watching

import (
	"os"
	"path/filepath"
	"testing"
)

// TestSplitDirectoryAndName tests splitDirectoryAndName.
func TestSplitDirectoryAndName(t *testing.T) {
	// Define test cases.
	cases := []struct {
		path      string
		directory string
		name      string
	}{
		{"a.txt", "./", "a.txt"},
		{"a/b/c.txt", "a/b/", "c.txt"},
		{"/etc/hosts", "/etc/", "hosts"},
		{"dir/", "dir/", ""},
	}

	// Process test cases.
	for _, c := range cases {
		if directory, name := splitDirectoryAndName(c.path); directory != c.directory {
			t.Error("directory mismatch for", c.path, ":", directory, "!=", c.directory)
		} else if name != c.name {
			t.Error("name mismatch for", c.path, ":", name, "!=", c.name)
		}
	}
}

// TestResolveTargetDirectory tests resolveTarget on a directory.
func TestResolveTargetDirectory(t *testing.T) {
	// Create a temporary directory and defer its removal.
	directory, err := os.MkdirTemp("", "filewatch_resolve")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	// Resolve and verify.
	target, err := resolveTarget(directory)
	if err != nil {
		t.Fatal("unable to resolve directory target:", err)
	} else if target.singleFile {
		t.Error("directory target resolved to single-file mode")
	} else if target.directory != directory {
		t.Error("watched directory mismatch:", target.directory, "!=", directory)
	}
}

// TestResolveTargetFile tests resolveTarget on a regular file.
func TestResolveTargetFile(t *testing.T) {
	// Create a temporary directory and defer its removal.
	directory, err := os.MkdirTemp("", "filewatch_resolve")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	// Create a file inside it.
	path := filepath.Join(directory, "target.txt")
	if err := os.WriteFile(path, []byte("contents"), 0600); err != nil {
		t.Fatal("unable to create test file:", err)
	}

	// Resolve and verify.
	target, err := resolveTarget(path)
	if err != nil {
		t.Fatal("unable to resolve file target:", err)
	} else if !target.singleFile {
		t.Error("file target did not resolve to single-file mode")
	} else if target.name != "target.txt" {
		t.Error("filename filter mismatch:", target.name, "!= target.txt")
	} else if target.directory != directory+string(os.PathSeparator) {
		t.Error("watched directory mismatch:", target.directory)
	}
}

// TestResolveTargetNonExistent verifies that resolution of a non-existent
// path fails.
func TestResolveTargetNonExistent(t *testing.T) {
	if _, err := resolveTarget("/this/path/does/not/exist"); err == nil {
		t.Error("resolution of non-existent path succeeded")
	}
}
