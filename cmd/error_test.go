package cmd

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

// captureStderr invokes the specified function with standard error redirected
// to a pipe and returns whatever the function wrote.
func captureStderr(t *testing.T, f func()) string {
	t.Helper()
	read, write, err := os.Pipe()
	if err != nil {
		t.Fatal("unable to create pipe:", err)
	}
	original := os.Stderr
	os.Stderr = write
	defer func() {
		os.Stderr = original
	}()
	f()
	write.Close()
	output, err := io.ReadAll(read)
	if err != nil {
		t.Fatal("unable to read captured output:", err)
	}
	return string(output)
}

// TestWarning verifies warning formatting.
func TestWarning(t *testing.T) {
	output := captureStderr(t, func() {
		Warning("something suspicious")
	})
	if output != "Warning: something suspicious\n" {
		t.Error("unexpected warning output:", output)
	}
}

// TestError verifies error formatting.
func TestError(t *testing.T) {
	output := captureStderr(t, func() {
		Error(errors.New("something failed"))
	})
	if !strings.HasPrefix(output, "Error: ") {
		t.Error("unexpected error output:", output)
	} else if !strings.Contains(output, "something failed") {
		t.Error("error message not included in output:", output)
	}
}
