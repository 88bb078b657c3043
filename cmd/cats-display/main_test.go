package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

// Setup failures after the matrix exists must come back as errors so the
// deferred matrix teardown runs before the process exits.
func TestRunReturnsErrorOnMissingImage(t *testing.T) {
	dir := t.TempDir()
	oldArgs := os.Args
	defer func() {
		os.Args = oldArgs
	}()

	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	os.Args = []string{
		"cats-display",
		"-sim",
		"-config", filepath.Join(dir, "absent.json"),
		filepath.Join(dir, "missing-left.gif"),
		filepath.Join(dir, "missing-right.gif"),
	}

	if err := run(); err == nil {
		t.Fatal("run() with missing images returned nil, want error")
	}
}
