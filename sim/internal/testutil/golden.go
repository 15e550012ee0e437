// Package testutil provides shared test infrastructure for the sim packages:
// repository paths for example scenarios and golden-file assertions.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// repoRoot resolves the repository root relative to this source file:
// sim/internal/testutil/ → ../../..
func repoRoot(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..")
}

// ExamplePath returns the path of a scenario under examples/.
func ExamplePath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(repoRoot(t), "examples", name)
}

// AssertGolden compares got with testdata/<name>. Set UPDATE_GOLDEN=1 to
// rewrite the file from got instead.
func AssertGolden(t *testing.T, name string, got []byte) {
	t.Helper()
	path := filepath.Join(repoRoot(t), "testdata", name)
	if os.Getenv("UPDATE_GOLDEN") != "" {
		if err := os.WriteFile(path, got, 0o644); err != nil {
			t.Fatalf("Failed to update golden file %s: %v", name, err)
		}
		return
	}
	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden file %s: %v", name, err)
	}
	if string(want) != string(got) {
		t.Errorf("output differs from %s (rerun with UPDATE_GOLDEN=1 to accept)\n--- want\n%s\n--- got\n%s", name, want, got)
	}
}
