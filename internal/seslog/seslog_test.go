package seslog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendAndTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "skylark.log")
	Append(path, "first")
	Append(path, "second")
	Append(path, "third")

	lines, err := Tail(path, 2)
	if err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("Tail returned %d lines, want 2", len(lines))
	}
	if !strings.HasSuffix(lines[0], "second") || !strings.HasSuffix(lines[1], "third") {
		t.Fatalf("Tail = %v, want the two most recent lines in order", lines)
	}
}

func TestTail_MissingFileIsEmpty(t *testing.T) {
	lines, err := Tail(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil {
		t.Fatalf("Tail returned error for missing file: %v", err)
	}
	if lines != nil {
		t.Fatalf("Tail = %v, want nil for missing file", lines)
	}
}

func TestTail_FewerLinesThanLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.log")
	if err := os.WriteFile(path, []byte("only\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	lines, err := Tail(path, 50)
	if err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}
	if len(lines) != 1 || lines[0] != "only" {
		t.Fatalf("Tail = %v, want [only]", lines)
	}
}

func TestAppend_BlankPathIsNoop(t *testing.T) {
	Append("", "dropped")
}
