package chat

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteTranscript(t *testing.T) {
	tr := NewTranscript(10, false)
	tr.Append("one", "c1")
	tr.Append("two", "c2")

	path := filepath.Join(t.TempDir(), "chat.log")
	if err := WriteTranscript(path, tr.Contents()); err != nil {
		t.Fatalf("WriteTranscript() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading exported file: %v", err)
	}
	if got, want := string(data), "one\ntwo\n"; got != want {
		t.Errorf("exported contents = %q, want %q", got, want)
	}
}

func TestWriteTranscriptCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nested", "chat.log")
	if err := WriteTranscript(path, "line"); err != nil {
		t.Fatalf("WriteTranscript() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}

func TestWriteTranscriptOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.log")
	if err := WriteTranscript(path, "first dump"); err != nil {
		t.Fatalf("first WriteTranscript() error: %v", err)
	}
	if err := WriteTranscript(path, "second dump"); err != nil {
		t.Fatalf("second WriteTranscript() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading exported file: %v", err)
	}
	if got, want := string(data), "second dump\n"; got != want {
		t.Errorf("exported contents = %q, want %q", got, want)
	}
}

func TestWriteTranscriptEmptyPath(t *testing.T) {
	if err := WriteTranscript("", "contents"); err == nil {
		t.Error("WriteTranscript(\"\") returned nil error")
	}
}
