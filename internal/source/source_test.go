package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/P4UL-M/copper/internal/source"
)

func TestLoadTextSplitsAndTrimsLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.co")
	if err := os.WriteFile(path, []byte("#CODE\r\n  LDA T0 7  \nHLT\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	prog, err := source.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if prog.Kind != source.KindText {
		t.Fatalf("got Kind %v, want KindText", prog.Kind)
	}
	want := []string{"#CODE", "LDA T0 7", "HLT"}
	if len(prog.Lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(prog.Lines), len(want), prog.Lines)
	}
	for i := range want {
		if prog.Lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, prog.Lines[i], want[i])
		}
	}
}

func TestLoadBinaryRejectsTruncatedLength(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.bin")
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := source.Load(path); err == nil {
		t.Errorf("expected MalformedBinary error for a length not a multiple of 4")
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := source.Load(path); err == nil {
		t.Errorf("expected an error for an unrecognized file extension")
	}
}

func TestLoadBinaryReadsBigEndianWords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.bin")
	if err := os.WriteFile(path, []byte{0x00, 0x00, 0x00, 0x01}, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	prog, err := source.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(prog.Words) != 1 || prog.Words[0] != 1 {
		t.Errorf("got words %v, want [1]", prog.Words)
	}
}
