package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRunFileInterpretsTextProgram(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "prog.co")
	if err := os.WriteFile(path, []byte("#CODE\nLDA T0 7\nOUT T0\nHLT\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"run", path})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := out.String(); got != "7\n" {
		t.Errorf("OUT T0 wrote %q, want %q", got, "7\n")
	}
}

func TestRunFilePropagatesLoaderErrors(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "prog.co")
	if err := os.WriteFile(path, []byte("LDA T0 7\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"run", path})

	if err := rootCmd.Execute(); err == nil {
		t.Errorf("expected a MissingSection error for code before any #DATA/#CODE marker")
	}
}
