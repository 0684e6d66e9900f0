// Package source implements the File Reader of spec §4.4: loading a
// program file as either a sequence of trimmed text lines (".co") or a
// sequence of big-endian 32-bit words (".bin"), selected by extension.
package source

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/P4UL-M/copper/internal/diagnostics"
)

// Kind distinguishes the two file forms spec §1 describes.
type Kind int

const (
	KindText Kind = iota
	KindBinary
)

// Program is a validated, loaded program file. There is no
// partially-initialized state — construct one exclusively through Load.
type Program struct {
	Path  string
	Kind  Kind
	Lines []string // populated when Kind == KindText
	Words []uint32 // populated when Kind == KindBinary
}

// Load validates path's extension, reads the file, and returns a
// ready-to-use Program. Follows the teacher's LoadSource shape (validate
// extension, read, wrap; there is no separate stat step, os.ReadFile
// reports a missing file) — generalized here to dispatch between the
// two extensions spec §1/§6 define instead of accepting only one.
func Load(path string) (*Program, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".co":
		return loadText(path)
	case ".bin":
		return loadBinary(path)
	default:
		return nil, errors.New("source: file must have a .co or .bin extension, got " + ext)
	}
}

func loadText(path string) (*Program, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lines []string
	text := strings.TrimSuffix(string(content), "\n")
	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimRight(raw, "\r")
		lines = append(lines, strings.TrimSpace(raw))
	}
	return &Program{Path: path, Kind: KindText, Lines: lines}, nil
}

func loadBinary(path string) (*Program, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(content)%4 != 0 {
		return nil, diagnostics.New(diagnostics.MalformedBinary, diagnostics.AtLine(path, 0),
			"binary file length %d is not a multiple of 4", len(content))
	}
	words := make([]uint32, 0, len(content)/4)
	for i := 0; i < len(content); i += 4 {
		words = append(words, binary.BigEndian.Uint32(content[i:i+4]))
	}
	return &Program{Path: path, Kind: KindBinary, Words: words}, nil
}
