// Package diagnostics provides the error taxonomy and source-location
// formatting shared by the loader, exporter and VM interpreter.
package diagnostics

import "fmt"

// Location identifies where in a program an error was detected. Exactly one
// of Line or Instr is meaningful for a given Location: Line is set while
// reading a textual program (loader, and file-level errors with line 0),
// Instr is set for a word index while loading a binary program and for the
// instruction index while executing (VM).
type Location struct {
	File    string // source file path, or "" if not applicable.
	Line    int    // 1-based line number, or 0 if not applicable.
	Instr   int    // 0-based instruction index, or -1 if not applicable.
	HasLine bool
	HasInstr bool
}

// AtLine builds a Location pointing at a 1-based line number in file.
func AtLine(file string, line int) Location {
	return Location{File: file, Line: line, HasLine: true, Instr: -1}
}

// AtInstr builds a Location pointing at a 0-based instruction index.
func AtInstr(index int) Location {
	return Location{Instr: index, HasInstr: true}
}

// String renders the location the way the teacher's debug context renders
// file positions: "file:line" when a line and file are known, "line N"
// when only a line is known, "instruction #N" when an instruction index is
// known, or "" when neither applies.
func (l Location) String() string {
	switch {
	case l.HasLine && l.File != "":
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	case l.HasLine:
		return fmt.Sprintf("line %d", l.Line)
	case l.HasInstr:
		return fmt.Sprintf("instruction #%d", l.Instr)
	default:
		return ""
	}
}
