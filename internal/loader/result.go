// Package loader implements the two-pass Loader/Assembler of spec §4.5: a
// small state machine over a line stream (text or binary) that classifies
// lines into DATA/CODE sections, builds the variable and label symbol
// tables, and produces the decoded instruction stream and initial memory
// image the VM Interpreter and Exporter both consume.
package loader

import (
	"github.com/P4UL-M/copper/internal/instr"
	"github.com/P4UL-M/copper/internal/symtab"
)

// DataDecl is one DATA-section declaration, kept as a single unit (rather
// than flattened into per-VarId entries) so the Exporter can re-emit the
// exact ARRAY/VARIABLE word spec §4.3 expects instead of one word per
// element.
type DataDecl struct {
	Array  bool
	Base   int // VarId of the first (or only) element
	Length int // number of consecutive VarIds; 1 for a plain variable
	Value  uint32
}

// Block is one DATA or CODE section as it appeared in the source, in
// encounter order. The Exporter replays Blocks verbatim to satisfy the
// round-trip law of spec §4.7.
type Block struct {
	Section instr.Section
	Data    []DataDecl        // populated when Section == instr.SectionData
	Instrs  []instr.Instruction // populated when Section == instr.SectionCode, includes LABEL markers
}

// Result is everything the Loader produces: the symbol tables, the
// flattened memory image and instruction stream the Interpreter executes,
// and the section Blocks the Exporter replays.
type Result struct {
	Vars   *symtab.Table
	Labels *symtab.Table

	// Memory is the flattened insertion-ordered VarId -> initial value map
	// (spec §3, Program state). Index i holds the initial value of VarId i.
	Memory []uint32

	// Instructions is the full decoded instruction stream (LABEL markers
	// included), in the order the Interpreter executes them.
	Instructions []instr.Instruction

	// LabelIndices maps each defined LabelId to the position in
	// Instructions of its LABEL marker (spec §3, §4.5).
	LabelIndices map[int]int

	// Blocks preserves the original DATA/CODE section structure for the
	// Exporter.
	Blocks []Block
}
