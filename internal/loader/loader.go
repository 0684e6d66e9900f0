package loader

import (
	"github.com/P4UL-M/copper/internal/diagnostics"
	"github.com/P4UL-M/copper/internal/instr"
	"github.com/P4UL-M/copper/internal/operand"
	"github.com/P4UL-M/copper/internal/source"
	"github.com/P4UL-M/copper/internal/symtab"
)

// state is the loader's three-state machine (spec §4.5).
type state int

const (
	statePreamble state = iota
	stateData
	stateCode
)

// loader carries the mutable state threaded through a single Load call.
type loader struct {
	path   string
	state  state
	vars   *symtab.Table
	labels *symtab.Table
	memory []uint32
	instrs []instr.Instruction
	labelIndices map[int]int
	blocks []Block
	cur    *Block // the block currently being filled, or nil before the first marker
}

// Load classifies prog's lines into DATA/CODE sections and decodes them
// into a Result, per spec §4.5. Works for both text (".co") and binary
// (".bin") programs.
func Load(prog *source.Program) (*Result, error) {
	l := &loader{
		path:         prog.Path,
		vars:         symtab.New(operand.VarBits),
		labels:       symtab.New(3),
		labelIndices: make(map[int]int),
	}

	var err error
	switch prog.Kind {
	case source.KindText:
		err = l.loadText(prog.Lines)
	case source.KindBinary:
		err = l.loadBinary(prog.Words)
	}
	if err != nil {
		return nil, err
	}

	if err := l.checkLabelsResolved(); err != nil {
		return nil, err
	}

	return &Result{
		Vars:         l.vars,
		Labels:       l.labels,
		Memory:       l.memory,
		Instructions: l.instrs,
		LabelIndices: l.labelIndices,
		Blocks:       l.blocks,
	}, nil
}

// checkLabelsResolved enforces the invariant of spec §4.5: every LabelId
// ever interned (i.e. referenced by a branch/jump, or defined; for binary
// programs every id up to the highest one seen) must have a LABEL marker. A label referenced but never defined survives parsing and
// is only now reported as UnresolvedLabel.
func (l *loader) checkLabelsResolved() error {
	for i := 0; i < l.labels.Len(); i++ {
		if _, ok := l.labelIndices[i]; !ok {
			return diagnostics.New(diagnostics.UnresolvedLabel, diagnostics.AtLine(l.path, 0),
				"label %q is referenced but never defined", l.labels.Name(i))
		}
	}
	return nil
}

// openBlock starts a new section Block and sets it as the active one, per
// the section-marker line encountered.
func (l *loader) openBlock(section instr.Section) {
	l.blocks = append(l.blocks, Block{Section: section})
	l.cur = &l.blocks[len(l.blocks)-1]
}

// appendData records a DataDecl in the active block and expands it into
// the flattened memory image.
func (l *loader) appendData(decl DataDecl) {
	if l.cur != nil {
		l.cur.Data = append(l.cur.Data, decl)
	}
	for i := 0; i < decl.Length; i++ {
		l.memory = append(l.memory, decl.Value)
	}
}

// appendInstr records an instruction in the active block and in the
// flattened instruction stream; LABEL instructions additionally update
// labelIndices.
func (l *loader) appendInstr(i instr.Instruction) {
	if l.cur != nil {
		l.cur.Instrs = append(l.cur.Instrs, i)
	}
	l.instrs = append(l.instrs, i)
	if lbl, ok := i.(instr.Lbl); ok {
		l.labelIndices[lbl.Label] = len(l.instrs) - 1
	}
}
