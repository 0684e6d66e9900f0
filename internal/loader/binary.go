package loader

import (
	"strconv"

	"github.com/P4UL-M/copper/internal/diagnostics"
	"github.com/P4UL-M/copper/internal/instr"
)

// loadBinary drives the same state machine as loadText, but over a
// sequence of already-decoded 32-bit words (spec §4.4, §4.5). Binary
// programs carry no names, only resolved indices, so the symbol tables
// are back-filled with placeholder names purely for diagnostic formatting
// (spec §4.6: "The Interpreter consults the Symbol Table only for
// diagnostic formatting").
func (l *loader) loadBinary(words []uint32) error {
	for i, word := range words {
		loc := diagnostics.AtInstr(i)

		if marker, ok, err := instr.IsSectionMarker(word, loc); err != nil {
			return err
		} else if ok {
			switch marker.Section {
			case instr.SectionData:
				l.state = stateData
			case instr.SectionCode:
				l.state = stateCode
			}
			l.openBlock(marker.Section)
			continue
		}

		switch l.state {
		case statePreamble:
			return diagnostics.New(diagnostics.MissingSection, loc, "word appears before any section marker")
		case stateData:
			d := instr.DecodeData(word)
			length := max(d.Length, 1)
			l.vars.EnsureLen(d.Name+length, func(i int) string { return varPlaceholder(i) })
			l.appendData(DataDecl{Array: d.IsArray, Base: d.Name, Length: length, Value: uint32(d.Value)})
		case stateCode:
			ins, err := instr.Decode(word, loc)
			if err != nil {
				return err
			}
			lbl := -1
			switch v := ins.(type) {
			case instr.Lbl:
				lbl = v.Label
			case instr.Jmp:
				lbl = v.Label
			case instr.Beq:
				lbl = v.Label
			case instr.Bne:
				lbl = v.Label
			case instr.Bsm:
				lbl = v.Label
			case instr.Bbg:
				lbl = v.Label
			}
			l.labels.EnsureLen(lbl+1, labelPlaceholder)
			l.appendInstr(ins)
		}
	}
	return nil
}

func varPlaceholder(i int) string   { return "v" + strconv.Itoa(i) }
func labelPlaceholder(i int) string { return "l" + strconv.Itoa(i) }
