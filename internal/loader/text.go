package loader

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/P4UL-M/copper/internal/diagnostics"
	"github.com/P4UL-M/copper/internal/instr"
	"github.com/P4UL-M/copper/internal/operand"
	"github.com/P4UL-M/copper/internal/symtab"
)

var dataLineRe = regexp.MustCompile(`^([A-Za-z0-9]+)(?:\[(\d+)\])?\s+(-?\d+)$`)

// loadText drives the state machine of spec §4.5 over a ".co" file's
// trimmed lines.
func (l *loader) loadText(lines []string) error {
	for i, line := range lines {
		lineNo := i + 1
		loc := diagnostics.AtLine(l.path, lineNo)

		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if line == "#DATA" {
			l.state = stateData
			l.openBlock(instr.SectionData)
			continue
		}
		if line == "#CODE" {
			l.state = stateCode
			l.openBlock(instr.SectionCode)
			continue
		}

		switch l.state {
		case statePreamble:
			return diagnostics.New(diagnostics.MissingSection, loc,
				"line appears before any #DATA/#CODE marker: %q", line)
		case stateData:
			if err := l.parseDataLine(line, loc); err != nil {
				return err
			}
		case stateCode:
			if err := l.parseCodeLine(line, loc); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseDataLine handles "name value" and "name[length] value" (spec
// §4.5). For arrays, length-1 synthetic sibling names (the decimal index
// of each successor VarId) are interned so base+offset arithmetic yields a
// valid VarId (spec §9).
func (l *loader) parseDataLine(line string, loc diagnostics.Location) error {
	m := dataLineRe.FindStringSubmatch(line)
	if m == nil {
		return diagnostics.New(diagnostics.SyntaxError, loc, "malformed data line: %q", line)
	}
	name, lengthStr, valueStr := m[1], m[2], m[3]

	if !symtab.IsAlphanumeric(name) || symtab.LooksLikeRegister(name) {
		return diagnostics.New(diagnostics.InvalidName, loc, "invalid variable name %q", name)
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return diagnostics.New(diagnostics.SyntaxError, loc, "invalid value %q", valueStr)
	}
	wireValue := uint32(value) & 0x3FF

	base, err := l.vars.InternNew(name, loc)
	if err != nil {
		return err
	}

	length := 1
	if lengthStr != "" {
		n, err := strconv.Atoi(lengthStr)
		if err != nil || n < 1 {
			return diagnostics.New(diagnostics.SyntaxError, loc, "invalid array length %q", lengthStr)
		}
		length = n
		for k := 1; k < length; k++ {
			sibling := symtab.SyntheticArrayName(base + k)
			if _, err := l.vars.InternNew(sibling, loc); err != nil {
				return err
			}
		}
	}

	l.appendData(DataDecl{Array: lengthStr != "", Base: base, Length: length, Value: wireValue})
	return nil
}

// parseCodeLine handles a label definition ("name:") or a mnemonic line
// (spec §4.5).
func (l *loader) parseCodeLine(line string, loc diagnostics.Location) error {
	if strings.HasSuffix(line, ":") {
		name := strings.TrimSuffix(line, ":")
		idx, err := l.labels.InternOrGet(name, loc)
		if err != nil {
			return err
		}
		l.appendInstr(instr.NewLabel(idx))
		return nil
	}

	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil
	}
	mnemonic := strings.ToUpper(tokens[0])
	args := tokens[1:]

	ins, err := l.buildInstruction(mnemonic, args, loc)
	if err != nil {
		return err
	}
	l.appendInstr(ins)
	return nil
}

func (l *loader) reg(token string, loc diagnostics.Location) (int, error) {
	r, ok := operand.RegisterIndex(strings.ToUpper(token))
	if !ok {
		return 0, diagnostics.New(diagnostics.SyntaxError, loc, "expected register, got %q", token)
	}
	return r, nil
}

func (l *loader) operand(token string, loc diagnostics.Location) (operand.Operand, error) {
	return operand.Parse(token, l.vars, loc)
}

func (l *loader) label(token string, loc diagnostics.Location) (int, error) {
	return l.labels.InternOrGet(token, loc)
}

func (l *loader) constant(token string, loc diagnostics.Location) (int, error) {
	n, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, diagnostics.New(diagnostics.SyntaxError, loc, "expected integer constant, got %q", token)
	}
	return int(uint32(n) & 0x3FF), nil
}

// buildInstruction dispatches on mnemonic to build the right Instruction
// variant, validating the operand shape and count spec §4.3 assigns to
// each opcode.
func (l *loader) buildInstruction(mnemonic string, args []string, loc diagnostics.Location) (instr.Instruction, error) {
	need := func(n int) error {
		if len(args) != n {
			return diagnostics.New(diagnostics.SyntaxError, loc, "%s expects %d operand(s), got %d", mnemonic, n, len(args))
		}
		return nil
	}

	switch mnemonic {
	case "LDA", "AND", "OR", "ADD", "SUB", "DIV", "MUL", "MOD":
		if err := need(2); err != nil {
			return nil, err
		}
		r, err := l.reg(args[0], loc)
		if err != nil {
			return nil, err
		}
		v, err := l.operand(args[1], loc)
		if err != nil {
			return nil, err
		}
		return regOpVariant(mnemonic, r, v), nil

	case "STR":
		if err := need(2); err != nil {
			return nil, err
		}
		varIdx, err := l.vars.Lookup(args[0], loc)
		if err != nil {
			return nil, err
		}
		v, err := l.operand(args[1], loc)
		if err != nil {
			return nil, err
		}
		return instr.Str{Var: varIdx, Val: v}, nil

	case "PUSH", "IN", "OUT":
		if err := need(1); err != nil {
			return nil, err
		}
		v, err := l.operand(args[0], loc)
		if err != nil {
			return nil, err
		}
		return operandOnlyVariant(mnemonic, v), nil

	case "POP", "NOT", "INC", "DEC":
		if err := need(1); err != nil {
			return nil, err
		}
		r, err := l.reg(args[0], loc)
		if err != nil {
			return nil, err
		}
		return regOnlyVariant(mnemonic, r), nil

	case "BEQ", "BNE", "BSM", "BBG":
		if err := need(3); err != nil {
			return nil, err
		}
		lhs, err := l.operand(args[0], loc)
		if err != nil {
			return nil, err
		}
		rhs, err := l.operand(args[1], loc)
		if err != nil {
			return nil, err
		}
		lbl, err := l.label(args[2], loc)
		if err != nil {
			return nil, err
		}
		return branchVariant(mnemonic, lhs, rhs, lbl), nil

	case "JMP":
		if err := need(1); err != nil {
			return nil, err
		}
		lbl, err := l.label(args[0], loc)
		if err != nil {
			return nil, err
		}
		return instr.NewJmp(lbl), nil

	case "SRL", "SRR":
		if err := need(2); err != nil {
			return nil, err
		}
		r, err := l.reg(args[0], loc)
		if err != nil {
			return nil, err
		}
		c, err := l.constant(args[1], loc)
		if err != nil {
			return nil, err
		}
		return shiftVariant(mnemonic, r, c), nil

	case "HLT":
		if err := need(0); err != nil {
			return nil, err
		}
		return instr.Hlt{}, nil

	default:
		return nil, diagnostics.New(diagnostics.SyntaxError, loc, "unknown mnemonic %q", mnemonic)
	}
}

func regOpVariant(mnemonic string, r int, v operand.Operand) instr.Instruction {
	switch mnemonic {
	case "LDA":
		return instr.NewLda(r, v)
	case "AND":
		return instr.NewAnd(r, v)
	case "OR":
		return instr.NewOr(r, v)
	case "ADD":
		return instr.NewAdd(r, v)
	case "SUB":
		return instr.NewSub(r, v)
	case "DIV":
		return instr.NewDiv(r, v)
	case "MUL":
		return instr.NewMul(r, v)
	case "MOD":
		return instr.NewMod(r, v)
	}
	panic("loader: unreachable regOp mnemonic " + mnemonic)
}

func operandOnlyVariant(mnemonic string, v operand.Operand) instr.Instruction {
	switch mnemonic {
	case "PUSH":
		return instr.NewPush(v)
	case "IN":
		return instr.NewIn(v)
	case "OUT":
		return instr.NewOut(v)
	}
	panic("loader: unreachable operandOnly mnemonic " + mnemonic)
}

func regOnlyVariant(mnemonic string, r int) instr.Instruction {
	switch mnemonic {
	case "POP":
		return instr.NewPop(r)
	case "NOT":
		return instr.NewNot(r)
	case "INC":
		return instr.NewInc(r)
	case "DEC":
		return instr.NewDec(r)
	}
	panic("loader: unreachable regOnly mnemonic " + mnemonic)
}

func branchVariant(mnemonic string, lhs, rhs operand.Operand, lbl int) instr.Instruction {
	switch mnemonic {
	case "BEQ":
		return instr.NewBeq(lhs, rhs, lbl)
	case "BNE":
		return instr.NewBne(lhs, rhs, lbl)
	case "BSM":
		return instr.NewBsm(lhs, rhs, lbl)
	case "BBG":
		return instr.NewBbg(lhs, rhs, lbl)
	}
	panic("loader: unreachable branch mnemonic " + mnemonic)
}

func shiftVariant(mnemonic string, r, c int) instr.Instruction {
	switch mnemonic {
	case "SRL":
		return instr.NewSrl(r, c)
	case "SRR":
		return instr.NewSrr(r, c)
	}
	panic("loader: unreachable shift mnemonic " + mnemonic)
}
