package instr

import (
	"github.com/P4UL-M/copper/internal/diagnostics"
	"github.com/P4UL-M/copper/internal/operand"
)

// Decode decodes a 32-bit instruction word into its Instruction variant,
// per the opcode table of spec §4.3. loc is used only to annotate the
// MalformedBinary errors raised for an unknown opcode or while decoding a
// nested Operand.
func Decode(word uint32, loc diagnostics.Location) (Instruction, error) {
	op := unpackOp(word)
	switch op {
	case LDA, AND, OR, ADD, SUB, DIV, MUL, MOD:
		fields := unpack(word, 2, 12, 13)
		val, err := operand.Decode(uint16(fields[1]), loc)
		if err != nil {
			return nil, err
		}
		ri := regOpInstr{op, int(fields[0]), val}
		return wrapRegOp(ri), nil
	case STR:
		fields := unpack(word, 10, 12, 5)
		val, err := operand.Decode(uint16(fields[1]), loc)
		if err != nil {
			return nil, err
		}
		return Str{Var: int(fields[0]), Val: val}, nil
	case PUSH, IN, OUT:
		fields := unpack(word, 12, 15)
		val, err := operand.Decode(uint16(fields[0]), loc)
		if err != nil {
			return nil, err
		}
		return wrapOperandOnly(op, val), nil
	case POP, NOT, INC, DEC:
		fields := unpack(word, 2, 25)
		return wrapRegOnly(op, int(fields[0])), nil
	case BEQ, BNE, BSM, BBG:
		fields := unpack(word, 12, 12, 3)
		lhs, err := operand.Decode(uint16(fields[0]), loc)
		if err != nil {
			return nil, err
		}
		rhs, err := operand.Decode(uint16(fields[1]), loc)
		if err != nil {
			return nil, err
		}
		return wrapBranch(op, lhs, rhs, int(fields[2])), nil
	case JMP, LABEL:
		fields := unpack(word, 3, 24)
		return wrapLabelOnly(op, int(fields[0])), nil
	case SRL, SRR:
		fields := unpack(word, 2, 10, 15)
		return wrapShift(op, int(fields[0]), int(fields[1])), nil
	case HLT:
		return Hlt{}, nil
	default:
		return nil, malformed(loc, "unknown opcode %05b", op)
	}
}

func wrapRegOp(ri regOpInstr) Instruction {
	switch ri.op {
	case LDA:
		return Lda{ri}
	case AND:
		return Andi{ri}
	case OR:
		return Ori{ri}
	case ADD:
		return Addi{ri}
	case SUB:
		return Subi{ri}
	case DIV:
		return Divi{ri}
	case MUL:
		return Muli{ri}
	case MOD:
		return Modi{ri}
	}
	panic("instr: unreachable regOp opcode")
}

func wrapOperandOnly(op Op, val operand.Operand) Instruction {
	switch op {
	case PUSH:
		return Push{operandOnlyInstr{op, val}}
	case IN:
		return In{operandOnlyInstr{op, val}}
	case OUT:
		return Out{operandOnlyInstr{op, val}}
	}
	panic("instr: unreachable operandOnly opcode")
}

func wrapRegOnly(op Op, reg int) Instruction {
	switch op {
	case POP:
		return Pop{regOnlyInstr{op, reg}}
	case NOT:
		return Not{regOnlyInstr{op, reg}}
	case INC:
		return Inc{regOnlyInstr{op, reg}}
	case DEC:
		return Dec{regOnlyInstr{op, reg}}
	}
	panic("instr: unreachable regOnly opcode")
}

func wrapBranch(op Op, lhs, rhs operand.Operand, label int) Instruction {
	switch op {
	case BEQ:
		return Beq{branchInstr{op, lhs, rhs, label}}
	case BNE:
		return Bne{branchInstr{op, lhs, rhs, label}}
	case BSM:
		return Bsm{branchInstr{op, lhs, rhs, label}}
	case BBG:
		return Bbg{branchInstr{op, lhs, rhs, label}}
	}
	panic("instr: unreachable branch opcode")
}

func wrapLabelOnly(op Op, label int) Instruction {
	switch op {
	case JMP:
		return Jmp{labelOnlyInstr{op, label}}
	case LABEL:
		return Lbl{labelOnlyInstr{op, label}}
	}
	panic("instr: unreachable labelOnly opcode")
}

func wrapShift(op Op, reg, c int) Instruction {
	switch op {
	case SRL:
		return Srl{shiftInstr{op, reg, c}}
	case SRR:
		return Srr{shiftInstr{op, reg, c}}
	}
	panic("instr: unreachable shift opcode")
}
