package vm

import (
	"fmt"

	"github.com/P4UL-M/copper/internal/diagnostics"
	"github.com/P4UL-M/copper/internal/instr"
	"github.com/P4UL-M/copper/internal/operand"
)

// step fetches instructions[counter], executes it, and advances counter
// by one — unless the instruction itself sets counter (branches, jumps,
// HLT), per spec §4.6.
func (vm *Interpreter) step() error {
	ins := vm.instructions[vm.counter]
	advance := true

	switch i := ins.(type) {
	case instr.Lda:
		v, err := vm.value(i.Val)
		if err != nil {
			return err
		}
		vm.registers[i.Reg] = v

	case instr.Str:
		v, err := vm.value(i.Val)
		if err != nil {
			return err
		}
		vm.memory[i.Var] = v

	case instr.Push:
		v, err := vm.value(i.Val)
		if err != nil {
			return err
		}
		vm.stack = append(vm.stack, v)

	case instr.Pop:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.registers[i.Reg] = v

	case instr.Andi:
		v, err := vm.binaryRegOp(i.Reg, i.Val, func(a, b uint32) uint32 { return a & b })
		if err != nil {
			return err
		}
		vm.registers[i.Reg] = v

	case instr.Ori:
		v, err := vm.binaryRegOp(i.Reg, i.Val, func(a, b uint32) uint32 { return a | b })
		if err != nil {
			return err
		}
		vm.registers[i.Reg] = v

	case instr.Not:
		cur, err := vm.regValue(i.Reg)
		if err != nil {
			return err
		}
		vm.registers[i.Reg] = ^cur

	case instr.Addi:
		v, err := vm.binaryRegOp(i.Reg, i.Val, func(a, b uint32) uint32 { return a + b })
		if err != nil {
			return err
		}
		vm.registers[i.Reg] = v

	case instr.Subi:
		v, err := vm.binaryRegOp(i.Reg, i.Val, func(a, b uint32) uint32 { return a - b })
		if err != nil {
			return err
		}
		vm.registers[i.Reg] = v

	case instr.Divi:
		rhs, err := vm.value(i.Val)
		if err != nil {
			return err
		}
		if rhs == 0 {
			return diagnostics.New(diagnostics.DivByZero, vm.loc(), "division by zero")
		}
		cur, err := vm.regValue(i.Reg)
		if err != nil {
			return err
		}
		vm.registers[i.Reg] = cur / rhs

	case instr.Muli:
		v, err := vm.binaryRegOp(i.Reg, i.Val, func(a, b uint32) uint32 { return a * b })
		if err != nil {
			return err
		}
		vm.registers[i.Reg] = v

	case instr.Modi:
		rhs, err := vm.value(i.Val)
		if err != nil {
			return err
		}
		if rhs == 0 {
			return diagnostics.New(diagnostics.DivByZero, vm.loc(), "modulo by zero")
		}
		cur, err := vm.regValue(i.Reg)
		if err != nil {
			return err
		}
		vm.registers[i.Reg] = cur % rhs

	case instr.Inc:
		cur, err := vm.regValue(i.Reg)
		if err != nil {
			return err
		}
		vm.registers[i.Reg] = cur + 1

	case instr.Dec:
		cur, err := vm.regValue(i.Reg)
		if err != nil {
			return err
		}
		vm.registers[i.Reg] = cur - 1

	case instr.Beq:
		taken, err := vm.branch(i.Lhs, i.Rhs, func(a, b uint32) bool { return a == b })
		if err != nil {
			return err
		}
		if taken {
			vm.counter = vm.labelIndices[i.Label]
			advance = false
		}

	case instr.Bne:
		taken, err := vm.branch(i.Lhs, i.Rhs, func(a, b uint32) bool { return a != b })
		if err != nil {
			return err
		}
		if taken {
			vm.counter = vm.labelIndices[i.Label]
			advance = false
		}

	case instr.Bsm:
		taken, err := vm.branch(i.Lhs, i.Rhs, func(a, b uint32) bool { return a < b })
		if err != nil {
			return err
		}
		if taken {
			vm.counter = vm.labelIndices[i.Label]
			advance = false
		}

	case instr.Bbg:
		taken, err := vm.branch(i.Lhs, i.Rhs, func(a, b uint32) bool { return a > b })
		if err != nil {
			return err
		}
		if taken {
			vm.counter = vm.labelIndices[i.Label]
			advance = false
		}

	case instr.Jmp:
		vm.counter = vm.labelIndices[i.Label]
		advance = false

	case instr.Srl:
		cur, err := vm.regValue(i.Reg)
		if err != nil {
			return err
		}
		vm.registers[i.Reg] = cur << uint(i.Const)

	case instr.Srr:
		cur, err := vm.regValue(i.Reg)
		if err != nil {
			return err
		}
		vm.registers[i.Reg] = cur >> uint(i.Const)

	case instr.Hlt:
		vm.counter = len(vm.instructions)
		advance = false

	case instr.In:
		v, err := vm.readWord()
		if err != nil {
			return err
		}
		if err := vm.store(i.Val, v); err != nil {
			return err
		}

	case instr.Out:
		v, err := vm.value(i.Val)
		if err != nil {
			return err
		}
		fmt.Fprintf(vm.out, "%d\n", v)

	case instr.Lbl:
		// no-op at runtime.

	default:
		return fmt.Errorf("vm: unhandled instruction %T", ins)
	}

	if advance {
		vm.counter++
	}
	return nil
}

// regValue reads a register the way value() does for a Register operand,
// without constructing one — used by opcodes whose destination register
// is also an implicit source (NOT/INC/DEC/SRL/SRR).
func (vm *Interpreter) regValue(reg int) (uint32, error) {
	v, ok := vm.registers[reg]
	if !ok {
		return 0, diagnostics.New(diagnostics.UninitRegister, vm.loc(),
			"read of uninitialized register %s", operand.RegisterNames[reg])
	}
	return v, nil
}

// binaryRegOp implements the common "r := r <op> val(operand)" shape
// shared by AND/OR/ADD/SUB/MUL.
func (vm *Interpreter) binaryRegOp(reg int, val operand.Operand, op func(a, b uint32) uint32) (uint32, error) {
	cur, err := vm.regValue(reg)
	if err != nil {
		return 0, err
	}
	rhs, err := vm.value(val)
	if err != nil {
		return 0, err
	}
	return op(cur, rhs), nil
}

// branch resolves both operands of a comparison instruction and applies
// pred (spec §4.6: compare as unsigned 32-bit).
func (vm *Interpreter) branch(lhs, rhs operand.Operand, pred func(a, b uint32) bool) (bool, error) {
	a, err := vm.value(lhs)
	if err != nil {
		return false, err
	}
	b, err := vm.value(rhs)
	if err != nil {
		return false, err
	}
	return pred(a, b), nil
}

// pop removes and returns the top of stack, failing with StackUnderflow
// on an empty stack (spec §4.6).
func (vm *Interpreter) pop() (uint32, error) {
	if len(vm.stack) == 0 {
		return 0, diagnostics.New(diagnostics.StackUnderflow, vm.loc(), "pop from empty stack")
	}
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v, nil
}

// store writes v to the target named by op, for IN (spec §4.6: register
// or variable only; a Constant target is InvalidTarget).
func (vm *Interpreter) store(op operand.Operand, v uint32) error {
	switch op.Tag {
	case operand.TagRegister:
		vm.registers[op.Reg] = v
		return nil
	case operand.TagVariable:
		vm.memory[op.Var] = v
		return nil
	default:
		return diagnostics.New(diagnostics.InvalidTarget, vm.loc(), "IN target must be a register or variable")
	}
}
