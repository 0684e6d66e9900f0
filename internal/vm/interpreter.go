// Package vm implements the VM Interpreter of spec §4.6: a register
// machine with a stack, a word-addressable memory segment, a program
// counter, label-indexed branching, and the full opcode set of spec §4.3.
package vm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/P4UL-M/copper/internal/diagnostics"
	"github.com/P4UL-M/copper/internal/instr"
	"github.com/P4UL-M/copper/internal/loader"
	"github.com/P4UL-M/copper/internal/operand"
	"github.com/P4UL-M/copper/internal/symtab"
)

// Interpreter owns all VM-resident state (spec §3, Program state). It is
// created empty by New, populated by Load, and executed by Run/RunDebug.
// One Interpreter is exclusively owned by the caller that created it —
// there is no shared or global VM state (spec §5, §9).
type Interpreter struct {
	vars   *symtab.Table
	labels *symtab.Table

	instructions []instr.Instruction
	labelIndices map[int]int

	memory    map[int]uint32
	registers map[int]uint32
	stack     []uint32
	counter   int

	verbose bool
	in      *bufio.Reader
	out     io.Writer
}

// New creates an empty Interpreter. verbose toggles the non-fatal
// unwritten-variable-read warning of spec §4.6; in/out are the blocking
// line-oriented sources IN/OUT and debug-mode stepping read from and
// write to (spec §5).
func New(verbose bool, in io.Reader, out io.Writer) *Interpreter {
	return &Interpreter{
		memory:    make(map[int]uint32),
		registers: make(map[int]uint32),
		verbose:   verbose,
		in:        bufio.NewReader(in),
		out:       out,
	}
}

// Load populates the Interpreter's memory, instructions and label index
// from a Loader Result (spec §3 Lifecycle: "mutated during load").
func (vm *Interpreter) Load(res *loader.Result) {
	vm.vars = res.Vars
	vm.labels = res.Labels
	vm.instructions = res.Instructions
	vm.labelIndices = res.LabelIndices
	for i, v := range res.Memory {
		vm.memory[i] = v
	}
	vm.counter = 0
}

// Register returns the current value of register r, for tests and
// diagnostics. Reading an unwritten register via this accessor does not
// raise the fatal UninitRegister error Run does — it simply returns 0.
func (vm *Interpreter) Register(r int) uint32 { return vm.registers[r] }

// Memory returns the current value stored at VarId v.
func (vm *Interpreter) Memory(v int) uint32 { return vm.memory[v] }

// Stack returns a snapshot of the stack, top of stack last.
func (vm *Interpreter) Stack() []uint32 {
	out := make([]uint32, len(vm.stack))
	copy(out, vm.stack)
	return out
}

// Counter returns the index of the next instruction to execute.
func (vm *Interpreter) Counter() int { return vm.counter }

func (vm *Interpreter) loc() diagnostics.Location {
	return diagnostics.AtInstr(vm.counter)
}

// Run executes the fetch-execute loop of spec §4.6 to completion or until
// a fatal error is raised.
func (vm *Interpreter) Run() error {
	for vm.counter < len(vm.instructions) {
		if err := vm.step(); err != nil {
			return err
		}
	}
	return nil
}

// RunDebug is the debug sibling of Run (spec §4.6): before each
// instruction it prints a snapshot of the machine state and blocks for a
// line on vm.in before fetching.
func (vm *Interpreter) RunDebug() error {
	for vm.counter < len(vm.instructions) {
		vm.printSnapshot()
		if _, err := vm.in.ReadString('\n'); err != nil && err != io.EOF {
			return err
		}
		if err := vm.step(); err != nil {
			return err
		}
	}
	return nil
}

func (vm *Interpreter) printSnapshot() {
	var ins instr.Instruction
	if vm.counter < len(vm.instructions) {
		ins = vm.instructions[vm.counter]
	}
	fmt.Fprintf(vm.out, "#%d %s\n", vm.counter, describe(ins))
	fmt.Fprintf(vm.out, "  registers: %s\n", vm.formatRegisters())
	fmt.Fprintf(vm.out, "  memory:    %s\n", vm.formatMemory())
	fmt.Fprintf(vm.out, "  stack:     %v\n", vm.stack)
}

func (vm *Interpreter) formatRegisters() string {
	parts := make([]string, 0, len(operand.RegisterNames))
	for i, name := range operand.RegisterNames {
		if v, ok := vm.registers[i]; ok {
			parts = append(parts, fmt.Sprintf("%s=%d", name, v))
		}
	}
	return strings.Join(parts, " ")
}

func (vm *Interpreter) formatMemory() string {
	if vm.vars == nil {
		return ""
	}
	parts := make([]string, 0, len(vm.memory))
	for i := 0; i < vm.vars.Len(); i++ {
		if v, ok := vm.memory[i]; ok {
			parts = append(parts, fmt.Sprintf("%s=%d", vm.vars.Name(i), v))
		}
	}
	return strings.Join(parts, " ")
}

func describe(ins instr.Instruction) string {
	if ins == nil {
		return "(end)"
	}
	return fmt.Sprintf("%v", ins)
}

// value resolves an Operand to its current Word value (spec §4.6).
// Reading an unwritten register is fatal; reading an unwritten variable is
// not — it yields 0 and, in verbose mode, a warning on vm.out.
func (vm *Interpreter) value(op operand.Operand) (uint32, error) {
	switch op.Tag {
	case operand.TagRegister:
		v, ok := vm.registers[op.Reg]
		if !ok {
			return 0, diagnostics.New(diagnostics.UninitRegister, vm.loc(),
				"read of uninitialized register %s", operand.RegisterNames[op.Reg])
		}
		return v, nil
	case operand.TagVariable:
		v, ok := vm.memory[op.Var]
		if !ok {
			if vm.verbose {
				name := "?"
				if vm.vars != nil && op.Var < vm.vars.Len() {
					name = vm.vars.Name(op.Var)
				}
				fmt.Fprintf(vm.out, "warning: read of unwritten variable %s, yielding 0\n", name)
			}
			return 0, nil
		}
		return v, nil
	case operand.TagConstant:
		return uint32(op.Const), nil
	default:
		return 0, fmt.Errorf("vm: unknown operand tag %d", op.Tag)
	}
}

// readWord blocks for one line on vm.in and parses it as a decimal Word,
// for the IN instruction (spec §4.6).
func (vm *Interpreter) readWord() (uint32, error) {
	line, err := vm.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, err
	}
	n, perr := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if perr != nil {
		return 0, diagnostics.New(diagnostics.SyntaxError, vm.loc(), "IN: invalid integer %q", line)
	}
	return uint32(n), nil
}
