package vm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/P4UL-M/copper/internal/loader"
	"github.com/P4UL-M/copper/internal/source"
	"github.com/P4UL-M/copper/internal/vm"
)

func run(t *testing.T, lines ...string) *vm.Interpreter {
	t.Helper()
	res, err := loader.Load(&source.Program{Path: "t.co", Kind: source.KindText, Lines: lines})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	interp := vm.New(false, strings.NewReader(""), &bytes.Buffer{})
	interp.Load(res)
	if err := interp.Run(); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	return interp
}

// TestLdaConstant is scenario S1 of spec §8.
func TestLdaConstant(t *testing.T) {
	interp := run(t, "#CODE", "LDA T0 7", "HLT")
	if got := interp.Register(0); got != 7 {
		t.Errorf("T0 = %d, want 7", got)
	}
}

// TestDataArithmetic is scenario S2 of spec §8.
func TestDataArithmetic(t *testing.T) {
	interp := run(t,
		"#DATA", "x 5",
		"#CODE", "LDA T0 x", "ADD T0 3", "STR x T0", "HLT",
	)
	if got := interp.Register(0); got != 8 {
		t.Errorf("T0 = %d, want 8", got)
	}
	if got := interp.Memory(0); got != 8 {
		t.Errorf("x = %d, want 8", got)
	}
}

// TestForwardBranch is scenario S3 of spec §8.
func TestForwardBranch(t *testing.T) {
	interp := run(t,
		"#CODE",
		"LDA T0 1",
		"BEQ T0 1 end",
		"LDA T0 99",
		"end:",
		"HLT",
	)
	if got := interp.Register(0); got != 1 {
		t.Errorf("T0 = %d, want 1", got)
	}
}

// TestLoopViaJmp is scenario S4 of spec §8.
func TestLoopViaJmp(t *testing.T) {
	interp := run(t,
		"#DATA", "i 0",
		"#CODE",
		"top:",
		"LDA T0 i",
		"ADD T0 1",
		"STR i T0",
		"BSM T0 3 top",
		"HLT",
	)
	if got := interp.Memory(0); got != 3 {
		t.Errorf("i = %d, want 3", got)
	}
	if got := interp.Register(0); got != 3 {
		t.Errorf("T0 = %d, want 3", got)
	}
}

// TestStackDiscipline is scenario S6 of spec §8.
func TestStackDiscipline(t *testing.T) {
	interp := run(t,
		"#CODE",
		"PUSH 10",
		"PUSH 20",
		"POP T0",
		"POP T1",
		"HLT",
	)
	if got := interp.Register(0); got != 20 {
		t.Errorf("T0 = %d, want 20", got)
	}
	if got := interp.Register(1); got != 10 {
		t.Errorf("T1 = %d, want 10", got)
	}
	if len(interp.Stack()) != 0 {
		t.Errorf("stack should be empty, got %v", interp.Stack())
	}
}

func TestUninitRegisterIsFatal(t *testing.T) {
	res, err := loader.Load(&source.Program{Path: "t.co", Kind: source.KindText, Lines: []string{
		"#CODE", "OUT T0", "HLT",
	}})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	interp := vm.New(false, strings.NewReader(""), &bytes.Buffer{})
	interp.Load(res)
	if err := interp.Run(); err == nil {
		t.Errorf("expected UninitRegister error reading an unwritten register")
	}
}

func TestStackUnderflowIsFatal(t *testing.T) {
	res, err := loader.Load(&source.Program{Path: "t.co", Kind: source.KindText, Lines: []string{
		"#CODE", "POP T0", "HLT",
	}})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	interp := vm.New(false, strings.NewReader(""), &bytes.Buffer{})
	interp.Load(res)
	if err := interp.Run(); err == nil {
		t.Errorf("expected StackUnderflow error popping an empty stack")
	}
}

func TestDivByZeroIsFatal(t *testing.T) {
	res, err := loader.Load(&source.Program{Path: "t.co", Kind: source.KindText, Lines: []string{
		"#CODE", "LDA T0 1", "DIV T0 0", "HLT",
	}})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	interp := vm.New(false, strings.NewReader(""), &bytes.Buffer{})
	interp.Load(res)
	if err := interp.Run(); err == nil {
		t.Errorf("expected DivByZero error")
	}
}

func TestUnwrittenVariableReadYieldsZero(t *testing.T) {
	res, err := loader.Load(&source.Program{Path: "t.co", Kind: source.KindText, Lines: []string{
		"#DATA", "x 5",
		"#CODE", "LDA T0 x", "HLT",
	}})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	// Drop the initial memory image so that x is declared but never written.
	res.Memory = nil
	interp := vm.New(false, strings.NewReader(""), &bytes.Buffer{})
	interp.Load(res)
	if err := interp.Run(); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got := interp.Register(0); got != 0 {
		t.Errorf("T0 = %d, want 0", got)
	}
}

func TestArithmeticWrapsModulo2_32(t *testing.T) {
	interp := run(t,
		"#CODE",
		"LDA T0 0",
		"DEC T0",
		"HLT",
	)
	if got := interp.Register(0); got != 0xFFFFFFFF {
		t.Errorf("T0 = %d, want %d (wrap of 0-1)", got, uint32(0xFFFFFFFF))
	}
}

func TestShiftMnemonicsPreserveSpecSemantics(t *testing.T) {
	// spec §9: SRL shifts left, SRR shifts right, despite the mnemonics.
	interp := run(t,
		"#CODE",
		"LDA T0 1",
		"SRL T0 4",
		"LDA T1 16",
		"SRR T1 2",
		"HLT",
	)
	if got := interp.Register(0); got != 16 {
		t.Errorf("SRL T0 4 = %d, want 16 (left shift)", got)
	}
	if got := interp.Register(1); got != 4 {
		t.Errorf("SRR T1 2 = %d, want 4 (right shift)", got)
	}
}
